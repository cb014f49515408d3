package valueobjects

import (
	"errors"
	"path"
	"strings"

	"github.com/google/uuid"
)

// UploadKey is the object key an uploaded asset is stored under. It is always
// namespaced by the uploader and made unique, so callers cannot address
// another user's objects or escape the prefix through the filename.
type UploadKey struct {
	value string
}

// NewUploadKey builds prefix/<owner>/<uuid>-<sanitized filename>
func NewUploadKey(prefix, owner, filename string) (UploadKey, error) {
	if strings.TrimSpace(filename) == "" {
		return UploadKey{}, errors.New("filename cannot be empty")
	}
	if owner == "" {
		return UploadKey{}, errors.New("owner cannot be empty")
	}

	key := strings.Join([]string{
		prefix,
		SanitizeSegment(owner),
		uuid.New().String() + "-" + SanitizeFilename(filename),
	}, "/")
	return UploadKey{value: key}, nil
}

// String returns the object key
func (k UploadKey) String() string {
	return k.value
}

// IsZero checks if the key is the zero value
func (k UploadKey) IsZero() bool {
	return k.value == ""
}

// SanitizeFilename reduces a client-supplied name to a single safe path
// segment.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	return SanitizeSegment(path.Base(name))
}

// SanitizeSegment replaces everything outside [A-Za-z0-9._-] and rejects
// names that would be interpreted as directory references.
func SanitizeSegment(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	out := sb.String()
	for strings.Contains(out, "..") {
		out = strings.ReplaceAll(out, "..", ".")
	}
	if out == "" || strings.Trim(out, ".") == "" {
		return "file"
	}
	return out
}
