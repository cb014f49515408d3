package valueobjects

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUploadKey(t *testing.T) {
	key, err := NewUploadKey("uploads", "user-1", "poster.jpg")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key.String(), "uploads/user-1/"))
	assert.True(t, strings.HasSuffix(key.String(), "-poster.jpg"))
	assert.False(t, key.IsZero())
}

func TestNewUploadKey_IsUnique(t *testing.T) {
	a, _ := NewUploadKey("uploads", "user-1", "poster.jpg")
	b, _ := NewUploadKey("uploads", "user-1", "poster.jpg")

	assert.NotEqual(t, a.String(), b.String())
}

func TestNewUploadKey_Rejects(t *testing.T) {
	_, err := NewUploadKey("uploads", "user-1", "  ")
	assert.Error(t, err)

	_, err = NewUploadKey("uploads", "", "poster.jpg")
	assert.Error(t, err)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"poster.jpg", "poster.jpg"},
		{"../../etc/passwd", "passwd"},
		{`..\..\boot.ini`, "boot.ini"},
		{"my poster (1).png", "my_poster__1_.png"},
		{"..", "file"},
		{"a..b", "a.b"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}

func TestSanitizeSegment_OwnerCannotEscape(t *testing.T) {
	assert.Equal(t, "a_b", SanitizeSegment("a/b"))
	assert.Equal(t, "file", SanitizeSegment("..."))
}
