// Package storage holds the asset store adapters and the rules for telling
// whether an image reference points into the managed bucket.
package storage

import (
	"net/url"
	"strings"
)

// Reference describes where a bucket's objects can be addressed from
type Reference struct {
	Bucket string
	// Prefix is the key prefix uploads are issued under. Bare keys are only
	// accepted below it.
	Prefix string
	// VirtualHosts serve objects at https://<host>/<key>
	VirtualHosts []string
	// PathHosts serve objects at https://<host>/<bucket>/<key>
	PathHosts []string
}

// KeyFromReference returns the object key ref points at, if it points into
// the bucket at all. Accepted forms are s3://bucket/key, virtual-hosted and
// path-style URLs on the configured hosts, and bare keys under Prefix.
func (r Reference) KeyFromReference(ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", false
	}

	if strings.HasPrefix(ref, "s3://") {
		rest := strings.TrimPrefix(ref, "s3://")
		bucket, key, ok := strings.Cut(rest, "/")
		if !ok || bucket != r.Bucket {
			return "", false
		}
		return cleanKey(key)
	}

	if !strings.Contains(ref, "://") {
		if r.Prefix == "" || !strings.HasPrefix(ref, r.Prefix+"/") {
			return "", false
		}
		return cleanKey(ref)
	}

	u, err := url.Parse(ref)
	if err != nil || (u.Scheme != "https" && u.Scheme != "http") {
		return "", false
	}
	host := strings.ToLower(u.Host)
	path := strings.TrimPrefix(u.Path, "/")

	for _, h := range r.VirtualHosts {
		if host == strings.ToLower(h) {
			return cleanKey(path)
		}
	}
	for _, h := range r.PathHosts {
		if host == strings.ToLower(h) {
			bucket, key, ok := strings.Cut(path, "/")
			if !ok || bucket != r.Bucket {
				return "", false
			}
			return cleanKey(key)
		}
	}
	return "", false
}

func cleanKey(key string) (string, bool) {
	if key == "" || strings.HasSuffix(key, "/") {
		return "", false
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == ".." {
			return "", false
		}
	}
	return key, true
}
