package common

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	apperrors "movieportal/pkg/errors"
)

// Listing kinds a cursor may be minted for
const (
	KindScan      = "scan"
	kindGenreBase = "genre:"
	kindUserBase  = "user:"
	kindReviews   = "reviews:"
)

// GenreKind is the cursor kind of a genre listing
func GenreKind(genre string) string { return kindGenreBase + genre }

// UserKind is the cursor kind of a per-owner listing
func UserKind(userID string) string { return kindUserBase + userID }

// ReviewsKind is the cursor kind of a movie's review listing
func ReviewsKind(movieID string) string { return kindReviews + movieID }

// PageRequest is what a listing call receives from the API layer
type PageRequest struct {
	Limit     int
	NextToken string
}

// HasNextToken reports whether the request resumes a previous listing
func (p PageRequest) HasNextToken() bool {
	return p.NextToken != ""
}

// Cursor is the decoded form of a pagination token: the store's resume point
// plus the listing it belongs to.
type Cursor struct {
	Kind string                 `json:"k"`
	Key  map[string]interface{} `json:"v"`
}

// EncodeCursor turns a resume point into a URL-safe opaque token.
// An empty key means the listing is exhausted and yields "".
func EncodeCursor(kind string, key map[string]interface{}) (string, error) {
	if len(key) == 0 {
		return "", nil
	}
	data, err := json.Marshal(Cursor{Kind: kind, Key: key})
	if err != nil {
		return "", fmt.Errorf("failed to encode cursor: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// DecodeCursor reverses EncodeCursor. Tokens that are malformed, minted for
// another listing, or carry attributes outside allowed are rejected.
func DecodeCursor(token, kind string, allowed ...string) (map[string]interface{}, error) {
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid nextToken")
	}

	var c Cursor
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, apperrors.NewValidationError("invalid nextToken")
	}
	if c.Kind != kind {
		return nil, apperrors.NewValidationError("nextToken does not belong to this listing")
	}
	if len(c.Key) == 0 {
		return nil, apperrors.NewValidationError("invalid nextToken")
	}

	if len(allowed) > 0 {
		permitted := make(map[string]struct{}, len(allowed))
		for _, a := range allowed {
			permitted[a] = struct{}{}
		}
		for attr := range c.Key {
			if _, ok := permitted[attr]; !ok {
				return nil, apperrors.NewValidationError("invalid nextToken")
			}
		}
	}

	return c.Key, nil
}

// ExtractPageRequest reads limit and nextToken from the query string.
// A missing limit yields 0, which the listing resolves to its default.
func ExtractPageRequest(r *http.Request) (PageRequest, error) {
	q := r.URL.Query()
	req := PageRequest{NextToken: q.Get("nextToken")}

	if limit := q.Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			return PageRequest{}, apperrors.NewValidationError("limit must be an integer")
		}
		req.Limit = n
	}

	return req, nil
}
