package common

import (
	"encoding/base64"
	"net/http/httptest"
	"testing"

	apperrors "movieportal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor_RoundTrip(t *testing.T) {
	key := map[string]interface{}{"id": "m-2", "genre": "Drama", "rating": 7.5}

	token, err := EncodeCursor(GenreKind("Drama"), key)
	require.NoError(t, err)
	assert.NotContains(t, token, "=")

	decoded, err := DecodeCursor(token, GenreKind("Drama"), "id", "genre", "rating")
	require.NoError(t, err)
	assert.Equal(t, key, decoded)
}

func TestEncodeCursor_EmptyKeyMeansExhausted(t *testing.T) {
	token, err := EncodeCursor(KindScan, nil)

	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestDecodeCursor_Rejects(t *testing.T) {
	scanToken, _ := EncodeCursor(KindScan, map[string]interface{}{"id": "m-1"})
	extraAttr, _ := EncodeCursor(KindScan, map[string]interface{}{"id": "m-1", "userId": "x"})

	tests := []struct {
		name  string
		token string
		kind  string
	}{
		{"not base64", "%%%", KindScan},
		{"not json", base64.RawURLEncoding.EncodeToString([]byte("nope")), KindScan},
		{"empty key", base64.RawURLEncoding.EncodeToString([]byte(`{"k":"scan","v":{}}`)), KindScan},
		{"other listing", scanToken, GenreKind("Drama")},
		{"foreign attribute", extraAttr, KindScan},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCursor(tt.token, tt.kind, "id")
			assert.True(t, apperrors.IsValidation(err), "got %v", err)
		})
	}
}

func TestExtractPageRequest(t *testing.T) {
	req := httptest.NewRequest("GET", "/movies?limit=10&nextToken=abc", nil)

	page, err := ExtractPageRequest(req)

	require.NoError(t, err)
	assert.Equal(t, PageRequest{Limit: 10, NextToken: "abc"}, page)
	assert.True(t, page.HasNextToken())
}

func TestExtractPageRequest_Defaults(t *testing.T) {
	page, err := ExtractPageRequest(httptest.NewRequest("GET", "/movies", nil))

	require.NoError(t, err)
	assert.Equal(t, 0, page.Limit)
	assert.False(t, page.HasNextToken())
}

func TestExtractPageRequest_BadLimit(t *testing.T) {
	_, err := ExtractPageRequest(httptest.NewRequest("GET", "/movies?limit=ten", nil))

	assert.True(t, apperrors.IsValidation(err))
}
