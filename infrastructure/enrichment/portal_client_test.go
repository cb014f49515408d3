package enrichment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortalClient_GetMovie(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/movies/m1", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"id":"m1","userId":"u1","title":"Heat","actors":[]}`))
	}))
	defer srv.Close()

	c := NewPortalClient(srv.URL+"/", "secret", srv.Client())
	movie, err := c.GetMovie(context.Background(), "m1")

	require.NoError(t, err)
	assert.Equal(t, "Heat", movie.Title)
}

func TestPortalClient_GetMovieGone(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := NewPortalClient(srv.URL, "", srv.Client()).GetMovie(context.Background(), "m1")

	assert.ErrorIs(t, err, ErrMovieGone)
}

func TestPortalClient_UpdateMovieSendsOnlyPatchedFields(t *testing.T) {
	var body map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	director := "Michael Mann"
	err := NewPortalClient(srv.URL, "t", srv.Client()).UpdateMovie(context.Background(), "m1", Patch{Director: &director})

	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"director": "Michael Mann"}, body)
}

func TestPortalClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := NewPortalClient(srv.URL, "t", srv.Client()).UpdateMovie(context.Background(), "m1", Patch{})

	assert.ErrorContains(t, err, "portal returned 500: boom")
}
