package rest_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	commandhandlers "movieportal/application/commands/handlers"
	"movieportal/domain/config"
	"movieportal/infrastructure/di"
	messagingmemory "movieportal/infrastructure/messaging/memory"
	persistencememory "movieportal/infrastructure/persistence/memory"
	storagememory "movieportal/infrastructure/storage/memory"
	"movieportal/interfaces/http/rest"
	"movieportal/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const secret = "router-secret"

type portal struct {
	t       *testing.T
	handler http.Handler
	queue   *messagingmemory.Queue
	notify  *messagingmemory.Notifier
	assets  *storagememory.AssetStore
	tokens  *auth.JWTGenerator
}

func newPortal(t *testing.T) *portal {
	t.Helper()
	logger := zap.NewNop()
	domainCfg := config.DefaultDomainConfig()

	movies := persistencememory.NewMovieRepository()
	users := persistencememory.NewUserRepository()
	reviews := persistencememory.NewReviewRepository()
	queue := &messagingmemory.Queue{}
	notify := &messagingmemory.Notifier{}
	assets := storagememory.NewAssetStore("posters", domainCfg.UploadKeyPrefix)

	deps := commandhandlers.Dependencies{
		Movies:  movies,
		Users:   users,
		Reviews: reviews,
		Queue:   queue,
		Notify:  notify,
		Assets:  assets,
		Events:  &messagingmemory.EventBus{},
		Config:  domainCfg,
		Logger:  logger,
	}
	commandBus, err := di.ProvideCommandBus(deps, nil, logger)
	require.NoError(t, err)
	queryBus, err := di.ProvideQueryBus(movies, users, reviews, nil, domainCfg, logger)
	require.NoError(t, err)

	validator, err := auth.NewJWTValidator(auth.JWTConfig{SecretKey: secret})
	require.NoError(t, err)
	tokens, err := auth.NewJWTGenerator(auth.JWTConfig{SecretKey: secret})
	require.NoError(t, err)

	handler := rest.NewRouter(commandBus, queryBus, logger, rest.Options{
		Validator:   validator,
		AdminUserID: "admin",
	}).Setup()

	return &portal{t: t, handler: handler, queue: queue, notify: notify, assets: assets, tokens: tokens}
}

// do sends a request as userID; an empty userID is anonymous
func (p *portal) do(method, path, userID string, body interface{}) *httptest.ResponseRecorder {
	p.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(p.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		token, err := p.tokens.GenerateToken(userID, "")
		require.NoError(p.t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	p.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func (p *portal) createMovie(userID, title string) string {
	p.t.Helper()
	rec := p.do(http.MethodPost, "/movies", userID, map[string]interface{}{"title": title})
	require.Equal(p.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode(p.t, rec)["id"].(string)
}

func TestRouter_Health(t *testing.T) {
	p := newPortal(t)

	rec := p.do(http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestRouter_UnknownRouteAndMethod(t *testing.T) {
	p := newPortal(t)

	assert.Equal(t, http.StatusNotFound, p.do(http.MethodGet, "/nowhere", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, p.do(http.MethodPatch, "/movies", "", nil).Code)
}

func TestRouter_Preflight(t *testing.T) {
	p := newPortal(t)

	rec := p.do(http.MethodOptions, "/movies/abc", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_CreateMovie(t *testing.T) {
	p := newPortal(t)

	rec := p.do(http.MethodPost, "/movies", "alice", map[string]interface{}{
		"title": "  Heat ",
		"year":  1995,
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "Heat", body["title"])
	assert.Equal(t, "alice", body["userId"])
	assert.Equal(t, []interface{}{}, body["actors"])
	assert.NotEmpty(t, body["watchedDate"])

	require.Len(t, p.queue.Jobs(), 1)
	assert.Equal(t, body["id"], p.queue.Jobs()[0].MovieID)
	assert.Len(t, p.notify.Published(), 1)
}

func TestRouter_CreateMovieValidation(t *testing.T) {
	p := newPortal(t)

	assert.Equal(t, http.StatusBadRequest, p.do(http.MethodPost, "/movies", "alice", map[string]interface{}{"title": "   "}).Code)
	assert.Equal(t, http.StatusBadRequest, p.do(http.MethodPost, "/movies", "alice", map[string]interface{}{"title": "X", "rating": 11}).Code)
	assert.Empty(t, p.queue.Jobs())
}

func TestRouter_EnqueueFailureIs500(t *testing.T) {
	p := newPortal(t)
	p.queue.Err = fmt.Errorf("queue unavailable")

	rec := p.do(http.MethodPost, "/movies", "alice", map[string]interface{}{"title": "Heat"})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, p.notify.Published())
}

func TestRouter_ListMoviesPaginates(t *testing.T) {
	p := newPortal(t)
	for i := 0; i < 3; i++ {
		p.createMovie("alice", fmt.Sprintf("Movie %d", i))
	}

	first := decode(t, p.do(http.MethodGet, "/movies?limit=2", "", nil))
	assert.Equal(t, float64(2), first["count"])
	token, ok := first["nextToken"].(string)
	require.True(t, ok)

	second := decode(t, p.do(http.MethodGet, "/movies?limit=2&nextToken="+token, "", nil))
	assert.Equal(t, float64(1), second["count"])
	assert.Nil(t, second["nextToken"])

	assert.Equal(t, http.StatusBadRequest, p.do(http.MethodGet, "/movies?nextToken=forged", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, p.do(http.MethodGet, "/movies?limit=-1", "", nil).Code)
}

func TestRouter_GetMissingMovie(t *testing.T) {
	p := newPortal(t)

	assert.Equal(t, http.StatusNotFound, p.do(http.MethodGet, "/movies/missing", "", nil).Code)
}

func TestRouter_UpdateMovieOwnership(t *testing.T) {
	p := newPortal(t)
	id := p.createMovie("alice", "Heat")

	assert.Equal(t, http.StatusForbidden, p.do(http.MethodPut, "/movies/"+id, "bob", map[string]interface{}{"rating": 8}).Code)
	assert.Equal(t, http.StatusForbidden, p.do(http.MethodPut, "/movies/"+id, "", map[string]interface{}{"rating": 8}).Code)

	rec := p.do(http.MethodPut, "/movies/"+id, "alice", map[string]interface{}{"rating": 8})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, float64(8), decode(t, rec)["rating"])

	rec = p.do(http.MethodPut, "/movies/"+id, "admin", map[string]interface{}{"title": "Heat (1995)"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, p.queue.Jobs(), 2)
}

func TestRouter_DeleteMovie(t *testing.T) {
	p := newPortal(t)
	imageURL := "https://posters.assets.local/uploads/alice/poster.jpg"
	rec := p.do(http.MethodPost, "/movies", "alice", map[string]interface{}{"title": "Heat", "imageUrl": imageURL})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode(t, rec)["id"].(string)

	assert.Equal(t, http.StatusForbidden, p.do(http.MethodDelete, "/movies/"+id, "bob", nil).Code)

	rec = p.do(http.MethodDelete, "/movies/"+id, "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, decode(t, rec)["id"])
	assert.Equal(t, []string{"uploads/alice/poster.jpg"}, p.assets.Deleted())

	assert.Equal(t, http.StatusNotFound, p.do(http.MethodGet, "/movies/"+id, "", nil).Code)
}

func TestRouter_Watchlist(t *testing.T) {
	p := newPortal(t)
	id := p.createMovie("bob", "Heat")

	assert.Equal(t, http.StatusForbidden, p.do(http.MethodPost, "/users/alice/watchlist", "bob", map[string]string{"movieId": id}).Code)
	assert.Equal(t, http.StatusNotFound, p.do(http.MethodPost, "/users/alice/watchlist", "alice", map[string]string{"movieId": "missing"}).Code)

	rec := p.do(http.MethodPost, "/users/alice/watchlist", "alice", map[string]string{"movieId": id})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []interface{}{id}, decode(t, rec)["watchlist"])

	rec = p.do(http.MethodDelete, "/users/alice/watchlist/"+id, "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []interface{}{}, decode(t, rec)["watchlist"])

	rec = p.do(http.MethodGet, "/users/alice", "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestRouter_UserMovies(t *testing.T) {
	p := newPortal(t)
	p.createMovie("alice", "Heat")
	p.createMovie("bob", "Ronin")

	rec := p.do(http.MethodGet, "/users/alice/movies", "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode(t, rec)["count"])

	assert.Equal(t, http.StatusForbidden, p.do(http.MethodGet, "/users/alice/movies", "bob", nil).Code)
}

func TestRouter_Reviews(t *testing.T) {
	p := newPortal(t)
	id := p.createMovie("alice", "Heat")

	rec := p.do(http.MethodPost, "/movies/"+id+"/reviews", "bob", map[string]interface{}{"rating": 9, "comment": "Great"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "bob", decode(t, rec)["userId"])

	rec = p.do(http.MethodGet, "/movies/"+id+"/reviews", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode(t, rec)["count"])

	assert.Equal(t, http.StatusNotFound, p.do(http.MethodGet, "/movies/missing/reviews", "", nil).Code)
}

func TestRouter_PresignedURL(t *testing.T) {
	p := newPortal(t)

	rec := p.do(http.MethodPost, "/presigned-url", "alice", map[string]string{"filename": "my poster.png", "contentType": "image/png"})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Contains(t, body["key"], "uploads/alice/")
	assert.NotEmpty(t, body["uploadUrl"])
	assert.Equal(t, float64(300), body["expiresIn"])

	assert.Equal(t, http.StatusBadRequest, p.do(http.MethodPost, "/presigned-url", "alice", map[string]string{}).Code)
}
