package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestErrorHandler_Handle_AppError(t *testing.T) {
	h := NewErrorHandler(zap.NewNop(), false)
	req := httptest.NewRequest(http.MethodGet, "/movies/x", nil)
	req.Header.Set("X-Request-ID", "req-1")
	rec := httptest.NewRecorder()

	h.Handle(rec, req, NewNotFoundError("Movie"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decode(t, rec)
	assert.True(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Type)
	assert.Equal(t, "Movie not found", resp.Message)
	assert.Equal(t, "req-1", resp.RequestID)
}

func TestErrorHandler_Handle_ServerErrorEchoesCause(t *testing.T) {
	h := NewErrorHandler(zap.NewNop(), false)
	rec := httptest.NewRecorder()

	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/movies", nil), NewExternalError("sqs", errors.New("queue does not exist")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, "EXTERNAL", resp.Type)
	assert.Contains(t, resp.Message, "queue does not exist")
	assert.Nil(t, resp.Details)
}

func TestErrorHandler_Handle_PlainError(t *testing.T) {
	h := NewErrorHandler(zap.NewNop(), false)
	rec := httptest.NewRecorder()

	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "boom", decode(t, rec).Message)
}

func TestErrorHandler_Handle_DebugAddsStackTrace(t *testing.T) {
	h := NewErrorHandler(zap.NewNop(), true)
	rec := httptest.NewRecorder()

	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/", nil), NewValidationError("bad"))

	resp := decode(t, rec)
	assert.Contains(t, resp.Details, "stackTrace")
}

func TestErrorHandler_Middleware_RecoversPanics(t *testing.T) {
	h := NewErrorHandler(zap.NewNop(), false)
	handler := h.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("kaboom")
	}))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, decode(t, rec).Message, "kaboom")
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ctx"))

	wrapped := Wrap(NewNotFoundError("Movie"), "loading")
	assert.True(t, IsNotFound(wrapped))
	assert.Contains(t, wrapped.Error(), "loading: Movie not found")

	plain := Wrap(errors.New("disk full"), "saving")
	assert.True(t, IsType(plain, ErrorTypeInternal))
	assert.EqualError(t, errors.Unwrap(plain), "disk full")
}
