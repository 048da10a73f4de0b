package user_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/coverbox/service/internal/response"
	"github.com/coverbox/service/internal/user"
)

func newTestRouter() *chi.Mux {
	h := user.NewHandler(user.NewService(&fakeStore{}))
	r := chi.NewRouter()
	r.Post("/api/users", h.Create)
	r.Get("/api/users", h.List)
	r.Get("/api/users/{id}", h.Get)
	r.Put("/api/users/{id}", h.Update)
	r.Delete("/api/users/{id}", h.Delete)
	r.Get("/api/user/{userid}", h.GetByUserID)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, response.Envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	var env response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestUserCRUDOverHTTP(t *testing.T) {
	t.Parallel()
	r := newTestRouter()

	rec, env := doJSON(t, r, http.MethodPost, "/api/users", `{"userid":"wx_123","user_name":"Alice","role":"VIP"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, 0, env.Code)
	created := env.Data.(map[string]interface{})
	require.Equal(t, "wx_123", created["userid"])
	require.Equal(t, "VIP", created["role"])

	rec, env = doJSON(t, r, http.MethodGet, "/api/user/wx_123", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Alice", env.Data.(map[string]interface{})["user_name"])

	rec, env = doJSON(t, r, http.MethodPut, "/api/users/1", `{"user_name":"Alice B","role":"ADMIN"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Alice B", env.Data.(map[string]interface{})["user_name"])

	rec, _ = doJSON(t, r, http.MethodDelete, "/api/users/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = doJSON(t, r, http.MethodGet, "/api/users/1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, -1, env.Code)
	require.Equal(t, "user not found", env.ErrorMsg)
}

func TestUserBadInputOverHTTP(t *testing.T) {
	t.Parallel()
	r := newTestRouter()

	rec, env := doJSON(t, r, http.MethodPost, "/api/users", `{"userid":"wx_1","user_name":"A","role":"ROOT"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "role must be one of ADMIN, VIP, GUEST", env.ErrorMsg)

	rec, env = doJSON(t, r, http.MethodGet, "/api/users/abc", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "invalid user id", env.ErrorMsg)

	rec, env = doJSON(t, r, http.MethodGet, "/api/user/wx_missing", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "user not found", env.ErrorMsg)
}
