package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coverbox/service/internal/auth"
	"github.com/coverbox/service/internal/middleware"
)

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	gate := auth.NewSecretGate("s3cret")
	handler := middleware.RequireAdmin(gate)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, tc := range []struct {
		name       string
		secret     string
		wantStatus int
	}{
		{"valid secret", "s3cret", http.StatusOK},
		{"wrong secret", "nope", http.StatusForbidden},
		{"missing secret", "", http.StatusForbidden},
	} {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/cover/upload", nil)
			if tc.secret != "" {
				req.Header.Set(middleware.AdminSecretHeader, tc.secret)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			require.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}
