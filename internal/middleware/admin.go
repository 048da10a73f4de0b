package middleware

import (
	"net/http"

	"github.com/coverbox/service/internal/auth"
	"github.com/coverbox/service/internal/response"
)

// AdminSecretHeader carries the shared admin secret on mutating requests.
const AdminSecretHeader = "Admin-Secret"

// RequireAdmin returns middleware that admits a request only when the
// Admin-Secret header passes the gate. The check runs before any business
// logic; rejection is a 403, distinct from business errors.
func RequireAdmin(gate auth.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !gate.Admit(r.Header.Get(AdminSecretHeader)) {
				response.Forbidden(w, "admin secret invalid")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
