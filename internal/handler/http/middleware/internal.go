package middleware

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/teamtrack-hq/teamtrack-backend/internal/handler/http/response"
)

// InternalToken guards the internal trigger endpoints. Callers present the
// shared token in X-Internal-Token; only its bcrypt hash is configured on
// the service.
func InternalToken(tokenHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("X-Internal-Token")
			if token == "" {
				response.Unauthorized(w, "Missing internal token")
				return
			}

			if err := bcrypt.CompareHashAndPassword([]byte(tokenHash), []byte(token)); err != nil {
				response.Unauthorized(w, "Invalid internal token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
