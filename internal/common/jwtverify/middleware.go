package jwtverify

import (
	"context"
	"net/http"
	"strings"
	"time"

	commonhttp "github.com/dmedvedev/secure-content/internal/common/http"
	"github.com/dmedvedev/secure-content/internal/common/logger"
	"github.com/dmedvedev/secure-content/internal/common/token"
	"github.com/dmedvedev/secure-content/internal/observability/metrics"
)

// Validator is the slice of the token codec the guard needs.
type Validator interface {
	Validate(raw string, now time.Time) (token.Claims, error)
}

type contextKey string

const claimsKey contextKey = "jwt_claims"

// Every rejection uses the same status and body: a caller must not be able
// to tell a missing header from a bad signature from an expired token.
const rejectionMessage = "missing or invalid authorization"

// Middleware gates protected routes on a valid bearer token and exposes the
// verified claims to downstream handlers via the request context.
func Middleware(codec Validator, log *logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Authorization")
			if raw == "" || !strings.HasPrefix(raw, "Bearer ") {
				log.Warnf("auth failed path=%s: missing or malformed authorization header", r.URL.Path)
				commonhttp.WriteError(w, http.StatusUnauthorized, rejectionMessage)
				return
			}

			metrics.TokenValidationsTotal.Inc()

			claims, err := codec.Validate(strings.TrimPrefix(raw, "Bearer "), time.Now())
			if err != nil {
				log.Warnf("auth failed path=%s: %v", r.URL.Path, err)
				metrics.TokenValidationsFailed.Inc()
				commonhttp.WriteError(w, http.StatusUnauthorized, rejectionMessage)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext returns the authenticated identity placed by Middleware.
func FromContext(ctx context.Context) (token.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(token.Claims)
	return claims, ok
}
