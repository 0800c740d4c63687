package middlewares

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=middlewares

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-user-posts/internal/jwt"
	"github.com/sbilibin2017/gw-user-posts/internal/logger"
)

const (
	msgNoToken      = "Access denied, no token provided"
	msgInvalidToken = "Invalid token"
)

// Tokener defines the minimal interface needed by the middleware
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// AuthMiddleware rejects requests without a valid bearer token and stores the
// token claims in the request context for downstream handlers.
func AuthMiddleware(tokener Tokener) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Infow("authorization failed", "err", err)
				if errors.Is(err, jwt.ErrMissingToken) {
					writeError(w, http.StatusUnauthorized, msgNoToken)
					return
				}
				writeError(w, http.StatusUnauthorized, msgInvalidToken)
				return
			}

			claims, err := tokener.GetClaims(ctx, tokenString)
			if err != nil {
				logger.Log.Infow("authorization failed", "err", err)
				writeError(w, http.StatusUnauthorized, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(jwt.WithClaims(ctx, claims)))
		})
	}
}
