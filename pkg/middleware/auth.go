package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"donor-booking/internal/data/entity"
	"donor-booking/internal/usecase"
	"donor-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Authenticator resolves a bearer token to the calling user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (uuid.UUID, entity.UserRole, error)
}

// Auth rejects requests without a valid bearer token before they reach a handler.
func Auth(auth Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			scheme, token, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			userID, role, err := auth.Authenticate(r.Context(), strings.TrimSpace(token))
			if err != nil {
				if errors.Is(err, usecase.ErrUnauthenticated) {
					logger.Warn("Rejected token",
						zap.Error(err),
						zap.String("path", r.URL.Path))
					utils.ResponseUnauthorized(w, "Invalid or expired token")
					return
				}

				logger.Error("Failed to authenticate request", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			ctx := utils.SetUserContext(r.Context(), userID, string(role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
