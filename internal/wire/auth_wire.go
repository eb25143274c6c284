package wire

import (
	"net/http"

	"donor-booking/internal/adaptor"
	"donor-booking/pkg/middleware"
	"donor-booking/pkg/ratelimit"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	requireAuth func(http.Handler) http.Handler,
	limiter ratelimit.Limiter,
	log *zap.Logger,
) {
	r.Route("/api/auth", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(limiter, "auth", log.With(zap.String("middleware", "ratelimit"))))

			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		// ==================== PROTECTED ROUTES ====================
		r.With(requireAuth).Get("/me", authHandler.Me)
	})
}
