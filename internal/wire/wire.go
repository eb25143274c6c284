package wire

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"donor-booking/internal/adaptor"
	"donor-booking/internal/data/repository"
	"donor-booking/internal/events"
	"donor-booking/internal/schedule"
	"donor-booking/internal/usecase"
	"donor-booking/pkg/metrics"
	"donor-booking/pkg/middleware"
	"donor-booking/pkg/ratelimit"
	"donor-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Infra holds the backends chosen at start-up.
type Infra struct {
	Repo      *repository.Repository
	Limiter   ratelimit.Limiter
	Publisher events.Publisher
	// Ping checks the storage backend for /health. Nil means always healthy.
	Ping func(ctx context.Context) error
}

type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and the router.
func Wiring(infra Infra, config *utils.Config, logger *zap.Logger) (*App, error) {
	calendar, err := schedule.NewCalendar(
		config.Schedule.Open,
		config.Schedule.Close,
		time.Duration(config.Schedule.SlotMinutes)*time.Minute,
	)
	if err != nil {
		return nil, fmt.Errorf("business hours: %w", err)
	}

	tokens := utils.NewTokenManager(config.JWT)

	service := usecase.NewService(infra.Repo, calendar, tokens, infra.Publisher, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, service, infra, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}, nil
}

func setupRouter(
	handler *adaptor.Handler,
	service *usecase.Service,
	infra Infra,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	metrics.Register()

	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.CORSOrigin))
	r.Use(middleware.Metrics)

	requireAuth := middleware.Auth(service.Auth, logger.With(zap.String("middleware", "auth")))

	// Apply routes
	wireAuth(r, handler.Auth, requireAuth, infra.Limiter, logger)
	wireAppointment(r, handler.Appointment, requireAuth)

	r.Get("/health", healthHandler(infra.Ping, logger))
	r.Handle("/metrics", metrics.Handler())

	return r
}

func healthHandler(ping func(context.Context) error, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			if err := ping(ctx); err != nil {
				logger.Error("Health check failed", zap.Error(err))
				utils.ResponseUnavailable(w, "storage unavailable")
				return
			}
		}
		utils.ResponseSuccess(w, "OK", nil)
	}
}
