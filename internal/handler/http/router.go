package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/egalea504/LightBnB/internal/service"
	"github.com/egalea504/LightBnB/pkg/health"
	"github.com/egalea504/LightBnB/pkg/middleware"
)

// RouterConfig carries the router's collaborators.
type RouterConfig struct {
	Service   *service.Service
	Validator middleware.TokenValidator
	Health    *health.Handler
	CORS      middleware.CORSConfig

	// AuthRateLimit throttles register and login per client. A zero
	// PerMinute disables it.
	AuthRateLimit middleware.RateLimitConfig
	Logger        *slog.Logger
}

// NewRouter builds the LightBnB HTTP API.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.Tracing)
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.CORS(cfg.CORS))

	r.Get("/health/live", cfg.Health.LivenessHandler())
	r.Get("/health/ready", cfg.Health.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	users := NewUserHandler(cfg.Service, cfg.Logger)
	properties := NewPropertyHandler(cfg.Service, cfg.Logger)
	reservations := NewReservationHandler(cfg.Service, cfg.Logger)
	requireAuth := middleware.Auth(cfg.Validator)
	throttle := func(next http.Handler) http.Handler { return next }
	if cfg.AuthRateLimit.PerMinute > 0 {
		throttle = middleware.RateLimit(cfg.AuthRateLimit, cfg.Logger)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.With(throttle).Post("/users", users.Register)
		r.With(throttle).Post("/users/login", users.Login)
		r.Get("/properties", properties.List)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Post("/users/logout", users.Logout)
			r.Get("/users/me", users.Me)
			r.Post("/properties", properties.Create)
			r.Get("/reservations", reservations.List)
		})
	})

	return r
}
