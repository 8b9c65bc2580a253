package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/orienta-za/orienta-backend/api/controllers"
	"github.com/orienta-za/orienta-backend/api/middleware"
	"github.com/orienta-za/orienta-backend/internal/auth"
	"github.com/orienta-za/orienta-backend/internal/catalog"
	"github.com/orienta-za/orienta-backend/internal/intake"
	"github.com/orienta-za/orienta-backend/internal/payments"
	"github.com/orienta-za/orienta-backend/pkg/config"
	"github.com/orienta-za/orienta-backend/pkg/logger"
	"github.com/orienta-za/orienta-backend/pkg/metrics"
	"github.com/orienta-za/orienta-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	reg *metrics.Registry,
	database controllers.Pinger,
	redisClient *redis.Client,
	authService auth.Service,
	intakeService intake.Service,
	catalogService catalog.Service,
	paymentsService payments.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)
	if reg != nil {
		r.Use(middleware.Metrics(reg))
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)
	// Without redis the limiters are pass-through.
	rateLimit := func(policy middleware.AuthRateLimitPolicy) func(http.Handler) http.Handler {
		if redisClient == nil {
			return middleware.AuthRateLimit(policy, nil, logg)
		}
		return middleware.AuthRateLimit(policy, redisClient, logg)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, database, pingerOrNil(redisClient)))
	})

	if reg != nil {
		r.Method(http.MethodGet, "/metrics", reg.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(rateLimit(registerPolicy)).Post("/register", controllers.AuthRegister(authService, logg))
			r.With(rateLimit(loginPolicy)).Post("/login", controllers.AuthLogin(authService, logg))
		})

		r.Get("/intake/questions", controllers.IntakeQuestions(intakeService, logg))

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/institutions", controllers.CatalogInstitutions(catalogService, logg))
			r.Get("/programmes", controllers.CatalogProgrammes(catalogService, logg))
			r.Get("/funding-options", controllers.CatalogFundingOptions(catalogService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))

			r.Get("/profile", controllers.Profile(authService, logg))

			r.Route("/intake", func(r chi.Router) {
				r.Post("/start", controllers.IntakeStart(intakeService, logg))
				r.Post("/answer", controllers.IntakeAnswer(intakeService, logg))
			})

			r.Get("/pathways/preview", controllers.PathwayPreview(catalogService, logg))

			r.Post("/payments/create-checkout", controllers.PaymentsCreateCheckout(paymentsService, logg))
		})
	})

	return r
}

// pingerOrNil keeps a nil redis client from surfacing as a non-nil interface.
func pingerOrNil(c *redis.Client) controllers.Pinger {
	if c == nil {
		return nil
	}
	return c
}
