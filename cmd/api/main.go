package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/orienta-za/orienta-backend/api/routes"
	"github.com/orienta-za/orienta-backend/internal/auth"
	"github.com/orienta-za/orienta-backend/internal/catalog"
	"github.com/orienta-za/orienta-backend/internal/events"
	"github.com/orienta-za/orienta-backend/internal/intake"
	"github.com/orienta-za/orienta-backend/internal/payments"
	"github.com/orienta-za/orienta-backend/internal/profiles"
	"github.com/orienta-za/orienta-backend/internal/seed"
	"github.com/orienta-za/orienta-backend/internal/users"
	"github.com/orienta-za/orienta-backend/pkg/config"
	"github.com/orienta-za/orienta-backend/pkg/db"
	"github.com/orienta-za/orienta-backend/pkg/logger"
	"github.com/orienta-za/orienta-backend/pkg/metrics"
	"github.com/orienta-za/orienta-backend/pkg/migrate"
	"github.com/orienta-za/orienta-backend/pkg/redis"
	"github.com/orienta-za/orienta-backend/pkg/stripe"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured, auth rate limiting disabled")
	}

	var checkoutClient payments.CheckoutClient
	if cfg.Stripe.Enabled() {
		stripeClient, err := stripe.NewClient(context.Background(), cfg.Stripe, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap stripe", err)
			os.Exit(1)
		}
		checkoutClient = payments.NewCheckoutClient(stripeClient)
	} else {
		logg.Warn(context.Background(), "stripe not configured, checkout disabled")
	}

	eventRecorder := events.NewRecorder(dbClient.DB(), logg)
	userRepo := users.NewRepository(dbClient.DB())
	profileRepo := profiles.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		ProfileRepo:    profileRepo,
		TxRunner:       dbClient,
		Events:         eventRecorder,
		PasswordConfig: cfg.Password,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	intakeService, err := intake.NewService(intake.ServiceParams{
		SessionRepo: intake.NewRepository(dbClient.DB()),
		ProfileRepo: profileRepo,
		TxRunner:    dbClient,
		Events:      eventRecorder,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create intake service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalog.ServiceParams{
		CatalogRepo: catalog.NewRepository(dbClient.DB()),
		ProfileRepo: profileRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	paymentsService, err := payments.NewService(payments.ServiceParams{
		TransactionRepo: payments.NewRepository(dbClient.DB()),
		Checkout:        checkoutClient,
		Events:          eventRecorder,
		Logger:          logg,
		BaseURL:         cfg.App.BaseURL,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create payment service", err)
		os.Exit(1)
	}

	if cfg.FeatureFlags.SeedOnBoot {
		if err := seed.New(dbClient.DB(), logg).Run(context.Background()); err != nil {
			logg.Error(context.Background(), "failed to seed catalog", err)
			os.Exit(1)
		}
	}

	reg := metrics.New("api")

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			reg,
			dbClient,
			redisClient,
			authService,
			intakeService,
			catalogService,
			paymentsService,
		),
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutting down api server")
		drainCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(drainCtx); err != nil {
			logg.Error(ctx, "error during shutdown", err)
		}
	}
}
