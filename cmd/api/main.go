package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/DragonsUnit/AeroCommerce/api/controllers"
	"github.com/DragonsUnit/AeroCommerce/api/routes"
	internalauth "github.com/DragonsUnit/AeroCommerce/internal/auth"
	"github.com/DragonsUnit/AeroCommerce/internal/authz"
	"github.com/DragonsUnit/AeroCommerce/internal/checkout"
	"github.com/DragonsUnit/AeroCommerce/internal/coupons"
	"github.com/DragonsUnit/AeroCommerce/internal/orders"
	"github.com/DragonsUnit/AeroCommerce/internal/products"
	"github.com/DragonsUnit/AeroCommerce/internal/stores"
	"github.com/DragonsUnit/AeroCommerce/internal/users"
	pkgauth "github.com/DragonsUnit/AeroCommerce/pkg/auth"
	"github.com/DragonsUnit/AeroCommerce/pkg/auth/session"
	"github.com/DragonsUnit/AeroCommerce/pkg/config"
	"github.com/DragonsUnit/AeroCommerce/pkg/db"
	"github.com/DragonsUnit/AeroCommerce/pkg/logger"
	"github.com/DragonsUnit/AeroCommerce/pkg/metrics"
	"github.com/DragonsUnit/AeroCommerce/pkg/migrate"
	"github.com/DragonsUnit/AeroCommerce/pkg/openai"
	"github.com/DragonsUnit/AeroCommerce/pkg/outbox"
	"github.com/DragonsUnit/AeroCommerce/pkg/pubsub"
	"github.com/DragonsUnit/AeroCommerce/pkg/redis"
	"github.com/DragonsUnit/AeroCommerce/pkg/security"
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

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	var pubsubClient *pubsub.Client
	if cfg.GCP.ProjectID != "" {
		pubsubClient, err = pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap pubsub", err)
			os.Exit(1)
		}
		defer func() {
			if err := pubsubClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing pubsub", err)
			}
		}()
	}

	if cfg.OpenAI.APIKey != "" {
		opts := []openai.Option{}
		if cfg.OpenAI.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.OpenAI.BaseURL))
		}
		openaiClient, err := openai.NewClient(cfg.OpenAI.APIKey, opts...)
		if err != nil {
			logg.Error(context.Background(), "failed to configure openai client", err)
			os.Exit(1)
		}
		logg.Info(logg.WithField(context.Background(), "openai_base_url", openaiClient.BaseURL()), "openai client configured")
	}

	tokens, err := pkgauth.NewTokenIssuer(cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create token issuer", err)
		os.Exit(1)
	}
	sessions := session.NewManager(redisClient, cfg.JWT.SessionTTL())

	usersRepo := users.NewRepository(dbClient.DB())
	productsRepo := products.NewRepository(dbClient.DB())
	storesRepo := stores.NewRepository(dbClient.DB())
	couponsRepo := coupons.NewRepository(dbClient.DB())
	ordersRepo := orders.NewRepository(dbClient.DB())
	outboxSvc := outbox.NewService(outbox.NewRepository(dbClient.DB()), logg)

	authService, err := internalauth.NewService(internalauth.ServiceParams{
		UserRepo:       usersRepo,
		SessionManager: sessions,
		Hasher:         security.NewHasher(cfg.Password),
		Tokens:         tokens,
		Outbox:         outboxSvc,
		DB:             dbClient.DB(),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	checkoutService := checkout.NewService(
		dbClient,
		ordersRepo,
		usersRepo,
		productsRepo,
		coupons.NewService(couponsRepo, ordersRepo),
		outboxSvc,
		metrics.NewCheckoutMetrics(prometheus.DefaultRegisterer),
		logg,
		cfg.Checkout,
	)
	authzService := authz.NewService(usersRepo, storesRepo, cfg.Admin, logg)

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

	var pubsubPinger controllers.Pinger
	if pubsubClient != nil {
		pubsubPinger = pubsubClient
	}

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			pubsubPinger,
			tokens,
			sessions,
			authService,
			checkoutService,
			ordersRepo,
			couponsRepo,
			authzService,
		),
	}

	shutdownCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutting down api server")
		timeout, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(timeout); err != nil {
			logg.Error(ctx, "api server shutdown failed", err)
		}
	}
}
