package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/kontist/mock-solaris-sub001/pkg/accounts"
	"github.com/kontist/mock-solaris-sub001/pkg/cards"
	"github.com/kontist/mock-solaris-sub001/pkg/changerequest"
	"github.com/kontist/mock-solaris-sub001/pkg/clock"
	"github.com/kontist/mock-solaris-sub001/pkg/config"
	"github.com/kontist/mock-solaris-sub001/pkg/fraud"
	"github.com/kontist/mock-solaris-sub001/pkg/handlers"
	"github.com/kontist/mock-solaris-sub001/pkg/metrics"
	"github.com/kontist/mock-solaris-sub001/pkg/middleware"
	"github.com/kontist/mock-solaris-sub001/pkg/reservations"
	"github.com/kontist/mock-solaris-sub001/pkg/storage"
	dydbstore "github.com/kontist/mock-solaris-sub001/pkg/storage/dynamodb"
	"github.com/kontist/mock-solaris-sub001/pkg/storage/memory"
	redisstore "github.com/kontist/mock-solaris-sub001/pkg/storage/redis"
	"github.com/kontist/mock-solaris-sub001/pkg/webhooks"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("unable to load configuration, %v", err)
	}
	logger := cfg.Logger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clk := clock.Real{}
	collector := metrics.NewCollector()

	// Storage
	persons, err := newPersonStore(ctx, cfg)
	if err != nil {
		log.Fatalf("unable to create person store, %v", err)
	}
	store := accounts.NewStore(persons, clk, nil)

	subscriptions, err := newSubscriptionStore(ctx, cfg)
	if err != nil {
		log.Fatalf("unable to create subscription store, %v", err)
	}

	// Webhooks
	deliverer, err := newDeliverer(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("unable to create webhook deliverer, %v", err)
	}
	dispatcher := webhooks.NewDispatcher(subscriptions, deliverer, cfg.WebhookSigningSecret, collector, logger)

	// Domain services. The card service both opens change requests and
	// handles them once confirmed.
	registry := changerequest.NewRegistry()
	authorizer := changerequest.NewAuthorizer(store, registry, clk, changerequest.Options{Metrics: collector, Logger: logger})
	cardService := cards.NewService(store, dispatcher, authorizer, clk, logger)
	cardService.RegisterHandlers(registry)

	watchdog, err := fraud.NewWatchdog(store, dispatcher, clk, cfg.FraudWatchdogTimeout, fraud.Options{Metrics: collector, Logger: logger})
	if err != nil {
		log.Fatalf("unable to create fraud watchdog, %v", err)
	}
	if _, err := watchdog.Rehydrate(ctx); err != nil {
		log.Fatalf("unable to rehydrate fraud cases, %v", err)
	}
	defer watchdog.Stop()

	engine := reservations.NewEngine(store, dispatcher, watchdog, clk, reservations.Options{
		ReservationTTL: cfg.ReservationTTL,
		FraudCaseTTL:   cfg.FraudCaseTTL,
		Metrics:        collector,
		Logger:         logger,
	})

	// HTTP
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.NewStructuredLogger(logger))

	handler := &handlers.ApiHandler{
		Reservations:   engine,
		Fraud:          watchdog,
		Cards:          cardService,
		ChangeRequests: authorizer,
		Subscriptions:  subscriptions,
		Logger:         logger,
	}
	handler.Routes(router)
	router.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting server", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("server stopped, %v", err)
	}
}

func loadAWSConfig(ctx context.Context) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx)
}

func newPersonStore(ctx context.Context, cfg *config.Config) (storage.PersonStore, error) {
	if cfg.PersonsTableName == "" {
		slog.Info("using in-memory person store")
		return memory.New(), nil
	}
	awsCfg, err := loadAWSConfig(ctx)
	if err != nil {
		return nil, err
	}
	return dydbstore.New(dynamodb.NewFromConfig(awsCfg), cfg.PersonsTableName), nil
}

func newSubscriptionStore(ctx context.Context, cfg *config.Config) (webhooks.SubscriptionStore, error) {
	if cfg.RedisURL == "" {
		return webhooks.NewMemorySubscriptionStore(), nil
	}
	client, err := redisstore.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	return redisstore.NewSubscriptionStore(client), nil
}

func newDeliverer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (webhooks.Deliverer, error) {
	if cfg.WebhookQueueURL == "" {
		return webhooks.NewHTTPDeliverer(cfg.WebhookTimeout, logger), nil
	}
	awsCfg, err := loadAWSConfig(ctx)
	if err != nil {
		return nil, err
	}
	return webhooks.NewSQSDeliverer(sqs.NewFromConfig(awsCfg), cfg.WebhookQueueURL), nil
}
