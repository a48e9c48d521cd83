package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/kontist/mock-solaris-sub001/pkg/accounts"
	"github.com/kontist/mock-solaris-sub001/pkg/clock"
	"github.com/kontist/mock-solaris-sub001/pkg/config"
	"github.com/kontist/mock-solaris-sub001/pkg/metrics"
	"github.com/kontist/mock-solaris-sub001/pkg/models"
	"github.com/kontist/mock-solaris-sub001/pkg/reservations"
	dydbstore "github.com/kontist/mock-solaris-sub001/pkg/storage/dynamodb"
	redisstore "github.com/kontist/mock-solaris-sub001/pkg/storage/redis"
	"github.com/kontist/mock-solaris-sub001/pkg/webhooks"
)

// overdueExpirer is the part of the engine the reconciler needs.
type overdueExpirer interface {
	ExpireOverdue(ctx context.Context) (int, error)
}

var (
	engine overdueExpirer
	logger *slog.Logger
)

// noFraudCases satisfies the engine's watcher; expiring reservations never opens a case.
type noFraudCases struct{}

func (noFraudCases) Watch(models.FraudCase) {}

func init() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("unable to load configuration, %v", err)
	}
	logger = cfg.Logger()

	if cfg.PersonsTableName == "" || cfg.RedisURL == "" || cfg.WebhookQueueURL == "" {
		log.Fatal("DYNAMODB_PERSONS_TABLE_NAME, REDIS_URL and SQS_WEBHOOK_QUEUE_URL must be set")
	}

	ctx := context.Background()
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	redisClient, err := redisstore.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("unable to connect to redis, %v", err)
	}

	clk := clock.Real{}
	store := accounts.NewStore(dydbstore.New(dynamodb.NewFromConfig(awsCfg), cfg.PersonsTableName), clk, nil)
	dispatcher := webhooks.NewDispatcher(
		redisstore.NewSubscriptionStore(redisClient),
		webhooks.NewSQSDeliverer(sqs.NewFromConfig(awsCfg), cfg.WebhookQueueURL),
		cfg.WebhookSigningSecret,
		metrics.NewCollector(),
		logger,
	)

	engine = reservations.NewEngine(store, dispatcher, noFraudCases{}, clk, reservations.Options{
		ReservationTTL: cfg.ReservationTTL,
		Logger:         logger,
	})
}

// HandleRequest is triggered by an EventBridge Schedule.
func HandleRequest(ctx context.Context) error {
	logger.InfoContext(ctx, "starting reconciliation of overdue reservations")

	n, err := engine.ExpireOverdue(ctx)
	if err != nil {
		// Expired reservations stay expired; the rest are picked up by the next run.
		logger.ErrorContext(ctx, "reconciliation finished with errors", "expired", n, "error", err)
		return err
	}

	logger.InfoContext(ctx, "reconciliation finished", "expired", n)
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
