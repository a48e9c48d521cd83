package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/kontist/mock-solaris-sub001/pkg/config"
	"github.com/kontist/mock-solaris-sub001/pkg/webhooks"
)

type deliveryHandler struct {
	deliverer webhooks.Deliverer
	logger    *slog.Logger
}

// HandleRequest posts every queued delivery to its subscriber. Failed records
// are reported back so SQS retries only those.
func (h *deliveryHandler) HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) (events.SQSEventResponse, error) {
	var resp events.SQSEventResponse

	for _, message := range sqsEvent.Records {
		log := h.logger.With("message_id", message.MessageId)

		d, err := webhooks.DecodeDelivery(message.Body)
		if err != nil {
			// A malformed message never succeeds; drop it instead of retrying.
			log.ErrorContext(ctx, "failed to decode webhook delivery", "error", err)
			continue
		}

		if err := h.deliverer.Deliver(ctx, d); err != nil {
			log.WarnContext(ctx, "failed to deliver webhook", "delivery_id", d.ID, "event_type", d.EventType, "error", err)
			resp.BatchItemFailures = append(resp.BatchItemFailures, events.SQSBatchItemFailure{ItemIdentifier: message.MessageId})
			continue
		}

		log.InfoContext(ctx, "webhook delivered", "delivery_id", d.ID, "event_type", d.EventType)
	}

	return resp, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("unable to load configuration, %v", err)
	}
	logger := cfg.Logger()

	h := &deliveryHandler{
		deliverer: webhooks.NewHTTPDeliverer(cfg.WebhookTimeout, logger),
		logger:    logger,
	}
	lambda.Start(h.HandleRequest)
}
