package webhooks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// SQSAPI is the subset of the SQS client used by the SQSDeliverer.
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSDeliverer enqueues prepared deliveries. A consumer POSTs them later.
type SQSDeliverer struct {
	Client   SQSAPI
	QueueURL string
}

// NewSQSDeliverer creates a new SQSDeliverer.
func NewSQSDeliverer(client SQSAPI, queueURL string) *SQSDeliverer {
	return &SQSDeliverer{
		Client:   client,
		QueueURL: queueURL,
	}
}

// Make sure we conform to the interface
var _ Deliverer = (*SQSDeliverer)(nil)

// Deliver sends the delivery to the SQS queue.
func (s *SQSDeliverer) Deliver(ctx context.Context, d *Delivery) error {
	body, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook delivery for SQS: %w", err)
	}

	_, err = s.Client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(s.QueueURL),
		MessageBody: aws.String(string(body)),
	})
	if err != nil {
		return fmt.Errorf("failed to send message to SQS: %w", err)
	}

	return nil
}

// DecodeDelivery parses a message body produced by SQSDeliverer.
func DecodeDelivery(body string) (*Delivery, error) {
	var d Delivery
	if err := json.Unmarshal([]byte(body), &d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal webhook delivery: %w", err)
	}
	return &d, nil
}
