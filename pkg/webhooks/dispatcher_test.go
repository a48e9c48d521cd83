package webhooks

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/kontist/mock-solaris-sub001/pkg/metrics"
	"github.com/kontist/mock-solaris-sub001/pkg/webhooks/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDispatcherSend(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		var got *http.Request
		var body []byte
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r
			body, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		subs := NewMemorySubscriptionStore()
		require.NoError(t, subs.SaveSubscription(ctx, &Subscription{ID: "sub-1", EventType: EventCardAuthorization, URL: server.URL}))

		d := NewDispatcher(subs, NewHTTPDeliverer(time.Second, nil), "secret", metrics.NewCollector(), nil)
		err := d.Send(ctx, EventCardAuthorization, testEntity{ID: "res-1", Amount: 10})

		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, http.MethodPost, got.Method)
		assert.Equal(t, "res-1", got.Header.Get(HeaderEntityID))
		assert.Equal(t, "sub-1", got.Header.Get(HeaderSubscriptionID))
		assert.NoError(t, NewSigner("secret", nil).Verify(body, got.Header.Get(HeaderSignature)))
	})

	t.Run("No Subscriber", func(t *testing.T) {
		deliverer := &countingDeliverer{}
		d := NewDispatcher(NewMemorySubscriptionStore(), deliverer, "secret", nil, nil)

		err := d.Send(ctx, EventBooking, map[string]string{"account_id": "acc-1"})

		assert.NoError(t, err)
		assert.Equal(t, int32(0), deliverer.calls.Load())
	})

	t.Run("Delivery Error", func(t *testing.T) {
		subs := NewMemorySubscriptionStore()
		require.NoError(t, subs.SaveSubscription(ctx, &Subscription{ID: "sub-1", EventType: EventBooking, URL: "http://example.test"}))

		d := NewDispatcher(subs, &countingDeliverer{err: errors.New("boom")}, "secret", nil, nil)
		err := d.Send(ctx, EventBooking, map[string]string{"account_id": "acc-1"})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to deliver BOOKING webhook")
	})
}

func TestHTTPDeliverer(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	h := NewHTTPDeliverer(time.Second, nil)
	d := &Delivery{ID: "d-1", URL: server.URL, Body: []byte(`{}`), Headers: map[string]string{}}

	for i := 0; i < 5; i++ {
		err := h.Deliver(context.Background(), d)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrCircuitOpen)
	}

	err := h.Deliver(context.Background(), d)
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, int32(5), hits.Load())
}

func TestSQSDeliverer(t *testing.T) {
	d := &Delivery{ID: "d-1", EventType: EventBooking, URL: "http://example.test", Body: []byte(`{"id":"d-1"}`)}

	t.Run("Success", func(t *testing.T) {
		client := new(mocks.SQSAPI)
		client.On("SendMessage", mock.Anything, mock.MatchedBy(func(in *sqs.SendMessageInput) bool {
			decoded, err := DecodeDelivery(aws.ToString(in.MessageBody))
			return err == nil && decoded.ID == "d-1" && aws.ToString(in.QueueUrl) == "queue"
		})).Return(&sqs.SendMessageOutput{}, nil)

		err := NewSQSDeliverer(client, "queue").Deliver(context.Background(), d)

		assert.NoError(t, err)
		client.AssertExpectations(t)
	})

	t.Run("Send Error", func(t *testing.T) {
		client := new(mocks.SQSAPI)
		client.On("SendMessage", mock.Anything, mock.Anything).Return(nil, errors.New("sqs down"))

		err := NewSQSDeliverer(client, "queue").Deliver(context.Background(), d)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to send message to SQS")
		client.AssertExpectations(t)
	})
}

type countingDeliverer struct {
	calls atomic.Int32
	err   error
}

func (c *countingDeliverer) Deliver(ctx context.Context, d *Delivery) error {
	c.calls.Add(1)
	return c.err
}
