package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/digiserve/digiserve/internal/config"
	ierr "github.com/digiserve/digiserve/internal/errors"
	"github.com/digiserve/digiserve/internal/logger"
	"github.com/digiserve/digiserve/internal/pubsub"
	"github.com/digiserve/digiserve/internal/types"
)

// Dispatcher consumes notification events from the bus and delivers them
// to the configured downstream endpoint. Events are outside the core's
// consistency boundary: a delivery failure is retried, then dropped.
type Dispatcher struct {
	pubSub pubsub.PubSub
	config *config.NotificationConfig
	client *retryablehttp.Client
	logger *logger.Logger
}

// NewDispatcher creates a new notification dispatcher
func NewDispatcher(
	pubSub pubsub.PubSub,
	cfg *config.Configuration,
	logger *logger.Logger,
) *Dispatcher {
	client := retryablehttp.NewClient()
	client.RetryMax = cfg.Notification.MaxRetries
	client.Logger = nil

	return &Dispatcher{
		pubSub: pubSub,
		config: &cfg.Notification,
		client: client,
		logger: logger,
	}
}

// Start subscribes to the notification topic and processes events until
// the context is cancelled.
func (d *Dispatcher) Start(ctx context.Context) error {
	messages, err := d.pubSub.Subscribe(ctx, d.config.Topic)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to subscribe to notification topic").
			Mark(ierr.ErrSystem)
	}

	go func() {
		for msg := range messages {
			d.processMessage(ctx, msg)
			msg.Ack()
		}
	}()

	return nil
}

func (d *Dispatcher) processMessage(ctx context.Context, msg *message.Message) {
	var event types.NotificationEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		d.logger.Errorw("failed to unmarshal notification event",
			"error", err,
			"message_uuid", msg.UUID,
		)
		// Don't retry on unmarshal errors
		return
	}

	if d.config.WebhookURL == "" {
		d.logger.Infow("notification event",
			"event_id", event.ID,
			"event_name", event.EventName,
			"account_id", event.AccountID,
		)
		return
	}

	operation := func() error {
		return d.deliver(ctx, &event)
	}

	if err := backoff.Retry(operation, backoff.WithContext(backoff.NewExponentialBackOff(), ctx)); err != nil {
		d.logger.Errorw("dropping undeliverable notification event",
			"error", err,
			"event_id", event.ID,
			"event_name", event.EventName,
		)
	}
}

func (d *Dispatcher) deliver(ctx context.Context, event *types.NotificationEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return backoff.Permanent(err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, d.config.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return backoff.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("notification endpoint returned status %d", resp.StatusCode)
	}

	return nil
}

// Close closes the dispatcher's subscription
func (d *Dispatcher) Close() error {
	return d.pubSub.Close()
}
