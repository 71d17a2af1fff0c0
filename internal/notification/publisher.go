package notification

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/digiserve/digiserve/internal/config"
	"github.com/digiserve/digiserve/internal/logger"
	"github.com/digiserve/digiserve/internal/pubsub"
	"github.com/digiserve/digiserve/internal/types"
)

// Publisher produces status-change notification events. Delivery is
// fire-and-forget: a publish failure is logged and never fails the
// triggering operation.
type Publisher interface {
	Publish(ctx context.Context, event *types.NotificationEvent) error
	Close() error
}

type publisher struct {
	pubSub pubsub.PubSub
	config *config.NotificationConfig
	logger *logger.Logger
}

// NewPublisher creates a new notification publisher
func NewPublisher(
	pubSub pubsub.PubSub,
	cfg *config.Configuration,
	logger *logger.Logger,
) Publisher {
	return &publisher{
		pubSub: pubSub,
		config: &cfg.Notification,
		logger: logger,
	}
}

func (p *publisher) Publish(ctx context.Context, event *types.NotificationEvent) error {
	if event.ID == "" {
		event.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_EVENT)
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := message.NewMessage(event.ID, payload)
	msg.Metadata.Set("account_id", event.AccountID)
	msg.Metadata.Set("event_name", event.EventName)

	if err := p.pubSub.Publish(ctx, p.config.Topic, msg); err != nil {
		p.logger.Errorw("failed to publish notification event",
			"error", err,
			"event_id", event.ID,
			"event_name", event.EventName,
			"account_id", event.AccountID,
		)
		return err
	}

	p.logger.Debugw("published notification event",
		"event_id", event.ID,
		"event_name", event.EventName,
		"account_id", event.AccountID,
	)

	return nil
}

// Close closes the publisher
func (p *publisher) Close() error {
	return p.pubSub.Close()
}
