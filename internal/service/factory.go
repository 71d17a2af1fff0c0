package service

import (
	"context"
	"encoding/json"

	"github.com/digiserve/digiserve/internal/cache"
	"github.com/digiserve/digiserve/internal/config"
	"github.com/digiserve/digiserve/internal/domain/account"
	"github.com/digiserve/digiserve/internal/domain/broadcast"
	"github.com/digiserve/digiserve/internal/domain/catalog"
	"github.com/digiserve/digiserve/internal/domain/payment"
	"github.com/digiserve/digiserve/internal/logger"
	"github.com/digiserve/digiserve/internal/notification"
	"github.com/digiserve/digiserve/internal/types"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration

	// Repositories
	PaymentRepo   payment.Repository
	AccountRepo   account.Repository
	CatalogRepo   catalog.Repository
	BroadcastRepo broadcast.Repository

	// Publishers
	Notifier notification.Publisher

	Cache cache.Cache
}

// NewServiceParams assembles the common service dependencies
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	paymentRepo payment.Repository,
	accountRepo account.Repository,
	catalogRepo catalog.Repository,
	broadcastRepo broadcast.Repository,
	notifier notification.Publisher,
	cache cache.Cache,
) ServiceParams {
	return ServiceParams{
		Logger:        logger,
		Config:        config,
		PaymentRepo:   paymentRepo,
		AccountRepo:   accountRepo,
		CatalogRepo:   catalogRepo,
		BroadcastRepo: broadcastRepo,
		Notifier:      notifier,
		Cache:         cache,
	}
}

// notify publishes a fire-and-forget status-change notification. Publish
// failures are logged by the publisher and never fail the triggering
// operation.
func (p ServiceParams) notify(ctx context.Context, eventName, accountID string, payload any) {
	if p.Notifier == nil {
		return
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		p.Logger.Errorw("failed to marshal notification payload",
			"error", err,
			"event_name", eventName,
			"account_id", accountID,
		)
		return
	}

	_ = p.Notifier.Publish(ctx, &types.NotificationEvent{
		EventName: eventName,
		AccountID: accountID,
		Payload:   raw,
	})
}
