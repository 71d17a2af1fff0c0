package types

import (
	"encoding/json"
	"time"
)

// NotificationEvent represents a status-change notification to be delivered
// outside the core's consistency boundary (email, message, webhook).
type NotificationEvent struct {
	ID        string          `json:"id"`
	EventName string          `json:"event_name"`
	AccountID string          `json:"account_id"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// Payment event names
const (
	NotificationEventPaymentCreated   = "payment.created"
	NotificationEventPaymentWindowSet = "payment.window.set"
	NotificationEventPaymentCompleted = "payment.completed"
)

// Tranche event names
const (
	NotificationEventTrancheSubmitted = "tranche.submitted"
	NotificationEventTrancheApproved  = "tranche.approved"
	NotificationEventTrancheRejected  = "tranche.rejected"
	NotificationEventTranchePaid      = "tranche.paid"
)

// Account event names
const (
	NotificationEventAccountFlagged   = "account.flagged"
	NotificationEventAccountUnflagged = "account.unflagged"
)
