package testutil

import (
	"context"
	"sync"

	"github.com/digiserve/digiserve/internal/notification"
	"github.com/digiserve/digiserve/internal/types"
)

// InMemoryNotifier implements notification.Publisher and records every
// published event for assertions
type InMemoryNotifier struct {
	mu     sync.Mutex
	events []*types.NotificationEvent
}

// NewInMemoryNotifier creates a new recording notifier
func NewInMemoryNotifier() *InMemoryNotifier {
	return &InMemoryNotifier{}
}

var _ notification.Publisher = (*InMemoryNotifier)(nil)

// Publish records the event
func (n *InMemoryNotifier) Publish(ctx context.Context, event *types.NotificationEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return nil
}

// Close is a no-op
func (n *InMemoryNotifier) Close() error {
	return nil
}

// Events returns a copy of the recorded events
func (n *InMemoryNotifier) Events() []*types.NotificationEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]*types.NotificationEvent, len(n.events))
	copy(out, n.events)
	return out
}

// EventsNamed returns the recorded events with the given name
func (n *InMemoryNotifier) EventsNamed(name string) []*types.NotificationEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []*types.NotificationEvent
	for _, e := range n.events {
		if e.EventName == name {
			out = append(out, e)
		}
	}
	return out
}

// Clear drops all recorded events
func (n *InMemoryNotifier) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = nil
}
