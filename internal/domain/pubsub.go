package domain

import (
	"context"
)

// Notifier publishes a NotificationEvent to the configured topic. A single call
// is a single delivery attempt.
type Notifier interface {
	Notify(ctx context.Context, event NotificationEvent) error
}
