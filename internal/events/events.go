// Package events publishes ledger events for downstream consumers.
package events

import (
	"context"
	"time"
)

// TransactionCompleted is emitted after a ledger operation commits.
type TransactionCompleted struct {
	UserID      int32     `json:"user_id"`
	AccountID   int32     `json:"account_id"`
	Type        string    `json:"type"`
	Amount      string    `json:"amount"`
	Description string    `json:"description"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Publisher publishes committed ledger events.
type Publisher interface {
	Publish(ctx context.Context, event TransactionCompleted) error
}

// NoopPublisher discards events. Used when no brokers are configured.
type NoopPublisher struct{}

// Publish implements Publisher.
func (NoopPublisher) Publish(ctx context.Context, event TransactionCompleted) error {
	return nil
}
