// Package notify dispatches the order notifications that finalize a
// checkout: one email to the café, one confirmation to the customer.
package notify

import (
	"context"
	"time"

	"github.com/cherishcafe/orderflow/internal/domain"
)

// Order is the finalized order snapshot handed to a Notifier.
type Order struct {
	Details  domain.CustomerDetails
	Lines    []domain.ConsolidatedLine
	Total    int64
	PlacedAt time.Time
}

// Notifier sends both order notifications. Implementations must treat a
// partial success (first send lands, second fails) as failure; the checkout
// flow does not advance until both are through.
type Notifier interface {
	NotifyOrder(ctx context.Context, order Order) error
}
