package subscription

import (
	"context"

	"github.com/google/uuid"
)

// Store defines subscription persistence. Implementations must return
// ErrSubscriptionNotFound (possibly joined) when no record matches.
type Store interface {
	// Get retrieves a subscription by its ID.
	Get(ctx context.Context, id uuid.UUID) (*Subscription, error)

	// GetUserActiveSubscription resolves the user's active subscription.
	// When several active rows exist the most recently updated one wins.
	// Returns ErrSubscriptionNotFound when the user has none: callers
	// treat that as the free tier, not a failure.
	GetUserActiveSubscription(ctx context.Context, userID uuid.UUID) (*Subscription, error)

	// Save creates or updates a subscription keyed by ID.
	Save(ctx context.Context, sub *Subscription) error
}
