package subscription

import (
	"maps"
	"time"

	"github.com/google/uuid"
)

// Subscription represents a user's paid plan. Records are created by the
// external billing flow on checkout and read-only from the entitlement
// engine's perspective. At most one active subscription per user is assumed,
// not enforced here.
type Subscription struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"userId"`
	Type   PlanType  `json:"subscriptionType"`

	// Overrides are per-subscription boolean feature flags that take
	// precedence over tier rank for override-controlled features
	// (advertisingAccess, dataIntelligence, advancedAnalytics,
	// prioritySupport, customBranding, apiAccess).
	Overrides map[string]bool `json:"features,omitempty"`

	Status       Status       `json:"status"`
	BillingCycle BillingCycle `json:"billingCycle"`
	Price        Money        `json:"price"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
	CancelledAt  *time.Time   `json:"cancelledAt,omitempty"` // set when cancelled
}

// IsActive reports whether the subscription currently grants its plan.
func (s *Subscription) IsActive() bool {
	return s.Status == StatusActive
}

// IsCancelled reports whether the subscription was cancelled.
func (s *Subscription) IsCancelled() bool {
	return s.Status == StatusCancelled
}

// IsExpired reports whether the subscription lapsed without cancellation.
func (s *Subscription) IsExpired() bool {
	return s.Status == StatusExpired
}

// Override returns the explicit override value for a feature flag key and
// whether one is set.
func (s *Subscription) Override(key string) (bool, bool) {
	if s == nil || s.Overrides == nil {
		return false, false
	}
	v, ok := s.Overrides[key]
	return v, ok
}

// Clone returns a deep copy so stored records cannot be mutated through
// returned pointers.
func (s *Subscription) Clone() *Subscription {
	if s == nil {
		return nil
	}
	out := *s
	out.Overrides = maps.Clone(s.Overrides)
	if s.CancelledAt != nil {
		t := *s.CancelledAt
		out.CancelledAt = &t
	}
	return &out
}

// LatestActive selects the winning record when multiple rows exist for a
// user: the most recently updated active one. Returns nil when none is
// active, which callers treat as the free tier.
func LatestActive(subs []*Subscription) *Subscription {
	var winner *Subscription
	for _, s := range subs {
		if s == nil || !s.IsActive() {
			continue
		}
		if winner == nil || s.UpdatedAt.After(winner.UpdatedAt) {
			winner = s
		}
	}
	return winner
}
