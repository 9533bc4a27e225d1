package subscription

import "errors"

var (
	// ErrSubscriptionNotFound indicates no record matched the query.
	// For active-subscription lookups this is the normal free-tier case.
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrInvalidSubscription indicates a record failed validation on save.
	ErrInvalidSubscription = errors.New("invalid subscription record")

	// ErrFailedToQuerySubscription wraps storage-level query failures.
	ErrFailedToQuerySubscription = errors.New("failed to query subscription")

	// ErrFailedToSaveSubscription wraps storage-level write failures.
	ErrFailedToSaveSubscription = errors.New("failed to save subscription")
)
