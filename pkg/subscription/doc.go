// Package subscription holds user subscription records and their
// persistence. Records are created by the external billing flow; the
// entitlement engine only reads them to resolve a user's tier and
// per-subscription feature overrides.
//
// Each user is assumed to have at most one active subscription. The store
// does not enforce this; GetUserActiveSubscription resolves duplicates by
// picking the most recently updated active row.
//
// Basic usage:
//
//	store := subscription.NewPGStore(pool)
//
//	sub, err := store.GetUserActiveSubscription(ctx, userID)
//	if errors.Is(err, subscription.ErrSubscriptionNotFound) {
//		// user is on the free tier
//	}
//
// NewMemStore provides the same behavior in memory for tests and local
// development.
package subscription
