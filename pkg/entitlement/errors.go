package entitlement

import "errors"

var (
	// ErrFeatureNotFound indicates an unknown feature ID. Inside the
	// module this is a programming error; it is user-facing only when the
	// ID originates from dynamic input.
	ErrFeatureNotFound = errors.New("feature not found")

	// ErrSubscriptionLookupFailed wraps failures of the injected
	// subscription lookup. The underlying error is joined, never swallowed.
	ErrSubscriptionLookupFailed = errors.New("failed to resolve subscription")

	// ErrUsageLookupFailed wraps failures of the injected usage provider.
	ErrUsageLookupFailed = errors.New("failed to fetch usage snapshot")

	// ErrInvalidTier indicates a tier name outside the known set.
	ErrInvalidTier = errors.New("invalid subscription tier")
)
