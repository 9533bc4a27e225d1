package upgrade

import "errors"

var (
	// ErrFeatureNotFound indicates an unknown feature name in a
	// user-triggered prompt request. Unlike the evaluator, this is a
	// user-facing error here: prompts are driven by dynamic input.
	ErrFeatureNotFound = errors.New("Feature not found")

	// ErrUnknownTier indicates an upgrade target outside the tier set.
	ErrUnknownTier = errors.New("unknown upgrade target tier")

	// ErrFailedToSavePrompt wraps prompt persistence failures.
	ErrFailedToSavePrompt = errors.New("failed to save upgrade prompt")

	// ErrFailedToQueryPrompts wraps prompt read failures.
	ErrFailedToQueryPrompts = errors.New("failed to query upgrade prompts")

	// ErrFailedToLoadPricing wraps pricing source failures. Flow
	// generation aborts entirely; no partial flow is returned.
	ErrFailedToLoadPricing = errors.New("failed to load subscription pricing")
)
