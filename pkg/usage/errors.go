package usage

import "errors"

var (
	// ErrFailedToCountUsage wraps storage-level counting failures.
	ErrFailedToCountUsage = errors.New("failed to count feature usage")

	// ErrFailedToCacheUsage wraps cache write failures. Read failures are
	// not surfaced; the cached provider falls back to its source.
	ErrFailedToCacheUsage = errors.New("failed to cache usage snapshot")
)
