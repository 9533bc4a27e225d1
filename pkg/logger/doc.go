// Package logger provides a configured slog.Logger factory with
// per-environment defaults and standard attribute helpers.
//
// Usage:
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "entitlementd"),
//	)
//	log.Info("service started", slog.String("addr", addr))
//
// The attribute helpers keep field names consistent across packages:
//
//	log.Error("subscription lookup failed",
//		logger.UserID(userID),
//		logger.Error(err),
//	)
package logger
