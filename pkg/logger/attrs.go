package logger

import (
	"log/slog"

	"github.com/google/uuid"
)

// Error returns a standard attribute for error values.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String("error", err.Error())
}

// UserID returns a standard attribute for user identifiers.
func UserID(id uuid.UUID) slog.Attr {
	return slog.String("user_id", id.String())
}

// Feature returns a standard attribute for feature identifiers.
func Feature(id string) slog.Attr {
	return slog.String("feature", id)
}

// Tier returns a standard attribute for subscription tiers.
func Tier(t string) slog.Attr {
	return slog.String("tier", t)
}

// Component groups attributes under a component name.
func Component(name string, attrs ...any) slog.Attr {
	return slog.Group("component_"+name, attrs...)
}
