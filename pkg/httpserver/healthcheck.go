package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/lv-asc/vangarments/pkg/logger"
)

// Check is a named readiness probe for an external dependency.
type Check struct {
	Name  string
	Probe func(context.Context) error
}

// HealthCheckHandler returns an HTTP handler usable for both liveness and
// readiness probes.
//
//   - Liveness: with no checks the handler returns 200 OK with body "ALIVE".
//   - Readiness: each check runs in order; if all succeed the handler
//     returns 200 OK with body "READY", otherwise 500 with "NOT_READY".
func HealthCheckHandler(log *slog.Logger, checks ...Check) http.HandlerFunc {
	if log == nil {
		log = newNoopLogger()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if len(checks) == 0 {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ALIVE"))
			return
		}

		for _, c := range checks {
			if err := c.Probe(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "readiness check failed",
					slog.String("dependency", c.Name),
					logger.Error(err),
				)
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("NOT_READY"))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	}
}
