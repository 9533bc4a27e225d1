package entitlement

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lv-asc/vangarments/pkg/httpserver"
)

// RouterOptions configures optional pieces of the entitlement router.
type RouterOptions struct {
	// HealthChecks wires dependency probes into GET /healthz. With no
	// checks the endpoint acts as a liveness probe.
	HealthChecks []httpserver.Check
}

// Router creates the entitlement module router.
//
// Example:
//
//	evaluator := entitlement.NewEvaluator(subStore, usageProvider)
//	generator := upgrade.NewGenerator(subStore, promptStore, nil)
//
//	r := chi.NewRouter()
//	r.Mount("/", entitlementmodule.Router(
//		entitlementmodule.NewService(evaluator, generator, log),
//		entitlementmodule.RouterOptions{},
//	))
func Router(svc *Service, opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(svc.log))

	r.Get("/features", svc.handleCatalog)

	r.Route("/users/{userID}", func(u chi.Router) {
		u.Get("/features", svc.handleUserFeatures)
		u.Get("/features/{featureID}/access", svc.handleFeatureAccess)
		u.Get("/limits", svc.handleUsageLimits)

		u.Post("/prompts/usage", svc.handleUsagePrompt)
		u.Post("/prompts/discovery/{featureID}", svc.handleDiscoveryPrompt)
		u.Post("/upgrade-flow", svc.handleUpgradeFlow)
	})

	r.Get("/healthz", httpserver.HealthCheckHandler(svc.log, opts.HealthChecks...))

	return r
}

// requestLogger logs each request with method, path, status, and duration.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.InfoContext(r.Context(), "request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
