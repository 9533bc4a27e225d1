// Package httpserver provides an http.Server wrapper with graceful shutdown,
// OS signal handling, and health check handlers for liveness and readiness
// probes.
//
// Usage:
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// Readiness checks wire external dependencies into the health endpoint:
//
//	mux.Get("/healthz", httpserver.HealthCheckHandler(log,
//		httpserver.Check{Name: "postgres", Probe: pg.Healthcheck(pool)},
//		httpserver.Check{Name: "redis", Probe: redis.Healthcheck(client)},
//	))
package httpserver
