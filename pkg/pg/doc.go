// Package pg provides PostgreSQL connectivity for the entitlement service:
// pooled connections with retry, goose schema migrations routed through the
// application logger, and error helpers shared by the pgx-backed stores.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
//		return err
//	}
package pg
