package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	entmodule "github.com/lv-asc/vangarments/modules/entitlement"
	"github.com/lv-asc/vangarments/pkg/config"
	"github.com/lv-asc/vangarments/pkg/entitlement"
	"github.com/lv-asc/vangarments/pkg/httpserver"
	"github.com/lv-asc/vangarments/pkg/logger"
	"github.com/lv-asc/vangarments/pkg/pg"
	"github.com/lv-asc/vangarments/pkg/redis"
	"github.com/lv-asc/vangarments/pkg/subscription"
	"github.com/lv-asc/vangarments/pkg/upgrade"
	"github.com/lv-asc/vangarments/pkg/usage"
)

type appConfig struct {
	Environment   string        `env:"APP_ENV" envDefault:"development"`
	UsageCacheTTL time.Duration `env:"USAGE_CACHE_TTL" envDefault:"1m"`

	PG    pg.Config
	Redis redis.Config
	HTTP  httpserver.Config
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(logger.WithEnvironment(cfg.Environment, "entitlementd"))
	logger.SetAsDefault(log)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("service exited with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	pool, err := pg.Connect(ctx, cfg.PG)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, cfg.PG, log); err != nil {
		return err
	}

	redisClient, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	subStore := subscription.NewPGStore(pool)
	usageProvider := usage.NewCachedProvider(
		usage.NewPGProvider(pool),
		redisClient,
		cfg.UsageCacheTTL,
		log,
	)

	evaluator := entitlement.NewEvaluator(subStore, usageProvider)
	generator := upgrade.NewGenerator(subStore, upgrade.NewPGPromptStore(pool), nil)

	svc := entmodule.NewService(evaluator, generator, log)

	router := chi.NewRouter()
	router.Mount("/", entmodule.Router(svc, entmodule.RouterOptions{
		HealthChecks: []httpserver.Check{
			{Name: "postgres", Probe: pg.Healthcheck(pool)},
			{Name: "redis", Probe: redis.Healthcheck(redisClient)},
		},
	}))

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, router)
}
