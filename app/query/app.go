package query

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/daolens/daolens/app/query/types"
	"github.com/daolens/daolens/pkg/db/registry"
	"github.com/daolens/daolens/pkg/logging"
	"github.com/daolens/daolens/pkg/redis"
	"github.com/daolens/daolens/pkg/series"
	"github.com/daolens/daolens/pkg/utils"
)

// Initialize initializes the application.
func Initialize(ctx context.Context) *types.App {
	logger, err := logging.New()
	if err != nil {
		// nothing else to do here, we'll just log to stderr
		panic(err)
	}

	registryDb, registryErr := registry.New(ctx, logger)
	if registryErr != nil {
		logger.Fatal("Unable to initialize registry database", zap.Error(registryErr))
	}

	app := &types.App{
		RegistryDB: registryDb,
		Clock:      series.SystemClock{},
		Logger:     logger,
	}

	if err := app.RefreshDaos(ctx); err != nil {
		logger.Fatal("Unable to load DAO registry", zap.Error(err))
	}

	// Initialize Redis client for series response caching (optional)
	if utils.Env("REDIS_ENABLED", "false") == "true" {
		cacheClient, cacheErr := redis.NewClient(ctx, logger)
		if cacheErr != nil {
			logger.Warn("Failed to initialize Redis client - series response caching will be disabled",
				zap.Error(cacheErr))
		} else {
			app.Cache = cacheClient
			logger.Info("Redis client initialized for series response caching")
		}
	} else {
		logger.Info("Redis disabled - series responses will not be cached")
	}

	// Periodic registry refresh, so newly indexed DAOs appear without a restart.
	cronSpec := utils.Env("REGISTRY_REFRESH_CRON", "0 */5 * * * *")
	app.Cron = cron.New(cron.WithSeconds(), cron.WithChain(cron.Recover(cron.DefaultLogger)))
	if _, cronErr := app.Cron.AddFunc(cronSpec, func() {
		// keep each run bounded
		rctx, cancel := context.WithTimeout(ctx, 25*time.Second)
		defer cancel()
		if err := app.RefreshDaos(rctx); err != nil {
			logger.Warn("Registry refresh failed", zap.Error(err))
		}
	}); cronErr != nil {
		logger.Fatal("Unable to schedule registry refresh", zap.Error(cronErr))
	}

	return app
}
