package types

import (
	"context"
	"net/http"
	"time"

	"github.com/puzpuzpuz/xsync/v4"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/daolens/daolens/pkg/db/metrics"
	"github.com/daolens/daolens/pkg/db/registry"
	"github.com/daolens/daolens/pkg/redis"
	"github.com/daolens/daolens/pkg/series"
)

// DaoHandle bundles everything the controllers need for one DAO: its
// registry record, its metrics store, and the two series services built on
// top of that store.
type DaoHandle struct {
	Dao        Dao
	Store      *metrics.DB
	Delegation *series.DelegationService
	Treasury   *series.TreasuryService
}

// Dao is the registry record fields the query service serves back.
type Dao struct {
	Key           string `json:"dao_key"`
	Name          string `json:"name"`
	TokenSymbol   string `json:"token_symbol"`
	TokenDecimals uint8  `json:"token_decimals"`
}

type App struct {
	RegistryDB *registry.DB
	Daos       *xsync.Map[string, *DaoHandle]
	// Cache is the optional Redis response cache; nil when disabled.
	Cache *redis.Client
	Clock series.Clock
	Cron  *cron.Cron
	// Zap Logger
	Logger *zap.Logger
	// Server represents the HTTP server instance used to handle incoming client requests and manage HTTP routes.
	Server *http.Server
}

// RefreshDaos reloads the DAO registry and rebuilds the handle map. All DAO
// stores share the registry's connection pool.
func (a *App) RefreshDaos(ctx context.Context) error {
	daos, err := a.RegistryDB.ListDaos(ctx)
	if err != nil {
		return err
	}

	fresh := xsync.NewMap[string, *DaoHandle]()
	for _, d := range daos {
		store := metrics.NewWithSharedClient(a.RegistryDB.Client, d.DaoKey)
		fresh.Store(d.DaoKey, &DaoHandle{
			Dao: Dao{
				Key:           d.DaoKey,
				Name:          d.Name,
				TokenSymbol:   d.TokenSymbol,
				TokenDecimals: d.TokenDecimals,
			},
			Store:      store,
			Delegation: series.NewDelegationService(store, a.Clock, a.Logger),
			Treasury:   series.NewTreasuryService(store, store, a.Clock, a.Logger),
		})
	}

	// Replace the entire map with the fresh one
	a.Daos = fresh
	return nil
}

// LoadDao attempts to load a DAO handle, and if not found, refreshes the
// registry map and tries again before failing.
func (a *App) LoadDao(ctx context.Context, daoKey string) (*DaoHandle, bool) {
	handle, ok := a.Daos.Load(daoKey)
	if ok {
		return handle, true
	}

	// DAO not found - refresh from the registry in case it was recently added
	a.Logger.Debug("DAO not found in cache, refreshing from registry", zap.String("dao", daoKey))

	if err := a.RefreshDaos(ctx); err != nil {
		a.Logger.Error("Failed to refresh DAO registry", zap.Error(err))
		return nil, false
	}

	return a.Daos.Load(daoKey)
}

// Start starts the application.
func (a *App) Start(ctx context.Context) {
	if a.Cron != nil {
		a.Cron.Start()
	}

	go func() { _ = a.Server.ListenAndServe() }()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if a.Cron != nil {
		<-a.Cron.Stop().Done()
	}

	if a.Cache != nil {
		if err := a.Cache.Close(); err != nil {
			a.Logger.Error("Failed to close Redis connection", zap.Error(err))
		}
	}

	if err := a.RegistryDB.Close(); err != nil {
		a.Logger.Error("Failed to close database connection", zap.Error(err))
	}

	_ = a.Server.Shutdown(shutdownCtx)
	time.Sleep(200 * time.Millisecond)
	a.Logger.Info("さようなら!")
}
