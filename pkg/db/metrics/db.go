package metrics

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"go.uber.org/zap"

	"github.com/daolens/daolens/pkg/db/clickhouse"
)

// DB is the per-DAO metrics database: sparse change-point rows for the
// DAO's governance metrics plus its daily token prices. It implements
// series.MetricStore and series.PriceStore.
type DB struct {
	clickhouse.Client
	Name   string
	DaoKey string
}

// New creates and initializes a DAO-specific ClickHouse database instance
// with its own connection pool.
func New(ctx context.Context, logger *zap.Logger, daoKey string) (*DB, error) {
	dbName := clickhouse.SanitizeName(fmt.Sprintf("dao_%s", daoKey))

	client, err := clickhouse.New(ctx, logger.With(
		zap.String("db", dbName),
		zap.String("dao", daoKey),
	), dbName)
	if err != nil {
		return nil, err
	}

	daoDB := &DB{
		Client: client,
		Name:   dbName,
		DaoKey: daoKey,
	}

	if err := daoDB.InitializeDB(ctx); err != nil {
		return nil, err
	}

	return daoDB, nil
}

// NewWithSharedClient creates a DAO DB that reuses an existing ClickHouse
// connection pool. The query service accesses many DAO databases through
// one pool, so per-DAO pools would be wasteful. Tables must already exist;
// this constructor does not call InitializeDB.
func NewWithSharedClient(client clickhouse.Client, daoKey string) *DB {
	return &DB{
		Client: client,
		Name:   clickhouse.SanitizeName(fmt.Sprintf("dao_%s", daoKey)),
		DaoKey: daoKey,
	}
}

// InitializeDB ensures the DAO's database and tables exist.
func (db *DB) InitializeDB(ctx context.Context) error {
	if err := db.CreateDbIfNotExists(ctx, db.Name); err != nil {
		return fmt.Errorf("failed to create database %s: %w", db.Name, err)
	}

	if err := db.initMetricPoints(ctx); err != nil {
		return err
	}
	return db.initTokenPrices(ctx)
}

func (db *DB) GetConnection() driver.Conn {
	return db.Db
}

// Close terminates the underlying ClickHouse connection.
func (db *DB) Close() error {
	return db.Db.Close()
}
