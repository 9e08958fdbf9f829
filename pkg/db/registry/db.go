package registry

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/daolens/daolens/pkg/db/clickhouse"
	"github.com/daolens/daolens/pkg/db/models"
	"github.com/daolens/daolens/pkg/utils"
)

// DB is the global registry database: the list of tracked DAOs that the
// query service serves. Each listed DAO has its own metrics database.
type DB struct {
	clickhouse.Client
	Name string
}

// New connects to the registry database and ensures its tables exist.
func New(ctx context.Context, logger *zap.Logger) (*DB, error) {
	dbName := clickhouse.SanitizeName("daolens_registry")

	client, err := clickhouse.New(ctx, logger.With(zap.String("db", dbName)), dbName)
	if err != nil {
		return nil, err
	}

	db := &DB{Client: client, Name: dbName}

	if err := db.InitializeDB(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// InitializeDB ensures the registry database and the daos table exist.
func (db *DB) InitializeDB(ctx context.Context) error {
	if err := db.CreateDbIfNotExists(ctx, db.Name); err != nil {
		return fmt.Errorf("failed to create database %s: %w", db.Name, err)
	}
	return db.initDaos(ctx)
}

// initDaos creates the daos table.
// ReplacingMergeTree(updated_at) ORDER BY dao_key: inserts act as upserts.
func (db *DB) initDaos(ctx context.Context) error {
	schemaSQL := models.ColumnsToSchemaSQL(models.DaoColumns)

	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS "%s"."%s" (
			%s
		) ENGINE = ReplacingMergeTree(updated_at)
		ORDER BY (dao_key)
	`, db.Name, models.DaosTableName, schemaSQL)
	return db.Exec(ctx, query)
}

// ListDaos returns all registered DAOs that are not paused.
func (db *DB) ListDaos(ctx context.Context) ([]models.Dao, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM "%s"."%s" FINAL
		WHERE paused = 0
		ORDER BY dao_key
	`, models.ColumnsToNameList(models.DaoColumns), db.Name, models.DaosTableName)

	var daos []models.Dao
	if err := db.Select(ctx, &daos, query); err != nil {
		return nil, fmt.Errorf("query daos failed: %w", err)
	}
	return daos, nil
}

// GetDao returns a single DAO by key, or nil when it is not registered.
func (db *DB) GetDao(ctx context.Context, daoKey string) (*models.Dao, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM "%s"."%s" FINAL
		WHERE dao_key = ?
		LIMIT 1
	`, models.ColumnsToNameList(models.DaoColumns), db.Name, models.DaosTableName)

	var daos []models.Dao
	if err := db.Select(ctx, &daos, query, daoKey); err != nil {
		return nil, fmt.Errorf("query dao failed: %w", err)
	}
	if len(daos) == 0 {
		return nil, nil
	}
	return &daos[0], nil
}

// SetDaoPaused pauses or resumes a DAO. Paused DAOs stay registered but
// drop out of ListDaos, so the query service stops serving them on the
// next registry refresh.
func (db *DB) SetDaoPaused(ctx context.Context, daoKey string, paused bool) error {
	d, err := db.GetDao(ctx, daoKey)
	if err != nil {
		return err
	}
	if d == nil {
		return fmt.Errorf("dao %s is not registered", daoKey)
	}
	d.Paused = utils.BoolToUInt8(paused)
	return db.UpsertDao(ctx, d)
}

// UpsertDao creates or updates a DAO record. ReplacingMergeTree treats the
// same dao_key as an upsert by latest updated_at.
func (db *DB) UpsertDao(ctx context.Context, d *models.Dao) error {
	now := time.Now()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now
	if d.TokenDecimals == 0 {
		d.TokenDecimals = 18
	}

	query := fmt.Sprintf(
		`INSERT INTO "%s"."%s" (%s) VALUES`,
		db.Name, models.DaosTableName, models.ColumnsToNameList(models.DaoColumns),
	)
	batch, err := db.PrepareBatch(ctx, query)
	if err != nil {
		return err
	}
	if err := batch.Append(
		d.DaoKey,
		d.Name,
		d.TokenSymbol,
		d.TokenDecimals,
		d.Paused,
		d.CreatedAt,
		d.UpdatedAt,
	); err != nil {
		_ = batch.Abort()
		return err
	}
	return batch.Send()
}
