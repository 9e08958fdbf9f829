package metrics

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/daolens/daolens/pkg/db/models"
	"github.com/daolens/daolens/pkg/series"
)

// initTokenPrices creates the token_prices table.
// ReplacingMergeTree(updated_at) ORDER BY day: one logical row per day.
func (db *DB) initTokenPrices(ctx context.Context) error {
	schemaSQL := models.ColumnsToSchemaSQL(models.TokenPriceColumns)

	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS "%s"."%s" (
			%s
		) ENGINE = ReplacingMergeTree(updated_at)
		ORDER BY day
	`, db.Name, models.TokenPricesTableName, schemaSQL)
	if err := db.Exec(ctx, query); err != nil {
		return fmt.Errorf("create %s: %w", models.TokenPricesTableName, err)
	}

	return nil
}

// InsertTokenPrices batch-inserts daily price rows.
func (db *DB) InsertTokenPrices(ctx context.Context, prices []*models.TokenPrice) error {
	if len(prices) == 0 {
		return nil
	}

	query := fmt.Sprintf(
		`INSERT INTO "%s"."%s" (%s) VALUES`,
		db.Name,
		models.TokenPricesTableName,
		models.ColumnsToNameList(models.TokenPriceColumns),
	)

	batch, err := db.PrepareBatch(ctx, query)
	if err != nil {
		return err
	}
	defer func(batch driver.Batch) {
		_ = batch.Abort()
	}(batch)

	for _, p := range prices {
		if err := batch.Append(p.Day, p.PriceUSD, p.UpdatedAt); err != nil {
			return err
		}
	}

	return batch.Send()
}

// GetPricesRange returns daily price observations within [start, end],
// ascending by day.
func (db *DB) GetPricesRange(ctx context.Context, start, end series.Day) ([]series.PricePoint, error) {
	query := fmt.Sprintf(`
		SELECT day, price_usd, updated_at
		FROM "%s"."%s" FINAL
		WHERE day >= ? AND day <= ?
		ORDER BY day ASC
	`, db.Name, models.TokenPricesTableName)

	var rows []models.TokenPrice
	if err := db.Select(ctx, &rows, query, start.Time(), end.Time()); err != nil {
		return nil, fmt.Errorf("query token prices range failed: %w", err)
	}

	points := make([]series.PricePoint, len(rows))
	for i, r := range rows {
		points[i] = series.PricePoint{
			Day:   series.DayOf(r.Day),
			Price: r.PriceUSD,
		}
	}
	return points, nil
}

// GetLastPriceBefore returns the most recent price at or before day, or nil
// when no price has ever been recorded there.
func (db *DB) GetLastPriceBefore(ctx context.Context, day series.Day) (*series.PricePoint, error) {
	query := fmt.Sprintf(`
		SELECT day, price_usd, updated_at
		FROM "%s"."%s" FINAL
		WHERE day <= ?
		ORDER BY day DESC
		LIMIT 1
	`, db.Name, models.TokenPricesTableName)

	var rows []models.TokenPrice
	if err := db.Select(ctx, &rows, query, day.Time()); err != nil {
		return nil, fmt.Errorf("query last token price failed: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	return &series.PricePoint{
		Day:   series.DayOf(rows[0].Day),
		Price: rows[0].PriceUSD,
	}, nil
}
