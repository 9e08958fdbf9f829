package metrics

import (
	"context"
	"fmt"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/daolens/daolens/pkg/db/models"
	"github.com/daolens/daolens/pkg/series"
)

// initMetricPoints creates the metric_points table.
// ReplacingMergeTree(updated_at) ORDER BY (kind, day): one logical row per
// (kind, day), optimized for per-kind range scans.
func (db *DB) initMetricPoints(ctx context.Context) error {
	schemaSQL := models.ColumnsToSchemaSQL(models.MetricPointColumns)

	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS "%s"."%s" (
			%s
		) ENGINE = ReplacingMergeTree(updated_at)
		ORDER BY (kind, day)
		SETTINGS index_granularity = 8192
	`, db.Name, models.MetricPointsTableName, schemaSQL)
	if err := db.Exec(ctx, query); err != nil {
		return fmt.Errorf("create %s: %w", models.MetricPointsTableName, err)
	}

	return nil
}

// InsertMetricPoints batch-inserts change-point rows. The ingestion
// pipeline writes only on value change; the query path never calls this.
func (db *DB) InsertMetricPoints(ctx context.Context, points []*models.MetricPoint) error {
	if len(points) == 0 {
		return nil
	}

	query := fmt.Sprintf(
		`INSERT INTO "%s"."%s" (%s) VALUES`,
		db.Name,
		models.MetricPointsTableName,
		models.ColumnsToNameList(models.MetricPointColumns),
	)

	batch, err := db.PrepareBatch(ctx, query)
	if err != nil {
		return err
	}
	defer func(batch driver.Batch) {
		_ = batch.Abort()
	}(batch)

	for _, p := range points {
		err = batch.Append(
			p.Kind,
			p.Day,
			p.Value,
			p.UpdatedAt,
		)
		if err != nil {
			return err
		}
	}

	return batch.Send()
}

// GetRange returns change-points for the given kinds within [start, end],
// ordered by day. Nil bounds are open; limit <= 0 means no row cap. FINAL
// ensures deduplicated reads from the ReplacingMergeTree.
func (db *DB) GetRange(ctx context.Context, kinds []series.MetricKind, start, end *series.Day, order series.Order, limit int) ([]series.MetricPoint, error) {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `
		SELECT kind, day, value, updated_at
		FROM "%s"."%s" FINAL
		WHERE kind IN (?)
	`, db.Name, models.MetricPointsTableName)
	args := []any{names}

	if start != nil {
		sb.WriteString(" AND day >= ?")
		args = append(args, start.Time())
	}
	if end != nil {
		sb.WriteString(" AND day <= ?")
		args = append(args, end.Time())
	}

	direction := "ASC"
	if order == series.OrderDesc {
		direction = "DESC"
	}
	fmt.Fprintf(&sb, " ORDER BY day %s, kind", direction)

	if limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, limit)
	}

	var rows []models.MetricPoint
	if err := db.Select(ctx, &rows, sb.String(), args...); err != nil {
		return nil, fmt.Errorf("query metric points range failed: %w", err)
	}

	points := make([]series.MetricPoint, len(rows))
	for i, r := range rows {
		points[i] = series.MetricPoint{
			Day:   series.DayOf(r.Day),
			Kind:  series.MetricKind(r.Kind),
			Value: r.Value,
		}
	}
	return points, nil
}

// GetLastBefore returns the most recent change-point for kind at or before
// day, or nil when the series has no history there.
func (db *DB) GetLastBefore(ctx context.Context, kind series.MetricKind, day series.Day) (*series.MetricPoint, error) {
	query := fmt.Sprintf(`
		SELECT kind, day, value, updated_at
		FROM "%s"."%s" FINAL
		WHERE kind = ? AND day <= ?
		ORDER BY day DESC
		LIMIT 1
	`, db.Name, models.MetricPointsTableName)

	var rows []models.MetricPoint
	if err := db.Select(ctx, &rows, query, string(kind), day.Time()); err != nil {
		return nil, fmt.Errorf("query last metric point failed: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	return &series.MetricPoint{
		Day:   series.DayOf(rows[0].Day),
		Kind:  series.MetricKind(rows[0].Kind),
		Value: rows[0].Value,
	}, nil
}
