package models

import (
	"math/big"
	"time"
)

const MetricPointsTableName = "metric_points"

// MetricPointColumns defines the schema for the per-DAO metric_points table.
// Value is UInt256: raw token amounts carry up to 18 decimals of scaling and
// overflow UInt64. One row per (kind, day); ReplacingMergeTree(updated_at)
// keeps the latest write.
var MetricPointColumns = []ColumnDef{
	{Name: "kind", Type: "String"},
	{Name: "day", Type: "DateTime", Codec: "Delta, ZSTD(1)"},
	{Name: "value", Type: "UInt256"},
	{Name: "updated_at", Type: "DateTime"},
}

// MetricPoint is one sparse change-point row: the metric held Value from
// Day (midnight UTC) until superseded.
type MetricPoint struct {
	Kind      string    `json:"kind" ch:"kind"`
	Day       time.Time `json:"day" ch:"day"`
	Value     *big.Int  `json:"value" ch:"value"`
	UpdatedAt time.Time `json:"updated_at" ch:"updated_at"`
}
