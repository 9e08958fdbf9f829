package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const TokenPricesTableName = "token_prices"

// TokenPriceColumns defines the schema for the per-DAO token_prices table.
// One row per day; ReplacingMergeTree(updated_at) keeps the latest write.
var TokenPriceColumns = []ColumnDef{
	{Name: "day", Type: "DateTime", Codec: "Delta, ZSTD(1)"},
	{Name: "price_usd", Type: "Decimal(38, 18)"},
	{Name: "updated_at", Type: "DateTime"},
}

// TokenPrice is one daily unit-price observation for the DAO's token.
type TokenPrice struct {
	Day       time.Time       `json:"day" ch:"day"`
	PriceUSD  decimal.Decimal `json:"price_usd" ch:"price_usd"`
	UpdatedAt time.Time       `json:"updated_at" ch:"updated_at"`
}
