package models

import "time"

const DaosTableName = "daos"

// DaoColumns defines the schema for the registry's daos table.
var DaoColumns = []ColumnDef{
	{Name: "dao_key", Type: "String"},
	{Name: "name", Type: "String"},
	{Name: "token_symbol", Type: "String"},
	{Name: "token_decimals", Type: "UInt8"},
	{Name: "paused", Type: "UInt8"},
	{Name: "created_at", Type: "DateTime"},
	{Name: "updated_at", Type: "DateTime"},
}

// Dao is one tracked organization in the registry. Each DAO gets its own
// metrics database, named from DaoKey.
type Dao struct {
	DaoKey        string    `json:"dao_key" ch:"dao_key"`
	Name          string    `json:"name" ch:"name"`
	TokenSymbol   string    `json:"token_symbol" ch:"token_symbol"`
	TokenDecimals uint8     `json:"token_decimals" ch:"token_decimals"`
	Paused        uint8     `json:"paused" ch:"paused"`
	CreatedAt     time.Time `json:"created_at" ch:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" ch:"updated_at"`
}
