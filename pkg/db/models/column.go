package models

import (
	"fmt"
	"strings"
)

// ColumnDef declares one column of a ClickHouse table. Schemas are defined
// as ColumnDef slices so CREATE TABLE statements and column lists stay in
// sync with the row models.
type ColumnDef struct {
	// Name is the column name in the table
	Name string

	// Type is the ClickHouse data type (e.g., "UInt64", "String", "DateTime")
	Type string

	// Codec is the optional compression codec (e.g., "ZSTD(1)")
	Codec string
}

// SQL returns the full column definition for CREATE TABLE statements.
// Example: "day DateTime CODEC(Delta, ZSTD(1))"
func (c ColumnDef) SQL() string {
	if c.Codec != "" {
		return fmt.Sprintf("%s %s CODEC(%s)", c.Name, c.Type, c.Codec)
	}
	return fmt.Sprintf("%s %s", c.Name, c.Type)
}

// ColumnsToSchemaSQL converts a list of ColumnDef to a CREATE TABLE schema string.
func ColumnsToSchemaSQL(columns []ColumnDef) string {
	var parts []string
	for _, col := range columns {
		parts = append(parts, col.SQL())
	}
	return strings.Join(parts, ",\n\t\t\t")
}

// ColumnsToNameList returns a comma-separated column name list for INSERT statements.
func ColumnsToNameList(columns []ColumnDef) string {
	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = col.Name
	}
	return strings.Join(names, ", ")
}
