// Package twog models 2G magnetometer measurement files as immutable,
// schema-carrying tables of depth-indexed records.
package twog

// ColumnType identifies the declared type of a measurement column.
type ColumnType string

const (
	ColumnTypeFloat ColumnType = "FLOAT"
	ColumnTypeInt   ColumnType = "INT"
	ColumnTypeText  ColumnType = "TEXT"
)

// Column describes one named, typed column of a measurement table.
type Column struct {
	Name string
	Type ColumnType
}
