package transform

import (
	"log/slog"

	"github.com/leengari/coremag/pkg/twog"
)

// FlipAxes are the components negated when a core was measured upside down,
// matching the 2G software's corrected-component columns.
var FlipAxes = []string{"Y corr", "Z corr"}

// Invert returns a new table with the named vector-component columns
// negated in every record; all other fields are copied unchanged. Negation
// is exact for IEEE floats, and negative zero is collapsed to positive
// zero, so Invert is its own inverse. An axis naming a column absent from
// the schema fails with UnknownColumn; naming a non-numeric column fails
// with DomainError.
func Invert(t *twog.Table, axes []string) (*twog.Table, error) {
	indexes := make([]int, len(axes))
	for i, axis := range axes {
		ci, ok := t.Schema.Index(axis)
		if !ok {
			return nil, &twog.UnknownColumnError{Column: axis, Operation: "invert"}
		}
		if t.Schema.Columns[ci].Type != twog.ColumnTypeFloat {
			return nil, &twog.DomainError{Column: axis, Reason: "cannot negate a non-numeric column"}
		}
		indexes[i] = ci
	}

	slog.Debug("inverting remanence components", slog.Any("axes", axes))

	records := t.CopyRecords()
	for ri := range records {
		for _, ci := range indexes {
			records[ri].Values[ci] = records[ri].Values[ci].Negate()
		}
	}
	return twog.NewTable(t.Schema, t.CopyMetadata(), records, t.CopySections())
}
