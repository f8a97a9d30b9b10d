package transform

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/leengari/coremag/pkg/twog"
)

// Truncate drops records within the given depth bands at the two ends of
// the table: everything shallower than min depth + atTop and everything
// deeper than max depth - atBottom. This is how empty magnetometer tray and
// edge-effect measurements are removed before assembly. Negative bands are
// a DomainError.
func Truncate(t *twog.Table, atTop, atBottom float64) (*twog.Table, error) {
	if atTop < 0 || atBottom < 0 {
		return nil, &twog.DomainError{Reason: fmt.Sprintf("truncation bands must be non-negative, got %g and %g", atTop, atBottom)}
	}
	if t.Len() == 0 || (atTop == 0 && atBottom == 0) {
		return twog.NewTable(t.Schema, t.CopyMetadata(), t.CopyRecords(), t.CopySections())
	}

	lo := t.MinDepth() + atTop
	hi := t.MaxDepth() - atBottom

	var records []twog.Record
	for i, rec := range t.Records {
		d := t.DepthAt(i)
		if d >= lo && d <= hi {
			records = append(records, rec.Copy())
		}
	}

	slog.Debug("truncated table",
		slog.Float64("at_top", atTop),
		slog.Float64("at_bottom", atBottom),
		slog.Int("kept", len(records)),
		slog.Int("dropped", t.Len()-len(records)),
	)
	return twog.NewTable(t.Schema, t.CopyMetadata(), records, t.CopySections())
}

// Project restricts the table to the named columns, in the given order.
// The depth column must be retained; a requested column absent from the
// schema fails with UnknownColumn.
func Project(t *twog.Table, columns []string) (*twog.Table, error) {
	keep := make([]int, len(columns))
	retainsDepth := false
	for i, name := range columns {
		ci, ok := t.Schema.Index(name)
		if !ok {
			return nil, &twog.UnknownColumnError{Column: name, Operation: "project"}
		}
		if name == t.Schema.DepthColumn {
			retainsDepth = true
		}
		keep[i] = ci
	}
	if !retainsDepth {
		return nil, &twog.DomainError{
			Column: t.Schema.DepthColumn,
			Reason: "projection must retain the depth column",
		}
	}

	cols := make([]twog.Column, len(keep))
	for i, ci := range keep {
		cols[i] = t.Schema.Columns[ci]
	}
	schema, err := twog.NewSchema(cols, t.Schema.DepthColumn, t.Schema.DepthUnit, t.Schema.Delimiter)
	if err != nil {
		return nil, err
	}

	records := make([]twog.Record, t.Len())
	for ri, rec := range t.Records {
		values := make([]twog.Value, len(keep))
		for i, ci := range keep {
			values[i] = rec.Values[ci]
		}
		records[ri] = twog.NewRecord(values)
	}
	return twog.NewTable(schema, t.CopyMetadata(), records, t.CopySections())
}

// SortByDepth returns the table with its records stably re-ordered by
// depth. This is the one entry point that accepts out-of-order input: the
// parser and every other transform refuse a decreasing depth sequence.
func SortByDepth(t *twog.Table) (*twog.Table, error) {
	di := t.Schema.DepthIndex()
	records := t.CopyRecords()
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Values[di].Float < records[j].Values[di].Float
	})
	return twog.NewTable(t.Schema, t.CopyMetadata(), records, t.CopySections())
}

// SetUniformDepths rewrites every depth onto the uniform grid
// start + i*increment, for re-spacing files whose depth channel is absent
// or corrupt. A negative increment fails with NonMonotonicMapping.
func SetUniformDepths(t *twog.Table, start, increment float64) (*twog.Table, error) {
	if increment < 0 {
		return nil, &twog.NonMonotonicMappingError{
			Reason: fmt.Sprintf("uniform depth increment %g is negative", increment),
		}
	}
	di := t.Schema.DepthIndex()
	records := t.CopyRecords()
	for i := range records {
		d := start + float64(i)*increment
		records[i].Values[di] = twog.Value{
			Kind:   twog.KindFloat,
			Float:  d,
			Source: twog.FormatFloatLike(d, records[i].Values[di].Source),
		}
	}
	return twog.NewTable(t.Schema, t.CopyMetadata(), records, t.CopySections())
}

// StepIntensity is one (depth, intensity) sample of a demagnetization step.
type StepIntensity struct {
	Depth     float64
	Intensity float64
}

// ExtractStep collects the depth/intensity profile of the records whose
// step column matches the given step text exactly, e.g. all measurements at
// one AF demagnetization level.
func ExtractStep(t *twog.Table, stepColumn, step, intensityColumn string) ([]StepIntensity, error) {
	si, ok := t.Schema.Index(stepColumn)
	if !ok {
		return nil, &twog.UnknownColumnError{Column: stepColumn, Operation: "extract step"}
	}
	ii, ok := t.Schema.Index(intensityColumn)
	if !ok {
		return nil, &twog.UnknownColumnError{Column: intensityColumn, Operation: "extract step"}
	}
	if t.Schema.Columns[ii].Type != twog.ColumnTypeFloat {
		return nil, &twog.DomainError{Column: intensityColumn, Reason: "intensity column must be FLOAT"}
	}

	var out []StepIntensity
	for i, rec := range t.Records {
		if rec.Values[si].String() != step {
			continue
		}
		out = append(out, StepIntensity{
			Depth:     t.DepthAt(i),
			Intensity: rec.Values[ii].Float,
		})
	}
	return out, nil
}
