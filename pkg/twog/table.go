package twog

import (
	"fmt"
	"log/slog"
	"math"
)

// MetaEntry is one header metadata line, preserved verbatim and in order
// through every transform that does not semantically affect it.
type MetaEntry struct {
	Key   string
	Value string
}

// Table is an ordered set of depth-indexed measurement records for one core
// section (or an assembled core). Tables are immutable once constructed:
// every transform builds a new Table and never touches its input, so a
// caller may feed one table into independent transforms concurrently.
type Table struct {
	Schema   *Schema
	Metadata []MetaEntry
	Records  []Record
	// Sections is the provenance trace: the identifiers of every core
	// section whose records ended up in this table, in assembly order.
	Sections []string
}

// NewTable builds a table and enforces its structural invariants: every
// record matches the schema width, every depth cell is a FLOAT, and depths
// are non-decreasing in record order. Violations are surfaced, never fixed.
func NewTable(schema *Schema, metadata []MetaEntry, records []Record, sections []string) (*Table, error) {
	di := schema.DepthIndex()
	for i, rec := range records {
		if len(rec.Values) != schema.Len() {
			return nil, fmt.Errorf("record %d has %d fields, schema has %d",
				i, len(rec.Values), schema.Len())
		}
		if rec.Values[di].Kind != KindFloat {
			return nil, fmt.Errorf("record %d: depth cell is not numeric", i)
		}
		if d := rec.Values[di].Float; math.IsNaN(d) || math.IsInf(d, 0) {
			return nil, fmt.Errorf("record %d: depth %g is not finite", i, d)
		}
	}
	if idx, prev, curr, ok := MonotonicViolation(records, di); !ok {
		return nil, &NonMonotonicResultError{Index: idx, Prev: prev, Curr: curr}
	}
	return &Table{
		Schema:   schema,
		Metadata: metadata,
		Records:  records,
		Sections: sections,
	}, nil
}

// MonotonicViolation scans records for a decreasing depth step. It returns
// ok=true when depths are non-decreasing; otherwise the index of the first
// offending record and the depths on either side of the drop.
func MonotonicViolation(records []Record, depthIndex int) (index int, prev, curr float64, ok bool) {
	for i := 1; i < len(records); i++ {
		p := records[i-1].Values[depthIndex].Float
		c := records[i].Values[depthIndex].Float
		if c < p {
			return i, p, c, false
		}
	}
	return 0, 0, 0, true
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.Records)
}

// DepthAt returns the depth of record i.
func (t *Table) DepthAt(i int) float64 {
	return t.Records[i].Values[t.Schema.DepthIndex()].Float
}

// MinDepth returns the first record's depth. Valid only on non-empty tables.
func (t *Table) MinDepth() float64 {
	return t.DepthAt(0)
}

// MaxDepth returns the last record's depth. Valid only on non-empty tables.
func (t *Table) MaxDepth() float64 {
	return t.DepthAt(len(t.Records) - 1)
}

// Thickness is the depth span covered by the table's records.
func (t *Table) Thickness() float64 {
	if len(t.Records) == 0 {
		return 0
	}
	return t.MaxDepth() - t.MinDepth()
}

// MetaValue looks up a header metadata value by key.
func (t *Table) MetaValue(key string) (string, bool) {
	for _, m := range t.Metadata {
		if m.Key == key {
			return m.Value, true
		}
	}
	return "", false
}

// Moment computes the remanent-moment magnitude of record i from the three
// named component columns.
func (t *Table) Moment(i int, xCol, yCol, zCol string) (float64, error) {
	var idx [3]int
	for j, name := range []string{xCol, yCol, zCol} {
		ci, ok := t.Schema.Index(name)
		if !ok {
			return 0, &UnknownColumnError{Column: name, Operation: "moment"}
		}
		if t.Schema.Columns[ci].Type != ColumnTypeFloat {
			return 0, &DomainError{Column: name, Reason: "moment requires a FLOAT column"}
		}
		idx[j] = ci
	}
	return t.Records[i].moment(idx[0], idx[1], idx[2]), nil
}

// Equal compares two tables field-for-field: schema, metadata, records.
// Provenance order matters; value source text does not.
func (t *Table) Equal(o *Table) bool {
	if !t.Schema.Equal(o.Schema) {
		return false
	}
	if len(t.Metadata) != len(o.Metadata) || len(t.Records) != len(o.Records) {
		return false
	}
	for i, m := range t.Metadata {
		if m != o.Metadata[i] {
			return false
		}
	}
	for i, r := range t.Records {
		if !r.Equal(o.Records[i]) {
			return false
		}
	}
	return true
}

// CopyRecords returns a deep copy of the record slice, for transforms that
// build a sibling table.
func (t *Table) CopyRecords() []Record {
	out := make([]Record, len(t.Records))
	for i, r := range t.Records {
		out[i] = r.Copy()
	}
	return out
}

// CopyMetadata returns a copy of the metadata slice.
func (t *Table) CopyMetadata() []MetaEntry {
	out := make([]MetaEntry, len(t.Metadata))
	copy(out, t.Metadata)
	return out
}

// CopySections returns a copy of the provenance trace.
func (t *Table) CopySections() []string {
	out := make([]string, len(t.Sections))
	copy(out, t.Sections)
	return out
}

// LogAttrs returns standard slog attributes describing the table.
func (t *Table) LogAttrs() []any {
	attrs := []any{
		slog.Int("records", len(t.Records)),
		slog.Int("columns", t.Schema.Len()),
	}
	if len(t.Records) > 0 {
		attrs = append(attrs,
			slog.Float64("min_depth", t.MinDepth()),
			slog.Float64("max_depth", t.MaxDepth()),
		)
	}
	return attrs
}
