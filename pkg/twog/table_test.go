package twog

import (
	"errors"
	"math"
	"testing"
)

func depthTable(t *testing.T, depths []float64) *Table {
	t.Helper()
	schema, err := NewSchema([]Column{
		{Name: "Depth", Type: ColumnTypeFloat},
		{Name: "X mean", Type: ColumnTypeFloat},
	}, "Depth", "m", '\t')
	if err != nil {
		t.Fatalf("NewSchema error: %v", err)
	}
	records := make([]Record, len(depths))
	for i, d := range depths {
		records[i] = NewRecord([]Value{FloatValue(d), FloatValue(float64(i))})
	}
	table, err := NewTable(schema, nil, records, nil)
	if err != nil {
		t.Fatalf("NewTable error: %v", err)
	}
	return table
}

func TestNewTableRejectsDecreasingDepths(t *testing.T) {
	schema, err := NewSchema([]Column{{Name: "Depth", Type: ColumnTypeFloat}}, "Depth", "m", '\t')
	if err != nil {
		t.Fatalf("NewSchema error: %v", err)
	}
	records := []Record{
		NewRecord([]Value{FloatValue(0.2)}),
		NewRecord([]Value{FloatValue(0.1)}),
	}
	_, err = NewTable(schema, nil, records, nil)
	var nm *NonMonotonicResultError
	if !errors.As(err, &nm) {
		t.Fatalf("Expected NonMonotonicResultError, got %v", err)
	}
	if nm.Index != 1 || nm.Prev != 0.2 || nm.Curr != 0.1 {
		t.Errorf("unexpected violation detail: %+v", nm)
	}
}

func TestNewTableAllowsDepthTies(t *testing.T) {
	// adjacent sections share their boundary depth
	if got := depthTable(t, []float64{0.0, 0.1, 0.1, 0.2}).Len(); got != 4 {
		t.Errorf("Expected 4 records, got %d", got)
	}
}

func TestNewTableRejectsNonFiniteDepths(t *testing.T) {
	schema, err := NewSchema([]Column{{Name: "Depth", Type: ColumnTypeFloat}}, "Depth", "m", '\t')
	if err != nil {
		t.Fatalf("NewSchema error: %v", err)
	}
	for _, d := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		records := []Record{NewRecord([]Value{FloatValue(d)})}
		if _, err := NewTable(schema, nil, records, nil); err == nil {
			t.Errorf("Expected error for depth %g", d)
		}
	}
}

func TestNewTableRejectsWidthMismatch(t *testing.T) {
	schema, err := NewSchema([]Column{
		{Name: "Depth", Type: ColumnTypeFloat},
		{Name: "X mean", Type: ColumnTypeFloat},
	}, "Depth", "m", '\t')
	if err != nil {
		t.Fatalf("NewSchema error: %v", err)
	}
	records := []Record{NewRecord([]Value{FloatValue(0.0)})}
	if _, err := NewTable(schema, nil, records, nil); err == nil {
		t.Fatal("Expected error for record narrower than schema")
	}
}

func TestDepthSpan(t *testing.T) {
	table := depthTable(t, []float64{0.05, 0.10, 0.35})
	if table.MinDepth() != 0.05 {
		t.Errorf("MinDepth = %g", table.MinDepth())
	}
	if table.MaxDepth() != 0.35 {
		t.Errorf("MaxDepth = %g", table.MaxDepth())
	}
	if got := table.Thickness(); math.Abs(got-0.3) > 1e-12 {
		t.Errorf("Thickness = %g", got)
	}
}

func TestMoment(t *testing.T) {
	schema, err := NewSchema([]Column{
		{Name: "Depth", Type: ColumnTypeFloat},
		{Name: "X mean", Type: ColumnTypeFloat},
		{Name: "Y mean", Type: ColumnTypeFloat},
		{Name: "Z mean", Type: ColumnTypeFloat},
	}, "Depth", "m", '\t')
	if err != nil {
		t.Fatalf("NewSchema error: %v", err)
	}
	records := []Record{NewRecord([]Value{
		FloatValue(0.0), FloatValue(3.0), FloatValue(4.0), FloatValue(0.0),
	})}
	table, err := NewTable(schema, nil, records, nil)
	if err != nil {
		t.Fatalf("NewTable error: %v", err)
	}

	m, err := table.Moment(0, "X mean", "Y mean", "Z mean")
	if err != nil {
		t.Fatalf("Moment error: %v", err)
	}
	if m != 5.0 {
		t.Errorf("Moment = %g, want 5", m)
	}

	_, err = table.Moment(0, "X mean", "Y mean", "nope")
	var unknown *UnknownColumnError
	if !errors.As(err, &unknown) {
		t.Fatalf("Expected UnknownColumnError, got %v", err)
	}
}

func TestTableEqual(t *testing.T) {
	a := depthTable(t, []float64{0.0, 0.1})
	b := depthTable(t, []float64{0.0, 0.1})
	if !a.Equal(b) {
		t.Error("identical tables must be equal")
	}
	c := depthTable(t, []float64{0.0, 0.2})
	if a.Equal(c) {
		t.Error("tables with different depths must not be equal")
	}
}

func TestCopyRecordsDoesNotAlias(t *testing.T) {
	table := depthTable(t, []float64{0.0, 0.1})
	copied := table.CopyRecords()
	copied[0].Values[0] = FloatValue(9.9)
	if table.DepthAt(0) != 0.0 {
		t.Error("mutating a copy must not change the source table")
	}
}
