package transform

import (
	"errors"
	"testing"

	"github.com/leengari/coremag/pkg/twog"
)

func TestTruncate(t *testing.T) {
	table := testTable(t, []float64{0.0, 0.1, 0.2, 0.3, 0.4})

	trimmed, err := Truncate(table, 0.1, 0.1)
	if err != nil {
		t.Fatalf("Truncate error: %v", err)
	}
	if trimmed.Len() != 3 {
		t.Fatalf("Expected 3 records, got %d", trimmed.Len())
	}
	if trimmed.MinDepth() != 0.1 || trimmed.MaxDepth() != 0.3 {
		t.Errorf("span = [%g, %g], want [0.1, 0.3]", trimmed.MinDepth(), trimmed.MaxDepth())
	}
	if table.Len() != 5 {
		t.Error("Truncate mutated its input")
	}
}

func TestTruncateNoop(t *testing.T) {
	table := testTable(t, []float64{0.0, 0.1})
	same, err := Truncate(table, 0, 0)
	if err != nil {
		t.Fatalf("Truncate error: %v", err)
	}
	if !same.Equal(table) {
		t.Error("zero bands must keep every record")
	}
}

func TestTruncateNegativeBand(t *testing.T) {
	_, err := Truncate(testTable(t, []float64{0.0}), -0.1, 0)
	var de *twog.DomainError
	if !errors.As(err, &de) {
		t.Fatalf("Expected DomainError, got %v", err)
	}
}

func TestProject(t *testing.T) {
	table := testTable(t, []float64{0.0, 0.1})

	projected, err := Project(table, []string{"Depth", "Z corr"})
	if err != nil {
		t.Fatalf("Project error: %v", err)
	}
	if projected.Schema.Len() != 2 {
		t.Fatalf("Expected 2 columns, got %d", projected.Schema.Len())
	}
	if projected.Schema.Columns[1].Name != "Z corr" {
		t.Errorf("column 1 = %q", projected.Schema.Columns[1].Name)
	}
	if projected.Records[0].Values[1].Float != 3.0 {
		t.Errorf("Z corr = %g, want 3", projected.Records[0].Values[1].Float)
	}
}

func TestProjectErrors(t *testing.T) {
	table := testTable(t, []float64{0.0})

	_, err := Project(table, []string{"Depth", "nope"})
	var unknown *twog.UnknownColumnError
	if !errors.As(err, &unknown) {
		t.Fatalf("Expected UnknownColumnError, got %v", err)
	}

	_, err = Project(table, []string{"Z corr"})
	var de *twog.DomainError
	if !errors.As(err, &de) {
		t.Fatalf("Expected DomainError for dropped depth column, got %v", err)
	}
}

func TestSortByDepth(t *testing.T) {
	schema, err := twog.NewSchema([]twog.Column{
		{Name: "Depth", Type: twog.ColumnTypeFloat},
		{Name: "Sample ID", Type: twog.ColumnTypeText},
	}, "Depth", "m", '\t')
	if err != nil {
		t.Fatalf("NewSchema error: %v", err)
	}
	// build out-of-order records directly, bypassing NewTable
	records := []twog.Record{
		twog.NewRecord([]twog.Value{twog.FloatValue(0.2), twog.TextValue("b")}),
		twog.NewRecord([]twog.Value{twog.FloatValue(0.0), twog.TextValue("a")}),
		twog.NewRecord([]twog.Value{twog.FloatValue(0.2), twog.TextValue("c")}),
	}
	unsorted := &twog.Table{Schema: schema, Records: records}

	sorted, err := SortByDepth(unsorted)
	if err != nil {
		t.Fatalf("SortByDepth error: %v", err)
	}
	ids := []string{"a", "b", "c"} // stable: b keeps its place before c
	for i, want := range ids {
		if got := sorted.Records[i].Values[1].Text; got != want {
			t.Errorf("record %d = %q, want %q", i, got, want)
		}
	}
}

func TestSetUniformDepths(t *testing.T) {
	table := testTable(t, []float64{0.3, 0.7, 0.9})

	uniform, err := SetUniformDepths(table, 0.0, 0.01)
	if err != nil {
		t.Fatalf("SetUniformDepths error: %v", err)
	}
	want := []float64{0.0, 0.01, 0.02}
	for i, w := range want {
		if uniform.DepthAt(i) != w {
			t.Errorf("depth %d = %g, want %g", i, uniform.DepthAt(i), w)
		}
	}

	_, err = SetUniformDepths(table, 0, -1)
	var nm *twog.NonMonotonicMappingError
	if !errors.As(err, &nm) {
		t.Fatalf("Expected NonMonotonicMappingError, got %v", err)
	}
}

func TestExtractStep(t *testing.T) {
	schema, err := twog.NewSchema([]twog.Column{
		{Name: "Depth", Type: twog.ColumnTypeFloat},
		{Name: "AF Z", Type: twog.ColumnTypeFloat},
		{Name: "Intensity", Type: twog.ColumnTypeFloat},
	}, "Depth", "m", '\t')
	if err != nil {
		t.Fatalf("NewSchema error: %v", err)
	}
	mkRec := func(depth, af, intensity string) twog.Record {
		d, _ := twog.ParseValue(depth, twog.ColumnTypeFloat)
		a, _ := twog.ParseValue(af, twog.ColumnTypeFloat)
		i, _ := twog.ParseValue(intensity, twog.ColumnTypeFloat)
		return twog.NewRecord([]twog.Value{d, a, i})
	}
	records := []twog.Record{
		mkRec("0.00", "0.0", "1.5"),
		mkRec("0.00", "10.0", "1.2"),
		mkRec("0.01", "0.0", "1.6"),
		mkRec("0.01", "10.0", "1.3"),
	}
	table, err := twog.NewTable(schema, nil, records, nil)
	if err != nil {
		t.Fatalf("NewTable error: %v", err)
	}

	profile, err := ExtractStep(table, "AF Z", "10.0", "Intensity")
	if err != nil {
		t.Fatalf("ExtractStep error: %v", err)
	}
	if len(profile) != 2 {
		t.Fatalf("Expected 2 samples, got %d", len(profile))
	}
	if profile[0].Intensity != 1.2 || profile[1].Intensity != 1.3 {
		t.Errorf("intensities = %g, %g", profile[0].Intensity, profile[1].Intensity)
	}

	_, err = ExtractStep(table, "nope", "10.0", "Intensity")
	var unknown *twog.UnknownColumnError
	if !errors.As(err, &unknown) {
		t.Fatalf("Expected UnknownColumnError, got %v", err)
	}
}
