package twog

import (
	"errors"
	"testing"
)

func testColumns() []Column {
	return []Column{
		{Name: "Sample ID", Type: ColumnTypeText},
		{Name: "Depth", Type: ColumnTypeFloat},
		{Name: "X mean", Type: ColumnTypeFloat},
	}
}

func TestNewSchema(t *testing.T) {
	s, err := NewSchema(testColumns(), "Depth", "m", '\t')
	if err != nil {
		t.Fatalf("NewSchema error: %v", err)
	}
	if s.DepthIndex() != 1 {
		t.Errorf("Expected depth index 1, got %d", s.DepthIndex())
	}
	if i, ok := s.Index("X mean"); !ok || i != 2 {
		t.Errorf("Expected X mean at 2, got %d (%v)", i, ok)
	}
	if _, ok := s.Index("missing"); ok {
		t.Error("Expected lookup of missing column to fail")
	}
}

func TestNewSchemaRejectsBadDepth(t *testing.T) {
	_, err := NewSchema(testColumns(), "nope", "m", '\t')
	var unknown *UnknownColumnError
	if !errors.As(err, &unknown) {
		t.Fatalf("Expected UnknownColumnError, got %v", err)
	}

	cols := testColumns()
	cols[1].Type = ColumnTypeText
	if _, err := NewSchema(cols, "Depth", "m", '\t'); err == nil {
		t.Fatal("Expected error for non-FLOAT depth column")
	}
}

func TestNewSchemaRejectsDuplicateColumn(t *testing.T) {
	cols := append(testColumns(), Column{Name: "Depth", Type: ColumnTypeFloat})
	if _, err := NewSchema(cols, "Depth", "m", '\t'); err == nil {
		t.Fatal("Expected error for duplicate column name")
	}
}

func TestSchemaEqual(t *testing.T) {
	base, err := NewSchema(testColumns(), "Depth", "m", '\t')
	if err != nil {
		t.Fatalf("NewSchema error: %v", err)
	}

	tests := []struct {
		name   string
		mutate func() *Schema
		want   bool
	}{
		{
			name: "identical",
			mutate: func() *Schema {
				s, _ := NewSchema(testColumns(), "Depth", "m", '\t')
				return s
			},
			want: true,
		},
		{
			name: "different delimiter still equal",
			mutate: func() *Schema {
				s, _ := NewSchema(testColumns(), "Depth", "m", ',')
				return s
			},
			want: true,
		},
		{
			name: "renamed column",
			mutate: func() *Schema {
				cols := testColumns()
				cols[2].Name = "Y mean"
				s, _ := NewSchema(cols, "Depth", "m", '\t')
				return s
			},
			want: false,
		},
		{
			name: "different type",
			mutate: func() *Schema {
				cols := testColumns()
				cols[0].Type = ColumnTypeFloat
				s, _ := NewSchema(cols, "Depth", "m", '\t')
				return s
			},
			want: false,
		},
		{
			name: "different unit",
			mutate: func() *Schema {
				s, _ := NewSchema(testColumns(), "Depth", "cm", '\t')
				return s
			},
			want: false,
		},
		{
			name: "extra column",
			mutate: func() *Schema {
				cols := append(testColumns(), Column{Name: "extra", Type: ColumnTypeText})
				s, _ := NewSchema(cols, "Depth", "m", '\t')
				return s
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Equal(tt.mutate()); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
		})
	}
}
