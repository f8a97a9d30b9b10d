package twog

import "fmt"

// Schema is the ordered column layout shared by every record of a table,
// plus the depth declaration. Schemas are built once by the parser (or by a
// transform deriving a new layout) and never mutated afterwards.
type Schema struct {
	Columns     []Column
	DepthColumn string
	DepthUnit   string
	Delimiter   rune // field separator used on disk, '\t' or ','

	index map[string]int
}

// NewSchema builds a schema and verifies the depth declaration: the depth
// column must exist and be typed FLOAT.
func NewSchema(columns []Column, depthColumn, depthUnit string, delimiter rune) (*Schema, error) {
	s := &Schema{
		Columns:     columns,
		DepthColumn: depthColumn,
		DepthUnit:   depthUnit,
		Delimiter:   delimiter,
		index:       make(map[string]int, len(columns)),
	}
	for i, col := range columns {
		if _, dup := s.index[col.Name]; dup {
			return nil, fmt.Errorf("duplicate column %q", col.Name)
		}
		s.index[col.Name] = i
	}
	di, ok := s.index[depthColumn]
	if !ok {
		return nil, &UnknownColumnError{Column: depthColumn, Operation: "schema depth declaration"}
	}
	if columns[di].Type != ColumnTypeFloat {
		return nil, fmt.Errorf("depth column %q must be %s, got %s", depthColumn, ColumnTypeFloat, columns[di].Type)
	}
	return s, nil
}

// Index returns the position of the named column.
func (s *Schema) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// DepthIndex returns the position of the depth column.
func (s *Schema) DepthIndex() int {
	return s.index[s.DepthColumn]
}

// Len returns the number of columns.
func (s *Schema) Len() int {
	return len(s.Columns)
}

// Equal reports whether two schemas are interchangeable for combining
// operations: same column names, order and types, same depth column and
// depth unit. The on-disk delimiter is presentation, not structure, and is
// not compared.
func (s *Schema) Equal(o *Schema) bool {
	if s.DepthColumn != o.DepthColumn || s.DepthUnit != o.DepthUnit {
		return false
	}
	if len(s.Columns) != len(o.Columns) {
		return false
	}
	for i, col := range s.Columns {
		if col != o.Columns[i] {
			return false
		}
	}
	return true
}

// Describe returns a short human-readable column listing for error messages.
func (s *Schema) Describe() string {
	names := make([]byte, 0, 64)
	for i, col := range s.Columns {
		if i > 0 {
			names = append(names, ", "...)
		}
		names = append(names, col.Name...)
	}
	return string(names)
}
