// Package format reads and writes the 2G magnetometer tabular text format:
// a block of "Key: Value" metadata lines, a blank separator, a delimited
// column-header line, then one delimited line per measurement.
package format

import "github.com/leengari/coremag/pkg/twog"

// Spec is the closed, versioned description of one revision of the 2G file
// format: which metadata keys must be present, which columns carry known
// typed semantics, and which column is the depth index. Specs are built once
// at startup and never mutated; adding a format revision means adding a new
// Spec, not editing literals scattered through the parser.
type Spec struct {
	Version           string
	RequiredKeys      []string
	DepthColumn       string
	DepthUnitKey      string // metadata key declaring the depth unit
	Columns           map[string]twog.ColumnType
	AllowMissingDepth bool // MS-only track files carry no depth column
}

const (
	// DefaultVersion is the full remanence-measurement file layout.
	DefaultVersion = "2G-1"
	// MSOnlyVersion covers magnetic-susceptibility-only track files, which
	// may lack a depth column; the parser synthesizes an index depth.
	MSOnlyVersion = "2G-1-MS"
)

// knownColumns are the typed columns of the 2G format. Anything else in a
// file passes through as opaque text.
var knownColumns = map[string]twog.ColumnType{
	"Sample ID": twog.ColumnTypeText,
	"Depth":     twog.ColumnTypeFloat,
	"X mean":    twog.ColumnTypeFloat,
	"Y mean":    twog.ColumnTypeFloat,
	"Z mean":    twog.ColumnTypeFloat,
	"X corr":    twog.ColumnTypeFloat,
	"Y corr":    twog.ColumnTypeFloat,
	"Z corr":    twog.ColumnTypeFloat,
	"Intensity": twog.ColumnTypeFloat,
	"MS corr":   twog.ColumnTypeFloat,
	"AF X":      twog.ColumnTypeFloat,
	"AF Y":      twog.ColumnTypeFloat,
	"AF Z":      twog.ColumnTypeFloat,
}

var specs = map[string]*Spec{
	DefaultVersion: {
		Version:      DefaultVersion,
		RequiredKeys: []string{"Instrument", "Depth-Units"},
		DepthColumn:  "Depth",
		DepthUnitKey: "Depth-Units",
		Columns:      knownColumns,
	},
	MSOnlyVersion: {
		Version:           MSOnlyVersion,
		RequiredKeys:      []string{"Instrument", "Depth-Units"},
		DepthColumn:       "Depth",
		DepthUnitKey:      "Depth-Units",
		Columns:           knownColumns,
		AllowMissingDepth: true,
	},
}

// Default returns the spec for the full remanence file layout.
func Default() *Spec {
	return specs[DefaultVersion]
}

// Lookup returns the spec for a named format version.
func Lookup(version string) (*Spec, bool) {
	s, ok := specs[version]
	return s, ok
}

// ColumnType returns the declared type for a column name, defaulting to
// TEXT for columns the format does not model.
func (s *Spec) ColumnType(name string) twog.ColumnType {
	if t, ok := s.Columns[name]; ok {
		return t
	}
	return twog.ColumnTypeText
}
