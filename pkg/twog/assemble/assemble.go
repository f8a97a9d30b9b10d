// Package assemble combines per-section measurement tables into one table
// with a single, monotonic depth scale.
package assemble

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/leengari/coremag/pkg/twog"
	"github.com/leengari/coremag/pkg/twog/transform"
)

// Strategy selects how an overlap between adjacent sections is resolved.
// With StrategyNone an overlap is an error: the scientific intent of two
// measurements claiming the same depth is ambiguous, and the assembler
// refuses to guess. No averaging or blending strategy exists.
type Strategy string

const (
	StrategyNone             Strategy = ""
	StrategyTruncatePrevious Strategy = "truncate-previous"
	StrategyTruncateNext     Strategy = "truncate-next"
)

// Valid reports whether s names a supported strategy.
func (s Strategy) Valid() bool {
	switch s {
	case StrategyNone, StrategyTruncatePrevious, StrategyTruncateNext:
		return true
	}
	return false
}

// Section is one assembler input: a table, the identifier recorded in the
// assembled provenance trace, and the depth offset to add to the table's
// own depths. Offset 0 means the section already carries absolute depths.
type Section struct {
	Name   string
	Table  *twog.Table
	Offset float64
}

// Assemble concatenates the sections, in order, into one table.
//
// All sections must share an identical schema (SchemaMismatch otherwise).
// Each section's depths are shifted by its offset first. A gap between
// adjacent sections is permitted and left as a depth discontinuity; an
// overlap fails with OverlappingSections unless a truncate strategy was
// supplied. Header metadata of the first section is retained, and the
// provenance trace records every section identifier. The assembled depth
// sequence is re-verified as a postcondition, failing with
// AssemblyInvariantViolation if offsets and strategy still produced a
// reversal.
func Assemble(sections []Section, strategy Strategy) (*twog.Table, error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("no sections to assemble")
	}
	if !strategy.Valid() {
		return nil, fmt.Errorf("unsupported overlap strategy %q", strategy)
	}

	first := sections[0].Table
	for _, s := range sections[1:] {
		if !first.Schema.Equal(s.Table.Schema) {
			return nil, &twog.SchemaMismatchError{
				Section: s.Name,
				Detail: fmt.Sprintf("columns [%s] do not match first section's [%s]",
					s.Table.Schema.Describe(), first.Schema.Describe()),
			}
		}
		// Schema.Equal treats the delimiter as presentation, but the
		// assembled table is written with the first section's delimiter.
		// A section whose TEXT fields may legally contain the other
		// delimiter would then fail to reparse, so mixing is rejected.
		if s.Table.Schema.Delimiter != first.Schema.Delimiter {
			return nil, &twog.SchemaMismatchError{
				Section: s.Name,
				Detail: fmt.Sprintf("delimiter %q does not match first section's %q",
					s.Table.Schema.Delimiter, first.Schema.Delimiter),
			}
		}
	}

	// Correlates the log lines of one assembly run.
	runID := uuid.New().String()
	slog.Debug("assembling sections",
		slog.String("run_id", runID),
		slog.Int("sections", len(sections)),
		slog.String("strategy", string(strategy)),
	)

	di := first.Schema.DepthIndex()
	var records []twog.Record
	var trace []string
	prevName := ""

	for _, s := range sections {
		trace = append(trace, sectionTrace(s)...)

		shifted := s.Table
		if s.Offset != 0 {
			var err error
			shifted, err = transform.Offset(s.Table, s.Offset)
			if err != nil {
				return nil, fmt.Errorf("section %s: %w", s.Name, err)
			}
		}
		if shifted.Len() == 0 {
			continue
		}

		next := shifted.CopyRecords()
		if len(records) > 0 {
			prevMax := records[len(records)-1].Values[di].Float
			nextMin := next[0].Values[di].Float
			if nextMin <= prevMax {
				switch strategy {
				case StrategyTruncatePrevious:
					records = dropAtOrBelow(records, di, nextMin)
				case StrategyTruncateNext:
					next = dropAtOrAbove(next, di, prevMax)
				default:
					return nil, &twog.OverlappingSectionsError{
						Previous: prevName,
						Next:     s.Name,
						PrevMax:  prevMax,
						NextMin:  nextMin,
					}
				}
			}
		}
		records = append(records, next...)
		prevName = s.Name
	}

	if idx, prev, curr, ok := twog.MonotonicViolation(records, di); !ok {
		return nil, &twog.AssemblyInvariantViolationError{Index: idx, Prev: prev, Curr: curr}
	}

	table, err := twog.NewTable(first.Schema, first.CopyMetadata(), records, trace)
	if err != nil {
		return nil, err
	}

	slog.Debug("assembled table", append([]any{slog.String("run_id", runID)}, table.LogAttrs()...)...)
	return table, nil
}

// dropAtOrBelow removes the tail of the previous sections' records at or
// beyond the overlap start.
func dropAtOrBelow(records []twog.Record, di int, overlapStart float64) []twog.Record {
	cut := len(records)
	for cut > 0 && records[cut-1].Values[di].Float >= overlapStart {
		cut--
	}
	return records[:cut]
}

// dropAtOrAbove removes the head of the next section's records at or before
// the overlap end.
func dropAtOrAbove(records []twog.Record, di int, overlapEnd float64) []twog.Record {
	start := 0
	for start < len(records) && records[start].Values[di].Float <= overlapEnd {
		start++
	}
	return records[start:]
}

// sectionTrace yields the provenance entries a section contributes: its own
// table's trace when it has one (an already-assembled input), otherwise the
// section name.
func sectionTrace(s Section) []string {
	if len(s.Table.Sections) > 0 {
		return s.Table.CopySections()
	}
	if s.Name != "" {
		return []string{s.Name}
	}
	return nil
}
