package transform

import (
	"log/slog"

	"github.com/leengari/coremag/pkg/twog"
)

// Remap returns a new table in which every record's depth has been passed
// through the mapping; all other fields are copied unchanged. The input
// table is never mutated. Remap verifies the mapping up front
// (NonMonotonicMapping), fails with DomainError naming the first depth the
// mapping is undefined for, and re-checks the output's depth ordering,
// failing with NonMonotonicResult if floating-point rounding at breakpoints
// produced a reversal.
func Remap(t *twog.Table, m Mapping) (*twog.Table, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	slog.Debug("remapping depths", t.LogAttrs()...)

	di := t.Schema.DepthIndex()
	records := t.CopyRecords()
	for i := range records {
		old := records[i].Values[di]
		mapped, err := m.Map(old.Float)
		if err != nil {
			return nil, err
		}
		records[i].Values[di] = twog.Value{
			Kind:   twog.KindFloat,
			Float:  mapped,
			Source: twog.FormatFloatLike(mapped, old.Source),
		}
	}

	if idx, prev, curr, ok := twog.MonotonicViolation(records, di); !ok {
		return nil, &twog.NonMonotonicResultError{Index: idx, Prev: prev, Curr: curr}
	}
	return twog.NewTable(t.Schema, t.CopyMetadata(), records, t.CopySections())
}

// Offset shifts every depth by a constant. Shorthand for an affine remap
// with unit scale.
func Offset(t *twog.Table, by float64) (*twog.Table, error) {
	return Remap(t, Affine{A: 1, B: by})
}
