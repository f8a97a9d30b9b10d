// Package transform holds the pure table transforms: depth remapping,
// remanence inversion, and the editing operations used to clean up raw
// magnetometer track files before assembly.
package transform

import (
	"fmt"
	"math"
	"sort"

	"github.com/leengari/coremag/pkg/twog"
)

// Mapping is a depth-to-depth function. Implementations must be monotonic
// non-decreasing over the domain they are applied to; Validate reports a
// mapping that cannot be.
type Mapping interface {
	// Map converts an original depth to a new depth, failing with
	// DomainError when the depth lies outside the mapping's domain.
	Map(depth float64) (float64, error)
	// Validate checks the mapping's own monotonicity, failing with
	// NonMonotonicMapping.
	Validate() error
}

// Affine is the mapping new = A*old + B.
type Affine struct {
	A float64
	B float64
}

func (m Affine) Map(depth float64) (float64, error) {
	if !finite(depth) {
		return 0, &twog.DomainError{Depth: depth, Reason: "depth is not finite"}
	}
	return m.A*depth + m.B, nil
}

func (m Affine) Validate() error {
	if m.A < 0 {
		return &twog.NonMonotonicMappingError{
			Reason: fmt.Sprintf("affine scale %g is negative", m.A),
		}
	}
	return nil
}

// Compose returns the affine mapping equivalent to applying m first and
// then o: o(m(d)) = (o.A*m.A)*d + (o.A*m.B + o.B).
func (m Affine) Compose(o Affine) Affine {
	return Affine{A: m.A * o.A, B: o.A*m.B + o.B}
}

// Breakpoint is one (old, new) correspondence of a piecewise mapping.
type Breakpoint struct {
	Old float64
	New float64
}

// Piecewise maps depths by linear interpolation between breakpoints. It is
// defined only within the breakpoint span: depths outside it fail with
// DomainError rather than extrapolating.
type Piecewise struct {
	Breakpoints []Breakpoint
}

func (m Piecewise) Validate() error {
	if len(m.Breakpoints) < 2 {
		return &twog.NonMonotonicMappingError{
			Reason: fmt.Sprintf("piecewise mapping needs at least 2 breakpoints, got %d", len(m.Breakpoints)),
		}
	}
	for i := 1; i < len(m.Breakpoints); i++ {
		prev, curr := m.Breakpoints[i-1], m.Breakpoints[i]
		if curr.Old <= prev.Old {
			return &twog.NonMonotonicMappingError{
				Reason: fmt.Sprintf("breakpoint olds must strictly increase: %g then %g", prev.Old, curr.Old),
			}
		}
		if curr.New < prev.New {
			return &twog.NonMonotonicMappingError{
				Reason: fmt.Sprintf("breakpoint news must not decrease: %g then %g", prev.New, curr.New),
			}
		}
	}
	return nil
}

func (m Piecewise) Map(depth float64) (float64, error) {
	if !finite(depth) {
		return 0, &twog.DomainError{Depth: depth, Reason: "depth is not finite"}
	}
	n := len(m.Breakpoints)
	if n == 0 || depth < m.Breakpoints[0].Old || depth > m.Breakpoints[n-1].Old {
		return 0, &twog.DomainError{
			Depth:  depth,
			Reason: "depth lies outside the breakpoint span",
		}
	}
	// first breakpoint with Old >= depth
	i := sort.Search(n, func(j int) bool { return m.Breakpoints[j].Old >= depth })
	bp := m.Breakpoints[i]
	if bp.Old == depth {
		return bp.New, nil
	}
	lo := m.Breakpoints[i-1]
	frac := (depth - lo.Old) / (bp.Old - lo.Old)
	return lo.New + frac*(bp.New-lo.New), nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
