package twog

import (
	"fmt"
	"strings"
)

// MalformedFormatError reports a structural failure while parsing a 2G file:
// a missing required header key, a row whose field count disagrees with the
// column header, or a numeric field that does not parse in its declared type.
type MalformedFormatError struct {
	Path   string // source path, empty when parsing raw bytes
	Line   int    // 1-based line number, 0 if not tied to a line
	Reason string
}

func (e *MalformedFormatError) Error() string {
	var parts []string
	parts = append(parts, "malformed 2G file")
	if e.Path != "" {
		parts = append(parts, e.Path)
	}
	if e.Line > 0 {
		parts = append(parts, fmt.Sprintf("line %d", e.Line))
	}
	parts = append(parts, e.Reason)
	return strings.Join(parts, ": ")
}

func NewMalformedFormat(line int, reason string) *MalformedFormatError {
	return &MalformedFormatError{Line: line, Reason: reason}
}

// SchemaMismatchError reports that two tables being combined do not share an
// identical schema (column names, order, types, depth column, depth unit).
type SchemaMismatchError struct {
	Section string // identifier of the offending section, if known
	Detail  string
}

func (e *SchemaMismatchError) Error() string {
	if e.Section != "" {
		return fmt.Sprintf("schema mismatch in section %s: %s", e.Section, e.Detail)
	}
	return fmt.Sprintf("schema mismatch: %s", e.Detail)
}

// DomainError reports a value outside a transform's valid input domain.
type DomainError struct {
	Depth  float64 // offending depth; meaningful when Column is empty
	Column string  // offending column, empty for depth-domain failures
	Reason string
}

func (e *DomainError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("domain error on column %q: %s", e.Column, e.Reason)
	}
	return fmt.Sprintf("domain error at depth %g: %s", e.Depth, e.Reason)
}

// NonMonotonicMappingError reports a depth mapping that is not monotonic
// non-decreasing over its domain and therefore cannot be applied.
type NonMonotonicMappingError struct {
	Reason string
}

func (e *NonMonotonicMappingError) Error() string {
	return "non-monotonic depth mapping: " + e.Reason
}

// NonMonotonicResultError reports that an operation produced a record
// sequence whose depths decrease. Index is the position of the record whose
// depth dropped below its predecessor's.
type NonMonotonicResultError struct {
	Index int
	Prev  float64
	Curr  float64
}

func (e *NonMonotonicResultError) Error() string {
	return fmt.Sprintf("non-monotonic depth sequence: record %d has depth %g after %g",
		e.Index, e.Curr, e.Prev)
}

// UnknownColumnError reports an operation referencing a column absent from
// the table's schema.
type UnknownColumnError struct {
	Column    string
	Operation string
}

func (e *UnknownColumnError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("unknown column %q in %s", e.Column, e.Operation)
	}
	return fmt.Sprintf("unknown column %q", e.Column)
}

// OverlappingSectionsError reports two adjacent sections whose depth ranges
// overlap after offsets were applied, with no resolution strategy supplied.
type OverlappingSectionsError struct {
	Previous string
	Next     string
	PrevMax  float64
	NextMin  float64
}

func (e *OverlappingSectionsError) Error() string {
	return fmt.Sprintf("sections %s and %s overlap: %s starts at %g, at or before %s ends at %g",
		e.Previous, e.Next, e.Next, e.NextMin, e.Previous, e.PrevMax)
}

// AssemblyInvariantViolationError is the assembler's defensive postcondition
// failure: the assembled depth sequence decreased even after offset and
// strategy handling. It indicates a logic error in the supplied parameters.
type AssemblyInvariantViolationError struct {
	Index int
	Prev  float64
	Curr  float64
}

func (e *AssemblyInvariantViolationError) Error() string {
	return fmt.Sprintf("assembly invariant violated: record %d has depth %g after %g",
		e.Index, e.Curr, e.Prev)
}
