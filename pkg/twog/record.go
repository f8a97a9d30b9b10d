package twog

import "math"

// Record is one measurement row: values in schema order.
type Record struct {
	Values []Value
}

// NewRecord wraps values into a record. The slice is owned by the record
// afterwards.
func NewRecord(values []Value) Record {
	return Record{Values: values}
}

// Copy creates a deep copy of the record so a new table never aliases the
// rows of its input.
func (r Record) Copy() Record {
	values := make([]Value, len(r.Values))
	copy(values, r.Values)
	return Record{Values: values}
}

// Equal compares two records value-for-value.
func (r Record) Equal(o Record) bool {
	if len(r.Values) != len(o.Values) {
		return false
	}
	for i, v := range r.Values {
		if !v.Equal(o.Values[i]) {
			return false
		}
	}
	return true
}

// moment computes the remanent-moment magnitude in emu (gauss * cm^3) from
// three component columns.
func (r Record) moment(xi, yi, zi int) float64 {
	x := r.Values[xi].Float
	y := r.Values[yi].Float
	z := r.Values[zi].Float
	return math.Sqrt(x*x + y*y + z*z)
}
