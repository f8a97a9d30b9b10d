package twog

import (
	"strconv"
	"strings"
)

// ValueKind tags the scalar variant held by a Value.
type ValueKind int

const (
	KindFloat ValueKind = iota
	KindInt
	KindText
)

// Value is one cell of a record. Parsed numeric values keep the source text
// they were read from, so the writer can re-emit unchanged fields exactly as
// they appeared on disk. Values produced by a transform carry a freshly
// formatted Source with at least the precision of the text they replaced.
type Value struct {
	Kind  ValueKind
	Float float64
	Int   int64
	Text  string
	// Source is the on-disk text of this value, "" when not yet formatted.
	Source string
}

// FloatValue returns a FLOAT value with no source text.
func FloatValue(f float64) Value {
	return Value{Kind: KindFloat, Float: f}
}

// IntValue returns an INT value with no source text.
func IntValue(i int64) Value {
	return Value{Kind: KindInt, Int: i}
}

// TextValue returns a TEXT value whose source is the text itself.
func TextValue(s string) Value {
	return Value{Kind: KindText, Text: s, Source: s}
}

// ParseValue parses field text in the given column type, keeping the text as
// the value's source.
func ParseValue(text string, typ ColumnType) (Value, error) {
	switch typ {
	case ColumnTypeFloat:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindFloat, Float: f, Source: text}, nil
	case ColumnTypeInt:
		i, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindInt, Int: i, Source: text}, nil
	default:
		return TextValue(text), nil
	}
}

// Negate returns the value with its sign flipped. Negating zero yields
// positive zero, so inversion stays involutive bit-for-bit.
func (v Value) Negate() Value {
	f := -v.Float
	if f == 0 {
		f = 0 // collapse -0.0
	}
	return Value{Kind: KindFloat, Float: f, Source: FormatFloatLike(f, v.Source)}
}

// Equal compares two values field-for-field by semantic content. Source text
// is presentation and is ignored; IEEE signed zeros compare equal.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindFloat:
		return v.Float == o.Float
	case KindInt:
		return v.Int == o.Int
	default:
		return v.Text == o.Text
	}
}

// String renders the value as field text: the preserved source when present,
// otherwise a canonical formatting of the scalar.
func (v Value) String() string {
	if v.Source != "" {
		return v.Source
	}
	switch v.Kind {
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'f', -1, 64)
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	default:
		return v.Text
	}
}

// FormatFloatLike formats f with the shortest decimal representation that
// round-trips exactly, then pads trailing fractional zeros so the result has
// at least as many decimal places as the reference text. A remapped depth
// read as "10.00" comes back as "15.00", not "15".
func FormatFloatLike(f float64, like string) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	want := decimalPlaces(like)
	have := decimalPlaces(s)
	if want <= have {
		return s
	}
	if have == 0 {
		s += "."
	}
	return s + strings.Repeat("0", want-have)
}

func decimalPlaces(s string) int {
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return 0
	}
	n := len(s) - dot - 1
	// exponent notation never counts as plain decimals
	if strings.ContainsAny(s[dot+1:], "eE") {
		return 0
	}
	return n
}
