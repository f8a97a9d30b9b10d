package twog

import "testing"

func TestFormatFloatLike(t *testing.T) {
	tests := []struct {
		name string
		f    float64
		like string
		want string
	}{
		{"pads to reference decimals", 15, "10.00", "15.00"},
		{"keeps shortest when enough", 15.125, "10.0", "15.125"},
		{"no reference decimals", 15, "10", "15"},
		{"empty reference", 0.3, "", "0.3"},
		{"negative value", -3, "3.0", "-3.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatFloatLike(tt.f, tt.like); got != tt.want {
				t.Errorf("FormatFloatLike(%g, %q) = %q, want %q", tt.f, tt.like, got, tt.want)
			}
		})
	}
}

func TestParseValue(t *testing.T) {
	v, err := ParseValue("1.5e-05", ColumnTypeFloat)
	if err != nil {
		t.Fatalf("ParseValue error: %v", err)
	}
	if v.Float != 1.5e-05 || v.Source != "1.5e-05" {
		t.Errorf("got %v / %q", v.Float, v.Source)
	}

	if _, err := ParseValue("abc", ColumnTypeFloat); err == nil {
		t.Error("Expected error for non-numeric FLOAT field")
	}
	if _, err := ParseValue("1.5", ColumnTypeInt); err == nil {
		t.Error("Expected error for fractional INT field")
	}

	v, err = ParseValue("whatever", ColumnTypeText)
	if err != nil {
		t.Fatalf("ParseValue error: %v", err)
	}
	if v.Text != "whatever" {
		t.Errorf("got %q", v.Text)
	}
}

func TestNegateCollapsesSignedZero(t *testing.T) {
	v := FloatValue(0.0).Negate()
	if v.Float != 0 {
		t.Fatalf("Expected 0, got %g", v.Float)
	}
	// involutive even through zero
	if !v.Negate().Equal(FloatValue(0.0)) {
		t.Error("Negating zero twice must yield zero")
	}
	if !FloatValue(0.0).Equal(v) {
		t.Error("-0.0 must compare equal to 0.0")
	}
}

func TestValueEqualIgnoresSource(t *testing.T) {
	a := Value{Kind: KindFloat, Float: 1.5, Source: "1.50"}
	b := Value{Kind: KindFloat, Float: 1.5, Source: "1.5"}
	if !a.Equal(b) {
		t.Error("values differing only in source text must be equal")
	}
	if a.Equal(TextValue("1.5")) {
		t.Error("values of different kinds must not be equal")
	}
}
