package models

import (
	"math"
	"strconv"
)

// Float is a float64 whose "no value" state is NaN. It marshals NaN as
// JSON null so records with absent optional fields survive encoding.
type Float float64

// NaN returns the "no value" Float.
func NaN() Float {
	return Float(math.NaN())
}

// IsNaN reports whether the value is absent.
func (f Float) IsNaN() bool {
	return math.IsNaN(float64(f))
}

// MarshalJSON encodes NaN as null.
func (f Float) MarshalJSON() ([]byte, error) {
	if f.IsNaN() {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(float64(f), 'f', -1, 64)), nil
}

// UnmarshalJSON decodes null (or anything unparsable) as NaN.
func (f *Float) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		*f = NaN()
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = NaN()
		return nil
	}
	*f = Float(v)
	return nil
}
