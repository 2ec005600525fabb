package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is a float64 that coerces any unparseable, NaN or infinite input
// to zero when decoding JSON. Numeric form fields arrive continuously while
// the user types, so bad input is recovered silently rather than surfaced.
//
// This is the single coercion boundary: once a value is a Number, the
// calculation engine never needs defensive parsing.
type Number float64

// ParseNumber applies the parse-or-zero rule to a string.
func ParseNumber(s string) Number {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return Number(f)
}

// UnmarshalJSON accepts a JSON number, a quoted numeric string, or null.
// Anything else decodes as zero.
func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	*n = ParseNumber(s)
	return nil
}

// MarshalJSON writes a plain JSON number. NaN and infinities are written
// as zero so a stored invoice can never carry a non-finite value.
func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		f = 0
	}
	return json.Marshal(f)
}
