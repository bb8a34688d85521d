package util

import (
	"math"
	"strconv"
	"strings"
)

// FormatNumber renders f with the shortest digits that round-trip, in plain
// decimal notation for magnitudes in [1e-6, 1e21) and exponent notation
// (1e-7, 1.5e+21) outside it. Negative zero prints as "0", infinities as
// "Infinity" and "-Infinity".
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	// Go writes e-07 and e+21, the exponent carries no padding here
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + sign + digits
}
