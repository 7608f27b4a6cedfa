package svg

import (
	"math"
	"strconv"
)

func chopPrecision(f float64) float64 {
	return math.Round(f*10000) / 10000
}

// Format renders a coordinate with at most 4 decimals, no exponent and no trailing zeros.
func Format(f float64) string {
	f = chopPrecision(f)
	if f == 0 {
		// Also catches -0.
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatFlag renders an arc flag. Only an exact zero is false.
func FormatFlag(f float64) string {
	if f == 0 {
		return "0"
	}
	return "1"
}
