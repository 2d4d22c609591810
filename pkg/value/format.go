// Package value converts Go values into OpenSCAD literal syntax. Every
// shape body string in scadtree is assembled from these literals, so the
// formatting here is what makes rendered output byte-for-byte stable.
package value

import (
	"strconv"
	"strings"
)

// UnitPrecision is the number of fractional digits kept for lengths,
// angles and every other floating point literal.
const UnitPrecision = 8

// FormatFloat formats x with prec fractional digits, then strips trailing
// zeros and a dangling decimal point. Negative zero is written as "0".
func FormatFloat(x float64, prec int) string {
	s := strconv.FormatFloat(x, 'f', prec, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

// FormatNumber formats x at UnitPrecision.
func FormatNumber(x float64) string {
	return FormatFloat(x, UnitPrecision)
}

// FormatInt formats an unsigned count such as $fn or convexity.
func FormatInt(n uint64) string {
	return strconv.FormatUint(n, 10)
}

// FormatBool writes true or false.
func FormatBool(b bool) string {
	return strconv.FormatBool(b)
}

// Quote writes s as a double-quoted string literal. Only the double quote
// is escaped, matching what OpenSCAD accepts verbatim.
func Quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
