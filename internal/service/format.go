package service

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ZeroTotal is the zero-equivalent total published when a holding's price
// cannot be resolved to a number.
const ZeroTotal = "0.00"

var printer = message.NewPrinter(language.BritishEnglish)

// FormatPrice renders a per-share price with grouping and exactly two
// fraction digits. NaN renders as "NaN", not clamped.
func FormatPrice(v float64) string {
	return printer.Sprint(number.Decimal(v,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

// FormatTotal renders a line or portfolio total with grouping and no
// fraction digits.
func FormatTotal(v float64) string {
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(0)))
}

// ParseAmount reads a grouped decimal string back into a number.
// Unparseable input maps to NaN, mirroring the lenient parse on the way in.
func ParseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
