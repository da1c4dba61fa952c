// Package format renders stored values for display.
package format

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Currency renders an amount in cents as US dollars, e.g. 4567 -> "$45.67"
// and 123456 -> "$1,234.56".
func Currency(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	// Only the dollar part goes through the locale printer so that the
	// cents keep their zero padding.
	return printer.Sprintf("%s$%d", sign, cents/100) + fmt.Sprintf(".%02d", cents%100)
}

// Dollars converts cents to a dollar amount for form inputs.
func Dollars(cents int64) float64 {
	return float64(cents) / 100
}
