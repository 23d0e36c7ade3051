package util

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatNumber renders an integer with thousand separators.
func FormatNumber(v int64) string {
	return printer.Sprintf("%d", v)
}

func FormatFloat(v float64) string {
	return printer.Sprintf("%.1f", v)
}
