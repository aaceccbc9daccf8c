// Package moneyx formats whole-Rupiah amounts the way the id-ID locale does.
package moneyx

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Indonesian)

// FormatNumber groups digits with the Indonesian separator: 1500000 -> "1.500.000".
func FormatNumber(amount int64) string {
	if amount < 0 {
		return "-" + printer.Sprintf("%d", -amount)
	}
	return printer.Sprintf("%d", amount)
}

// FormatIDR renders an amount as Rupiah with no fractional digits:
// 50000 -> "Rp 50.000", -2500 -> "-Rp 2.500".
func FormatIDR(amount int64) string {
	if amount < 0 {
		return "-Rp " + FormatNumber(-amount)
	}
	return "Rp " + FormatNumber(amount)
}
