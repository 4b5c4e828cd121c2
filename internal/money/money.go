// Package money converts between wire amounts and exact decimals and formats
// amounts for German-locale display.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var german = message.NewPrinter(language.German)

// FromFloat takes a JSON amount into exact decimal arithmetic.
func FromFloat(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// Float rounds to cents and returns the wire representation.
func Float(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// EUR formats an amount as German-locale currency, e.g. "1.234,56 €".
func EUR(v float64) string {
	return german.Sprintf("%v €", number.Decimal(v, number.Scale(2)))
}

// Percent formats a rate with one decimal, e.g. "17,9 %".
func Percent(v float64) string {
	return german.Sprintf("%v %%", number.Decimal(v, number.Scale(1)))
}
