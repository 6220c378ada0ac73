// Package money formatea importes para recibos, prompts y PDF.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Format devuelve el importe redondeado a 2 decimales con separador de miles,
// ej. Format("₦", 2580) → "₦2,580.00".
func Format(symbol string, amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	whole := rounded.Truncate(0)
	cents := rounded.Sub(whole).Shift(2).IntPart()
	return sign + symbol + printer.Sprintf("%d", whole.IntPart()) + "." + twoDigits(cents)
}

func twoDigits(n int64) string {
	if n < 10 {
		return "0" + printer.Sprintf("%d", n)
	}
	return printer.Sprintf("%d", n)
}
