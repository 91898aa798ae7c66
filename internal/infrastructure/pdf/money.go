package pdf

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.MustParse("es-CO"))

// formatMoney formatea con separador de miles colombiano. COP sin decimales; otras monedas con 2.
// Ej: formatMoney("COP", 1250000) → "$ 1.250.000"
func formatMoney(code string, v decimal.Decimal) string {
	digits := 2
	if code == "" || code == "COP" {
		digits = 0
	}
	symbol := "$"
	if unit, err := currency.ParseISO(code); err == nil && unit.String() != "COP" {
		symbol = unit.String()
	}
	f, _ := v.Round(int32(digits)).Float64()
	return symbol + " " + printer.Sprint(number.Decimal(f,
		number.MinFractionDigits(digits), number.MaxFractionDigits(digits)))
}

// formatQty cantidades (unidades, kilos) con hasta 2 decimales.
func formatQty(v decimal.Decimal) string {
	f, _ := v.Round(2).Float64()
	return printer.Sprint(number.Decimal(f, number.MaxFractionDigits(2)))
}
