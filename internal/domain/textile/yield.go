// Package textile contiene los cálculos físicos de tela que usa producción:
// rendimiento en metros por kilo y prendas esperadas de un corte.
package textile

import (
	"github.com/shopspring/decimal"
)

var (
	hundred  = decimal.NewFromInt(100)
	thousand = decimal.NewFromInt(1000)
	two      = decimal.NewFromInt(2)
)

// Params entrada mínima para los cálculos (desacoplado de entity para poder usarlo en DTOs).
type Params struct {
	WidthCm      decimal.Decimal
	Tubular      bool
	WeightGSM    decimal.Decimal
	ShrinkagePct decimal.Decimal
}

// Validate revisa que los parámetros sean físicamente posibles.
func (p Params) Validate() bool {
	if !p.WidthCm.GreaterThan(decimal.Zero) || !p.WeightGSM.GreaterThan(decimal.Zero) {
		return false
	}
	return !p.ShrinkagePct.IsNegative() && p.ShrinkagePct.LessThan(hundred)
}

// OpenWidthM ancho abierto en metros: un tubular abierto mide el doble de su ancho plegado.
func (p Params) OpenWidthM() decimal.Decimal {
	w := p.WidthCm.Div(hundred)
	if p.Tubular {
		w = w.Mul(two)
	}
	return w
}

// YieldMetersPerKg metros lineales que rinde un kilo: 1000 / (gramaje × ancho abierto).
func (p Params) YieldMetersPerKg() decimal.Decimal {
	gramsPerMeter := p.WeightGSM.Mul(p.OpenWidthM())
	if !gramsPerMeter.GreaterThan(decimal.Zero) {
		return decimal.Zero
	}
	return thousand.Div(gramsPerMeter).Round(4)
}

// UsableWidthCm ancho después del encogimiento esperado.
func (p Params) UsableWidthCm() decimal.Decimal {
	factor := hundred.Sub(p.ShrinkagePct).Div(hundred)
	return p.WidthCm.Mul(factor).Round(2)
}

// ExpectedPieces prendas completas que salen de kg de tela cuando cada prenda consume
// metersPerPiece metros. Se redondea hacia abajo: una prenda incompleta no cuenta.
func ExpectedPieces(p Params, kg, metersPerPiece decimal.Decimal) int {
	if !kg.GreaterThan(decimal.Zero) || !metersPerPiece.GreaterThan(decimal.Zero) {
		return 0
	}
	meters := kg.Mul(p.YieldMetersPerKg())
	return int(meters.Div(metersPerPiece).Floor().IntPart())
}
