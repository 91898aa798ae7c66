package textile

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestYieldMetersPerKg(t *testing.T) {
	// Jersey 180 g/m², 100 cm abierto → 1000 / 180 = 5.5556 m/kg
	abierto := Params{WidthCm: dec("100"), WeightGSM: dec("180")}
	assert.True(t, dec("5.5556").Equal(abierto.YieldMetersPerKg()), abierto.YieldMetersPerKg().String())

	// El mismo ancho en tubular rinde la mitad de metros por kilo.
	tubular := Params{WidthCm: dec("100"), WeightGSM: dec("180"), Tubular: true}
	assert.True(t, dec("2.7778").Equal(tubular.YieldMetersPerKg()), tubular.YieldMetersPerKg().String())
	assert.True(t, dec("2").Equal(tubular.OpenWidthM()))
}

func TestYieldMetersPerKg_ParametrosInvalidos(t *testing.T) {
	assert.True(t, Params{}.YieldMetersPerKg().IsZero())
	assert.False(t, Params{WidthCm: dec("0"), WeightGSM: dec("180")}.Validate())
	assert.False(t, Params{WidthCm: dec("90"), WeightGSM: dec("180"), ShrinkagePct: dec("100")}.Validate())
	assert.False(t, Params{WidthCm: dec("90"), WeightGSM: dec("180"), ShrinkagePct: dec("-1")}.Validate())
	assert.True(t, Params{WidthCm: dec("90"), WeightGSM: dec("180"), ShrinkagePct: dec("5")}.Validate())
}

func TestUsableWidthCm(t *testing.T) {
	p := Params{WidthCm: dec("160"), WeightGSM: dec("200"), ShrinkagePct: dec("5")}
	assert.True(t, dec("152").Equal(p.UsableWidthCm()))
}

func TestExpectedPieces(t *testing.T) {
	p := Params{WidthCm: dec("100"), WeightGSM: dec("200")} // 5 m/kg

	assert.Equal(t, 40, ExpectedPieces(p, dec("10"), dec("1.25")))
	// 10.5 kg → 52.5 m → 42 prendas de 1.25 m
	assert.Equal(t, 42, ExpectedPieces(p, dec("10.5"), dec("1.25")))
	// 3 kg → 15 m → 7.5 prendas de 2 m: se redondea hacia abajo
	assert.Equal(t, 7, ExpectedPieces(p, dec("3"), dec("2")))
	assert.Equal(t, 0, ExpectedPieces(p, dec("3"), decimal.Zero))
	assert.Equal(t, 0, ExpectedPieces(p, decimal.Zero, dec("1")))
}
