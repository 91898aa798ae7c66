package entity

import (
	"time"

	"github.com/jhoicas/textil-api/internal/domain/textile"
	"github.com/shopspring/decimal"
)

// FabricParams parámetros físicos de una tela: con ellos se estima cuántos metros
// (y por tanto cuántas prendas) rinde un kilo.
type FabricParams struct {
	ID           string
	FabricID     string
	WidthCm      decimal.Decimal // ancho medido; en tubulares es el ancho plegado
	Tubular      bool            // tejido circular: al abrirlo el ancho útil se duplica
	WeightGSM    decimal.Decimal // gramaje, g/m²
	ShrinkagePct decimal.Decimal // encogimiento esperado al lavado, 0-100
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Physical devuelve los valores que usan los cálculos de rendimiento.
func (p *FabricParams) Physical() textile.Params {
	return textile.Params{
		WidthCm:      p.WidthCm,
		Tubular:      p.Tubular,
		WeightGSM:    p.WeightGSM,
		ShrinkagePct: p.ShrinkagePct,
	}
}
