package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa una prenda vendible (SKU). Cost es promedio ponderado calculado
// desde movimientos; el stock se maneja por tienda en Stock.
type Product struct {
	ID             string
	SKU            string // código único
	Name           string
	Description    string
	Size           string
	Color          string
	Price          decimal.Decimal // precio de venta
	Cost           decimal.Decimal // costo promedio ponderado (inicia en 0)
	MetersPerPiece decimal.Decimal // consumo de tela por prenda
	ImageURL       string
	WebVisible     bool
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
