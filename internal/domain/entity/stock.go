package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa el stock actual de un producto en una tienda.
type Stock struct {
	ProductID   string
	StoreID     string
	Quantity    decimal.Decimal
	MinQuantity decimal.Decimal
	UpdatedAt   time.Time
}

// IsLow informa si la cantidad está en o por debajo del mínimo configurado.
func (s *Stock) IsLow() bool {
	return s.MinQuantity.GreaterThan(decimal.Zero) && s.Quantity.LessThanOrEqual(s.MinQuantity)
}

// StockLine fila de inventario enriquecida con datos del producto (para listados y reportes).
type StockLine struct {
	Stock
	SKU         string
	ProductName string
	UnitCost    decimal.Decimal
	Price       decimal.Decimal
}
