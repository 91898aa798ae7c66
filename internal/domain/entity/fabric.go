package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fabric representa una tela comprada a un proveedor. El stock se lleva en kilos.
type Fabric struct {
	ID          string
	SupplierID  string
	Name        string
	Composition string // ej. "100% algodón", "poliéster/spandex"
	Color       string
	PricePerKg  decimal.Decimal // costo promedio ponderado por kilo
	StockKg     decimal.Decimal
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
