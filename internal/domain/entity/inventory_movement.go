package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIN         = "ENTRADA"
	MovementTypeOUT        = "SALIDA"
	MovementTypeADJUSTMENT = "AJUSTE"
	MovementTypeTRANSFER   = "TRASLADO"
	MovementTypeSALE       = "VENTA"
	MovementTypeRETURN     = "DEVOLUCION"
	MovementTypePRODUCTION = "PRODUCCION"
)

// InventoryMovement representa un movimiento de inventario en una tienda.
type InventoryMovement struct {
	ID            string
	TransactionID string
	ProductID     string
	StoreID       string
	Type          string
	Quantity      decimal.Decimal // positivo entrada, negativo salida
	UnitCost      decimal.Decimal
	TotalCost     decimal.Decimal
	Reference     string
	CreatedAt     time.Time
	CreatedBy     string
}

// Transfer agrupa los dos movimientos TRASLADO de una misma transacción.
type Transfer struct {
	TransactionID string
	ProductID     string
	FromStoreID   string
	ToStoreID     string
	Quantity      decimal.Decimal
	CreatedBy     string
	CreatedAt     time.Time
}
