package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleStatusCompleted = "completada"
	SaleStatusVoided    = "anulada"
)

// Métodos de pago aceptados.
const (
	PaymentCash     = "efectivo"
	PaymentCard     = "tarjeta"
	PaymentTransfer = "transferencia"
)

// ValidPaymentMethod informa si el método de pago es conocido.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer:
		return true
	}
	return false
}

// Sale representa una venta en tienda.
type Sale struct {
	ID            string
	StoreID       string
	UserID        string
	CustomerName  string
	PaymentMethod string
	Total         decimal.Decimal
	Status        string
	CartID        string
	Items         []SaleItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SaleItem línea de una venta.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// AddItem agrega una línea y acumula el total.
func (s *Sale) AddItem(productID string, qty, unitPrice decimal.Decimal) {
	subtotal := qty.Mul(unitPrice)
	s.Items = append(s.Items, SaleItem{
		ID:        uuid.New().String(),
		SaleID:    s.ID,
		ProductID: productID,
		Quantity:  qty,
		UnitPrice: unitPrice,
		Subtotal:  subtotal,
	})
	s.Total = s.Total.Add(subtotal)
}
