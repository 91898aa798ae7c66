package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un carrito (pedido de cliente).
const (
	CartStatusPending   = "pendiente"
	CartStatusCompleted = "completado"
	CartStatusCanceled  = "cancelado"
)

// Cart representa un pedido de cliente, normalmente creado desde la tienda web.
type Cart struct {
	ID            string
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	Address       string
	Notes         string
	Total         decimal.Decimal
	Status        string
	SaleID        string
	Items         []CartItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CartItem línea de un carrito; el precio se fija al crear el pedido.
type CartItem struct {
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}
