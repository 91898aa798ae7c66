package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de una venta; UnitPrice cero toma el precio del producto.
type SaleItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateSaleRequest body de POST /api/ventas.
type CreateSaleRequest struct {
	StoreID       string            `json:"store_id"`
	CustomerName  string            `json:"customer_name"`
	PaymentMethod string            `json:"payment_method"`
	Items         []SaleItemRequest `json:"items"`
}

// SaleItemResponse línea de una venta.
type SaleItemResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID            string             `json:"id"`
	StoreID       string             `json:"store_id"`
	UserID        string             `json:"user_id"`
	CustomerName  string             `json:"customer_name"`
	PaymentMethod string             `json:"payment_method"`
	Total         decimal.Decimal    `json:"total"`
	Status        string             `json:"status"`
	CartID        string             `json:"cart_id,omitempty"`
	Items         []SaleItemResponse `json:"items"`
	CreatedAt     time.Time          `json:"created_at"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// CartItemRequest línea de un pedido web.
type CartItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// CreateCartRequest body de POST /api/public/carritos.
type CreateCartRequest struct {
	CustomerName  string            `json:"customer_name"`
	CustomerPhone string            `json:"customer_phone"`
	CustomerEmail string            `json:"customer_email"`
	Address       string            `json:"address"`
	Notes         string            `json:"notes"`
	Items         []CartItemRequest `json:"items"`
}

// CheckoutCartRequest body de POST /api/carritos/:id/completar.
type CheckoutCartRequest struct {
	StoreID       string `json:"store_id"`
	PaymentMethod string `json:"payment_method"`
}

// CartItemResponse línea de un carrito.
type CartItemResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CartResponse salida de un carrito.
type CartResponse struct {
	ID            string             `json:"id"`
	CustomerName  string             `json:"customer_name"`
	CustomerPhone string             `json:"customer_phone"`
	CustomerEmail string             `json:"customer_email"`
	Address       string             `json:"address"`
	Notes         string             `json:"notes"`
	Total         decimal.Decimal    `json:"total"`
	Status        string             `json:"status"`
	SaleID        string             `json:"sale_id,omitempty"`
	Items         []CartItemResponse `json:"items"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// CartListResponse lista paginada de carritos.
type CartListResponse struct {
	Items []CartResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
