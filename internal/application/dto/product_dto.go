package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU            string          `json:"sku" validate:"required,min=1,max=100"`
	Name           string          `json:"name" validate:"required,min=1,max=200"`
	Description    string          `json:"description"`
	Size           string          `json:"size"`
	Color          string          `json:"color"`
	Price          decimal.Decimal `json:"price"`
	MetersPerPiece decimal.Decimal `json:"meters_per_piece"`
	ImageURL       string          `json:"image_url"`
	WebVisible     bool            `json:"web_visible"`
}

// UpdateProductRequest entrada para actualizar un producto (sin Cost ni Stock).
type UpdateProductRequest struct {
	Name           *string          `json:"name"`
	Description    *string          `json:"description"`
	Size           *string          `json:"size"`
	Color          *string          `json:"color"`
	Price          *decimal.Decimal `json:"price"`
	MetersPerPiece *decimal.Decimal `json:"meters_per_piece"`
	ImageURL       *string          `json:"image_url"`
	WebVisible     *bool            `json:"web_visible"`
	Active         *bool            `json:"active"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID             string          `json:"id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Size           string          `json:"size"`
	Color          string          `json:"color"`
	Price          decimal.Decimal `json:"price"`
	Cost           decimal.Decimal `json:"cost"`
	MetersPerPiece decimal.Decimal `json:"meters_per_piece"`
	ImageURL       string          `json:"image_url"`
	WebVisible     bool            `json:"web_visible"`
	Active         bool            `json:"active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
