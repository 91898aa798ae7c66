package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSeamstressRequest entrada para crear un costurero.
type CreateSeamstressRequest struct {
	Name         string          `json:"name" validate:"required"`
	DocumentID   string          `json:"document_id"`
	Phone        string          `json:"phone"`
	Address      string          `json:"address"`
	RatePerPiece decimal.Decimal `json:"rate_per_piece"`
}

// UpdateSeamstressRequest entrada para actualizar un costurero.
type UpdateSeamstressRequest struct {
	Name         *string          `json:"name"`
	DocumentID   *string          `json:"document_id"`
	Phone        *string          `json:"phone"`
	Address      *string          `json:"address"`
	RatePerPiece *decimal.Decimal `json:"rate_per_piece"`
	Active       *bool            `json:"active"`
}

// SeamstressResponse salida de un costurero.
type SeamstressResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	DocumentID   string          `json:"document_id"`
	Phone        string          `json:"phone"`
	Address      string          `json:"address"`
	RatePerPiece decimal.Decimal `json:"rate_per_piece"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// SeamstressListResponse lista paginada de costureros.
type SeamstressListResponse struct {
	Items []SeamstressResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
