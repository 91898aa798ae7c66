package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Seamstress representa un costurero/taller externo que confecciona por prenda.
type Seamstress struct {
	ID           string
	Name         string
	DocumentID   string
	Phone        string
	Address      string
	RatePerPiece decimal.Decimal // tarifa pagada por prenda terminada
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
