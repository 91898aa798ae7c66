package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un trabajo (orden de confección).
const (
	JobStatusPending   = "pendiente"
	JobStatusCompleted = "completado"
	JobStatusCanceled  = "cancelado"
)

// Job representa una orden de confección entregada a un costurero: se le entregan
// kilos de una tela (con un juego de parámetros físicos) y devuelve prendas de un producto.
type Job struct {
	ID             string
	SeamstressID   string
	ParamsID       string
	ProductID      string
	StoreID        string // tienda que recibe las prendas terminadas
	FabricKg       decimal.Decimal
	ExpectedPieces int
	ReceivedPieces int
	RatePerPiece   decimal.Decimal
	LaborTotal     decimal.Decimal
	FabricCost     decimal.Decimal
	Status         string
	DueDate        *time.Time
	CompletedAt    *time.Time
	Notes          string
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsPending informa si el trabajo aún admite cambios.
func (j *Job) IsPending() bool { return j.Status == JobStatusPending }
