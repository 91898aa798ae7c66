package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateJobRequest body de POST /api/trabajos.
type CreateJobRequest struct {
	SeamstressID string          `json:"seamstress_id"`
	ParamsID     string          `json:"params_id"`
	ProductID    string          `json:"product_id"`
	StoreID      string          `json:"store_id"`
	FabricKg     decimal.Decimal `json:"fabric_kg"`
	DueDate      *time.Time      `json:"due_date,omitempty"`
	Notes        string          `json:"notes"`
}

// UpdateJobRequest body de PATCH /api/trabajos/:id (solo trabajos pendientes).
type UpdateJobRequest struct {
	DueDate *time.Time `json:"due_date"`
	Notes   *string    `json:"notes"`
}

// CompleteJobRequest body de POST /api/trabajos/:id/completar.
type CompleteJobRequest struct {
	ReceivedPieces int `json:"received_pieces"`
}

// JobResponse salida de un trabajo.
type JobResponse struct {
	ID             string          `json:"id"`
	SeamstressID   string          `json:"seamstress_id"`
	ParamsID       string          `json:"params_id"`
	ProductID      string          `json:"product_id"`
	StoreID        string          `json:"store_id"`
	FabricKg       decimal.Decimal `json:"fabric_kg"`
	ExpectedPieces int             `json:"expected_pieces"`
	ReceivedPieces int             `json:"received_pieces"`
	RatePerPiece   decimal.Decimal `json:"rate_per_piece"`
	LaborTotal     decimal.Decimal `json:"labor_total"`
	FabricCost     decimal.Decimal `json:"fabric_cost"`
	Status         string          `json:"status"`
	DueDate        *time.Time      `json:"due_date,omitempty"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"`
	Notes          string          `json:"notes"`
	CreatedBy      string          `json:"created_by"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// JobListResponse lista paginada de trabajos.
type JobListResponse struct {
	Items []JobResponse `json:"items"`
	Page  PageResponse  `json:"page"`
}
