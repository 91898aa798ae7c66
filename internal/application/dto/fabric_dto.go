package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateFabricRequest entrada para crear una tela.
type CreateFabricRequest struct {
	SupplierID  string          `json:"supplier_id" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	Composition string          `json:"composition"`
	Color       string          `json:"color"`
	PricePerKg  decimal.Decimal `json:"price_per_kg"`
}

// UpdateFabricRequest entrada para actualizar una tela. El stock solo cambia con compras y trabajos.
type UpdateFabricRequest struct {
	SupplierID  *string          `json:"supplier_id"`
	Name        *string          `json:"name"`
	Composition *string          `json:"composition"`
	Color       *string          `json:"color"`
	PricePerKg  *decimal.Decimal `json:"price_per_kg"`
	Active      *bool            `json:"active"`
}

// FabricPurchaseRequest body de POST /api/telas/:id/compras.
type FabricPurchaseRequest struct {
	Kg         decimal.Decimal `json:"kg"`
	PricePerKg decimal.Decimal `json:"price_per_kg"`
}

// FabricResponse salida de una tela.
type FabricResponse struct {
	ID          string          `json:"id"`
	SupplierID  string          `json:"supplier_id"`
	Name        string          `json:"name"`
	Composition string          `json:"composition"`
	Color       string          `json:"color"`
	PricePerKg  decimal.Decimal `json:"price_per_kg"`
	StockKg     decimal.Decimal `json:"stock_kg"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// FabricListResponse lista paginada de telas.
type FabricListResponse struct {
	Items []FabricResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// CreateFabricParamsRequest entrada para registrar parámetros físicos de una tela.
type CreateFabricParamsRequest struct {
	FabricID     string          `json:"fabric_id"`
	WidthCm      decimal.Decimal `json:"width_cm"`
	Tubular      bool            `json:"tubular"`
	WeightGSM    decimal.Decimal `json:"weight_gsm"`
	ShrinkagePct decimal.Decimal `json:"shrinkage_pct"`
	Notes        string          `json:"notes"`
}

// UpdateFabricParamsRequest entrada para actualizar parámetros físicos.
type UpdateFabricParamsRequest struct {
	WidthCm      *decimal.Decimal `json:"width_cm"`
	Tubular      *bool            `json:"tubular"`
	WeightGSM    *decimal.Decimal `json:"weight_gsm"`
	ShrinkagePct *decimal.Decimal `json:"shrinkage_pct"`
	Notes        *string          `json:"notes"`
}

// FabricParamsResponse salida con los valores derivados (rendimiento y ancho útil).
type FabricParamsResponse struct {
	ID            string          `json:"id"`
	FabricID      string          `json:"fabric_id"`
	WidthCm       decimal.Decimal `json:"width_cm"`
	Tubular       bool            `json:"tubular"`
	WeightGSM     decimal.Decimal `json:"weight_gsm"`
	ShrinkagePct  decimal.Decimal `json:"shrinkage_pct"`
	Notes         string          `json:"notes"`
	YieldMPerKg   decimal.Decimal `json:"yield_m_per_kg"`
	UsableWidthCm decimal.Decimal `json:"usable_width_cm"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// FabricParamsListResponse lista paginada de parámetros.
type FabricParamsListResponse struct {
	Items []FabricParamsResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}
