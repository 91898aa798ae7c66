package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventario/movimientos.
type RegisterMovementRequest struct {
	ProductID string           `json:"product_id"`
	StoreID   string           `json:"store_id"`
	Type      string           `json:"type"` // ENTRADA | SALIDA | AJUSTE
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"`
	Reference string           `json:"reference"`
}

// TransferRequest body para POST /api/traslados.
type TransferRequest struct {
	ProductID   string          `json:"product_id"`
	FromStoreID string          `json:"from_store_id"`
	ToStoreID   string          `json:"to_store_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	Reference   string          `json:"reference"`
}

// SetMinimumRequest body para PUT /api/inventario/minimo.
type SetMinimumRequest struct {
	ProductID   string          `json:"product_id"`
	StoreID     string          `json:"store_id"`
	MinQuantity decimal.Decimal `json:"min_quantity"`
}

// MovementResponse salida de un movimiento de inventario.
type MovementResponse struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transaction_id"`
	ProductID     string          `json:"product_id"`
	StoreID       string          `json:"store_id"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	Reference     string          `json:"reference"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
}

// MovementResult respuesta de un registro de movimiento o traslado.
type MovementResult struct {
	TransactionID string `json:"transaction_id"`
}

// StockLineResponse fila del inventario de una tienda.
type StockLineResponse struct {
	ProductID   string          `json:"product_id"`
	StoreID     string          `json:"store_id"`
	SKU         string          `json:"sku"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	MinQuantity decimal.Decimal `json:"min_quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Value       decimal.Decimal `json:"value"` // cantidad × costo promedio
	Low         bool            `json:"low"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// StoreInventoryResponse inventario completo de una tienda.
type StoreInventoryResponse struct {
	StoreID    string              `json:"store_id"`
	Items      []StockLineResponse `json:"items"`
	TotalValue decimal.Decimal     `json:"total_value"`
}

// TransferResponse salida de un traslado.
type TransferResponse struct {
	TransactionID string          `json:"transaction_id"`
	ProductID     string          `json:"product_id"`
	FromStoreID   string          `json:"from_store_id"`
	ToStoreID     string          `json:"to_store_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ReplenishmentSuggestionDTO sugerencia de reposición para un producto
// que está en o por debajo de su mínimo en una tienda.
type ReplenishmentSuggestionDTO struct {
	ProductID        string          `json:"product_id"`
	SKU              string          `json:"sku"`
	ProductName      string          `json:"product_name"`
	CurrentStock     decimal.Decimal `json:"current_stock"`
	MinQuantity      decimal.Decimal `json:"min_quantity"`
	IdealStock       decimal.Decimal `json:"ideal_stock"`         // MinQuantity * 1.5
	SuggestedQty     decimal.Decimal `json:"suggested_qty"`       // IdealStock - CurrentStock
	UnitsSoldLast90d decimal.Decimal `json:"units_sold_last_90d"` // volumen de ventas reciente
	GrossMarginPct   decimal.Decimal `json:"gross_margin_pct"`
	Priority         int             `json:"priority"` // 1 = más urgente
}
