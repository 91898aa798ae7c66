package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesDayResult ventas agregadas por día y tienda.
type SalesDayResult struct {
	Day       time.Time
	StoreID   string
	StoreName string
	Count     int
	Units     decimal.Decimal
	Total     decimal.Decimal
}

// TopProductResult producto con mayor ingreso en un período.
type TopProductResult struct {
	ProductID string
	SKU       string
	Name      string
	Units     decimal.Decimal
	Revenue   decimal.Decimal
	Margin    decimal.Decimal // ingreso - unidades × costo promedio
}

// SeamstressJobResult trabajos completados agregados por costurero.
type SeamstressJobResult struct {
	SeamstressID   string
	SeamstressName string
	Jobs           int
	Pieces         int
	FabricKg       decimal.Decimal
	LaborTotal     decimal.Decimal
}

// ReportRepository consultas de solo lectura para reportes y el resumen del tablero.
// Solo se cuentan ventas en estado completada.
type ReportRepository interface {
	SalesTotals(ctx context.Context, from, to time.Time, storeID string) (total decimal.Decimal, count int, err error)
	SalesByDay(ctx context.Context, from, to time.Time, storeID string) ([]SalesDayResult, error)
	// TopProducts limit <= 0 no recorta; storeID vacío suma todas las tiendas.
	TopProducts(ctx context.Context, from, to time.Time, storeID string, limit int) ([]TopProductResult, error)
	CountPendingJobs(ctx context.Context) (int, error)
	CountLowStock(ctx context.Context) (int, error)
	CompletedJobsBySeamstress(ctx context.Context, from, to time.Time, seamstressID string) ([]SeamstressJobResult, error)
}
