package reports

import (
	"context"
	"time"

	"github.com/jhoicas/textil-api/internal/domain/entity"
	"github.com/jhoicas/textil-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Header datos comunes del encabezado de todos los reportes.
type Header struct {
	Company     string
	Currency    string
	Title       string
	Subtitle    string // período o tienda
	GeneratedAt time.Time
}

// SalesReport ventas por día y tienda.
type SalesReport struct {
	Header
	Rows  []repository.SalesDayResult
	Total decimal.Decimal
	Count int
	Units decimal.Decimal
}

// InventoryReport stock de una tienda valorizado al costo promedio.
type InventoryReport struct {
	Header
	Lines      []*entity.StockLine
	TotalUnits decimal.Decimal
	TotalValue decimal.Decimal
}

// JobsReport trabajos completados por costurero con la mano de obra a pagar.
type JobsReport struct {
	Header
	Rows        []repository.SeamstressJobResult
	TotalPieces int
	TotalLabor  decimal.Decimal
}

// PDFGenerator puerto de renderizado de reportes (implementado con Maroto en infraestructura).
type PDFGenerator interface {
	SalesPDF(ctx context.Context, r *SalesReport) ([]byte, error)
	InventoryPDF(ctx context.Context, r *InventoryReport) ([]byte, error)
	JobsPDF(ctx context.Context, r *JobsReport) ([]byte, error)
}
