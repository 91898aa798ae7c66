package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/jhoicas/textil-api/internal/application/reports"
	"github.com/jhoicas/textil-api/internal/domain/entity"
	"github.com/jhoicas/textil-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func header(title string) reports.Header {
	return reports.Header{
		Company:     "Textiles La Esperanza",
		Currency:    "COP",
		Title:       title,
		Subtitle:    "01/10/2026 - 18/10/2026",
		GeneratedAt: time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC),
	}
}

func TestSalesPDF(t *testing.T) {
	g := NewMarotoReportGenerator()
	out, err := g.SalesPDF(context.Background(), &reports.SalesReport{
		Header: header("Reporte de ventas"),
		Rows: []repository.SalesDayResult{{
			Day: time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC), StoreName: "Centro", Count: 3,
			Units: decimal.NewFromInt(7), Total: decimal.NewFromInt(245000),
		}},
		Total: decimal.NewFromInt(245000), Count: 3, Units: decimal.NewFromInt(7),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestInventoryPDF_SinFilas(t *testing.T) {
	g := NewMarotoReportGenerator()
	out, err := g.InventoryPDF(context.Background(), &reports.InventoryReport{Header: header("Inventario")})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestInventoryAndJobsPDF(t *testing.T) {
	g := NewMarotoReportGenerator()
	line := &entity.StockLine{
		Stock: entity.Stock{Quantity: decimal.NewFromInt(2), MinQuantity: decimal.NewFromInt(5)},
		SKU:   "CAM-01", ProductName: "Camiseta", UnitCost: decimal.NewFromInt(12000),
	}
	out, err := g.InventoryPDF(context.Background(), &reports.InventoryReport{
		Header: header("Inventario"), Lines: []*entity.StockLine{line},
		TotalUnits: decimal.NewFromInt(2), TotalValue: decimal.NewFromInt(24000),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	out, err = g.JobsPDF(context.Background(), &reports.JobsReport{
		Header: header("Trabajos completados"),
		Rows: []repository.SeamstressJobResult{{
			SeamstressName: "Marta", Jobs: 2, Pieces: 80,
			FabricKg: decimal.RequireFromString("12.5"), LaborTotal: decimal.NewFromInt(160000),
		}},
		TotalPieces: 80, TotalLabor: decimal.NewFromInt(160000),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$ 1.250.000", formatMoney("COP", decimal.NewFromInt(1250000)))
	assert.Equal(t, "$ 25", formatMoney("", decimal.RequireFromString("25.4")))
	assert.Contains(t, formatMoney("USD", decimal.RequireFromString("1500.5")), "USD")
}
