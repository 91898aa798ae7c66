package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/reportes/resumen.
// Contiene los KPIs del día y del mes en curso, más el Top-5 de productos del mes.
type DashboardSummaryDTO struct {
	// Métricas del día actual (00:00 – 23:59)
	TodaySales SummaryAmount `json:"today"`

	// Métricas del mes en curso (día 1 – hoy)
	MonthlySales SummaryAmount `json:"month"`

	PendingJobs   int `json:"pending_jobs"`
	LowStockItems int `json:"low_stock_items"`

	// Top 5 productos por ingreso del mes (ordenados de mayor a menor revenue)
	TopProducts []TopProductDTO `json:"top_products"`

	DateLabel string `json:"date_label"` // ej: "Octubre 2026"
}

// SummaryAmount total vendido y número de ventas de un período.
type SummaryAmount struct {
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// TopProductDTO resumen de un producto para el widget del tablero.
type TopProductDTO struct {
	ProductID        string          `json:"product_id"`
	SKU              string          `json:"sku"`
	ProductName      string          `json:"product_name"`
	QuantitySold     decimal.Decimal `json:"quantity_sold"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	MarginPercentage decimal.Decimal `json:"margin_percentage"` // margen / revenue * 100
}
