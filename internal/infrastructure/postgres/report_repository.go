package postgres

import (
	"context"
	"time"

	"github.com/jhoicas/textil-api/internal/domain/entity"
	"github.com/jhoicas/textil-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas de solo lectura para el tablero y los reportes.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// salesWhere filtra ventas completadas en [from, to] y opcionalmente por tienda.
func salesWhere(alias string, from, to time.Time, storeID string) *where {
	w := &where{}
	w.add(alias+".status = ?", entity.SaleStatusCompleted)
	w.add(alias+".created_at >= ?", from)
	w.add(alias+".created_at <= ?", to)
	if storeID != "" {
		w.add(alias+".store_id = ?", storeID)
	}
	return w
}

func (r *ReportRepo) SalesTotals(ctx context.Context, from, to time.Time, storeID string) (decimal.Decimal, int, error) {
	w := salesWhere("s", from, to, storeID)
	var total decimal.Decimal
	var count int
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(s.total), 0), COUNT(*) FROM sales s`+w.sql(), w.args...).
		Scan(&total, &count)
	if err != nil {
		return decimal.Zero, 0, dbError("sales totals", err)
	}
	return total, count, nil
}

// SalesByDay agrupa por día calendario (zona del servidor) y tienda.
func (r *ReportRepo) SalesByDay(ctx context.Context, from, to time.Time, storeID string) ([]repository.SalesDayResult, error) {
	w := salesWhere("s", from, to, storeID)
	query := `
		SELECT date_trunc('day', s.created_at) AS day, s.store_id, st.name, COUNT(*), COALESCE(SUM(u.units), 0), SUM(s.total)
		FROM sales s
		JOIN stores st ON st.id = s.store_id
		LEFT JOIN (SELECT sale_id, SUM(quantity) AS units FROM sale_items GROUP BY sale_id) u ON u.sale_id = s.id` +
		w.sql() + `
		GROUP BY day, s.store_id, st.name
		ORDER BY day, st.name`
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, dbError("sales by day", err)
	}
	defer rows.Close()
	var out []repository.SalesDayResult
	for rows.Next() {
		var d repository.SalesDayResult
		if err := rows.Scan(&d.Day, &d.StoreID, &d.StoreName, &d.Count, &d.Units, &d.Total); err != nil {
			return nil, dbError("scan sales day", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// TopProducts productos por ingreso; el margen usa el costo promedio actual del producto.
func (r *ReportRepo) TopProducts(ctx context.Context, from, to time.Time, storeID string, limit int) ([]repository.TopProductResult, error) {
	w := salesWhere("s", from, to, storeID)
	query := `
		SELECT p.id, p.sku, p.name, SUM(i.quantity), SUM(i.subtotal), SUM(i.subtotal) - SUM(i.quantity) * p.cost
		FROM sale_items i
		JOIN sales s ON s.id = i.sale_id
		JOIN products p ON p.id = i.product_id` +
		w.sql() + `
		GROUP BY p.id, p.sku, p.name, p.cost
		ORDER BY SUM(i.subtotal) DESC, p.sku` + w.page(limit, 0)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, dbError("top products", err)
	}
	defer rows.Close()
	var out []repository.TopProductResult
	for rows.Next() {
		var t repository.TopProductResult
		if err := rows.Scan(&t.ProductID, &t.SKU, &t.Name, &t.Units, &t.Revenue, &t.Margin); err != nil {
			return nil, dbError("scan top product", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *ReportRepo) CountPendingJobs(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE status = $1`, entity.JobStatusPending).Scan(&n); err != nil {
		return 0, dbError("count pending jobs", err)
	}
	return n, nil
}

// CountLowStock filas de stock con mínimo configurado y cantidad en o por debajo de él.
func (r *ReportRepo) CountLowStock(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock WHERE min_quantity > 0 AND quantity <= min_quantity`).Scan(&n)
	if err != nil {
		return 0, dbError("count low stock", err)
	}
	return n, nil
}

// CompletedJobsBySeamstress trabajos completados en [from, to] según completed_at.
func (r *ReportRepo) CompletedJobsBySeamstress(ctx context.Context, from, to time.Time, seamstressID string) ([]repository.SeamstressJobResult, error) {
	w := &where{}
	w.add("j.status = ?", entity.JobStatusCompleted)
	w.add("j.completed_at >= ?", from)
	w.add("j.completed_at <= ?", to)
	if seamstressID != "" {
		w.add("j.seamstress_id = ?", seamstressID)
	}
	query := `
		SELECT c.id, c.name, COUNT(*), COALESCE(SUM(j.received_pieces), 0), SUM(j.fabric_kg), SUM(j.labor_total)
		FROM jobs j
		JOIN seamstresses c ON c.id = j.seamstress_id` +
		w.sql() + `
		GROUP BY c.id, c.name
		ORDER BY c.name`
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, dbError("jobs by seamstress", err)
	}
	defer rows.Close()
	var out []repository.SeamstressJobResult
	for rows.Next() {
		var s repository.SeamstressJobResult
		if err := rows.Scan(&s.SeamstressID, &s.SeamstressName, &s.Jobs, &s.Pieces, &s.FabricKg, &s.LaborTotal); err != nil {
			return nil, dbError("scan seamstress jobs", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
