package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/textil-api/internal/domain/entity"
	"github.com/jhoicas/textil-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *InventoryMovementRepo) Create(ctx context.Context, m *entity.InventoryMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_movements (id, transaction_id, product_id, store_id, type, quantity, unit_cost, total_cost, reference, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.TransactionID, m.ProductID, m.StoreID, m.Type, m.Quantity, m.UnitCost, m.TotalCost,
		m.Reference, m.CreatedAt, nullable(m.CreatedBy),
	)
	if err != nil {
		return dbError("create inventory movement", err)
	}
	return nil
}

// List historial más reciente primero.
func (r *InventoryMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	var w where
	if f.StoreID != "" {
		w.add("store_id = ?", f.StoreID)
	}
	if f.ProductID != "" {
		w.add("product_id = ?", f.ProductID)
	}
	if f.Type != "" {
		w.add("type = ?", f.Type)
	}
	if f.From != nil {
		w.add("created_at >= ?", *f.From)
	}
	if f.To != nil {
		w.add("created_at <= ?", *f.To)
	}
	query := `
		SELECT id, transaction_id, product_id, store_id, type, quantity, unit_cost, total_cost, reference, created_at, created_by
		FROM inventory_movements` + w.sql() + ` ORDER BY created_at DESC, id` + w.page(f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, dbError("list movements", err)
	}
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		var createdBy *string
		if err := rows.Scan(&m.ID, &m.TransactionID, &m.ProductID, &m.StoreID, &m.Type,
			&m.Quantity, &m.UnitCost, &m.TotalCost, &m.Reference, &m.CreatedAt, &createdBy); err != nil {
			return nil, dbError("scan movement", err)
		}
		m.CreatedBy = deref(createdBy)
		list = append(list, &m)
	}
	return list, rows.Err()
}

// ListTransfers une la salida (cantidad negativa) y la entrada de cada traslado.
func (r *InventoryMovementRepo) ListTransfers(ctx context.Context, dr repository.DateRange, limit, offset int) ([]*entity.Transfer, error) {
	w := where{conds: []string{"o.type = 'TRASLADO'", "o.quantity < 0"}}
	if dr.From != nil {
		w.add("o.created_at >= ?", *dr.From)
	}
	if dr.To != nil {
		w.add("o.created_at <= ?", *dr.To)
	}
	query := `
		SELECT o.transaction_id, o.product_id, o.store_id, d.store_id, d.quantity, o.created_by, o.created_at
		FROM inventory_movements o
		JOIN inventory_movements d
			ON d.transaction_id = o.transaction_id AND d.type = 'TRASLADO' AND d.quantity > 0` +
		w.sql() + ` ORDER BY o.created_at DESC` + w.page(limit, offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, dbError("list transfers", err)
	}
	defer rows.Close()
	var list []*entity.Transfer
	for rows.Next() {
		var t entity.Transfer
		var createdBy *string
		if err := rows.Scan(&t.TransactionID, &t.ProductID, &t.FromStoreID, &t.ToStoreID, &t.Quantity,
			&createdBy, &t.CreatedAt); err != nil {
			return nil, dbError("scan transfer", err)
		}
		t.CreatedBy = deref(createdBy)
		list = append(list, &t)
	}
	return list, rows.Err()
}
