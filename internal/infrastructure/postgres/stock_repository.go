package postgres

import (
	"context"

	"github.com/jhoicas/textil-api/internal/domain/entity"
	"github.com/jhoicas/textil-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock actual de un producto en una tienda; cantidad 0 si no hay fila.
func (r *StockRepo) Get(ctx context.Context, productID, storeID string) (*entity.Stock, error) {
	query := `
		SELECT product_id, store_id, quantity, min_quantity, updated_at
		FROM stock WHERE product_id = $1 AND store_id = $2`
	var s entity.Stock
	err := r.q.QueryRow(ctx, query, productID, storeID).Scan(
		&s.ProductID, &s.StoreID, &s.Quantity, &s.MinQuantity, &s.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return &entity.Stock{ProductID: productID, StoreID: storeID, Quantity: decimal.Zero, MinQuantity: decimal.Zero}, nil
		}
		return nil, dbError("get stock", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la cantidad en stock. El mínimo no se toca.
func (r *StockRepo) Upsert(ctx context.Context, stock *entity.Stock) error {
	query := `
		INSERT INTO stock (product_id, store_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id, store_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, stock.ProductID, stock.StoreID, stock.Quantity); err != nil {
		return dbError("upsert stock", err)
	}
	return nil
}

// GetForUpdate obtiene el stock y bloquea la fila (SELECT FOR UPDATE). Si la fila no existe
// la crea en cero primero, así dos entradas concurrentes también se serializan.
func (r *StockRepo) GetForUpdate(ctx context.Context, productID, storeID string) (*entity.Stock, error) {
	if _, err := r.q.Exec(ctx, `
		INSERT INTO stock (product_id, store_id, quantity, min_quantity, updated_at)
		VALUES ($1, $2, 0, 0, now())
		ON CONFLICT (product_id, store_id) DO NOTHING`, productID, storeID); err != nil {
		return nil, dbError("ensure stock row", err)
	}
	query := `
		SELECT product_id, store_id, quantity, min_quantity, updated_at
		FROM stock WHERE product_id = $1 AND store_id = $2
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(ctx, query, productID, storeID).Scan(
		&s.ProductID, &s.StoreID, &s.Quantity, &s.MinQuantity, &s.UpdatedAt,
	)
	if err != nil {
		return nil, dbError("get stock for update", err)
	}
	return &s, nil
}

// TotalQuantity suma la cantidad del producto en todas las tiendas.
func (r *StockRepo) TotalQuantity(ctx context.Context, productID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM stock WHERE product_id = $1`, productID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, dbError("total stock", err)
	}
	return total, nil
}

// SetMinimum fija el mínimo sin alterar la cantidad.
func (r *StockRepo) SetMinimum(ctx context.Context, stock *entity.Stock) error {
	query := `
		INSERT INTO stock (product_id, store_id, quantity, min_quantity, updated_at)
		VALUES ($1, $2, 0, $3, now())
		ON CONFLICT (product_id, store_id)
		DO UPDATE SET min_quantity = EXCLUDED.min_quantity, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, stock.ProductID, stock.StoreID, stock.MinQuantity); err != nil {
		return dbError("set stock minimum", err)
	}
	return nil
}

// ListByStore inventario de la tienda con datos del producto. lowOnly deja solo
// las filas con mínimo configurado y cantidad en o por debajo de él.
func (r *StockRepo) ListByStore(ctx context.Context, storeID string, lowOnly bool) ([]*entity.StockLine, error) {
	query := `
		SELECT s.product_id, s.store_id, s.quantity, s.min_quantity, s.updated_at,
			p.sku, p.name, p.cost, p.price
		FROM stock s
		JOIN products p ON p.id = s.product_id
		WHERE s.store_id = $1`
	if lowOnly {
		query += ` AND s.min_quantity > 0 AND s.quantity <= s.min_quantity`
	}
	query += ` ORDER BY p.name, p.sku`
	rows, err := r.q.Query(ctx, query, storeID)
	if err != nil {
		return nil, dbError("list stock", err)
	}
	defer rows.Close()
	var list []*entity.StockLine
	for rows.Next() {
		var l entity.StockLine
		if err := rows.Scan(&l.ProductID, &l.StoreID, &l.Quantity, &l.MinQuantity, &l.UpdatedAt,
			&l.SKU, &l.ProductName, &l.UnitCost, &l.Price); err != nil {
			return nil, dbError("scan stock line", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
