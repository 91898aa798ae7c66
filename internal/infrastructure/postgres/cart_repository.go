package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/textil-api/internal/domain"
	"github.com/jhoicas/textil-api/internal/domain/entity"
	"github.com/jhoicas/textil-api/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo carritos (pedidos web) y sus líneas.
type CartRepo struct {
	q Querier
}

func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

const cartColumns = `id, customer_name, customer_phone, customer_email, address, notes, total, status, sale_id, created_at, updated_at`

func scanCart(row pgx.Row) (*entity.Cart, error) {
	var c entity.Cart
	var saleID *string
	err := row.Scan(&c.ID, &c.CustomerName, &c.CustomerPhone, &c.CustomerEmail, &c.Address, &c.Notes,
		&c.Total, &c.Status, &saleID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.SaleID = deref(saleID)
	return &c, nil
}

// Create inserta el carrito y sus líneas numeradas desde 1.
func (r *CartRepo) Create(ctx context.Context, c *entity.Cart) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO carts (`+cartColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		c.ID, c.CustomerName, c.CustomerPhone, c.CustomerEmail, c.Address, c.Notes, c.Total, c.Status,
		nullable(c.SaleID), c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return dbError("insert cart", err)
	}
	for i, it := range c.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO cart_items (cart_id, line, product_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5)`,
			c.ID, i+1, it.ProductID, it.Quantity, it.UnitPrice)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrNotFound
			}
			return dbError("insert cart item", err)
		}
	}
	return nil
}

func (r *CartRepo) get(ctx context.Context, suffix, id, op string) (*entity.Cart, error) {
	c, err := scanCart(r.q.QueryRow(ctx, `SELECT `+cartColumns+` FROM carts WHERE id = $1`+suffix, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, dbError(op, err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT product_id, quantity, unit_price FROM cart_items WHERE cart_id = $1 ORDER BY line`, id)
	if err != nil {
		return nil, dbError("list cart items", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.CartItem
		if err := rows.Scan(&it.ProductID, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, dbError("scan cart item", err)
		}
		c.Items = append(c.Items, it)
	}
	return c, rows.Err()
}

func (r *CartRepo) GetByID(ctx context.Context, id string) (*entity.Cart, error) {
	return r.get(ctx, "", id, "get cart")
}

func (r *CartRepo) GetForUpdate(ctx context.Context, id string) (*entity.Cart, error) {
	return r.get(ctx, " FOR UPDATE", id, "get cart for update")
}

// Update guarda estado, venta asociada y notas. Las líneas no cambian tras crear el pedido.
func (r *CartRepo) Update(ctx context.Context, c *entity.Cart) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE carts SET status = $2, sale_id = $3, notes = $4, updated_at = $5 WHERE id = $1`,
		c.ID, c.Status, nullable(c.SaleID), c.Notes, c.UpdatedAt)
	if err != nil {
		return dbError("update cart", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CartRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.Cart, int, error) {
	var w where
	if status != "" {
		w.add("status = ?", status)
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM carts`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, dbError("count carts", err)
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+cartColumns+` FROM carts`+w.sql()+` ORDER BY created_at DESC`+w.page(limit, offset), w.args...)
	if err != nil {
		return nil, 0, dbError("list carts", err)
	}
	defer rows.Close()
	var list []*entity.Cart
	for rows.Next() {
		c, err := scanCart(rows)
		if err != nil {
			return nil, 0, dbError("scan cart", err)
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}
