package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/textil-api/internal/domain"
	"github.com/jhoicas/textil-api/internal/domain/entity"
	"github.com/jhoicas/textil-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, sku, name, description, size, color, price, cost, meters_per_piece, image_url, web_visible, active, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.Size, &p.Color, &p.Price, &p.Cost,
		&p.MetersPerPiece, &p.ImageURL, &p.WebVisible, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto. Cost inicia en 0.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		p.ID, p.SKU, p.Name, p.Description, p.Size, p.Color, p.Price, p.Cost, p.MetersPerPiece,
		p.ImageURL, p.WebVisible, p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return dbError("insert product", err)
	}
	return nil
}

func (r *ProductRepo) getOne(ctx context.Context, cond, arg, op string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE `+cond, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, dbError(op, err)
	}
	return p, nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, "id = $1", id, "get product")
}

// GetForUpdate obtiene el producto y bloquea su fila (SELECT FOR UPDATE).
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, "id = $1 FOR UPDATE", id, "get product for update")
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.getOne(ctx, "sku = $1", sku, "get product by sku")
}

// Update actualiza un producto existente. No permite modificar Cost (se maneja vía movimientos).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE products SET sku = $2, name = $3, description = $4, size = $5, color = $6, price = $7,
			meters_per_piece = $8, image_url = $9, web_visible = $10, active = $11, updated_at = $12
		WHERE id = $1`,
		p.ID, p.SKU, p.Name, p.Description, p.Size, p.Color, p.Price, p.MetersPerPiece,
		p.ImageURL, p.WebVisible, p.Active, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return dbError("update product", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateCost actualiza solo el costo del producto (usado por el motor de inventario).
func (r *ProductRepo) UpdateCost(ctx context.Context, productID string, cost decimal.Decimal) error {
	_, err := r.q.Exec(ctx, `UPDATE products SET cost = $2, updated_at = now() WHERE id = $1`, productID, cost)
	if err != nil {
		return dbError("update product cost", err)
	}
	return nil
}

// List lista productos con búsqueda por SKU o nombre.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	var w where
	w.filterActive(f.ListFilter, "sku", "name")
	if f.WebOnly {
		w.conds = append(w.conds, "web_visible")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, dbError("count products", err)
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+productColumns+` FROM products`+w.sql()+` ORDER BY name, sku`+w.page(f.Limit, f.Offset), w.args...)
	if err != nil {
		return nil, 0, dbError("list products", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, dbError("scan product", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

// Delete elimina un producto junto con sus filas de stock vacías, en una sola tx;
// con movimientos o ventas devuelve ErrConflict y no borra nada.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	return pgx.BeginFunc(ctx, r.q, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM stock WHERE product_id = $1 AND quantity = 0`, id); err != nil {
			return dbError("delete empty stock", err)
		}
		cmd, err := tx.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrConflict
			}
			return dbError("delete product", err)
		}
		if cmd.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}
