package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/textil-api/internal/domain"
	"github.com/jhoicas/textil-api/internal/domain/entity"
	"github.com/jhoicas/textil-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.FabricRepository       = (*FabricRepo)(nil)
	_ repository.FabricParamsRepository = (*FabricParamsRepo)(nil)
)

// FabricRepo implementación de FabricRepository sobre PostgreSQL (usable con pool o tx).
type FabricRepo struct {
	q Querier
}

// NewFabricRepository construye el adaptador de telas. Pasar pool o tx (Querier).
func NewFabricRepository(q Querier) *FabricRepo {
	return &FabricRepo{q: q}
}

const fabricColumns = `id, supplier_id, name, composition, color, price_per_kg, stock_kg, active, created_at, updated_at`

func scanFabric(row pgx.Row) (*entity.Fabric, error) {
	var f entity.Fabric
	err := row.Scan(&f.ID, &f.SupplierID, &f.Name, &f.Composition, &f.Color, &f.PricePerKg, &f.StockKg,
		&f.Active, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FabricRepo) Create(ctx context.Context, f *entity.Fabric) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO fabrics (`+fabricColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		f.ID, f.SupplierID, f.Name, f.Composition, f.Color, f.PricePerKg, f.StockKg, f.Active, f.CreatedAt, f.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return dbError("insert fabric", err)
	}
	return nil
}

func (r *FabricRepo) get(ctx context.Context, query, id, op string) (*entity.Fabric, error) {
	f, err := scanFabric(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, dbError(op, err)
	}
	return f, nil
}

func (r *FabricRepo) GetByID(ctx context.Context, id string) (*entity.Fabric, error) {
	return r.get(ctx, `SELECT `+fabricColumns+` FROM fabrics WHERE id = $1`, id, "get fabric")
}

// GetForUpdate obtiene la tela y bloquea la fila hasta el fin de la transacción.
func (r *FabricRepo) GetForUpdate(ctx context.Context, id string) (*entity.Fabric, error) {
	return r.get(ctx, `SELECT `+fabricColumns+` FROM fabrics WHERE id = $1 FOR UPDATE`, id, "get fabric for update")
}

// Update actualiza datos descriptivos y precio por kg. El stock solo cambia vía UpdateStock.
func (r *FabricRepo) Update(ctx context.Context, f *entity.Fabric) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE fabrics SET supplier_id = $2, name = $3, composition = $4, color = $5, price_per_kg = $6,
			active = $7, updated_at = $8
		WHERE id = $1`,
		f.ID, f.SupplierID, f.Name, f.Composition, f.Color, f.PricePerKg, f.Active, f.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return dbError("update fabric", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *FabricRepo) UpdateStock(ctx context.Context, id string, stockKg, pricePerKg decimal.Decimal) error {
	_, err := r.q.Exec(ctx,
		`UPDATE fabrics SET stock_kg = $2, price_per_kg = $3, updated_at = now() WHERE id = $1`,
		id, stockKg, pricePerKg)
	if err != nil {
		return dbError("update fabric stock", err)
	}
	return nil
}

func (r *FabricRepo) List(ctx context.Context, f repository.FabricFilter) ([]*entity.Fabric, int, error) {
	var w where
	w.filterActive(f.ListFilter, "name", "composition", "color")
	if f.SupplierID != "" {
		w.add("supplier_id = ?", f.SupplierID)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM fabrics`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, dbError("count fabrics", err)
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+fabricColumns+` FROM fabrics`+w.sql()+` ORDER BY name`+w.page(f.Limit, f.Offset), w.args...)
	if err != nil {
		return nil, 0, dbError("list fabrics", err)
	}
	defer rows.Close()
	var list []*entity.Fabric
	for rows.Next() {
		fb, err := scanFabric(rows)
		if err != nil {
			return nil, 0, dbError("scan fabric", err)
		}
		list = append(list, fb)
	}
	return list, total, rows.Err()
}

func (r *FabricRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM fabrics WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return dbError("delete fabric", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *FabricRepo) HasParams(ctx context.Context, id string) (bool, error) {
	var ok bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM fabric_params WHERE fabric_id = $1)`, id).Scan(&ok); err != nil {
		return false, dbError("fabric has params", err)
	}
	return ok, nil
}

// FabricParamsRepo parámetros físicos de telas.
type FabricParamsRepo struct {
	q Querier
}

func NewFabricParamsRepository(q Querier) *FabricParamsRepo {
	return &FabricParamsRepo{q: q}
}

const paramsColumns = `id, fabric_id, width_cm, tubular, weight_gsm, shrinkage_pct, notes, created_at, updated_at`

func scanParams(row pgx.Row) (*entity.FabricParams, error) {
	var p entity.FabricParams
	err := row.Scan(&p.ID, &p.FabricID, &p.WidthCm, &p.Tubular, &p.WeightGSM, &p.ShrinkagePct, &p.Notes,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *FabricParamsRepo) Create(ctx context.Context, p *entity.FabricParams) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO fabric_params (`+paramsColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.FabricID, p.WidthCm, p.Tubular, p.WeightGSM, p.ShrinkagePct, p.Notes, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return dbError("insert fabric params", err)
	}
	return nil
}

func (r *FabricParamsRepo) GetByID(ctx context.Context, id string) (*entity.FabricParams, error) {
	p, err := scanParams(r.q.QueryRow(ctx, `SELECT `+paramsColumns+` FROM fabric_params WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, dbError("get fabric params", err)
	}
	return p, nil
}

func (r *FabricParamsRepo) Update(ctx context.Context, p *entity.FabricParams) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE fabric_params SET width_cm = $2, tubular = $3, weight_gsm = $4, shrinkage_pct = $5,
			notes = $6, updated_at = $7
		WHERE id = $1`,
		p.ID, p.WidthCm, p.Tubular, p.WeightGSM, p.ShrinkagePct, p.Notes, p.UpdatedAt)
	if err != nil {
		return dbError("update fabric params", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List parámetros de una tela, el más reciente primero.
func (r *FabricParamsRepo) List(ctx context.Context, fabricID string, limit, offset int) ([]*entity.FabricParams, int, error) {
	var w where
	if fabricID != "" {
		w.add("fabric_id = ?", fabricID)
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM fabric_params`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, dbError("count fabric params", err)
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+paramsColumns+` FROM fabric_params`+w.sql()+` ORDER BY created_at DESC`+w.page(limit, offset), w.args...)
	if err != nil {
		return nil, 0, dbError("list fabric params", err)
	}
	defer rows.Close()
	var list []*entity.FabricParams
	for rows.Next() {
		p, err := scanParams(rows)
		if err != nil {
			return nil, 0, dbError("scan fabric params", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

// Delete elimina el juego de parámetros; ErrConflict si un trabajo lo usa.
func (r *FabricParamsRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM fabric_params WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return dbError("delete fabric params", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
