package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/textil-api/internal/domain"
	"github.com/jhoicas/textil-api/internal/domain/entity"
	"github.com/jhoicas/textil-api/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo implementación de StoreRepository sobre PostgreSQL.
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador de tiendas.
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

const storeColumns = `id, name, address, phone, active, created_at, updated_at`

func scanStore(row pgx.Row) (*entity.Store, error) {
	var s entity.Store
	if err := row.Scan(&s.ID, &s.Name, &s.Address, &s.Phone, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StoreRepo) Create(ctx context.Context, s *entity.Store) error {
	_, err := r.q.Exec(ctx, `INSERT INTO stores (`+storeColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.Name, s.Address, s.Phone, s.Active, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return dbError("insert store", err)
	}
	return nil
}

func (r *StoreRepo) GetByID(ctx context.Context, id string) (*entity.Store, error) {
	s, err := scanStore(r.q.QueryRow(ctx, `SELECT `+storeColumns+` FROM stores WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, dbError("get store", err)
	}
	return s, nil
}

func (r *StoreRepo) Update(ctx context.Context, s *entity.Store) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE stores SET name = $2, address = $3, phone = $4, active = $5, updated_at = $6
		WHERE id = $1`,
		s.ID, s.Name, s.Address, s.Phone, s.Active, s.UpdatedAt)
	if err != nil {
		return dbError("update store", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *StoreRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Store, int, error) {
	var w where
	w.filterActive(f, "name", "address")

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stores`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, dbError("count stores", err)
	}
	rows, err := r.q.Query(ctx, `SELECT `+storeColumns+` FROM stores`+w.sql()+` ORDER BY name`+w.page(f.Limit, f.Offset), w.args...)
	if err != nil {
		return nil, 0, dbError("list stores", err)
	}
	defer rows.Close()
	var list []*entity.Store
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, 0, dbError("scan store", err)
		}
		list = append(list, s)
	}
	return list, total, rows.Err()
}

// Delete elimina la tienda junto con sus filas de stock en cero.
func (r *StoreRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM stock WHERE store_id = $1 AND quantity = 0`, id); err != nil {
		return dbError("delete empty stock", err)
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM stores WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return dbError("delete store", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *StoreRepo) HasStock(ctx context.Context, id string) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM stock WHERE store_id = $1 AND quantity <> 0)`, id).Scan(&ok)
	if err != nil {
		return false, dbError("store has stock", err)
	}
	return ok, nil
}
