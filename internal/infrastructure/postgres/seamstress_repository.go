package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/textil-api/internal/domain"
	"github.com/jhoicas/textil-api/internal/domain/entity"
	"github.com/jhoicas/textil-api/internal/domain/repository"
)

var _ repository.SeamstressRepository = (*SeamstressRepo)(nil)

// SeamstressRepo implementación de SeamstressRepository sobre PostgreSQL.
type SeamstressRepo struct {
	q Querier
}

func NewSeamstressRepository(q Querier) *SeamstressRepo {
	return &SeamstressRepo{q: q}
}

const seamstressColumns = `id, name, document_id, phone, address, rate_per_piece, active, created_at, updated_at`

func scanSeamstress(row pgx.Row) (*entity.Seamstress, error) {
	var s entity.Seamstress
	err := row.Scan(&s.ID, &s.Name, &s.DocumentID, &s.Phone, &s.Address, &s.RatePerPiece,
		&s.Active, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SeamstressRepo) Create(ctx context.Context, s *entity.Seamstress) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO seamstresses (`+seamstressColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, s.Name, s.DocumentID, s.Phone, s.Address, s.RatePerPiece, s.Active, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return dbError("insert seamstress", err)
	}
	return nil
}

func (r *SeamstressRepo) GetByID(ctx context.Context, id string) (*entity.Seamstress, error) {
	s, err := scanSeamstress(r.q.QueryRow(ctx, `SELECT `+seamstressColumns+` FROM seamstresses WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, dbError("get seamstress", err)
	}
	return s, nil
}

func (r *SeamstressRepo) Update(ctx context.Context, s *entity.Seamstress) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE seamstresses SET name = $2, document_id = $3, phone = $4, address = $5,
			rate_per_piece = $6, active = $7, updated_at = $8
		WHERE id = $1`,
		s.ID, s.Name, s.DocumentID, s.Phone, s.Address, s.RatePerPiece, s.Active, s.UpdatedAt)
	if err != nil {
		return dbError("update seamstress", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SeamstressRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Seamstress, int, error) {
	var w where
	w.filterActive(f, "name", "document_id")

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM seamstresses`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, dbError("count seamstresses", err)
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+seamstressColumns+` FROM seamstresses`+w.sql()+` ORDER BY name`+w.page(f.Limit, f.Offset), w.args...)
	if err != nil {
		return nil, 0, dbError("list seamstresses", err)
	}
	defer rows.Close()
	var list []*entity.Seamstress
	for rows.Next() {
		s, err := scanSeamstress(rows)
		if err != nil {
			return nil, 0, dbError("scan seamstress", err)
		}
		list = append(list, s)
	}
	return list, total, rows.Err()
}

// Delete elimina el costurero; con trabajos registrados devuelve ErrConflict.
func (r *SeamstressRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM seamstresses WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return dbError("delete seamstress", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
