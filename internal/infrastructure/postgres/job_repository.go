package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/textil-api/internal/domain"
	"github.com/jhoicas/textil-api/internal/domain/entity"
	"github.com/jhoicas/textil-api/internal/domain/repository"
)

var _ repository.JobRepository = (*JobRepo)(nil)

// JobRepo implementación de JobRepository sobre PostgreSQL (usable con pool o tx).
type JobRepo struct {
	q Querier
}

// NewJobRepository construye el adaptador de trabajos de confección.
func NewJobRepository(q Querier) *JobRepo {
	return &JobRepo{q: q}
}

const jobColumns = `id, seamstress_id, params_id, product_id, store_id, fabric_kg, expected_pieces, received_pieces,
	rate_per_piece, labor_total, fabric_cost, status, due_date, completed_at, notes, created_by, created_at, updated_at`

func scanJob(row pgx.Row) (*entity.Job, error) {
	var j entity.Job
	err := row.Scan(&j.ID, &j.SeamstressID, &j.ParamsID, &j.ProductID, &j.StoreID, &j.FabricKg,
		&j.ExpectedPieces, &j.ReceivedPieces, &j.RatePerPiece, &j.LaborTotal, &j.FabricCost, &j.Status,
		&j.DueDate, &j.CompletedAt, &j.Notes, &j.CreatedBy, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *JobRepo) Create(ctx context.Context, j *entity.Job) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO jobs (`+jobColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		j.ID, j.SeamstressID, j.ParamsID, j.ProductID, j.StoreID, j.FabricKg, j.ExpectedPieces, j.ReceivedPieces,
		j.RatePerPiece, j.LaborTotal, j.FabricCost, j.Status, j.DueDate, j.CompletedAt, j.Notes, j.CreatedBy,
		j.CreatedAt, j.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return dbError("insert job", err)
	}
	return nil
}

func (r *JobRepo) get(ctx context.Context, suffix, id, op string) (*entity.Job, error) {
	j, err := scanJob(r.q.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`+suffix, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, dbError(op, err)
	}
	return j, nil
}

func (r *JobRepo) GetByID(ctx context.Context, id string) (*entity.Job, error) {
	return r.get(ctx, "", id, "get job")
}

func (r *JobRepo) GetForUpdate(ctx context.Context, id string) (*entity.Job, error) {
	return r.get(ctx, " FOR UPDATE", id, "get job for update")
}

// Update guarda todos los campos mutables (datos del trabajo y su cierre).
func (r *JobRepo) Update(ctx context.Context, j *entity.Job) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE jobs SET seamstress_id = $2, params_id = $3, product_id = $4, store_id = $5, fabric_kg = $6,
			expected_pieces = $7, received_pieces = $8, rate_per_piece = $9, labor_total = $10, fabric_cost = $11,
			status = $12, due_date = $13, completed_at = $14, notes = $15, updated_at = $16
		WHERE id = $1`,
		j.ID, j.SeamstressID, j.ParamsID, j.ProductID, j.StoreID, j.FabricKg, j.ExpectedPieces, j.ReceivedPieces,
		j.RatePerPiece, j.LaborTotal, j.FabricCost, j.Status, j.DueDate, j.CompletedAt, j.Notes, j.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return dbError("update job", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List trabajos más recientes primero.
func (r *JobRepo) List(ctx context.Context, f repository.JobFilter) ([]*entity.Job, int, error) {
	var w where
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.SeamstressID != "" {
		w.add("seamstress_id = ?", f.SeamstressID)
	}
	if f.From != nil {
		w.add("created_at >= ?", *f.From)
	}
	if f.To != nil {
		w.add("created_at <= ?", *f.To)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, dbError("count jobs", err)
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs`+w.sql()+` ORDER BY created_at DESC`+w.page(f.Limit, f.Offset), w.args...)
	if err != nil {
		return nil, 0, dbError("list jobs", err)
	}
	defer rows.Close()
	var list []*entity.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, 0, dbError("scan job", err)
		}
		list = append(list, j)
	}
	return list, total, rows.Err()
}
