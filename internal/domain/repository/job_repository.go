package repository

import (
	"context"

	"github.com/jhoicas/textil-api/internal/domain/entity"
)

// JobFilter filtros del listado de trabajos.
type JobFilter struct {
	Status       string
	SeamstressID string
	DateRange
	Limit  int
	Offset int
}

// JobRepository define el puerto de persistencia para Job (usable con pool o tx).
type JobRepository interface {
	Create(ctx context.Context, job *entity.Job) error
	GetByID(ctx context.Context, id string) (*entity.Job, error)
	// GetForUpdate bloquea la fila del trabajo para transiciones de estado.
	GetForUpdate(ctx context.Context, id string) (*entity.Job, error)
	Update(ctx context.Context, job *entity.Job) error
	List(ctx context.Context, f JobFilter) ([]*entity.Job, int, error)
}
