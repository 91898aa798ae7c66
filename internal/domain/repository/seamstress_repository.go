package repository

import (
	"context"

	"github.com/jhoicas/textil-api/internal/domain/entity"
)

// SeamstressRepository define el puerto de persistencia para Seamstress.
type SeamstressRepository interface {
	Create(ctx context.Context, s *entity.Seamstress) error
	GetByID(ctx context.Context, id string) (*entity.Seamstress, error)
	Update(ctx context.Context, s *entity.Seamstress) error
	List(ctx context.Context, f ListFilter) ([]*entity.Seamstress, int, error)
	Delete(ctx context.Context, id string) error
}
