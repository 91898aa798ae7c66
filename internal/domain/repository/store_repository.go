package repository

import (
	"context"

	"github.com/jhoicas/textil-api/internal/domain/entity"
)

// StoreRepository define el puerto de persistencia para Store (DIP).
type StoreRepository interface {
	Create(ctx context.Context, store *entity.Store) error
	GetByID(ctx context.Context, id string) (*entity.Store, error)
	Update(ctx context.Context, store *entity.Store) error
	List(ctx context.Context, f ListFilter) ([]*entity.Store, int, error)
	Delete(ctx context.Context, id string) error
	// HasStock informa si la tienda tiene alguna fila de stock con cantidad distinta de cero.
	HasStock(ctx context.Context, id string) (bool, error)
}
