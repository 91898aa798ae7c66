package repository

import (
	"context"

	"github.com/jhoicas/textil-api/internal/domain/entity"
)

// SaleFilter filtros del listado de ventas.
type SaleFilter struct {
	StoreID string
	Status  string
	DateRange
	Limit  int
	Offset int
}

// SaleRepository define el puerto de persistencia para Sale y sus líneas.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Sale, error)
	UpdateStatus(ctx context.Context, id, status string) error
	List(ctx context.Context, f SaleFilter) ([]*entity.Sale, int, error)
}

// CartRepository define el puerto de persistencia para Cart y sus líneas.
type CartRepository interface {
	Create(ctx context.Context, cart *entity.Cart) error
	GetByID(ctx context.Context, id string) (*entity.Cart, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Cart, error)
	Update(ctx context.Context, cart *entity.Cart) error
	List(ctx context.Context, status string, limit, offset int) ([]*entity.Cart, int, error)
}
