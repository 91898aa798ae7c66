package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/textil-api/internal/domain/entity"
)

// FabricFilter filtros del listado de telas.
type FabricFilter struct {
	ListFilter
	SupplierID string
}

// FabricRepository define el puerto de persistencia para Fabric (usable con pool o tx).
type FabricRepository interface {
	Create(ctx context.Context, fabric *entity.Fabric) error
	GetByID(ctx context.Context, id string) (*entity.Fabric, error)
	// GetForUpdate bloquea la fila de la tela (SELECT FOR UPDATE) dentro de una transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Fabric, error)
	Update(ctx context.Context, fabric *entity.Fabric) error
	UpdateStock(ctx context.Context, id string, stockKg, pricePerKg decimal.Decimal) error
	List(ctx context.Context, f FabricFilter) ([]*entity.Fabric, int, error)
	Delete(ctx context.Context, id string) error
	HasParams(ctx context.Context, id string) (bool, error)
}

// FabricParamsRepository define el puerto de persistencia para FabricParams.
type FabricParamsRepository interface {
	Create(ctx context.Context, params *entity.FabricParams) error
	GetByID(ctx context.Context, id string) (*entity.FabricParams, error)
	Update(ctx context.Context, params *entity.FabricParams) error
	List(ctx context.Context, fabricID string, limit, offset int) ([]*entity.FabricParams, int, error)
	Delete(ctx context.Context, id string) error
}
