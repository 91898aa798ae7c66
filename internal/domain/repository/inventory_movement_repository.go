package repository

import (
	"context"

	"github.com/jhoicas/textil-api/internal/domain/entity"
)

// MovementFilter filtros del historial de movimientos.
type MovementFilter struct {
	StoreID   string
	ProductID string
	Type      string
	DateRange
	Limit  int
	Offset int
}

// InventoryMovementRepository define el puerto de persistencia para movimientos de inventario.
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	List(ctx context.Context, f MovementFilter) ([]*entity.InventoryMovement, error)
	// ListTransfers agrupa los movimientos TRASLADO por transaction_id.
	ListTransfers(ctx context.Context, r DateRange, limit, offset int) ([]*entity.Transfer, error)
}
