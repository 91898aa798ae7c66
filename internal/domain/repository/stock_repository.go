package repository

import (
	"context"

	"github.com/jhoicas/textil-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StockRepository define el puerto para consultar/actualizar stock por tienda+producto.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	Get(ctx context.Context, productID, storeID string) (*entity.Stock, error)
	Upsert(ctx context.Context, stock *entity.Stock) error
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, productID, storeID string) (*entity.Stock, error)
	// TotalQuantity suma la cantidad del producto en todas las tiendas.
	TotalQuantity(ctx context.Context, productID string) (decimal.Decimal, error)
	SetMinimum(ctx context.Context, stock *entity.Stock) error
	ListByStore(ctx context.Context, storeID string, lowOnly bool) ([]*entity.StockLine, error)
}
