package sales

import (
	"context"

	"github.com/jhoicas/textil-api/internal/domain/repository"
)

// TxRunner transacción de ventas: venta, carrito y stock en una sola unidad.
type TxRunner interface {
	RunSales(ctx context.Context, fn func(
		movRepo repository.InventoryMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		cartRepo repository.CartRepository,
	) error) error
}

// Actor usuario autenticado que ejecuta la operación.
type Actor struct {
	UserID  string
	Role    string
	StoreID string
}
