package production

import (
	"context"

	"github.com/jhoicas/textil-api/internal/domain/repository"
)

// TxRunner transacción de producción: trabajo, tela e inventario de la tienda destino
// se modifican juntos o no se modifican.
type TxRunner interface {
	RunProduction(ctx context.Context, fn func(
		jobRepo repository.JobRepository,
		fabricRepo repository.FabricRepository,
		movRepo repository.InventoryMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error) error
}
