package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/textil-api/internal/domain"
	"github.com/jhoicas/textil-api/internal/domain/entity"
	"github.com/jhoicas/textil-api/internal/domain/inventory"
	"github.com/jhoicas/textil-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Line describe un movimiento de una tienda que otro caso de uso (ventas, producción)
// aplica dentro de su propia transacción. Quantity siempre es positiva.
type Line struct {
	TransactionID string
	ProductID     string
	StoreID       string
	Type          string
	Quantity      decimal.Decimal
	UnitCost      decimal.Decimal // solo entradas
	Reference     string
	UserID        string
	Now           time.Time
}

// EntryInTx bloquea el producto y la fila de stock, recalcula el costo promedio ponderando
// con el stock del producto en todas las tiendas, suma la cantidad y guarda el movimiento.
// Usa los repositorios de la tx del llamador; product queda con el costo vigente.
func EntryInTx(
	ctx context.Context,
	movRepo repository.InventoryMovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	product *entity.Product,
	l Line,
) error {
	locked, err := productRepo.GetForUpdate(ctx, l.ProductID)
	if err != nil {
		return err
	}
	if locked == nil {
		return fmt.Errorf("producto %s: %w", l.ProductID, domain.ErrNotFound)
	}
	stock, err := stockRepo.GetForUpdate(ctx, l.ProductID, l.StoreID)
	if err != nil {
		return err
	}
	onHand, err := stockRepo.TotalQuantity(ctx, l.ProductID)
	if err != nil {
		return err
	}
	newCost := inventory.CostCalculator(onHand, locked.Cost, l.Quantity, l.UnitCost)
	if !newCost.Equal(locked.Cost) {
		if err := productRepo.UpdateCost(ctx, l.ProductID, newCost); err != nil {
			return fmt.Errorf("actualizar costo: %w", err)
		}
	}
	product.Cost = newCost
	stock.Quantity = stock.Quantity.Add(l.Quantity)
	stock.UpdatedAt = l.Now
	if err := stockRepo.Upsert(ctx, stock); err != nil {
		return err
	}
	return movRepo.Create(ctx, &entity.InventoryMovement{
		TransactionID: l.TransactionID,
		ProductID:     l.ProductID,
		StoreID:       l.StoreID,
		Type:          l.Type,
		Quantity:      l.Quantity,
		UnitCost:      l.UnitCost,
		TotalCost:     l.Quantity.Mul(l.UnitCost),
		Reference:     l.Reference,
		CreatedAt:     l.Now,
		CreatedBy:     l.UserID,
	})
}

// ExitInTx bloquea la fila, verifica StockActual >= cantidad, resta y guarda el movimiento
// al costo promedio actual. ErrInsufficientStock si no alcanza.
func ExitInTx(
	ctx context.Context,
	movRepo repository.InventoryMovementRepository,
	stockRepo repository.StockRepository,
	product *entity.Product,
	l Line,
) error {
	stock, err := stockRepo.GetForUpdate(ctx, l.ProductID, l.StoreID)
	if err != nil {
		return err
	}
	if stock.Quantity.LessThan(l.Quantity) {
		return fmt.Errorf("%s: disponible %s, solicitado %s: %w",
			product.SKU, stock.Quantity.String(), l.Quantity.String(), domain.ErrInsufficientStock)
	}
	stock.Quantity = stock.Quantity.Sub(l.Quantity)
	stock.UpdatedAt = l.Now
	if err := stockRepo.Upsert(ctx, stock); err != nil {
		return err
	}
	out := l.Quantity.Neg()
	return movRepo.Create(ctx, &entity.InventoryMovement{
		TransactionID: l.TransactionID,
		ProductID:     l.ProductID,
		StoreID:       l.StoreID,
		Type:          l.Type,
		Quantity:      out,
		UnitCost:      product.Cost,
		TotalCost:     out.Mul(product.Cost),
		Reference:     l.Reference,
		CreatedAt:     l.Now,
		CreatedBy:     l.UserID,
	})
}
