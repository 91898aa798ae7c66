package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/textil-api/internal/application/dto"
	"github.com/jhoicas/textil-api/internal/domain"
	"github.com/jhoicas/textil-api/internal/domain/entity"
	"github.com/jhoicas/textil-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// QueryUseCase consultas de inventario por tienda, historial y mínimos.
type QueryUseCase struct {
	stockRepo   repository.StockRepository
	movRepo     repository.InventoryMovementRepository
	productRepo repository.ProductRepository
	storeRepo   repository.StoreRepository
}

// NewQueryUseCase construye el caso de uso de consultas.
func NewQueryUseCase(
	stockRepo repository.StockRepository,
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
) *QueryUseCase {
	return &QueryUseCase{stockRepo: stockRepo, movRepo: movRepo, productRepo: productRepo, storeRepo: storeRepo}
}

// StoreInventory devuelve el stock de una tienda valorizado al costo promedio.
func (uc *QueryUseCase) StoreInventory(ctx context.Context, storeID string, lowOnly bool) (*dto.StoreInventoryResponse, error) {
	if storeID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.requireStore(ctx, storeID); err != nil {
		return nil, err
	}
	lines, err := uc.stockRepo.ListByStore(ctx, storeID, lowOnly)
	if err != nil {
		return nil, err
	}
	out := &dto.StoreInventoryResponse{StoreID: storeID, Items: make([]dto.StockLineResponse, 0, len(lines)), TotalValue: decimal.Zero}
	for _, l := range lines {
		value := l.Quantity.Mul(l.UnitCost)
		out.TotalValue = out.TotalValue.Add(value)
		out.Items = append(out.Items, dto.StockLineResponse{
			ProductID:   l.ProductID,
			StoreID:     l.StoreID,
			SKU:         l.SKU,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			MinQuantity: l.MinQuantity,
			UnitCost:    l.UnitCost,
			Value:       value,
			Low:         l.IsLow(),
			UpdatedAt:   l.UpdatedAt,
		})
	}
	return out, nil
}

// SetMinimum fija el mínimo de (producto, tienda). Crea la fila de stock si no existe.
func (uc *QueryUseCase) SetMinimum(ctx context.Context, in dto.SetMinimumRequest) error {
	if in.ProductID == "" || in.StoreID == "" || in.MinQuantity.IsNegative() {
		return domain.ErrInvalidInput
	}
	p, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("producto %s: %w", in.ProductID, domain.ErrNotFound)
	}
	if err := uc.requireStore(ctx, in.StoreID); err != nil {
		return err
	}
	return uc.stockRepo.SetMinimum(ctx, &entity.Stock{
		ProductID:   in.ProductID,
		StoreID:     in.StoreID,
		Quantity:    decimal.Zero,
		MinQuantity: in.MinQuantity,
		UpdatedAt:   time.Now(),
	})
}

// Movements historial filtrado por tienda, producto, tipo y fechas.
func (uc *QueryUseCase) Movements(ctx context.Context, f repository.MovementFilter) ([]dto.MovementResponse, error) {
	list, err := uc.movRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.MovementResponse{
			ID:            m.ID,
			TransactionID: m.TransactionID,
			ProductID:     m.ProductID,
			StoreID:       m.StoreID,
			Type:          m.Type,
			Quantity:      m.Quantity,
			UnitCost:      m.UnitCost,
			TotalCost:     m.TotalCost,
			Reference:     m.Reference,
			CreatedBy:     m.CreatedBy,
			CreatedAt:     m.CreatedAt,
		})
	}
	return out, nil
}

// Transfers lista traslados (pares de movimientos TRASLADO agrupados por transacción).
func (uc *QueryUseCase) Transfers(ctx context.Context, r repository.DateRange, limit, offset int) ([]dto.TransferResponse, error) {
	list, err := uc.movRepo.ListTransfers(ctx, r, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransferResponse, 0, len(list))
	for _, t := range list {
		out = append(out, dto.TransferResponse{
			TransactionID: t.TransactionID,
			ProductID:     t.ProductID,
			FromStoreID:   t.FromStoreID,
			ToStoreID:     t.ToStoreID,
			Quantity:      t.Quantity,
			CreatedBy:     t.CreatedBy,
			CreatedAt:     t.CreatedAt,
		})
	}
	return out, nil
}

func (uc *QueryUseCase) requireStore(ctx context.Context, id string) error {
	st, err := uc.storeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if st == nil {
		return fmt.Errorf("tienda %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
