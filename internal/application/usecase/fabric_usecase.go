package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/textil-api/internal/application/dto"
	"github.com/jhoicas/textil-api/internal/domain"
	"github.com/jhoicas/textil-api/internal/domain/entity"
	"github.com/jhoicas/textil-api/internal/domain/inventory"
	"github.com/jhoicas/textil-api/internal/domain/repository"
	"github.com/jhoicas/textil-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// FabricUseCase casos de uso de telas. El stock en kg solo cambia por compras y trabajos.
type FabricUseCase struct {
	repo      repository.FabricRepository
	suppliers repository.SupplierRepository
	tx        FabricTxRunner
	log       *logger.Logger
}

// NewFabricUseCase construye el caso de uso.
func NewFabricUseCase(repo repository.FabricRepository, suppliers repository.SupplierRepository, tx FabricTxRunner, log *logger.Logger) *FabricUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &FabricUseCase{repo: repo, suppliers: suppliers, tx: tx, log: log.Named("telas")}
}

// Create registra una tela de un proveedor existente con stock inicial 0.
func (uc *FabricUseCase) Create(ctx context.Context, in dto.CreateFabricRequest) (*dto.FabricResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.SupplierID == "" || in.PricePerKg.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.requireSupplier(ctx, in.SupplierID); err != nil {
		return nil, err
	}
	now := time.Now()
	f := &entity.Fabric{
		ID:          uuid.New().String(),
		SupplierID:  in.SupplierID,
		Name:        name,
		Composition: strings.TrimSpace(in.Composition),
		Color:       strings.TrimSpace(in.Color),
		PricePerKg:  in.PricePerKg,
		StockKg:     decimal.Zero,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return toFabricResponse(f), nil
}

// GetByID obtiene una tela; nil si no existe.
func (uc *FabricUseCase) GetByID(ctx context.Context, id string) (*dto.FabricResponse, error) {
	f, err := uc.repo.GetByID(ctx, id)
	if err != nil || f == nil {
		return nil, err
	}
	return toFabricResponse(f), nil
}

// Update modifica los datos descriptivos. stock_kg no es editable.
func (uc *FabricUseCase) Update(ctx context.Context, id string, in dto.UpdateFabricRequest) (*dto.FabricResponse, error) {
	f, err := uc.repo.GetByID(ctx, id)
	if err != nil || f == nil {
		return nil, err
	}
	if in.SupplierID != nil && *in.SupplierID != f.SupplierID {
		if err := uc.requireSupplier(ctx, *in.SupplierID); err != nil {
			return nil, err
		}
		f.SupplierID = *in.SupplierID
	}
	if in.Name != nil {
		if trimPtr(in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		f.Name = trimPtr(in.Name)
	}
	if in.Composition != nil {
		f.Composition = trimPtr(in.Composition)
	}
	if in.Color != nil {
		f.Color = trimPtr(in.Color)
	}
	if in.PricePerKg != nil {
		if in.PricePerKg.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		f.PricePerKg = *in.PricePerKg
	}
	if in.Active != nil {
		f.Active = *in.Active
	}
	f.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return toFabricResponse(f), nil
}

// List lista telas, opcionalmente de un proveedor.
func (uc *FabricUseCase) List(ctx context.Context, f repository.FabricFilter) (*dto.FabricListResponse, error) {
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.FabricResponse, 0, len(list))
	for _, x := range list {
		items = append(items, *toFabricResponse(x))
	}
	return &dto.FabricListResponse{Items: items, Page: pageOf(f.ListFilter, total)}, nil
}

// Delete elimina una tela sin parámetros físicos registrados.
func (uc *FabricUseCase) Delete(ctx context.Context, id string) error {
	f, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if f == nil {
		return domain.ErrNotFound
	}
	used, err := uc.repo.HasParams(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return domain.ErrConflict
	}
	return uc.repo.Delete(ctx, id)
}

// Purchase suma kg al stock y recalcula price_per_kg por promedio ponderado.
func (uc *FabricUseCase) Purchase(ctx context.Context, id string, in dto.FabricPurchaseRequest) (*dto.FabricResponse, error) {
	if !in.Kg.IsPositive() || in.PricePerKg.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	var out *entity.Fabric
	err := uc.tx.RunFabric(ctx, func(fabrics repository.FabricRepository) error {
		f, err := fabrics.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if f == nil {
			return domain.ErrNotFound
		}
		newPrice := inventory.CostCalculator(f.StockKg, f.PricePerKg, in.Kg, in.PricePerKg)
		newStock := f.StockKg.Add(in.Kg)
		if err := fabrics.UpdateStock(ctx, id, newStock, newPrice); err != nil {
			return fmt.Errorf("actualizar stock de tela: %w", err)
		}
		f.StockKg = newStock
		f.PricePerKg = newPrice
		out = f
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("fabric_id", id).Str("kg", in.Kg.String()).Str("price_per_kg", out.PricePerKg.String()).Msg("compra de tela registrada")
	return toFabricResponse(out), nil
}

func (uc *FabricUseCase) requireSupplier(ctx context.Context, id string) error {
	s, err := uc.suppliers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("proveedor %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func toFabricResponse(f *entity.Fabric) *dto.FabricResponse {
	return &dto.FabricResponse{
		ID:          f.ID,
		SupplierID:  f.SupplierID,
		Name:        f.Name,
		Composition: f.Composition,
		Color:       f.Color,
		PricePerKg:  f.PricePerKg,
		StockKg:     f.StockKg,
		Active:      f.Active,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}
