package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/textil-api/internal/application/dto"
	appinv "github.com/jhoicas/textil-api/internal/application/inventory"
	"github.com/jhoicas/textil-api/internal/domain"
	"github.com/jhoicas/textil-api/internal/domain/entity"
	"github.com/jhoicas/textil-api/internal/domain/repository"
	"github.com/jhoicas/textil-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// SaleUseCase registra y anula ventas descontando o devolviendo stock en la misma transacción.
type SaleUseCase struct {
	txRunner    TxRunner
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	storeRepo   repository.StoreRepository
	log         *logger.Logger
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	txRunner TxRunner,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
	log *logger.Logger,
) *SaleUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &SaleUseCase{
		txRunner:    txRunner,
		saleRepo:    saleRepo,
		productRepo: productRepo,
		storeRepo:   storeRepo,
		log:         log.Named("ventas"),
	}
}

// Create registra una venta en tienda. Un vendedor solo vende desde su tienda.
func (uc *SaleUseCase) Create(ctx context.Context, actor Actor, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	storeID, err := resolveStore(actor, in.StoreID)
	if err != nil {
		return nil, err
	}
	sale, err := uc.prepareSale(ctx, actor, storeID, in.PaymentMethod, in.Items)
	if err != nil {
		return nil, err
	}
	sale.CustomerName = strings.TrimSpace(in.CustomerName)

	err = uc.txRunner.RunSales(ctx, func(
		movRepo repository.InventoryMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		_ repository.CartRepository,
	) error {
		return persistSaleInTx(ctx, movRepo, stockRepo, productRepo, saleRepo, sale)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("sale_id", sale.ID).Str("store_id", sale.StoreID).Str("total", sale.Total.String()).Msg("venta registrada")
	return toSaleResponse(sale), nil
}

// GetByID obtiene una venta con sus líneas; nil si no existe.
func (uc *SaleUseCase) GetByID(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil || sale == nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// List ventas por tienda, estado y rango de fechas. Un vendedor solo ve su tienda.
func (uc *SaleUseCase) List(ctx context.Context, actor Actor, f repository.SaleFilter) (*dto.SaleListResponse, error) {
	if actor.Role == entity.RoleVendedor {
		f.StoreID = actor.StoreID
	}
	list, total, err := uc.saleRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSaleResponse(s))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: total},
	}, nil
}

// Void anula una venta completada y devuelve las unidades al stock (movimiento DEVOLUCION).
func (uc *SaleUseCase) Void(ctx context.Context, actor Actor, id string) (*dto.SaleResponse, error) {
	var sale *entity.Sale
	err := uc.txRunner.RunSales(ctx, func(
		movRepo repository.InventoryMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		_ repository.CartRepository,
	) error {
		var err error
		sale, err = saleRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if actor.Role == entity.RoleVendedor && sale.StoreID != actor.StoreID {
			return domain.ErrForbidden
		}
		if sale.Status != entity.SaleStatusCompleted {
			return fmt.Errorf("venta %s: %w", sale.Status, domain.ErrInvalidState)
		}
		now := time.Now()
		for _, item := range sale.Items {
			product, err := productRepo.GetForUpdate(ctx, item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("producto %s: %w", item.ProductID, domain.ErrNotFound)
			}
			if err := appinv.EntryInTx(ctx, movRepo, stockRepo, productRepo, product, appinv.Line{
				TransactionID: sale.ID,
				ProductID:     item.ProductID,
				StoreID:       sale.StoreID,
				Type:          entity.MovementTypeRETURN,
				Quantity:      item.Quantity,
				UnitCost:      product.Cost,
				Reference:     "anulación venta " + sale.ID,
				UserID:        actor.UserID,
				Now:           now,
			}); err != nil {
				return err
			}
		}
		sale.Status = entity.SaleStatusVoided
		sale.UpdatedAt = now
		return saleRepo.UpdateStatus(ctx, sale.ID, sale.Status)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("sale_id", sale.ID).Str("user_id", actor.UserID).Msg("venta anulada")
	return toSaleResponse(sale), nil
}

// prepareSale valida tienda, método de pago y líneas fuera de la tx (solo lectura).
func (uc *SaleUseCase) prepareSale(ctx context.Context, actor Actor, storeID, payment string, lines []dto.SaleItemRequest) (*entity.Sale, error) {
	if len(lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if payment == "" {
		payment = entity.PaymentCash
	}
	if !entity.ValidPaymentMethod(payment) {
		return nil, domain.ErrInvalidInput
	}
	store, err := uc.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("tienda %s: %w", storeID, domain.ErrNotFound)
	}
	if !store.Active {
		return nil, fmt.Errorf("tienda inactiva: %w", domain.ErrInvalidInput)
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		StoreID:       storeID,
		UserID:        actor.UserID,
		PaymentMethod: payment,
		Total:         decimal.Zero,
		Status:        entity.SaleStatusCompleted,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, l := range lines {
		if l.ProductID == "" || !l.Quantity.IsPositive() || l.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(ctx, l.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("producto %s: %w", l.ProductID, domain.ErrNotFound)
		}
		price := l.UnitPrice
		if price.IsZero() {
			price = product.Price
		}
		sale.AddItem(l.ProductID, l.Quantity, price)
	}
	return sale, nil
}

// persistSaleInTx descuenta stock por línea (movimiento VENTA, transaction_id = venta)
// y guarda cabecera y líneas. Cualquier error hace rollback de todo.
func persistSaleInTx(
	ctx context.Context,
	movRepo repository.InventoryMovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	sale *entity.Sale,
) error {
	for _, item := range sale.Items {
		product, err := productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("producto %s: %w", item.ProductID, domain.ErrNotFound)
		}
		if err := appinv.ExitInTx(ctx, movRepo, stockRepo, product, appinv.Line{
			TransactionID: sale.ID,
			ProductID:     item.ProductID,
			StoreID:       sale.StoreID,
			Type:          entity.MovementTypeSALE,
			Quantity:      item.Quantity,
			Reference:     "venta " + sale.ID,
			UserID:        sale.UserID,
			Now:           sale.CreatedAt,
		}); err != nil {
			return err
		}
	}
	return saleRepo.Create(ctx, sale)
}

// resolveStore aplica la restricción de tienda del vendedor.
func resolveStore(actor Actor, requested string) (string, error) {
	if actor.Role != entity.RoleVendedor {
		if requested == "" {
			return "", domain.ErrInvalidInput
		}
		return requested, nil
	}
	if actor.StoreID == "" {
		return "", domain.ErrForbidden
	}
	if requested != "" && requested != actor.StoreID {
		return "", domain.ErrForbidden
	}
	return actor.StoreID, nil
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.SaleItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	return &dto.SaleResponse{
		ID:            s.ID,
		StoreID:       s.StoreID,
		UserID:        s.UserID,
		CustomerName:  s.CustomerName,
		PaymentMethod: s.PaymentMethod,
		Total:         s.Total,
		Status:        s.Status,
		CartID:        s.CartID,
		Items:         items,
		CreatedAt:     s.CreatedAt,
	}
}
