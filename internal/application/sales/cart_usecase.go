package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/textil-api/internal/application/dto"
	"github.com/jhoicas/textil-api/internal/domain"
	"github.com/jhoicas/textil-api/internal/domain/entity"
	"github.com/jhoicas/textil-api/internal/domain/repository"
	"github.com/jhoicas/textil-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// CartUseCase pedidos de clientes: se crean desde la tienda web y se convierten en venta.
type CartUseCase struct {
	txRunner    TxRunner
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	sales       *SaleUseCase
	log         *logger.Logger
}

// NewCartUseCase construye el caso de uso. Reutiliza SaleUseCase para armar la venta.
func NewCartUseCase(
	txRunner TxRunner,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	sales *SaleUseCase,
	log *logger.Logger,
) *CartUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &CartUseCase{
		txRunner:    txRunner,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		sales:       sales,
		log:         log.Named("carritos"),
	}
}

// Create registra un pedido público. Los precios salen del catálogo, nunca del cliente.
func (uc *CartUseCase) Create(ctx context.Context, in dto.CreateCartRequest) (*dto.CartResponse, error) {
	name := strings.TrimSpace(in.CustomerName)
	if name == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if strings.TrimSpace(in.CustomerPhone) == "" && strings.TrimSpace(in.CustomerEmail) == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	cart := &entity.Cart{
		ID:            uuid.New().String(),
		CustomerName:  name,
		CustomerPhone: strings.TrimSpace(in.CustomerPhone),
		CustomerEmail: strings.TrimSpace(in.CustomerEmail),
		Address:       strings.TrimSpace(in.Address),
		Notes:         in.Notes,
		Total:         decimal.Zero,
		Status:        entity.CartStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, it := range in.Items {
		if it.ProductID == "" || !it.Quantity.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || !product.Active || !product.WebVisible {
			return nil, fmt.Errorf("producto %s no disponible: %w", it.ProductID, domain.ErrInvalidInput)
		}
		cart.Items = append(cart.Items, entity.CartItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: product.Price,
		})
		cart.Total = cart.Total.Add(it.Quantity.Mul(product.Price))
	}

	err := uc.txRunner.RunSales(ctx, func(
		_ repository.InventoryMovementRepository,
		_ repository.StockRepository,
		_ repository.ProductRepository,
		_ repository.SaleRepository,
		cartRepo repository.CartRepository,
	) error {
		return cartRepo.Create(ctx, cart)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("cart_id", cart.ID).Str("total", cart.Total.String()).Msg("pedido web recibido")
	return toCartResponse(cart), nil
}

// GetByID obtiene un carrito; nil si no existe.
func (uc *CartUseCase) GetByID(ctx context.Context, id string) (*dto.CartResponse, error) {
	cart, err := uc.cartRepo.GetByID(ctx, id)
	if err != nil || cart == nil {
		return nil, err
	}
	return toCartResponse(cart), nil
}

// List carritos por estado.
func (uc *CartUseCase) List(ctx context.Context, status string, limit, offset int) (*dto.CartListResponse, error) {
	list, total, err := uc.cartRepo.List(ctx, status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CartResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCartResponse(c))
	}
	return &dto.CartListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// Checkout convierte un carrito pendiente en venta de la tienda indicada,
// con las mismas reglas de stock que una venta directa.
func (uc *CartUseCase) Checkout(ctx context.Context, actor Actor, id string, in dto.CheckoutCartRequest) (*dto.CartResponse, error) {
	storeID, err := resolveStore(actor, in.StoreID)
	if err != nil {
		return nil, err
	}
	current, err := uc.cartRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	if current.Status != entity.CartStatusPending {
		return nil, fmt.Errorf("carrito %s: %w", current.Status, domain.ErrInvalidState)
	}
	lines := make([]dto.SaleItemRequest, 0, len(current.Items))
	for _, it := range current.Items {
		lines = append(lines, dto.SaleItemRequest{ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}
	sale, err := uc.sales.prepareSale(ctx, actor, storeID, in.PaymentMethod, lines)
	if err != nil {
		return nil, err
	}
	sale.CustomerName = current.CustomerName
	sale.CartID = current.ID

	var cart *entity.Cart
	err = uc.txRunner.RunSales(ctx, func(
		movRepo repository.InventoryMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		cartRepo repository.CartRepository,
	) error {
		var err error
		cart, err = cartRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if cart == nil {
			return domain.ErrNotFound
		}
		// Otro checkout pudo ganar entre la lectura y el bloqueo
		if cart.Status != entity.CartStatusPending {
			return fmt.Errorf("carrito %s: %w", cart.Status, domain.ErrInvalidState)
		}
		if err := persistSaleInTx(ctx, movRepo, stockRepo, productRepo, saleRepo, sale); err != nil {
			return err
		}
		cart.Status = entity.CartStatusCompleted
		cart.SaleID = sale.ID
		cart.UpdatedAt = time.Now()
		return cartRepo.Update(ctx, cart)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("cart_id", cart.ID).Str("sale_id", sale.ID).Str("store_id", storeID).Msg("carrito convertido en venta")
	return toCartResponse(cart), nil
}

// Cancel cancela un carrito pendiente.
func (uc *CartUseCase) Cancel(ctx context.Context, id string) (*dto.CartResponse, error) {
	var cart *entity.Cart
	err := uc.txRunner.RunSales(ctx, func(
		_ repository.InventoryMovementRepository,
		_ repository.StockRepository,
		_ repository.ProductRepository,
		_ repository.SaleRepository,
		cartRepo repository.CartRepository,
	) error {
		var err error
		cart, err = cartRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if cart == nil {
			return domain.ErrNotFound
		}
		if cart.Status != entity.CartStatusPending {
			return fmt.Errorf("carrito %s: %w", cart.Status, domain.ErrInvalidState)
		}
		cart.Status = entity.CartStatusCanceled
		cart.UpdatedAt = time.Now()
		return cartRepo.Update(ctx, cart)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("cart_id", cart.ID).Msg("carrito cancelado")
	return toCartResponse(cart), nil
}

func toCartResponse(c *entity.Cart) *dto.CartResponse {
	items := make([]dto.CartItemResponse, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, dto.CartItemResponse{ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}
	return &dto.CartResponse{
		ID:            c.ID,
		CustomerName:  c.CustomerName,
		CustomerPhone: c.CustomerPhone,
		CustomerEmail: c.CustomerEmail,
		Address:       c.Address,
		Notes:         c.Notes,
		Total:         c.Total,
		Status:        c.Status,
		SaleID:        c.SaleID,
		Items:         items,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
