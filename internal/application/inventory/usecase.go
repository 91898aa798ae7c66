package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/textil-api/internal/domain"
	"github.com/jhoicas/textil-api/internal/domain/entity"
	"github.com/jhoicas/textil-api/internal/domain/repository"
	"github.com/jhoicas/textil-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// RegisterMovementUseCase registra movimientos de inventario de forma transaccional
// (ENTRADA, SALIDA, AJUSTE, TRASLADO) con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	storeRepo   repository.StoreRepository
	log         *logger.Logger
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
	log *logger.Logger,
) *RegisterMovementUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &RegisterMovementUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		storeRepo:   storeRepo,
		log:         log.Named("inventario"),
	}
}

// MovementInputDTO entrada para registrar un movimiento de inventario.
// Para ENTRADA/SALIDA/AJUSTE: ProductID, StoreID, Type, Quantity; UnitCost obligatorio en ENTRADA.
// Para TRASLADO: ProductID, FromStoreID, ToStoreID, Type=TRASLADO, Quantity.
type MovementInputDTO struct {
	UserID      string
	ProductID   string
	StoreID     string
	FromStoreID string
	ToStoreID   string
	Type        string
	Quantity    decimal.Decimal
	UnitCost    *decimal.Decimal
	Reference   string
}

// RegisterMovement valida la entrada, abre la transacción, aplica la lógica según el tipo
// y devuelve el transaction_id común a los movimientos creados.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInputDTO) (string, error) {
	if err := validateMovement(input); err != nil {
		return "", err
	}

	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return "", err
	}
	if product == nil {
		return "", fmt.Errorf("producto %s: %w", input.ProductID, domain.ErrNotFound)
	}
	stores := []string{input.StoreID}
	if input.Type == entity.MovementTypeTRANSFER {
		stores = []string{input.FromStoreID, input.ToStoreID}
	}
	for _, id := range stores {
		st, err := uc.storeRepo.GetByID(ctx, id)
		if err != nil {
			return "", err
		}
		if st == nil {
			return "", fmt.Errorf("tienda %s: %w", id, domain.ErrNotFound)
		}
	}

	now := time.Now()
	txID := uuid.New().String()

	// TxRunner.Run hace Commit si fn retorna nil y Rollback en cualquier otro caso
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error {
		// costo vigente, leído con bloqueo
		product, err := productRepo.GetForUpdate(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("producto %s: %w", input.ProductID, domain.ErrNotFound)
		}
		line := Line{
			TransactionID: txID,
			ProductID:     input.ProductID,
			StoreID:       input.StoreID,
			Type:          input.Type,
			Quantity:      input.Quantity,
			Reference:     input.Reference,
			UserID:        input.UserID,
			Now:           now,
		}
		switch input.Type {
		case entity.MovementTypeIN:
			line.UnitCost = *input.UnitCost
			return EntryInTx(ctx, movRepo, stockRepo, productRepo, product, line)
		case entity.MovementTypeOUT:
			return ExitInTx(ctx, movRepo, stockRepo, product, line)
		case entity.MovementTypeADJUSTMENT:
			return doAdjustment(ctx, movRepo, stockRepo, productRepo, product, line, input.UnitCost)
		case entity.MovementTypeTRANSFER:
			return doTransfer(ctx, movRepo, stockRepo, product, input, line)
		}
		return domain.ErrInvalidInput
	})
	if err != nil {
		return "", err
	}
	uc.log.Info().
		Str("transaction_id", txID).
		Str("type", input.Type).
		Str("product_id", input.ProductID).
		Str("quantity", input.Quantity.String()).
		Msg("movimiento registrado")
	return txID, nil
}

func validateMovement(input MovementInputDTO) error {
	switch input.Type {
	case entity.MovementTypeIN, entity.MovementTypeOUT, entity.MovementTypeADJUSTMENT:
		if input.ProductID == "" || input.StoreID == "" || input.Quantity.IsZero() {
			return domain.ErrInvalidInput
		}
		if input.Type == entity.MovementTypeIN && (input.UnitCost == nil || input.UnitCost.IsNegative()) {
			return domain.ErrInvalidInput
		}
		if input.Type != entity.MovementTypeADJUSTMENT && input.Quantity.IsNegative() {
			return domain.ErrInvalidInput
		}
		if input.UnitCost != nil && input.UnitCost.IsNegative() {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeTRANSFER:
		if input.ProductID == "" || input.FromStoreID == "" || input.ToStoreID == "" {
			return domain.ErrInvalidInput
		}
		if input.FromStoreID == input.ToStoreID || !input.Quantity.IsPositive() {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

// doAdjustment: positivo como entrada (al costo indicado o al promedio vigente), negativo como salida.
func doAdjustment(
	ctx context.Context,
	movRepo repository.InventoryMovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	product *entity.Product,
	line Line,
	unitCost *decimal.Decimal,
) error {
	if line.Quantity.IsPositive() {
		line.UnitCost = product.Cost
		if unitCost != nil {
			line.UnitCost = *unitCost
		}
		return EntryInTx(ctx, movRepo, stockRepo, productRepo, product, line)
	}
	line.Quantity = line.Quantity.Neg()
	return ExitInTx(ctx, movRepo, stockRepo, product, line)
}

// doTransfer resta de la tienda origen y suma en la destino con dos movimientos TRASLADO.
// Las filas se bloquean en orden de store_id para que dos traslados cruzados no se bloqueen mutuamente.
func doTransfer(
	ctx context.Context,
	movRepo repository.InventoryMovementRepository,
	stockRepo repository.StockRepository,
	product *entity.Product,
	input MovementInputDTO,
	line Line,
) error {
	first, second := input.FromStoreID, input.ToStoreID
	if second < first {
		first, second = second, first
	}
	locked := make(map[string]*entity.Stock, 2)
	for _, id := range []string{first, second} {
		s, err := stockRepo.GetForUpdate(ctx, input.ProductID, id)
		if err != nil {
			return err
		}
		locked[id] = s
	}
	origin, dest := locked[input.FromStoreID], locked[input.ToStoreID]
	if origin.Quantity.LessThan(input.Quantity) {
		return fmt.Errorf("%s: disponible %s, solicitado %s: %w",
			product.SKU, origin.Quantity.String(), input.Quantity.String(), domain.ErrInsufficientStock)
	}
	origin.Quantity = origin.Quantity.Sub(input.Quantity)
	dest.Quantity = dest.Quantity.Add(input.Quantity)
	origin.UpdatedAt = line.Now
	dest.UpdatedAt = line.Now
	if err := stockRepo.Upsert(ctx, origin); err != nil {
		return err
	}
	if err := stockRepo.Upsert(ctx, dest); err != nil {
		return err
	}
	for _, m := range []struct {
		store string
		qty   decimal.Decimal
	}{
		{input.FromStoreID, input.Quantity.Neg()},
		{input.ToStoreID, input.Quantity},
	} {
		mov := &entity.InventoryMovement{
			TransactionID: line.TransactionID,
			ProductID:     input.ProductID,
			StoreID:       m.store,
			Type:          entity.MovementTypeTRANSFER,
			Quantity:      m.qty,
			UnitCost:      product.Cost,
			TotalCost:     m.qty.Mul(product.Cost),
			Reference:     input.Reference,
			CreatedAt:     line.Now,
			CreatedBy:     input.UserID,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
	}
	return nil
}
