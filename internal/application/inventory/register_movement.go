package inventory

import (
	"context"
	"strings"

	"github.com/jhoicas/textil-api/internal/application/dto"
	"github.com/jhoicas/textil-api/internal/domain"
	"github.com/jhoicas/textil-api/internal/domain/entity"
)

// RegisterMovementFromRequest adapta el body de POST /api/inventario/movimientos.
// Los traslados tienen su propio endpoint y aquí se rechazan.
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.MovementResult, error) {
	typ := strings.ToUpper(strings.TrimSpace(in.Type))
	if typ != entity.MovementTypeIN && typ != entity.MovementTypeOUT && typ != entity.MovementTypeADJUSTMENT {
		return nil, domain.ErrInvalidInput
	}
	txID, err := uc.RegisterMovement(ctx, MovementInputDTO{
		UserID:    userID,
		ProductID: in.ProductID,
		StoreID:   in.StoreID,
		Type:      typ,
		Quantity:  in.Quantity,
		UnitCost:  in.UnitCost,
		Reference: in.Reference,
	})
	if err != nil {
		return nil, err
	}
	return &dto.MovementResult{TransactionID: txID}, nil
}

// TransferFromRequest adapta el body de POST /api/traslados.
func (uc *RegisterMovementUseCase) TransferFromRequest(ctx context.Context, userID string, in dto.TransferRequest) (*dto.MovementResult, error) {
	txID, err := uc.RegisterMovement(ctx, MovementInputDTO{
		UserID:      userID,
		ProductID:   in.ProductID,
		FromStoreID: in.FromStoreID,
		ToStoreID:   in.ToStoreID,
		Type:        entity.MovementTypeTRANSFER,
		Quantity:    in.Quantity,
		Reference:   in.Reference,
	})
	if err != nil {
		return nil, err
	}
	return &dto.MovementResult{TransactionID: txID}, nil
}
