package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/textil-api/internal/application/dto"
	"github.com/jhoicas/textil-api/internal/domain"
	"github.com/jhoicas/textil-api/internal/domain/entity"
	"github.com/jhoicas/textil-api/internal/domain/repository"
)

// FabricParamsUseCase CRUD de parámetros físicos de tela con rendimiento derivado.
type FabricParamsUseCase struct {
	repo    repository.FabricParamsRepository
	fabrics repository.FabricRepository
}

// NewFabricParamsUseCase construye el caso de uso.
func NewFabricParamsUseCase(repo repository.FabricParamsRepository, fabrics repository.FabricRepository) *FabricParamsUseCase {
	return &FabricParamsUseCase{repo: repo, fabrics: fabrics}
}

// Create registra un juego de parámetros para una tela existente.
func (uc *FabricParamsUseCase) Create(ctx context.Context, in dto.CreateFabricParamsRequest) (*dto.FabricParamsResponse, error) {
	if in.FabricID == "" {
		return nil, domain.ErrInvalidInput
	}
	fabric, err := uc.fabrics.GetByID(ctx, in.FabricID)
	if err != nil {
		return nil, err
	}
	if fabric == nil {
		return nil, fmt.Errorf("tela %s: %w", in.FabricID, domain.ErrNotFound)
	}
	now := time.Now()
	p := &entity.FabricParams{
		ID:           uuid.New().String(),
		FabricID:     in.FabricID,
		WidthCm:      in.WidthCm,
		Tubular:      in.Tubular,
		WeightGSM:    in.WeightGSM,
		ShrinkagePct: in.ShrinkagePct,
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if !p.Physical().Validate() {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toFabricParamsResponse(p), nil
}

// GetByID obtiene un juego de parámetros; nil si no existe.
func (uc *FabricParamsUseCase) GetByID(ctx context.Context, id string) (*dto.FabricParamsResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	return toFabricParamsResponse(p), nil
}

// Update modifica medidas o notas y vuelve a validar el conjunto.
func (uc *FabricParamsUseCase) Update(ctx context.Context, id string, in dto.UpdateFabricParamsRequest) (*dto.FabricParamsResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	if in.WidthCm != nil {
		p.WidthCm = *in.WidthCm
	}
	if in.Tubular != nil {
		p.Tubular = *in.Tubular
	}
	if in.WeightGSM != nil {
		p.WeightGSM = *in.WeightGSM
	}
	if in.ShrinkagePct != nil {
		p.ShrinkagePct = *in.ShrinkagePct
	}
	if in.Notes != nil {
		p.Notes = *in.Notes
	}
	if !p.Physical().Validate() {
		return nil, domain.ErrInvalidInput
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toFabricParamsResponse(p), nil
}

// List lista parámetros, opcionalmente de una tela.
func (uc *FabricParamsUseCase) List(ctx context.Context, fabricID string, limit, offset int) (*dto.FabricParamsListResponse, error) {
	list, total, err := uc.repo.List(ctx, fabricID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.FabricParamsResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toFabricParamsResponse(p))
	}
	return &dto.FabricParamsListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// Delete elimina parámetros; si un trabajo los referencia el repositorio devuelve ErrConflict.
func (uc *FabricParamsUseCase) Delete(ctx context.Context, id string) error {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func toFabricParamsResponse(p *entity.FabricParams) *dto.FabricParamsResponse {
	phys := p.Physical()
	return &dto.FabricParamsResponse{
		ID:            p.ID,
		FabricID:      p.FabricID,
		WidthCm:       p.WidthCm,
		Tubular:       p.Tubular,
		WeightGSM:     p.WeightGSM,
		ShrinkagePct:  p.ShrinkagePct,
		Notes:         p.Notes,
		YieldMPerKg:   phys.YieldMetersPerKg(),
		UsableWidthCm: phys.UsableWidthCm(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
