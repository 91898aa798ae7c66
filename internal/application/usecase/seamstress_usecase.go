package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/textil-api/internal/application/dto"
	"github.com/jhoicas/textil-api/internal/domain"
	"github.com/jhoicas/textil-api/internal/domain/entity"
	"github.com/jhoicas/textil-api/internal/domain/repository"
)

// SeamstressUseCase CRUD de costureros.
type SeamstressUseCase struct {
	repo repository.SeamstressRepository
}

func NewSeamstressUseCase(repo repository.SeamstressRepository) *SeamstressUseCase {
	return &SeamstressUseCase{repo: repo}
}

func (uc *SeamstressUseCase) Create(ctx context.Context, in dto.CreateSeamstressRequest) (*dto.SeamstressResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.RatePerPiece.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	s := &entity.Seamstress{
		ID:           uuid.New().String(),
		Name:         name,
		DocumentID:   strings.TrimSpace(in.DocumentID),
		Phone:        strings.TrimSpace(in.Phone),
		Address:      strings.TrimSpace(in.Address),
		RatePerPiece: in.RatePerPiece,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toSeamstressResponse(s), nil
}

func (uc *SeamstressUseCase) GetByID(ctx context.Context, id string) (*dto.SeamstressResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil || s == nil {
		return nil, err
	}
	return toSeamstressResponse(s), nil
}

// Update cambia datos y tarifa. La tarifa de trabajos ya creados no se modifica.
func (uc *SeamstressUseCase) Update(ctx context.Context, id string, in dto.UpdateSeamstressRequest) (*dto.SeamstressResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil || s == nil {
		return nil, err
	}
	if in.Name != nil {
		if trimPtr(in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		s.Name = trimPtr(in.Name)
	}
	if in.DocumentID != nil {
		s.DocumentID = trimPtr(in.DocumentID)
	}
	if in.Phone != nil {
		s.Phone = trimPtr(in.Phone)
	}
	if in.Address != nil {
		s.Address = trimPtr(in.Address)
	}
	if in.RatePerPiece != nil {
		if in.RatePerPiece.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		s.RatePerPiece = *in.RatePerPiece
	}
	if in.Active != nil {
		s.Active = *in.Active
	}
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return toSeamstressResponse(s), nil
}

func (uc *SeamstressUseCase) List(ctx context.Context, f repository.ListFilter) (*dto.SeamstressListResponse, error) {
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SeamstressResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSeamstressResponse(s))
	}
	return &dto.SeamstressListResponse{Items: items, Page: pageOf(f, total)}, nil
}

func (uc *SeamstressUseCase) Delete(ctx context.Context, id string) error {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func toSeamstressResponse(s *entity.Seamstress) *dto.SeamstressResponse {
	return &dto.SeamstressResponse{
		ID:           s.ID,
		Name:         s.Name,
		DocumentID:   s.DocumentID,
		Phone:        s.Phone,
		Address:      s.Address,
		RatePerPiece: s.RatePerPiece,
		Active:       s.Active,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
