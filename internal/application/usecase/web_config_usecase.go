package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/textil-api/internal/application/dto"
	"github.com/jhoicas/textil-api/internal/domain"
	"github.com/jhoicas/textil-api/internal/domain/entity"
	"github.com/jhoicas/textil-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// DefaultCurrency moneda usada mientras no se configure otra.
const DefaultCurrency = "COP"

// WebConfigUseCase lectura y escritura de la configuración del sitio.
type WebConfigUseCase struct {
	repo repository.WebConfigRepository
}

func NewWebConfigUseCase(repo repository.WebConfigRepository) *WebConfigUseCase {
	return &WebConfigUseCase{repo: repo}
}

// Get devuelve la configuración guardada o una por defecto si nunca se guardó.
func (uc *WebConfigUseCase) Get(ctx context.Context) (*dto.WebConfigResponse, error) {
	cfg, err := uc.Current(ctx)
	if err != nil {
		return nil, err
	}
	return toWebConfigResponse(cfg), nil
}

// Current igual que Get pero devuelve la entidad (feed de catálogo).
func (uc *WebConfigUseCase) Current(ctx context.Context) (*entity.WebConfig, error) {
	cfg, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = &entity.WebConfig{ShippingCost: decimal.Zero, Currency: DefaultCurrency}
	}
	return cfg, nil
}

// Save reemplaza la configuración completa.
func (uc *WebConfigUseCase) Save(ctx context.Context, in dto.WebConfigRequest) (*dto.WebConfigResponse, error) {
	if in.ShippingCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = DefaultCurrency
	}
	if len(currency) != 3 {
		return nil, domain.ErrInvalidInput
	}
	cfg := &entity.WebConfig{
		SiteName:     strings.TrimSpace(in.SiteName),
		SiteURL:      strings.TrimRight(strings.TrimSpace(in.SiteURL), "/"),
		ContactEmail: strings.TrimSpace(in.ContactEmail),
		WhatsApp:     strings.TrimSpace(in.WhatsApp),
		Instagram:    strings.TrimSpace(in.Instagram),
		BannerText:   in.BannerText,
		ShippingCost: in.ShippingCost,
		Currency:     currency,
		UpdatedAt:    time.Now(),
	}
	if err := uc.repo.Save(ctx, cfg); err != nil {
		return nil, err
	}
	return toWebConfigResponse(cfg), nil
}

func toWebConfigResponse(c *entity.WebConfig) *dto.WebConfigResponse {
	return &dto.WebConfigResponse{
		SiteName:     c.SiteName,
		SiteURL:      c.SiteURL,
		ContactEmail: c.ContactEmail,
		WhatsApp:     c.WhatsApp,
		Instagram:    c.Instagram,
		BannerText:   c.BannerText,
		ShippingCost: c.ShippingCost,
		Currency:     c.Currency,
		UpdatedAt:    c.UpdatedAt,
	}
}
