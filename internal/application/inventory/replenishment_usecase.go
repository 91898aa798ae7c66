package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/textil-api/internal/application/dto"
	"github.com/jhoicas/textil-api/internal/domain"
	"github.com/jhoicas/textil-api/internal/domain/repository"
	"github.com/jhoicas/textil-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// ReplenishmentUseCase genera la lista de reposición de una tienda.
// Combina stock bajo el mínimo con el historial de ventas para priorizar qué producir.
type ReplenishmentUseCase struct {
	stockRepo  repository.StockRepository
	reportRepo repository.ReportRepository
	log        *logger.Logger
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(stockRepo repository.StockRepository, reportRepo repository.ReportRepository, log *logger.Logger) *ReplenishmentUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ReplenishmentUseCase{stockRepo: stockRepo, reportRepo: reportRepo, log: log.Named("reposicion")}
}

// GenerateReplenishmentList devuelve los productos en o bajo su mínimo con la cantidad
// sugerida y un ranking de prioridad basado en margen histórico y volumen de ventas.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context, storeID string) ([]dto.ReplenishmentSuggestionDTO, error) {
	if storeID == "" {
		return nil, domain.ErrInvalidInput
	}
	// 1. Filas en o bajo el mínimo
	lines, err := uc.stockRepo.ListByStore(ctx, storeID, true)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	// 2. Ventas de la tienda en los últimos 90 días, sin recorte; un error aquí solo quita el ranking por ventas
	end := time.Now()
	start := end.AddDate(0, 0, -90)
	sold, err := uc.reportRepo.TopProducts(ctx, start, end, storeID, 0)
	if err != nil {
		uc.log.Warn().Err(err).Str("store_id", storeID).Msg("ventas no disponibles, se prioriza por margen de catálogo")
		sold = nil
	}
	byID := make(map[string]repository.TopProductResult, len(sold))
	for _, m := range sold {
		byID[m.ProductID] = m
	}

	hundred := decimal.NewFromInt(100)
	factor := decimal.NewFromFloat(1.5)

	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(lines))
	for _, l := range lines {
		ideal := l.MinQuantity.Mul(factor).Ceil()
		qty := ideal.Sub(l.Quantity)
		if qty.IsNegative() {
			qty = decimal.Zero
		}
		var margin, units decimal.Decimal
		if m, ok := byID[l.ProductID]; ok {
			units = m.Units
			if m.Revenue.IsPositive() {
				margin = m.Margin.Div(m.Revenue).Mul(hundred).Round(2)
			}
		} else if l.Price.IsPositive() {
			// Sin historial: margen estimado por precio y costo
			margin = l.Price.Sub(l.UnitCost).Div(l.Price).Mul(hundred).Round(2)
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:        l.ProductID,
			SKU:              l.SKU,
			ProductName:      l.ProductName,
			CurrentStock:     l.Quantity,
			MinQuantity:      l.MinQuantity,
			IdealStock:       ideal,
			SuggestedQty:     qty,
			UnitsSoldLast90d: units,
			GrossMarginPct:   margin,
		})
	}

	// 3. Mayor margen, luego mayor volumen, luego mayor déficit
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if !a.GrossMarginPct.Equal(b.GrossMarginPct) {
			return a.GrossMarginPct.GreaterThan(b.GrossMarginPct)
		}
		if !a.UnitsSoldLast90d.Equal(b.UnitsSoldLast90d) {
			return a.UnitsSoldLast90d.GreaterThan(b.UnitsSoldLast90d)
		}
		return a.MinQuantity.Sub(a.CurrentStock).GreaterThan(b.MinQuantity.Sub(b.CurrentStock))
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
