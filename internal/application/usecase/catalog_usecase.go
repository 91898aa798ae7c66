package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/textil-api/internal/domain/entity"
	"github.com/jhoicas/textil-api/internal/domain/repository"
)

// catalogPageSize tamaño de página al recorrer el catálogo completo.
const catalogPageSize = 100

// CatalogUseCase feed XML de productos visibles en la web.
type CatalogUseCase struct {
	products repository.ProductRepository
	stock    repository.StockRepository
	web      *WebConfigUseCase
	builder  CatalogFeedBuilder
}

func NewCatalogUseCase(products repository.ProductRepository, stock repository.StockRepository, web *WebConfigUseCase, builder CatalogFeedBuilder) *CatalogUseCase {
	return &CatalogUseCase{products: products, stock: stock, web: web, builder: builder}
}

// Feed genera el XML con todos los productos activos y visibles y su disponibilidad.
func (uc *CatalogUseCase) Feed(ctx context.Context) ([]byte, error) {
	cfg, err := uc.web.Current(ctx)
	if err != nil {
		return nil, err
	}
	active := true
	var all []*entity.Product
	for offset := 0; ; offset += catalogPageSize {
		page, total, err := uc.products.List(ctx, repository.ProductFilter{
			ListFilter: repository.ListFilter{Active: &active, Limit: catalogPageSize, Offset: offset},
			WebOnly:    true,
		})
		if err != nil {
			return nil, fmt.Errorf("catálogo: %w", err)
		}
		all = append(all, page...)
		if len(page) < catalogPageSize || len(all) >= total {
			break
		}
	}
	inStock := make(map[string]bool, len(all))
	for _, p := range all {
		qty, err := uc.stock.TotalQuantity(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("catálogo: existencias de %s: %w", p.SKU, err)
		}
		inStock[p.ID] = qty.IsPositive()
	}
	return uc.builder.Build(cfg, all, inStock)
}
