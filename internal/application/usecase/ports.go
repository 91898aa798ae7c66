package usecase

import (
	"context"

	"github.com/jhoicas/textil-api/internal/domain/entity"
	"github.com/jhoicas/textil-api/internal/domain/repository"
)

// FabricTxRunner ejecuta cambios de stock de tela dentro de una transacción.
type FabricTxRunner interface {
	RunFabric(ctx context.Context, fn func(fabrics repository.FabricRepository) error) error
}

// CatalogFeedBuilder serializa el catálogo web (implementado con etree en infraestructura).
type CatalogFeedBuilder interface {
	// inStock indica por id de producto si hay existencias en alguna tienda.
	Build(cfg *entity.WebConfig, products []*entity.Product, inStock map[string]bool) ([]byte, error)
}
