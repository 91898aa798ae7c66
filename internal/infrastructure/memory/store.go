// Package memory implementa los puertos de persistencia en memoria. Lo usan las pruebas
// de los casos de uso y los ejemplos; no reemplaza a PostgreSQL en producción.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/textil-api/internal/application/inventory"
	"github.com/jhoicas/textil-api/internal/application/production"
	"github.com/jhoicas/textil-api/internal/application/sales"
	"github.com/jhoicas/textil-api/internal/application/usecase"
	"github.com/jhoicas/textil-api/internal/domain/entity"
	"github.com/jhoicas/textil-api/internal/domain/repository"
)

var (
	_ inventory.TxRunner     = (*Store)(nil)
	_ production.TxRunner    = (*Store)(nil)
	_ sales.TxRunner         = (*Store)(nil)
	_ usecase.FabricTxRunner = (*Store)(nil)
)

type stockKey struct{ product, store string }

type data struct {
	products     map[string]entity.Product
	stores       map[string]entity.Store
	stock        map[stockKey]entity.Stock
	movements    []entity.InventoryMovement
	sales        map[string]entity.Sale
	carts        map[string]entity.Cart
	jobs         map[string]entity.Job
	fabrics      map[string]entity.Fabric
	params       map[string]entity.FabricParams
	seamstresses map[string]entity.Seamstress
	users        map[string]entity.User
	suppliers    map[string]entity.Supplier
	webConfig    *entity.WebConfig
}

// Store guarda todas las tablas. Las transacciones se serializan y, si fn falla,
// se restaura la copia tomada al inicio.
type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex
	d    data
}

// New crea un almacén vacío.
func New() *Store {
	return &Store{d: data{
		products:     map[string]entity.Product{},
		stores:       map[string]entity.Store{},
		stock:        map[stockKey]entity.Stock{},
		sales:        map[string]entity.Sale{},
		carts:        map[string]entity.Cart{},
		jobs:         map[string]entity.Job{},
		fabrics:      map[string]entity.Fabric{},
		params:       map[string]entity.FabricParams{},
		seamstresses: map[string]entity.Seamstress{},
		users:        map[string]entity.User{},
		suppliers:    map[string]entity.Supplier{},
	}}
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (d data) clone() data {
	return data{
		products:     copyMap(d.products),
		stores:       copyMap(d.stores),
		stock:        copyMap(d.stock),
		movements:    append([]entity.InventoryMovement(nil), d.movements...),
		sales:        copyMap(d.sales),
		carts:        copyMap(d.carts),
		jobs:         copyMap(d.jobs),
		fabrics:      copyMap(d.fabrics),
		params:       copyMap(d.params),
		seamstresses: copyMap(d.seamstresses),
		users:        copyMap(d.users),
		suppliers:    copyMap(d.suppliers),
		webConfig:    d.webConfig,
	}
}

func (s *Store) inTx(fn func() error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.d.clone()
	s.mu.Unlock()

	if err := fn(); err != nil {
		s.mu.Lock()
		s.d = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// Run transacción del motor de inventario.
func (s *Store) Run(_ context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
) error) error {
	return s.inTx(func() error {
		return fn(s.Movements(), s.Stock(), s.Products())
	})
}

// RunProduction transacción de trabajos.
func (s *Store) RunProduction(_ context.Context, fn func(
	jobRepo repository.JobRepository,
	fabricRepo repository.FabricRepository,
	movRepo repository.InventoryMovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
) error) error {
	return s.inTx(func() error {
		return fn(s.Jobs(), s.Fabrics(), s.Movements(), s.Stock(), s.Products())
	})
}

// RunSales transacción de ventas y carritos.
func (s *Store) RunSales(_ context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	cartRepo repository.CartRepository,
) error) error {
	return s.inTx(func() error {
		return fn(s.Movements(), s.Stock(), s.Products(), s.Sales(), s.Carts())
	})
}

// RunFabric transacción de stock de telas.
func (s *Store) RunFabric(_ context.Context, fn func(fabrics repository.FabricRepository) error) error {
	return s.inTx(func() error {
		return fn(s.Fabrics())
	})
}

// page ordena por clave, aplica limit/offset y devuelve el total antes de paginar.
func page[T any](items []T, key func(T) string, limit, offset int) ([]T, int) {
	sort.Slice(items, func(i, j int) bool { return key(items[i]) < key(items[j]) })
	total := len(items)
	if offset > total {
		offset = total
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items, total
}

func matches(f repository.ListFilter, name string, active bool) bool {
	if f.Query != "" && !strings.Contains(strings.ToLower(name), strings.ToLower(f.Query)) {
		return false
	}
	return f.Active == nil || *f.Active == active
}

func ptr[T any](v T) *T { return &v }
