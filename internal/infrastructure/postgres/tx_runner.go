package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/textil-api/internal/application/inventory"
	"github.com/jhoicas/textil-api/internal/application/production"
	"github.com/jhoicas/textil-api/internal/application/sales"
	"github.com/jhoicas/textil-api/internal/application/usecase"
	"github.com/jhoicas/textil-api/internal/domain/repository"
)

var (
	_ inventory.TxRunner     = (*TxRunner)(nil)
	_ production.TxRunner    = (*TxRunner)(nil)
	_ sales.TxRunner         = (*TxRunner)(nil)
	_ usecase.FabricTxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// inTx abre la transacción, ejecuta fn y hace Commit; Rollback si fn falla o hay panic.
func (r *TxRunner) inTx(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Run transacción del motor de inventario.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
) error) error {
	return r.inTx(ctx, func(q Querier) error {
		return fn(NewInventoryMovementRepository(q), NewStockRepository(q), NewProductRepository(q))
	})
}

// RunProduction transacción de trabajos: tela, trabajo y stock de la tienda destino.
func (r *TxRunner) RunProduction(ctx context.Context, fn func(
	jobRepo repository.JobRepository,
	fabricRepo repository.FabricRepository,
	movRepo repository.InventoryMovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
) error) error {
	return r.inTx(ctx, func(q Querier) error {
		return fn(
			NewJobRepository(q),
			NewFabricRepository(q),
			NewInventoryMovementRepository(q),
			NewStockRepository(q),
			NewProductRepository(q),
		)
	})
}

// RunSales transacción de ventas y carritos.
func (r *TxRunner) RunSales(ctx context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	cartRepo repository.CartRepository,
) error) error {
	return r.inTx(ctx, func(q Querier) error {
		return fn(
			NewInventoryMovementRepository(q),
			NewStockRepository(q),
			NewProductRepository(q),
			NewSaleRepository(q),
			NewCartRepository(q),
		)
	})
}

// RunFabric transacción de compras de tela.
func (r *TxRunner) RunFabric(ctx context.Context, fn func(fabrics repository.FabricRepository) error) error {
	return r.inTx(ctx, func(q Querier) error {
		return fn(NewFabricRepository(q))
	})
}
