//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/textil-api/internal/application/inventory"
	"github.com/jhoicas/textil-api/internal/domain"
	"github.com/jhoicas/textil-api/internal/domain/entity"
	"github.com/jhoicas/textil-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startDB levanta PostgreSQL en un contenedor y aplica las migraciones.
func startDB(t *testing.T) *TxRunner {
	t.Helper()
	ctx := context.Background()

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("textil"),
		tcpostgres.WithUsername("textil"),
		tcpostgres.WithPassword("textil"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(ctr) })

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	pool, err := NewPoolFromDSN(ctx, dsn, 5)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	runner := NewTxRunner(pool)
	applied, err := Migrate(ctx, runner)
	require.NoError(t, err)
	require.NotEmpty(t, applied)

	again, err := Migrate(ctx, runner)
	require.NoError(t, err)
	assert.Empty(t, again, "las migraciones ya aplicadas no se repiten")
	return runner
}

func seedProductAndStore(t *testing.T, q Querier) (*entity.Product, *entity.Store) {
	t.Helper()
	ctx := context.Background()
	now := time.Now()
	st := &entity.Store{ID: uuid.NewString(), Name: "Centro", Active: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, NewStoreRepository(q).Create(ctx, st))
	p := &entity.Product{
		ID: uuid.NewString(), SKU: "CAM-" + uuid.NewString()[:8], Name: "Camiseta básica",
		Price: decimal.NewFromInt(35000), MetersPerPiece: decimal.RequireFromString("0.8"),
		Active: true, WebVisible: true, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, NewProductRepository(q).Create(ctx, p))
	return p, st
}

func TestIntegration_CatalogosYDuplicados(t *testing.T) {
	runner := startDB(t)
	ctx := context.Background()
	q := runner.pool

	p, _ := seedProductAndStore(t, q)
	products := NewProductRepository(q)

	dup := *p
	dup.ID = uuid.NewString()
	assert.ErrorIs(t, products.Create(ctx, &dup), domain.ErrDuplicate)

	got, err := products.GetBySKU(ctx, p.SKU)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Price.Equal(p.Price))

	missing, err := products.GetByID(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, missing)

	list, total, err := products.List(ctx, repository.ProductFilter{
		ListFilter: repository.ListFilter{Query: "camiseta", Limit: 10},
		WebOnly:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, list, 1)

	now := time.Now()
	sup := &entity.Supplier{ID: uuid.NewString(), Name: "Hilos SAS", Active: true, CreatedAt: now, UpdatedAt: now}
	suppliers := NewSupplierRepository(q)
	require.NoError(t, suppliers.Create(ctx, sup))
	fab := &entity.Fabric{ID: uuid.NewString(), SupplierID: sup.ID, Name: "Jersey", Active: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, NewFabricRepository(q).Create(ctx, fab))

	has, err := suppliers.HasFabrics(ctx, sup.ID)
	require.NoError(t, err)
	assert.True(t, has)
	assert.ErrorIs(t, suppliers.Delete(ctx, sup.ID), domain.ErrConflict)

	// editar el precio por kg lo persiste sin tocar el stock
	fabrics := NewFabricRepository(q)
	require.NoError(t, fabrics.UpdateStock(ctx, fab.ID, decimal.NewFromInt(20), decimal.NewFromInt(10000)))
	fab.PricePerKg = decimal.NewFromInt(12500)
	fab.UpdatedAt = time.Now()
	require.NoError(t, fabrics.Update(ctx, fab))
	gotFab, err := fabrics.GetByID(ctx, fab.ID)
	require.NoError(t, err)
	require.NotNil(t, gotFab)
	assert.True(t, gotFab.PricePerKg.Equal(decimal.NewFromInt(12500)))
	assert.True(t, gotFab.StockKg.Equal(decimal.NewFromInt(20)))
}

func TestIntegration_IdsQueNoSonUUID(t *testing.T) {
	runner := startDB(t)
	ctx := context.Background()
	q := runner.pool

	p, err := NewProductRepository(q).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, p)

	_, _, err = NewSaleRepository(q).List(ctx, repository.SaleFilter{StoreID: "x", Limit: 10})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, NewProductRepository(q).Delete(ctx, "abc"), domain.ErrNotFound)
}

func TestIntegration_MovimientosYTraslados(t *testing.T) {
	runner := startDB(t)
	ctx := context.Background()
	q := runner.pool

	p, origin := seedProductAndStore(t, q)
	now := time.Now()
	dest := &entity.Store{ID: uuid.NewString(), Name: "Norte", Active: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, NewStoreRepository(q).Create(ctx, dest))

	uc := inventory.NewRegisterMovementUseCase(runner, NewProductRepository(q), NewStoreRepository(q), nil)
	cost := decimal.NewFromInt(12000)
	_, err := uc.RegisterMovement(ctx, inventory.MovementInputDTO{
		ProductID: p.ID, StoreID: origin.ID, Type: entity.MovementTypeIN,
		Quantity: decimal.NewFromInt(10), UnitCost: &cost,
	})
	require.NoError(t, err)

	txID, err := uc.RegisterMovement(ctx, inventory.MovementInputDTO{
		ProductID: p.ID, FromStoreID: origin.ID, ToStoreID: dest.ID, Type: entity.MovementTypeTRANSFER,
		Quantity: decimal.NewFromInt(4),
	})
	require.NoError(t, err)

	_, err = uc.RegisterMovement(ctx, inventory.MovementInputDTO{
		ProductID: p.ID, StoreID: dest.ID, Type: entity.MovementTypeOUT, Quantity: decimal.NewFromInt(5),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	stock := NewStockRepository(q)
	o, err := stock.Get(ctx, p.ID, origin.ID)
	require.NoError(t, err)
	d, err := stock.Get(ctx, p.ID, dest.ID)
	require.NoError(t, err)
	assert.True(t, o.Quantity.Equal(decimal.NewFromInt(6)))
	assert.True(t, d.Quantity.Equal(decimal.NewFromInt(4)))

	transfers, err := NewInventoryMovementRepository(q).ListTransfers(ctx, repository.DateRange{}, 10, 0)
	require.NoError(t, err)
	require.Len(t, transfers, 1)
	assert.Equal(t, txID, transfers[0].TransactionID)
	assert.Equal(t, origin.ID, transfers[0].FromStoreID)
	assert.Equal(t, dest.ID, transfers[0].ToStoreID)

	require.NoError(t, stock.SetMinimum(ctx, &entity.Stock{ProductID: p.ID, StoreID: dest.ID, MinQuantity: decimal.NewFromInt(5)}))
	low, err := stock.ListByStore(ctx, dest.ID, true)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.True(t, low[0].Quantity.Equal(decimal.NewFromInt(4)), "fijar el mínimo no altera la cantidad")

	n, err := NewReportRepository(q).CountLowStock(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// el costo promedio pondera el stock de todas las tiendas: (10×12000 + 10×19000) / 20
	cost = decimal.NewFromInt(19000)
	_, err = uc.RegisterMovement(ctx, inventory.MovementInputDTO{
		ProductID: p.ID, StoreID: dest.ID, Type: entity.MovementTypeIN,
		Quantity: decimal.NewFromInt(10), UnitCost: &cost,
	})
	require.NoError(t, err)
	products := NewProductRepository(q)
	got, err := products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Cost.Equal(decimal.NewFromInt(15500)), "costo %s", got.Cost)

	// un borrado rechazado por movimientos no pierde los mínimos configurados
	empty := &entity.Store{ID: uuid.NewString(), Name: "Sur", Active: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, NewStoreRepository(q).Create(ctx, empty))
	require.NoError(t, stock.SetMinimum(ctx, &entity.Stock{ProductID: p.ID, StoreID: empty.ID, MinQuantity: decimal.NewFromInt(2)}))
	assert.ErrorIs(t, products.Delete(ctx, p.ID), domain.ErrConflict)
	kept, err := stock.Get(ctx, p.ID, empty.ID)
	require.NoError(t, err)
	assert.True(t, kept.MinQuantity.Equal(decimal.NewFromInt(2)))
}

func TestIntegration_WebConfigRegistroUnico(t *testing.T) {
	runner := startDB(t)
	ctx := context.Background()
	repo := NewWebConfigRepository(runner.pool)

	cfg, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, cfg)

	require.NoError(t, repo.Save(ctx, &entity.WebConfig{SiteName: "A", Currency: "COP", UpdatedAt: time.Now()}))
	require.NoError(t, repo.Save(ctx, &entity.WebConfig{SiteName: "B", Currency: "USD", UpdatedAt: time.Now()}))

	cfg, err = repo.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "B", cfg.SiteName)
	assert.Equal(t, "USD", cfg.Currency)
}
