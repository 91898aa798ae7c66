package inventory_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/textil-api/internal/application/dto"
	"github.com/jhoicas/textil-api/internal/application/inventory"
	"github.com/jhoicas/textil-api/internal/domain"
	"github.com/jhoicas/textil-api/internal/domain/entity"
	"github.com/jhoicas/textil-api/internal/domain/repository"
	"github.com/jhoicas/textil-api/internal/infrastructure/memory"
	"github.com/jhoicas/textil-api/pkg/logger"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "esperado %s, obtenido %s", want, got)
}

type fixture struct {
	db  *memory.Store
	uc  *inventory.RegisterMovementUseCase
	q   *inventory.QueryUseCase
	ctx context.Context
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := memory.New()
	ctx := context.Background()
	require.NoError(t, db.Products().Create(ctx, &entity.Product{ID: "p1", SKU: "CAM-M", Name: "Camiseta M", Price: dec("30000"), Active: true}))
	require.NoError(t, db.Stores().Create(ctx, &entity.Store{ID: "centro", Name: "Centro", Active: true}))
	require.NoError(t, db.Stores().Create(ctx, &entity.Store{ID: "norte", Name: "Norte", Active: true}))
	return fixture{
		db:  db,
		uc:  inventory.NewRegisterMovementUseCase(db, db.Products(), db.Stores(), nil),
		q:   inventory.NewQueryUseCase(db.Stock(), db.Movements(), db.Products(), db.Stores()),
		ctx: ctx,
	}
}

func (f fixture) stock(t *testing.T, store string) decimal.Decimal {
	t.Helper()
	s, err := f.db.Stock().Get(f.ctx, "p1", store)
	require.NoError(t, err)
	if s == nil {
		return decimal.Zero
	}
	return s.Quantity
}

func (f fixture) cost(t *testing.T) decimal.Decimal {
	t.Helper()
	p, err := f.db.Products().GetByID(f.ctx, "p1")
	require.NoError(t, err)
	return p.Cost
}

func (f fixture) entry(t *testing.T, store, qty, cost string) {
	t.Helper()
	_, err := f.uc.RegisterMovement(f.ctx, inventory.MovementInputDTO{
		UserID: "u1", ProductID: "p1", StoreID: store, Type: entity.MovementTypeIN,
		Quantity: dec(qty), UnitCost: decPtr(cost),
	})
	require.NoError(t, err)
}

func TestEntrada_RecalculaCostoPromedio(t *testing.T) {
	f := newFixture(t)

	f.entry(t, "centro", "10", "100")
	assertDec(t, "100", f.cost(t))

	f.entry(t, "centro", "10", "200")
	assertDec(t, "150", f.cost(t))
	assertDec(t, "20", f.stock(t, "centro"))
}

func TestEntrada_CostoPromedioPonderaTodasLasTiendas(t *testing.T) {
	f := newFixture(t)

	f.entry(t, "centro", "100", "10")
	f.entry(t, "norte", "10", "20")

	// (100×10 + 10×20) / 110
	assertDec(t, "10.9091", f.cost(t))
	assertDec(t, "100", f.stock(t, "centro"))
	assertDec(t, "10", f.stock(t, "norte"))
}

func TestEntrada_ConcurrentesEnDistintasTiendasNoPierdenCosto(t *testing.T) {
	f := newFixture(t)

	var wg sync.WaitGroup
	for _, e := range []struct{ store, qty, cost string }{
		{"centro", "10", "100"},
		{"norte", "30", "200"},
	} {
		e := e
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.RegisterMovement(f.ctx, inventory.MovementInputDTO{
				UserID: "u1", ProductID: "p1", StoreID: e.store, Type: entity.MovementTypeIN,
				Quantity: dec(e.qty), UnitCost: decPtr(e.cost),
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// (10×100 + 30×200) / 40, sin importar el orden
	assertDec(t, "175", f.cost(t))
}

func TestSalida_StockInsuficienteNoModificaNada(t *testing.T) {
	f := newFixture(t)
	f.entry(t, "centro", "3", "100")
	before := f.db.MovementCount()

	_, err := f.uc.RegisterMovement(f.ctx, inventory.MovementInputDTO{
		UserID: "u1", ProductID: "p1", StoreID: "centro", Type: entity.MovementTypeOUT, Quantity: dec("5"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assertDec(t, "3", f.stock(t, "centro"))
	assert.Equal(t, before, f.db.MovementCount())
}

func TestSalida_RegistraCantidadNegativaAlCostoPromedio(t *testing.T) {
	f := newFixture(t)
	f.entry(t, "centro", "10", "100")

	txID, err := f.uc.RegisterMovement(f.ctx, inventory.MovementInputDTO{
		UserID: "u1", ProductID: "p1", StoreID: "centro", Type: entity.MovementTypeOUT, Quantity: dec("4"),
	})
	require.NoError(t, err)

	movs := f.db.MovementsByTransaction(txID)
	require.Len(t, movs, 1)
	assertDec(t, "-4", movs[0].Quantity)
	assertDec(t, "100", movs[0].UnitCost)
	assertDec(t, "-400", movs[0].TotalCost)
	assertDec(t, "6", f.stock(t, "centro"))
	assertDec(t, "100", f.cost(t))
}

func TestAjuste_PositivoYNegativo(t *testing.T) {
	f := newFixture(t)
	f.entry(t, "centro", "5", "80")

	_, err := f.uc.RegisterMovement(f.ctx, inventory.MovementInputDTO{
		UserID: "u1", ProductID: "p1", StoreID: "centro", Type: entity.MovementTypeADJUSTMENT, Quantity: dec("2"),
	})
	require.NoError(t, err)
	assertDec(t, "7", f.stock(t, "centro"))
	assertDec(t, "80", f.cost(t))

	_, err = f.uc.RegisterMovement(f.ctx, inventory.MovementInputDTO{
		UserID: "u1", ProductID: "p1", StoreID: "centro", Type: entity.MovementTypeADJUSTMENT, Quantity: dec("-3"),
	})
	require.NoError(t, err)
	assertDec(t, "4", f.stock(t, "centro"))

	_, err = f.uc.RegisterMovement(f.ctx, inventory.MovementInputDTO{
		UserID: "u1", ProductID: "p1", StoreID: "centro", Type: entity.MovementTypeADJUSTMENT, Quantity: dec("-10"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assertDec(t, "4", f.stock(t, "centro"))
}

func TestTraslado_MueveStockConDosMovimientos(t *testing.T) {
	f := newFixture(t)
	f.entry(t, "centro", "10", "100")

	res, err := f.uc.TransferFromRequest(f.ctx, "u1", dto.TransferRequest{
		ProductID: "p1", FromStoreID: "centro", ToStoreID: "norte", Quantity: dec("4"),
	})
	require.NoError(t, err)

	assertDec(t, "6", f.stock(t, "centro"))
	assertDec(t, "4", f.stock(t, "norte"))
	movs := f.db.MovementsByTransaction(res.TransactionID)
	require.Len(t, movs, 2)
	total := movs[0].Quantity.Add(movs[1].Quantity)
	assert.True(t, total.IsZero())
	for _, m := range movs {
		assert.Equal(t, entity.MovementTypeTRANSFER, m.Type)
	}

	transfers, err := f.q.Transfers(f.ctx, repository.DateRange{}, 10, 0)
	require.NoError(t, err)
	require.Len(t, transfers, 1)
	assert.Equal(t, "centro", transfers[0].FromStoreID)
	assert.Equal(t, "norte", transfers[0].ToStoreID)
	assertDec(t, "4", transfers[0].Quantity)
}

func TestTraslado_InsuficienteHaceRollback(t *testing.T) {
	f := newFixture(t)
	f.entry(t, "centro", "2", "100")

	_, err := f.uc.TransferFromRequest(f.ctx, "u1", dto.TransferRequest{
		ProductID: "p1", FromStoreID: "centro", ToStoreID: "norte", Quantity: dec("3"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assertDec(t, "2", f.stock(t, "centro"))
	assertDec(t, "0", f.stock(t, "norte"))
}

func TestRegisterMovement_Validaciones(t *testing.T) {
	f := newFixture(t)
	cases := []struct {
		name string
		in   inventory.MovementInputDTO
		want error
	}{
		{"entrada sin costo", inventory.MovementInputDTO{ProductID: "p1", StoreID: "centro", Type: entity.MovementTypeIN, Quantity: dec("1")}, domain.ErrInvalidInput},
		{"cantidad cero", inventory.MovementInputDTO{ProductID: "p1", StoreID: "centro", Type: entity.MovementTypeOUT, Quantity: decimal.Zero}, domain.ErrInvalidInput},
		{"salida negativa", inventory.MovementInputDTO{ProductID: "p1", StoreID: "centro", Type: entity.MovementTypeOUT, Quantity: dec("-1")}, domain.ErrInvalidInput},
		{"traslado misma tienda", inventory.MovementInputDTO{ProductID: "p1", FromStoreID: "centro", ToStoreID: "centro", Type: entity.MovementTypeTRANSFER, Quantity: dec("1")}, domain.ErrInvalidInput},
		{"tipo desconocido", inventory.MovementInputDTO{ProductID: "p1", StoreID: "centro", Type: "REGALO", Quantity: dec("1")}, domain.ErrInvalidInput},
		{"producto inexistente", inventory.MovementInputDTO{ProductID: "nope", StoreID: "centro", Type: entity.MovementTypeOUT, Quantity: dec("1")}, domain.ErrNotFound},
		{"tienda inexistente", inventory.MovementInputDTO{ProductID: "p1", StoreID: "sur", Type: entity.MovementTypeOUT, Quantity: dec("1")}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.RegisterMovement(f.ctx, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestRegisterMovementFromRequest_RechazaTraslado(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.RegisterMovementFromRequest(f.ctx, "u1", dto.RegisterMovementRequest{
		ProductID: "p1", StoreID: "centro", Type: "traslado", Quantity: dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	res, err := f.uc.RegisterMovementFromRequest(f.ctx, "u1", dto.RegisterMovementRequest{
		ProductID: "p1", StoreID: "centro", Type: " entrada ", Quantity: dec("2"), UnitCost: decPtr("50"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.TransactionID)
	assertDec(t, "2", f.stock(t, "centro"))
}

func TestSalidasConcurrentes_NoVendenMasDeLoQueHay(t *testing.T) {
	f := newFixture(t)
	f.entry(t, "centro", "5", "100")

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.RegisterMovement(f.ctx, inventory.MovementInputDTO{
				UserID: "u1", ProductID: "p1", StoreID: "centro", Type: entity.MovementTypeOUT, Quantity: dec("1"),
			})
			if err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, ok)
	assertDec(t, "0", f.stock(t, "centro"))
}

func TestStoreInventory_ValorizaYMarcaBajos(t *testing.T) {
	f := newFixture(t)
	f.entry(t, "centro", "4", "100")
	require.NoError(t, f.q.SetMinimum(f.ctx, dto.SetMinimumRequest{ProductID: "p1", StoreID: "centro", MinQuantity: dec("5")}))

	inv, err := f.q.StoreInventory(f.ctx, "centro", false)
	require.NoError(t, err)
	require.Len(t, inv.Items, 1)
	assert.True(t, inv.Items[0].Low)
	assertDec(t, "4", inv.Items[0].Quantity)
	assertDec(t, "400", inv.TotalValue)

	_, err = f.q.StoreInventory(f.ctx, "sur", false)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMovements_FiltraPorTipo(t *testing.T) {
	f := newFixture(t)
	f.entry(t, "centro", "4", "100")
	_, err := f.uc.RegisterMovement(f.ctx, inventory.MovementInputDTO{
		UserID: "u1", ProductID: "p1", StoreID: "centro", Type: entity.MovementTypeOUT, Quantity: dec("1"),
	})
	require.NoError(t, err)

	out, err := f.q.Movements(f.ctx, repository.MovementFilter{StoreID: "centro", Type: entity.MovementTypeOUT, Limit: 10})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assertDec(t, "-1", out[0].Quantity)
	assert.WithinDuration(t, time.Now(), out[0].CreatedAt, time.Minute)
}

type reportStub struct {
	repository.ReportRepository
	top      []repository.TopProductResult
	err      error
	gotStore *string
	gotLimit *int
}

func (r reportStub) TopProducts(_ context.Context, _, _ time.Time, storeID string, limit int) ([]repository.TopProductResult, error) {
	if r.gotStore != nil {
		*r.gotStore = storeID
	}
	if r.gotLimit != nil {
		*r.gotLimit = limit
	}
	return r.top, r.err
}

func TestReplenishment_OrdenaPorMargen(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Products().Create(f.ctx, &entity.Product{ID: "p2", SKU: "PAN-32", Name: "Pantalón", Price: dec("80000"), Active: true}))
	f.entry(t, "centro", "2", "20000")
	_, err := f.uc.RegisterMovement(f.ctx, inventory.MovementInputDTO{
		UserID: "u1", ProductID: "p2", StoreID: "centro", Type: entity.MovementTypeIN, Quantity: dec("1"), UnitCost: decPtr("40000"),
	})
	require.NoError(t, err)
	require.NoError(t, f.q.SetMinimum(f.ctx, dto.SetMinimumRequest{ProductID: "p1", StoreID: "centro", MinQuantity: dec("4")}))
	require.NoError(t, f.q.SetMinimum(f.ctx, dto.SetMinimumRequest{ProductID: "p2", StoreID: "centro", MinQuantity: dec("2")}))

	var gotStore string
	gotLimit := -1
	uc := inventory.NewReplenishmentUseCase(f.db.Stock(), reportStub{top: []repository.TopProductResult{
		{ProductID: "p2", Units: dec("10"), Revenue: dec("800000"), Margin: dec("400000")},
	}, gotStore: &gotStore, gotLimit: &gotLimit}, nil)
	list, err := uc.GenerateReplenishmentList(f.ctx, "centro")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "centro", gotStore)
	assert.Equal(t, 0, gotLimit)

	// p1: (30000-20000)/30000 = 33.33%; p2: 400000/800000 = 50%
	assert.Equal(t, "p2", list[0].ProductID)
	assert.Equal(t, 1, list[0].Priority)
	assertDec(t, "50", list[0].GrossMarginPct)
	assertDec(t, "3", list[0].IdealStock)
	assertDec(t, "2", list[0].SuggestedQty)
	assertDec(t, "33.33", list[1].GrossMarginPct)
	assertDec(t, "6", list[1].IdealStock)
	assertDec(t, "4", list[1].SuggestedQty)

	_, err = uc.GenerateReplenishmentList(f.ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReplenishment_SinVentasUsaMargenDeCatalogoYRegistraAviso(t *testing.T) {
	f := newFixture(t)
	f.entry(t, "centro", "1", "20000")
	require.NoError(t, f.q.SetMinimum(f.ctx, dto.SetMinimumRequest{ProductID: "p1", StoreID: "centro", MinQuantity: dec("4")}))

	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Out: &buf})
	uc := inventory.NewReplenishmentUseCase(f.db.Stock(), reportStub{
		top: []repository.TopProductResult{{ProductID: "p1", Units: dec("99"), Revenue: dec("1"), Margin: dec("1")}},
		err: errors.New("conexión perdida"),
	}, log)

	list, err := uc.GenerateReplenishmentList(f.ctx, "centro")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].UnitsSoldLast90d.IsZero())
	assertDec(t, "33.33", list[0].GrossMarginPct)
	assert.Contains(t, buf.String(), "conexión perdida")
	assert.Contains(t, buf.String(), `"store_id":"centro"`)
}
