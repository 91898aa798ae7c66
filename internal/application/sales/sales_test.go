package sales_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/textil-api/internal/application/dto"
	"github.com/jhoicas/textil-api/internal/application/sales"
	"github.com/jhoicas/textil-api/internal/domain"
	"github.com/jhoicas/textil-api/internal/domain/entity"
	"github.com/jhoicas/textil-api/internal/domain/repository"
	"github.com/jhoicas/textil-api/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "esperado %s, obtenido %s", want, got)
}

var (
	admin    = sales.Actor{UserID: "a1", Role: entity.RoleAdmin}
	vendedor = sales.Actor{UserID: "v1", Role: entity.RoleVendedor, StoreID: "centro"}
)

type env struct {
	db    *memory.Store
	sales *sales.SaleUseCase
	carts *sales.CartUseCase
}

func newEnv(t *testing.T) env {
	t.Helper()
	ctx := context.Background()
	db := memory.New()
	require.NoError(t, db.Stores().Create(ctx, &entity.Store{ID: "centro", Name: "Centro", Active: true}))
	require.NoError(t, db.Stores().Create(ctx, &entity.Store{ID: "norte", Name: "Norte", Active: true}))
	require.NoError(t, db.Stores().Create(ctx, &entity.Store{ID: "cerrada", Name: "Cerrada"}))
	require.NoError(t, db.Products().Create(ctx, &entity.Product{ID: "p1", SKU: "CAM-M", Name: "Camiseta", Price: dec("30000"), Cost: dec("12000"), Active: true, WebVisible: true}))
	require.NoError(t, db.Products().Create(ctx, &entity.Product{ID: "p2", SKU: "PAN-32", Name: "Pantalón", Price: dec("80000"), Cost: dec("35000"), Active: true}))
	for _, st := range []entity.Stock{
		{ProductID: "p1", StoreID: "centro", Quantity: dec("10")},
		{ProductID: "p2", StoreID: "centro", Quantity: dec("1")},
		{ProductID: "p1", StoreID: "norte", Quantity: dec("4")},
	} {
		require.NoError(t, db.Stock().Upsert(ctx, &st))
	}
	saleUC := sales.NewSaleUseCase(db, db.Sales(), db.Products(), db.Stores(), nil)
	return env{
		db:    db,
		sales: saleUC,
		carts: sales.NewCartUseCase(db, db.Carts(), db.Products(), saleUC, nil),
	}
}

func (e env) stock(t *testing.T, product, store string) decimal.Decimal {
	t.Helper()
	st, err := e.db.Stock().Get(context.Background(), product, store)
	require.NoError(t, err)
	require.NotNil(t, st)
	return st.Quantity
}

func TestCreateSale_DescuentaStockConPrecioDeCatalogo(t *testing.T) {
	e := newEnv(t)

	sale, err := e.sales.Create(context.Background(), admin, dto.CreateSaleRequest{
		StoreID: "centro",
		Items:   []dto.SaleItemRequest{{ProductID: "p1", Quantity: dec("3")}},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.SaleStatusCompleted, sale.Status)
	assert.Equal(t, entity.PaymentCash, sale.PaymentMethod)
	assertDec(t, "90000", sale.Total)
	assertDec(t, "7", e.stock(t, "p1", "centro"))

	movs := e.db.MovementsByTransaction(sale.ID)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeSALE, movs[0].Type)
	assertDec(t, "-3", movs[0].Quantity)
	assertDec(t, "12000", movs[0].UnitCost)
}

func TestCreateSale_LineaSinStockRevierteTodaLaVenta(t *testing.T) {
	e := newEnv(t)

	_, err := e.sales.Create(context.Background(), admin, dto.CreateSaleRequest{
		StoreID: "centro",
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: dec("2")},
			{ProductID: "p2", Quantity: dec("2")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assertDec(t, "10", e.stock(t, "p1", "centro"))
	assertDec(t, "1", e.stock(t, "p2", "centro"))
	assert.Zero(t, e.db.MovementCount())

	list, err := e.sales.List(context.Background(), admin, repository.SaleFilter{Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestCreateSale_RestriccionesDeTiendaYValidaciones(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	item := []dto.SaleItemRequest{{ProductID: "p1", Quantity: dec("1")}}

	_, err := e.sales.Create(ctx, vendedor, dto.CreateSaleRequest{StoreID: "norte", Items: item})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	sale, err := e.sales.Create(ctx, vendedor, dto.CreateSaleRequest{Items: item, PaymentMethod: entity.PaymentCard})
	require.NoError(t, err)
	assert.Equal(t, "centro", sale.StoreID)

	_, err = e.sales.Create(ctx, sales.Actor{UserID: "v2", Role: entity.RoleVendedor}, dto.CreateSaleRequest{Items: item})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = e.sales.Create(ctx, admin, dto.CreateSaleRequest{Items: item})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.sales.Create(ctx, admin, dto.CreateSaleRequest{StoreID: "centro", Items: item, PaymentMethod: "bitcoin"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.sales.Create(ctx, admin, dto.CreateSaleRequest{StoreID: "cerrada", Items: item})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.sales.Create(ctx, admin, dto.CreateSaleRequest{StoreID: "centro"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestVoidSale_DevuelveStock(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	sale, err := e.sales.Create(ctx, admin, dto.CreateSaleRequest{
		StoreID: "norte",
		Items:   []dto.SaleItemRequest{{ProductID: "p1", Quantity: dec("4"), UnitPrice: dec("25000")}},
	})
	require.NoError(t, err)
	assertDec(t, "100000", sale.Total)
	assertDec(t, "0", e.stock(t, "p1", "norte"))

	_, err = e.sales.Void(ctx, vendedor, sale.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	voided, err := e.sales.Void(ctx, admin, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusVoided, voided.Status)
	assertDec(t, "4", e.stock(t, "p1", "norte"))

	_, err = e.sales.Void(ctx, admin, sale.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = e.sales.Void(ctx, admin, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListSales_VendedorSoloVeSuTienda(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	for _, store := range []string{"centro", "norte"} {
		_, err := e.sales.Create(ctx, admin, dto.CreateSaleRequest{
			StoreID: store, Items: []dto.SaleItemRequest{{ProductID: "p1", Quantity: dec("1")}},
		})
		require.NoError(t, err)
	}

	all, err := e.sales.List(ctx, admin, repository.SaleFilter{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)

	own, err := e.sales.List(ctx, vendedor, repository.SaleFilter{StoreID: "norte", Limit: 10})
	require.NoError(t, err)
	require.Len(t, own.Items, 1)
	assert.Equal(t, "centro", own.Items[0].StoreID)
}

func TestCreateCart_PreciosDelCatalogoYProductosWeb(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	cart, err := e.carts.Create(ctx, dto.CreateCartRequest{
		CustomerName: " Ana ", CustomerPhone: "3001234567",
		Items: []dto.CartItemRequest{{ProductID: "p1", Quantity: dec("2")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana", cart.CustomerName)
	assert.Equal(t, entity.CartStatusPending, cart.Status)
	assertDec(t, "60000", cart.Total)
	assertDec(t, "30000", cart.Items[0].UnitPrice)

	_, err = e.carts.Create(ctx, dto.CreateCartRequest{
		CustomerName: "Ana", CustomerPhone: "300",
		Items: []dto.CartItemRequest{{ProductID: "p2", Quantity: dec("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.carts.Create(ctx, dto.CreateCartRequest{
		CustomerName: "Ana",
		Items:        []dto.CartItemRequest{{ProductID: "p1", Quantity: dec("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCheckoutCart_GeneraVentaUnaSolaVez(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	cart, err := e.carts.Create(ctx, dto.CreateCartRequest{
		CustomerName: "Ana", CustomerEmail: "ana@correo.co",
		Items: []dto.CartItemRequest{{ProductID: "p1", Quantity: dec("3")}},
	})
	require.NoError(t, err)

	done, err := e.carts.Checkout(ctx, vendedor, cart.ID, dto.CheckoutCartRequest{PaymentMethod: entity.PaymentTransfer})
	require.NoError(t, err)
	assert.Equal(t, entity.CartStatusCompleted, done.Status)
	require.NotEmpty(t, done.SaleID)
	assertDec(t, "7", e.stock(t, "p1", "centro"))

	sale, err := e.sales.GetByID(ctx, done.SaleID)
	require.NoError(t, err)
	require.NotNil(t, sale)
	assert.Equal(t, cart.ID, sale.CartID)
	assert.Equal(t, "Ana", sale.CustomerName)
	assertDec(t, "90000", sale.Total)

	_, err = e.carts.Checkout(ctx, vendedor, cart.ID, dto.CheckoutCartRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = e.carts.Cancel(ctx, cart.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestCheckoutCart_SinStockQuedaPendiente(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	cart, err := e.carts.Create(ctx, dto.CreateCartRequest{
		CustomerName: "Luis", CustomerPhone: "311",
		Items: []dto.CartItemRequest{{ProductID: "p1", Quantity: dec("5")}},
	})
	require.NoError(t, err)

	_, err = e.carts.Checkout(ctx, admin, cart.ID, dto.CheckoutCartRequest{StoreID: "norte"})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	current, err := e.carts.GetByID(ctx, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.CartStatusPending, current.Status)
	assert.Empty(t, current.SaleID)
	assertDec(t, "4", e.stock(t, "p1", "norte"))
}

func TestCancelCart(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	cart, err := e.carts.Create(ctx, dto.CreateCartRequest{
		CustomerName: "Luis", CustomerPhone: "311",
		Items: []dto.CartItemRequest{{ProductID: "p1", Quantity: dec("1")}},
	})
	require.NoError(t, err)

	canceled, err := e.carts.Cancel(ctx, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.CartStatusCanceled, canceled.Status)

	pending, err := e.carts.List(ctx, entity.CartStatusPending, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, pending.Items)

	_, err = e.carts.Cancel(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
