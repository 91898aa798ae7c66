package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/textil-api/internal/application/dto"
	"github.com/jhoicas/textil-api/internal/application/usecase"
	"github.com/jhoicas/textil-api/internal/domain"
	"github.com/jhoicas/textil-api/internal/domain/entity"
	"github.com/jhoicas/textil-api/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "esperado %s, obtenido %s", want, got)
}

func TestFabricPurchase_PromedioPonderadoPorKilo(t *testing.T) {
	db := memory.New()
	ctx := context.Background()
	suppliers := usecase.NewSupplierUseCase(db.Suppliers())
	fabrics := usecase.NewFabricUseCase(db.Fabrics(), db.Suppliers(), db, nil)

	sup, err := suppliers.Create(ctx, dto.CreateSupplierRequest{Name: "Hilos del Valle"})
	require.NoError(t, err)

	_, err = fabrics.Create(ctx, dto.CreateFabricRequest{SupplierID: "nope", Name: "Jersey"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	f, err := fabrics.Create(ctx, dto.CreateFabricRequest{SupplierID: sup.ID, Name: " Jersey ", PricePerKg: dec("9000")})
	require.NoError(t, err)
	assert.Equal(t, "Jersey", f.Name)
	assertDec(t, "0", f.StockKg)

	// Sin stock previo el precio es el de la compra
	f, err = fabrics.Purchase(ctx, f.ID, dto.FabricPurchaseRequest{Kg: dec("10"), PricePerKg: dec("10000")})
	require.NoError(t, err)
	assertDec(t, "10", f.StockKg)
	assertDec(t, "10000", f.PricePerKg)

	f, err = fabrics.Purchase(ctx, f.ID, dto.FabricPurchaseRequest{Kg: dec("30"), PricePerKg: dec("12000")})
	require.NoError(t, err)
	assertDec(t, "40", f.StockKg)
	assertDec(t, "11500", f.PricePerKg)

	_, err = fabrics.Purchase(ctx, f.ID, dto.FabricPurchaseRequest{Kg: decimal.Zero, PricePerKg: dec("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = fabrics.Purchase(ctx, "nope", dto.FabricPurchaseRequest{Kg: dec("1"), PricePerKg: dec("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Un proveedor con telas no se elimina
	assert.ErrorIs(t, suppliers.Delete(ctx, sup.ID), domain.ErrConflict)
}

func TestStoreDelete_ConStockEsConflicto(t *testing.T) {
	db := memory.New()
	ctx := context.Background()
	stores := usecase.NewStoreUseCase(db.Stores())

	st, err := stores.Create(ctx, dto.CreateStoreRequest{Name: "Centro"})
	require.NoError(t, err)
	require.NoError(t, db.Stock().Upsert(ctx, &entity.Stock{ProductID: "p1", StoreID: st.ID, Quantity: dec("2")}))

	assert.ErrorIs(t, stores.Delete(ctx, st.ID), domain.ErrConflict)

	require.NoError(t, db.Stock().Upsert(ctx, &entity.Stock{ProductID: "p1", StoreID: st.ID, Quantity: decimal.Zero}))
	require.NoError(t, stores.Delete(ctx, st.ID))
	assert.ErrorIs(t, stores.Delete(ctx, st.ID), domain.ErrNotFound)
}

func TestUserUpdate_VendedorNecesitaTienda(t *testing.T) {
	db := memory.New()
	ctx := context.Background()
	require.NoError(t, db.Users().Create(ctx, &entity.User{ID: "u1", Email: "t@textil.co", Name: "Taller", Role: entity.RoleTaller, Status: entity.UserStatusActive}))
	users := usecase.NewUserUseCase(db.Users(), db.Stores())

	role := entity.RoleVendedor
	_, err := users.Update(ctx, "u1", dto.UpdateUserRequest{Role: &role})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	missing, err := users.Update(ctx, "nope", dto.UpdateUserRequest{Role: &role})
	assert.NoError(t, err)
	assert.Nil(t, missing)

	assert.ErrorIs(t, users.Delete(ctx, "u1", "u1"), domain.ErrForbidden)
	require.NoError(t, users.Delete(ctx, "admin", "u1"))
	assert.ErrorIs(t, users.Delete(ctx, "admin", "u1"), domain.ErrUserNotFound)
}

type feedStub struct {
	cfg      *entity.WebConfig
	products []*entity.Product
	inStock  map[string]bool
}

func (f *feedStub) Build(cfg *entity.WebConfig, products []*entity.Product, inStock map[string]bool) ([]byte, error) {
	f.cfg, f.products, f.inStock = cfg, products, inStock
	return []byte("<rss/>"), nil
}

func TestCatalogFeed_SoloProductosActivosYVisibles(t *testing.T) {
	db := memory.New()
	ctx := context.Background()
	for _, p := range []entity.Product{
		{ID: "p1", SKU: "A", Name: "Visible", Active: true, WebVisible: true},
		{ID: "p2", SKU: "B", Name: "Oculto", Active: true},
		{ID: "p3", SKU: "C", Name: "Inactivo", WebVisible: true},
	} {
		require.NoError(t, db.Products().Create(ctx, &p))
	}
	web := usecase.NewWebConfigUseCase(db.WebConfig())
	builder := &feedStub{}
	catalog := usecase.NewCatalogUseCase(db.Products(), db.Stock(), web, builder)

	out, err := catalog.Feed(ctx)
	require.NoError(t, err)
	assert.Equal(t, "<rss/>", string(out))
	require.Len(t, builder.products, 1)
	assert.Equal(t, "p1", builder.products[0].ID)
	assert.Equal(t, usecase.DefaultCurrency, builder.cfg.Currency)
	assert.False(t, builder.inStock["p1"], "sin existencias se publica agotado")

	require.NoError(t, db.Stock().Upsert(ctx, &entity.Stock{ProductID: "p1", StoreID: "norte", Quantity: dec("3")}))
	_, err = catalog.Feed(ctx)
	require.NoError(t, err)
	assert.True(t, builder.inStock["p1"])

	_, err = web.Save(ctx, dto.WebConfigRequest{SiteName: "Textiles Andinos", SiteURL: "https://tienda.co/", Currency: "usd"})
	require.NoError(t, err)
	_, err = catalog.Feed(ctx)
	require.NoError(t, err)
	assert.Equal(t, "USD", builder.cfg.Currency)
	assert.Equal(t, "https://tienda.co", builder.cfg.SiteURL)

	_, err = web.Save(ctx, dto.WebConfigRequest{ShippingCost: dec("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
