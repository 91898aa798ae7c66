package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/textil-api/internal/application/auth"
	"github.com/jhoicas/textil-api/internal/application/dto"
	"github.com/jhoicas/textil-api/internal/application/inventory"
	"github.com/jhoicas/textil-api/internal/application/production"
	"github.com/jhoicas/textil-api/internal/application/sales"
	"github.com/jhoicas/textil-api/internal/application/usecase"
	"github.com/jhoicas/textil-api/internal/domain/entity"
	"github.com/jhoicas/textil-api/internal/domain/repository"
	"github.com/jhoicas/textil-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/textil-api/internal/interfaces/http"
)

type noSales struct{ repository.ReportRepository }

func (noSales) TopProducts(context.Context, time.Time, time.Time, string, int) ([]repository.TopProductResult, error) {
	return nil, nil
}

type feedStub struct{}

func (feedStub) Build(*entity.WebConfig, []*entity.Product, map[string]bool) ([]byte, error) {
	return []byte("<rss/>"), nil
}

func buildRouterApp(t *testing.T) (*fiber.App, *memory.Store, *auth.AuthUseCase) {
	t.Helper()
	ctx := context.Background()
	db := memory.New()
	require.NoError(t, db.Stores().Create(ctx, &entity.Store{ID: "centro", Name: "Centro", Active: true}))
	require.NoError(t, db.Stores().Create(ctx, &entity.Store{ID: "norte", Name: "Norte", Active: true}))
	require.NoError(t, db.Products().Create(ctx, &entity.Product{
		ID: "p1", SKU: "CAM-M", Name: "Camiseta", Price: decimal.NewFromInt(30000), Active: true, WebVisible: true,
	}))
	require.NoError(t, db.Stock().Upsert(ctx, &entity.Stock{ProductID: "p1", StoreID: "centro", Quantity: decimal.NewFromInt(3)}))

	authUC := auth.NewAuthUseCase(db.Users(), db.Stores(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer})
	web := usecase.NewWebConfigUseCase(db.WebConfig())
	saleUC := sales.NewSaleUseCase(db, db.Sales(), db.Products(), db.Stores(), nil)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:           authUC,
		UserUC:           usecase.NewUserUseCase(db.Users(), db.Stores()),
		SupplierUC:       usecase.NewSupplierUseCase(db.Suppliers()),
		FabricUC:         usecase.NewFabricUseCase(db.Fabrics(), db.Suppliers(), db, nil),
		FabricParamsUC:   usecase.NewFabricParamsUseCase(db.FabricParams(), db.Fabrics()),
		SeamstressUC:     usecase.NewSeamstressUseCase(db.Seamstresses()),
		ProductUC:        usecase.NewProductUseCase(db.Products()),
		StoreUC:          usecase.NewStoreUseCase(db.Stores()),
		WebConfigUC:      web,
		CatalogUC:        usecase.NewCatalogUseCase(db.Products(), db.Stock(), web, feedStub{}),
		JobUC:            production.NewJobUseCase(db, db.Jobs(), db.Seamstresses(), db.FabricParams(), db.Products(), db.Stores(), nil),
		RegisterMovement: inventory.NewRegisterMovementUseCase(db, db.Products(), db.Stores(), nil),
		InventoryQuery:   inventory.NewQueryUseCase(db.Stock(), db.Movements(), db.Products(), db.Stores()),
		Replenishment:    inventory.NewReplenishmentUseCase(db.Stock(), noSales{}, nil),
		SaleUC:           saleUC,
		CartUC:           sales.NewCartUseCase(db, db.Carts(), db.Products(), saleUC, nil),
		JWTSecret:        testJWTSecret,
	})
	return app, db, authUC
}

func send(t *testing.T, app *fiber.App, method, target, authHeader string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRouter_LoginYMe(t *testing.T) {
	app, _, authUC := buildRouterApp(t)
	_, err := authUC.RegisterUser(context.Background(), dto.CreateUserRequest{
		Email: "admin@textil.co", Password: "clave-segura", Name: "Admin", Role: entity.RoleAdmin,
	})
	require.NoError(t, err)

	resp := send(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "admin@textil.co", Password: "mala-clave"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = send(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "admin@textil.co", Password: "clave-segura"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var login dto.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&login))
	require.NotEmpty(t, login.Token)

	resp = send(t, app, http.MethodGet, "/api/auth/me", "Bearer "+login.Token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var me dto.UserResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&me))
	assert.Equal(t, "admin@textil.co", me.Email)
}

func TestRouter_VentaDeVendedorDescuentaSuTienda(t *testing.T) {
	app, db, _ := buildRouterApp(t)
	clerk := tokenFor(t, entity.RoleVendedor, "centro")
	body := dto.CreateSaleRequest{Items: []dto.SaleItemRequest{{ProductID: "p1", Quantity: decimal.NewFromInt(2)}}}

	resp := send(t, app, http.MethodPost, "/api/ventas", clerk, body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var sale dto.SaleResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sale))
	assert.Equal(t, "centro", sale.StoreID)

	st, err := db.Stock().Get(context.Background(), "p1", "centro")
	require.NoError(t, err)
	assert.True(t, st.Quantity.Equal(decimal.NewFromInt(1)))

	resp = send(t, app, http.MethodPost, "/api/ventas", clerk, body)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	body.StoreID = "norte"
	resp = send(t, app, http.MethodPost, "/api/ventas", clerk, body)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRouter_PermisosPorRol(t *testing.T) {
	app, _, _ := buildRouterApp(t)
	clerk := tokenFor(t, entity.RoleVendedor, "centro")
	workshop := tokenForRole(t, entity.RoleTaller)

	cases := []struct {
		name   string
		method string
		target string
		token  string
		want   int
	}{
		{"sin token", http.MethodGet, "/api/productos", "", fiber.StatusUnauthorized},
		{"vendedor lee productos", http.MethodGet, "/api/productos", clerk, fiber.StatusOK},
		{"vendedor no ve proveedores", http.MethodGet, "/api/proveedores", clerk, fiber.StatusForbidden},
		{"taller ve proveedores", http.MethodGet, "/api/proveedores", workshop, fiber.StatusOK},
		{"taller no vende", http.MethodGet, "/api/ventas", workshop, fiber.StatusForbidden},
		{"taller no crea productos", http.MethodPost, "/api/productos", workshop, fiber.StatusForbidden},
		{"vendedor no traslada", http.MethodGet, "/api/traslados", clerk, fiber.StatusForbidden},
		{"producto inexistente", http.MethodGet, "/api/productos/nope", workshop, fiber.StatusNotFound},
		{"vendedor inventario propio", http.MethodGet, "/api/inventario", clerk, fiber.StatusOK},
		{"vendedor inventario ajeno", http.MethodGet, "/api/inventario?store_id=norte", clerk, fiber.StatusForbidden},
		{"vendedor reposición propia", http.MethodGet, "/api/inventario/reposicion", clerk, fiber.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := send(t, app, tc.method, tc.target, tc.token, nil)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

func TestRouter_PedidoWebPublicoYCheckout(t *testing.T) {
	app, _, _ := buildRouterApp(t)

	resp := send(t, app, http.MethodPost, "/api/public/carritos", "", dto.CreateCartRequest{
		CustomerName: "Ana", CustomerPhone: "3001234567",
		Items: []dto.CartItemRequest{{ProductID: "p1", Quantity: decimal.NewFromInt(1)}},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var cart dto.CartResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cart))
	assert.True(t, cart.Total.Equal(decimal.NewFromInt(30000)))

	resp = send(t, app, http.MethodGet, "/api/public/catalogo.xml", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	clerk := tokenFor(t, entity.RoleVendedor, "centro")
	resp = send(t, app, http.MethodPost, "/api/carritos/"+cart.ID+"/completar", clerk, dto.CheckoutCartRequest{PaymentMethod: entity.PaymentCash})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var done dto.CartResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&done))
	assert.Equal(t, entity.CartStatusCompleted, done.Status)
	assert.NotEmpty(t, done.SaleID)

	resp = send(t, app, http.MethodPost, "/api/carritos/"+cart.ID+"/completar", clerk, dto.CheckoutCartRequest{PaymentMethod: entity.PaymentCash})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}
