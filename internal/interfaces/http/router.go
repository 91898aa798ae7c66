package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/textil-api/internal/application/auth"
	"github.com/jhoicas/textil-api/internal/application/inventory"
	"github.com/jhoicas/textil-api/internal/application/production"
	"github.com/jhoicas/textil-api/internal/application/reports"
	"github.com/jhoicas/textil-api/internal/application/sales"
	"github.com/jhoicas/textil-api/internal/application/usecase"
	"github.com/jhoicas/textil-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	UserUC           *usecase.UserUseCase
	SupplierUC       *usecase.SupplierUseCase
	FabricUC         *usecase.FabricUseCase
	FabricParamsUC   *usecase.FabricParamsUseCase
	SeamstressUC     *usecase.SeamstressUseCase
	ProductUC        *usecase.ProductUseCase
	StoreUC          *usecase.StoreUseCase
	WebConfigUC      *usecase.WebConfigUseCase
	CatalogUC        *usecase.CatalogUseCase
	JobUC            *production.JobUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	InventoryQuery   *inventory.QueryUseCase
	Replenishment    *inventory.ReplenishmentUseCase
	SaleUC           *sales.SaleUseCase
	CartUC           *sales.CartUseCase
	ReportUC         *reports.ReportUseCase
	JWTSecret        string
}

const (
	admin    = entity.RoleAdmin
	vendedor = entity.RoleVendedor
	taller   = entity.RoleTaller
)

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Públicas (tienda web)
	webConfigHandler := NewWebConfigHandler(deps.WebConfigUC, deps.CatalogUC)
	cartHandler := NewCartHandler(deps.CartUC)
	public := api.Group("/public")
	public.Get("/config-web", webConfigHandler.Get)
	public.Get("/catalogo.xml", webConfigHandler.Catalog)
	public.Post("/carritos", cartHandler.Create)

	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	everyone := RequireRole(admin, vendedor, taller)
	adminOnly := RequireRole(admin)
	workshop := RequireRole(admin, taller)
	shop := RequireRole(admin, vendedor)

	// Usuarios
	userHandler := NewUserHandler(deps.UserUC, deps.AuthUC)
	users := protected.Group("/usuarios", adminOnly)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Patch("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
	users.Patch("/:id/password", userHandler.ChangePassword)

	// Proveedores, telas y parámetros (taller)
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers := protected.Group("/proveedores", workshop)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Patch("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	fabricHandler := NewFabricHandler(deps.FabricUC)
	fabrics := protected.Group("/telas", workshop)
	fabrics.Post("/", fabricHandler.Create)
	fabrics.Get("/", fabricHandler.List)
	fabrics.Get("/:id", fabricHandler.GetByID)
	fabrics.Patch("/:id", fabricHandler.Update)
	fabrics.Delete("/:id", fabricHandler.Delete)
	fabrics.Post("/:id/compras", fabricHandler.Purchase)

	paramsHandler := NewFabricParamsHandler(deps.FabricParamsUC)
	params := protected.Group("/parametros-tela", workshop)
	params.Post("/", paramsHandler.Create)
	params.Get("/", paramsHandler.List)
	params.Get("/:id", paramsHandler.GetByID)
	params.Patch("/:id", paramsHandler.Update)
	params.Delete("/:id", paramsHandler.Delete)

	// Costureros y trabajos
	seamstressHandler := NewSeamstressHandler(deps.SeamstressUC, deps.JobUC)
	seamstresses := protected.Group("/costureros", workshop)
	seamstresses.Post("/", seamstressHandler.Create)
	seamstresses.Get("/", seamstressHandler.List)
	seamstresses.Get("/:id", seamstressHandler.GetByID)
	seamstresses.Patch("/:id", seamstressHandler.Update)
	seamstresses.Delete("/:id", seamstressHandler.Delete)
	seamstresses.Get("/:id/trabajos", seamstressHandler.Jobs)

	jobHandler := NewJobHandler(deps.JobUC)
	jobs := protected.Group("/trabajos", workshop)
	jobs.Post("/", jobHandler.Create)
	jobs.Get("/", jobHandler.List)
	jobs.Get("/:id", jobHandler.GetByID)
	jobs.Patch("/:id", jobHandler.Update)
	jobs.Post("/:id/completar", jobHandler.Complete)
	jobs.Post("/:id/cancelar", jobHandler.Cancel)

	// Productos y tiendas: lectura para todos, escritura admin
	productHandler := NewProductHandler(deps.ProductUC)
	products := protected.Group("/productos")
	products.Get("/", everyone, productHandler.List)
	products.Get("/:id", everyone, productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)
	products.Patch("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	storeHandler := NewStoreHandler(deps.StoreUC)
	stores := protected.Group("/tiendas")
	stores.Get("/", everyone, storeHandler.List)
	stores.Get("/:id", everyone, storeHandler.GetByID)
	stores.Post("/", adminOnly, storeHandler.Create)
	stores.Patch("/:id", adminOnly, storeHandler.Update)
	stores.Delete("/:id", adminOnly, storeHandler.Delete)

	// Inventario por tienda
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.InventoryQuery, deps.Replenishment)
	inv := protected.Group("/inventario")
	inv.Get("/", everyone, RestrictStore(), inventoryHandler.StoreInventory)
	inv.Get("/reposicion", shop, RestrictStore(), inventoryHandler.Replenishment)
	inv.Get("/movimientos", workshop, inventoryHandler.Movements)
	inv.Post("/movimientos", workshop, inventoryHandler.RegisterMovement)
	inv.Put("/minimo", workshop, inventoryHandler.SetMinimum)

	transfers := protected.Group("/traslados", adminOnly)
	transfers.Post("/", inventoryHandler.Transfer)
	transfers.Get("/", inventoryHandler.Transfers)

	// Ventas y carritos
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup := protected.Group("/ventas", shop)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Post("/:id/anular", saleHandler.Void)

	carts := protected.Group("/carritos", shop)
	carts.Get("/", cartHandler.List)
	carts.Get("/:id", cartHandler.GetByID)
	carts.Post("/:id/completar", cartHandler.Checkout)
	carts.Post("/:id/cancelar", cartHandler.Cancel)

	// Configuración web y reportes (admin)
	protected.Put("/config-web", adminOnly, webConfigHandler.Save)

	reportHandler := NewReportHandler(deps.ReportUC)
	reportsGroup := protected.Group("/reportes", adminOnly)
	reportsGroup.Get("/resumen", reportHandler.Summary)
	reportsGroup.Get("/ventas.pdf", reportHandler.SalesPDF)
	reportsGroup.Get("/inventario.pdf", reportHandler.InventoryPDF)
	reportsGroup.Get("/trabajos.pdf", reportHandler.JobsPDF)
}
