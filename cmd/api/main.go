package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/textil-api/internal/application/auth"
	"github.com/jhoicas/textil-api/internal/application/inventory"
	"github.com/jhoicas/textil-api/internal/application/production"
	"github.com/jhoicas/textil-api/internal/application/reports"
	"github.com/jhoicas/textil-api/internal/application/sales"
	"github.com/jhoicas/textil-api/internal/application/usecase"
	infrafeed "github.com/jhoicas/textil-api/internal/infrastructure/feed"
	infrapdf "github.com/jhoicas/textil-api/internal/infrastructure/pdf"
	"github.com/jhoicas/textil-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/textil-api/internal/interfaces/http"
	"github.com/jhoicas/textil-api/pkg/config"
	"github.com/jhoicas/textil-api/pkg/logger"

	_ "github.com/jhoicas/textil-api/docs"
)

// @title        Textil API
// @version      1.0
// @description  Backend de administración textil: telas, costureros, producción, inventario por tienda, ventas y tienda web.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	txRunner := postgres.NewTxRunner(pool)
	pending, err := postgres.PendingMigrations(ctx, txRunner)
	if err != nil {
		log.Fatal().Err(err).Msg("revisar migraciones")
	}
	if len(pending) > 0 {
		names := make([]string, 0, len(pending))
		for _, m := range pending {
			names = append(names, m.Name)
		}
		log.Warn().Strs("pendientes", names).Msg("hay migraciones sin aplicar; ejecute textilctl migrate")
	}

	supplierRepo := postgres.NewSupplierRepository(pool)
	fabricRepo := postgres.NewFabricRepository(pool)
	paramsRepo := postgres.NewFabricParamsRepository(pool)
	seamstressRepo := postgres.NewSeamstressRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	storeRepo := postgres.NewStoreRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	jobRepo := postgres.NewJobRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	cartRepo := postgres.NewCartRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	webConfigRepo := postgres.NewWebConfigRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)

	authUC := auth.NewAuthUseCase(userRepo, storeRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	webConfigUC := usecase.NewWebConfigUseCase(webConfigRepo)
	saleUC := sales.NewSaleUseCase(txRunner, saleRepo, productRepo, storeRepo, log)

	deps := httpRouter.RouterDeps{
		AuthUC:           authUC,
		UserUC:           usecase.NewUserUseCase(userRepo, storeRepo),
		SupplierUC:       usecase.NewSupplierUseCase(supplierRepo),
		FabricUC:         usecase.NewFabricUseCase(fabricRepo, supplierRepo, txRunner, log),
		FabricParamsUC:   usecase.NewFabricParamsUseCase(paramsRepo, fabricRepo),
		SeamstressUC:     usecase.NewSeamstressUseCase(seamstressRepo),
		ProductUC:        usecase.NewProductUseCase(productRepo),
		StoreUC:          usecase.NewStoreUseCase(storeRepo),
		WebConfigUC:      webConfigUC,
		CatalogUC:        usecase.NewCatalogUseCase(productRepo, stockRepo, webConfigUC, infrafeed.NewXMLFeedBuilder()),
		JobUC:            production.NewJobUseCase(txRunner, jobRepo, seamstressRepo, paramsRepo, productRepo, storeRepo, log),
		RegisterMovement: inventory.NewRegisterMovementUseCase(txRunner, productRepo, storeRepo, log),
		InventoryQuery:   inventory.NewQueryUseCase(stockRepo, movementRepo, productRepo, storeRepo),
		Replenishment:    inventory.NewReplenishmentUseCase(stockRepo, reportRepo, log),
		SaleUC:           saleUC,
		CartUC:           sales.NewCartUseCase(txRunner, cartRepo, productRepo, saleUC, log),
		ReportUC: reports.NewReportUseCase(reportRepo, stockRepo, storeRepo, seamstressRepo,
			infrapdf.NewMarotoReportGenerator(), reports.Config{
				CompanyName: cfg.Reports.CompanyName,
				Currency:    cfg.Reports.Currency,
			}),
		JWTSecret: cfg.JWT.Secret,
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(httpRouter.AccessLog(log))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Textil API",
	}))

	app.Get("/health", httpRouter.Health(pool, cfg.App.Name, log))

	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
