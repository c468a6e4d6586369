package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/dfonseca/stockmanager-api/internal/application/auth"
	"github.com/dfonseca/stockmanager-api/internal/application/inventory"
	"github.com/dfonseca/stockmanager-api/internal/application/pos"
	"github.com/dfonseca/stockmanager-api/internal/application/purchasing"
	"github.com/dfonseca/stockmanager-api/internal/application/reports"
	"github.com/dfonseca/stockmanager-api/internal/application/usecase"
	"github.com/dfonseca/stockmanager-api/internal/infrastructure/export"
	infrapdf "github.com/dfonseca/stockmanager-api/internal/infrastructure/pdf"
	"github.com/dfonseca/stockmanager-api/internal/infrastructure/postgres"
	httpRouter "github.com/dfonseca/stockmanager-api/internal/interfaces/http"
	"github.com/dfonseca/stockmanager-api/pkg/config"
	"github.com/dfonseca/stockmanager-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
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

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(productRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)

	cartUC := pos.NewCartUseCase(productRepo)
	checkoutUC := pos.NewCheckoutUseCase(txRunner, cfg.POS.SalePrefix)
	receiptGen := infrapdf.NewMarotoReceiptGenerator(cfg.App.Name)
	saleUC := pos.NewSaleUseCase(saleRepo, productRepo, receiptGen)

	purchaseUC := purchasing.NewPurchaseUseCase(txRunner, purchaseRepo, supplierRepo, productRepo, cfg.POS.PurchasePrefix)
	receiveUC := purchasing.NewReceiveOrderUseCase(txRunner, purchaseRepo)
	adjustUC := inventory.NewAdjustStockUseCase(txRunner, movementRepo)
	reportUC := reports.NewReportUseCase(reportRepo, saleRepo, productRepo, export.NewCSVExporter())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stock Manager API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		ProductUC:  productUC,
		CategoryUC: categoryUC,
		SupplierUC: supplierUC,
		CartUC:     cartUC,
		CheckoutUC: checkoutUC,
		SaleUC:     saleUC,
		PurchaseUC: purchaseUC,
		ReceiveUC:  receiveUC,
		AdjustUC:   adjustUC,
		ReportUC:   reportUC,
		JWTSecret:  cfg.JWT.Secret,
	})

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
