package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/dfonseca/stockmanager-api/internal/application/auth"
	"github.com/dfonseca/stockmanager-api/internal/application/inventory"
	"github.com/dfonseca/stockmanager-api/internal/application/pos"
	"github.com/dfonseca/stockmanager-api/internal/application/purchasing"
	"github.com/dfonseca/stockmanager-api/internal/application/reports"
	"github.com/dfonseca/stockmanager-api/internal/application/usecase"
	"github.com/dfonseca/stockmanager-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	CategoryUC  *usecase.CategoryUseCase
	SupplierUC  *usecase.SupplierUseCase
	CartUC      *pos.CartUseCase
	CheckoutUC  *pos.CheckoutUseCase
	SaleUC      *pos.SaleUseCase
	PurchaseUC  *purchasing.PurchaseUseCase
	ReceiveUC   *purchasing.ReceiveOrderUseCase
	AdjustUC    *inventory.AdjustStockUseCase
	ReportUC    *reports.ReportUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	manager := RequireRole(entity.RoleManager)

	// Products (protegido; escritura solo manager/admin)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/code/:code", productHandler.GetByCode)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", manager, productHandler.Create)
	products.Put("/:id", manager, productHandler.Update)
	products.Delete("/:id", manager, productHandler.Delete)

	// Categories (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", manager, categoryHandler.Create)
	categories.Put("/:id", manager, categoryHandler.Update)
	categories.Delete("/:id", manager, categoryHandler.Delete)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Post("/", manager, supplierHandler.Create)
	suppliers.Put("/:id", manager, supplierHandler.Update)
	suppliers.Delete("/:id", manager, supplierHandler.Delete)

	// POS: cobro y ventas (cualquier usuario autenticado, cajero incluido)
	posHandler := NewPOSHandler(deps.CartUC, deps.CheckoutUC, deps.SaleUC)
	protected.Post("/pos/cart", posHandler.Cart)
	protected.Post("/pos/checkout", posHandler.Checkout)
	sales := protected.Group("/sales")
	sales.Get("/", posHandler.ListSales)
	sales.Get("/:id", posHandler.GetSale)
	sales.Get("/:id/receipt", posHandler.Receipt)

	// Purchases (protegido, manager/admin)
	purchases := protected.Group("/purchases", manager)
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC, deps.ReceiveUC)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Post("/:id/receive", purchaseHandler.Receive)
	purchases.Post("/:id/cancel", purchaseHandler.Cancel)

	// Inventory (ajustes manuales solo manager/admin; historial abierto)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.AdjustUC)
	invGroup.Post("/adjust", manager, inventoryHandler.Adjust)
	invGroup.Get("/movements", inventoryHandler.Movements)

	// Reports (protegido, manager/admin)
	reportsGroup := protected.Group("/reports", manager)
	reportHandler := NewReportHandler(deps.ReportUC)
	reportsGroup.Get("/sales", reportHandler.Sales)
	reportsGroup.Get("/categories", reportHandler.Categories)
	reportsGroup.Get("/inventory", reportHandler.Inventory)
	reportsGroup.Get("/dashboard", reportHandler.Dashboard)
	reportsGroup.Get("/export", reportHandler.Export)
}
