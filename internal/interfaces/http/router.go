package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-api/internal/application/auth"
	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/application/sales"
	"github.com/jhoicas/pos-api/internal/application/usecase"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	CategoryUC  *usecase.CategoryUseCase
	SupplierUC  *usecase.SupplierUseCase
	ActivityUC  *usecase.ActivityUseCase
	InventoryUC *inventory.UseCase
	CreateSale  *sales.CreateSaleUseCase
	SalesQuery  *sales.QueryUseCase
	SaleStatus  *sales.StatusUseCase
	Receipt     *sales.ReceiptUseCase

	UserRepo   repository.UserRepository
	JWTSecret  string
	CookieName string
	JWTExpDays int
	Log        *logger.Logger
}

// Router registra las rutas de la API y la superficie mínima de browser.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(AttachLogger(deps.Log))

	gate := NewAuthGate(deps.UserRepo, deps.JWTSecret, deps.CookieName).Handler()
	adminOnly := RequireRole(AdminOnly...)
	managerOrAdmin := RequireRole(ManagerOrAdmin...)

	api := app.Group("/api")

	// Auth y gestión de cuentas
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.CookieName, deps.JWTExpDays)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", gate, authHandler.Logout)
	authGroup.Post("/signup", gate, adminOnly, authHandler.Signup)
	authGroup.Delete("/removeuser/:userId", gate, adminOnly, authHandler.RemoveUser)
	authGroup.Put("/updateuser/:userId", gate, adminOnly, authHandler.UpdateUser)
	authGroup.Put("/updateProfile", gate, authHandler.UpdateProfile)
	authGroup.Get("/staffuser", gate, authHandler.StaffUsers)
	authGroup.Get("/manageruser", gate, authHandler.ManagerUsers)
	authGroup.Get("/adminuser", gate, adminOnly, authHandler.AdminUsers)

	// Productos (lecturas públicas, mutaciones manager/admin)
	products := api.Group("/product")
	productHandler := NewProductHandler(deps.ProductUC, deps.InventoryUC)
	products.Get("/getproducts", productHandler.List)
	products.Get("/getproduct/:productId", productHandler.GetByID)
	products.Get("/searchproducts", productHandler.Search)
	products.Get("/topproducts", productHandler.TopProducts)
	products.Post("/createproduct", gate, managerOrAdmin, productHandler.Create)
	products.Put("/updateproduct/:productId", gate, managerOrAdmin, productHandler.Update)
	products.Delete("/deleteproduct/:productId", gate, managerOrAdmin, productHandler.Delete)
	products.Patch("/updatequantity/:productId", gate, managerOrAdmin, productHandler.UpdateQuantity)

	// Categorías
	categories := api.Group("/category")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/getcategory", categoryHandler.List)
	categories.Get("/searchcategory", gate, categoryHandler.Search)
	categories.Post("/createcategory", gate, categoryHandler.Create)
	categories.Put("/updatecategory/:categoryId", gate, categoryHandler.Update)
	categories.Delete("/removecategory/:categoryId", gate, categoryHandler.Delete)

	// Proveedores
	suppliers := api.Group("/supplier")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/getsuppliers", gate, supplierHandler.List)
	suppliers.Post("/createsupplier", gate, managerOrAdmin, supplierHandler.Create)
	suppliers.Put("/updatesupplier/:supplierId", gate, managerOrAdmin, supplierHandler.Update)
	suppliers.Delete("/removesupplier/:supplierId", gate, managerOrAdmin, supplierHandler.Delete)

	// Libro de stock
	invGroup := api.Group("/inventory", gate)
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	invGroup.Get("/", inventoryHandler.List)
	invGroup.Get("/:productId", inventoryHandler.GetByProduct)
	invGroup.Post("/", managerOrAdmin, inventoryHandler.Upsert)
	invGroup.Delete("/:productId", managerOrAdmin, inventoryHandler.Delete)

	// Ventas (rutas fijas antes de /:saleId)
	salesGroup := api.Group("/sales", gate)
	salesHandler := NewSalesHandler(deps.CreateSale, deps.SalesQuery, deps.SaleStatus, deps.Receipt)
	salesGroup.Post("/", salesHandler.Create)
	salesGroup.Get("/", salesHandler.List)
	salesGroup.Get("/today", salesHandler.Today)
	salesGroup.Get("/stats", salesHandler.Stats)
	salesGroup.Get("/:saleId", salesHandler.Get)
	salesGroup.Get("/:saleId/receipt", salesHandler.Receipt)
	salesGroup.Patch("/:saleId/status", managerOrAdmin, salesHandler.UpdateStatus)

	// Actividad (solo admin)
	activityHandler := NewActivityHandler(deps.ActivityUC)
	api.Get("/activity", gate, adminOnly, activityHandler.ListRecent)

	// Superficie mínima de browser: destino de los redirects del gate.
	webHandler := NewWebHandler()
	app.Get("/login", webHandler.Login)
	app.Get("/dashboard", gate, webHandler.Dashboard)
}
