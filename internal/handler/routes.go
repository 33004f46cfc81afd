package handler

import (
	"github.com/RespawnSociety/MesinKasir/internal/middleware"
	"github.com/RespawnSociety/MesinKasir/internal/model"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles every HTTP handler mounted under /api.
type Handlers struct {
	Auth        *AuthHandler
	Kasir       *KasirHandler
	Catalog     *CatalogHandler
	Stock       *StockHandler
	Transaction *TransactionHandler
	Setting     *SettingHandler
	Dashboard   *DashboardHandler
}

// Register mounts the API routes on api. Role gates are attached per route.
func Register(api fiber.Router, auth middleware.Authenticator, h Handlers) {
	// ============ PUBLIC ROUTES ============
	api.Post("/login", h.Auth.Login)

	// ============ PROTECTED ROUTES ============
	authed := middleware.RequireAuth(auth)
	admin := middleware.RequireRole(model.RoleAdmin)
	staff := middleware.RequireRole(model.RoleAdmin, model.RoleKasir)

	api.Post("/logout", authed, h.Auth.Logout)
	api.Get("/me", authed, h.Auth.Me)

	// Kasir accounts
	api.Get("/kasirs", authed, admin, h.Kasir.List)
	api.Post("/kasirs", authed, admin, h.Kasir.Create)
	api.Patch("/kasirs/:username/active", authed, admin, h.Kasir.SetActive)
	api.Patch("/kasirs/:username/pin", authed, admin, h.Kasir.ResetPin)
	api.Delete("/kasirs/:username", authed, admin, h.Kasir.Delete)

	// Categories
	api.Get("/categories", authed, admin, h.Catalog.ListCategories)
	api.Post("/categories", authed, admin, h.Catalog.CreateCategory)
	api.Patch("/categories/:id", authed, admin, h.Catalog.RenameCategory)
	api.Patch("/categories/:id/active", authed, admin, h.Catalog.SetCategoryActive)
	api.Delete("/categories/:id", authed, admin, h.Catalog.DeleteCategory)

	// POS screen
	api.Get("/kasir/categories", authed, staff, h.Catalog.PosCategories)
	api.Get("/kasir/products/count", authed, staff, h.Catalog.PosProductCount)
	api.Get("/kasir/products", authed, staff, h.Catalog.PosProducts)

	// Products and their stock links
	api.Get("/products", authed, h.Catalog.ListProducts)
	api.Post("/products", authed, admin, h.Catalog.CreateProduct)
	api.Get("/products/:id/stocks", authed, h.Stock.ProductStocks)
	api.Post("/products/:id/stocks", authed, admin, h.Stock.Attach)
	api.Patch("/products/:id/stocks/:stockId", authed, admin, h.Stock.UpdateLink)
	api.Delete("/products/:id/stocks/:stockId", authed, admin, h.Stock.Detach)
	api.Get("/products/:id", authed, h.Catalog.GetProduct)
	api.Patch("/products/:id", authed, admin, h.Catalog.UpdateProduct)
	api.Delete("/products/:id", authed, admin, h.Catalog.DeleteProduct)

	// Stocks
	api.Get("/stocks", authed, h.Stock.List)
	api.Post("/stocks", authed, admin, h.Stock.Create)
	api.Patch("/stocks/:id", authed, admin, h.Stock.Update)
	api.Delete("/stocks/:id", authed, admin, h.Stock.Delete)

	// Sales, history before :id
	api.Post("/kasir/transactions", authed, h.Transaction.Create)
	api.Get("/kasir/transactions", authed, h.Transaction.List)
	api.Get("/kasir/transactions/history", authed, h.Transaction.History)
	api.Get("/kasir/transactions/history/:id", authed, h.Transaction.HistoryShow)
	api.Get("/kasir/transactions/:id", authed, h.Transaction.Show)
	api.Get("/admin/transactions", authed, admin, h.Transaction.AdminList)

	// Store settings
	api.Get("/store-settings", authed, h.Setting.Show)
	api.Put("/store-settings", authed, admin, h.Setting.Update)

	// Dashboard
	api.Get("/dashboard/stats", authed, admin, h.Dashboard.GetDashboardStats)
	api.Get("/dashboard/sales-movement", authed, admin, h.Dashboard.GetSalesMovement)
}
