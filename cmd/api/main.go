package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/RespawnSociety/MesinKasir/internal/config"
	"github.com/RespawnSociety/MesinKasir/internal/handler"
	"github.com/RespawnSociety/MesinKasir/internal/model"
	"github.com/RespawnSociety/MesinKasir/internal/observability"
	"github.com/RespawnSociety/MesinKasir/internal/repository"
	"github.com/RespawnSociety/MesinKasir/internal/service"
	"github.com/RespawnSociety/MesinKasir/internal/ws"
	"github.com/RespawnSociety/MesinKasir/pkg/database"
	"github.com/RespawnSociety/MesinKasir/pkg/jwt"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// 2. Setup Database
	db := database.ConnectDB(cfg.DSN(), cfg.DBLogLevel)
	// Auto Migrate (Hati-hati di production, sebaiknya pakai tools migrasi terpisah)
	if err := db.AutoMigrate(
		&model.User{},
		&model.AccessToken{},
		&model.ProductCategory{},
		&model.Product{},
		&model.Stock{},
		&model.ProductStock{},
		&model.Transaction{},
		&model.TransactionHistory{},
		&model.StoreSetting{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// 3. Seed admin user
	seedAdmin(db, cfg)

	// 4. Setup WebSocket Hub and metrics
	wsHub := ws.NewHub()
	go wsHub.Run()

	metrics := observability.NewMetrics()
	metrics.RegisterGauge("ws_clients", "Connected websocket clients.", func() float64 {
		return float64(wsHub.ClientCount())
	})

	// 5. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	productRepo := repository.NewProductRepo(db)
	stockRepo := repository.NewStockRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	settingRepo := repository.NewSettingRepo(db)

	issuer := jwt.NewIssuer(cfg.JWTSecret, cfg.JWTTTL)

	authService := service.NewAuthService(userRepo, tokenRepo, issuer, metrics)
	kasirService := service.NewKasirService(userRepo, tokenRepo)
	catalogService := service.NewCatalogService(categoryRepo, productRepo, wsHub)
	stockService := service.NewStockService(stockRepo, productRepo, wsHub)
	saleService := service.NewSaleService(txRepo, wsHub, metrics, loc)
	settingService := service.NewSettingService(settingRepo)
	dashService := service.NewDashboardService(txRepo, int64(cfg.LowStockThreshold), loc)

	handlers := handler.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Kasir:       handler.NewKasirHandler(kasirService),
		Catalog:     handler.NewCatalogHandler(catalogService),
		Stock:       handler.NewStockHandler(stockService),
		Transaction: handler.NewTransactionHandler(saleService),
		Setting:     handler.NewSettingHandler(settingService),
		Dashboard:   handler.NewDashboardHandler(dashService),
	}

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "MesinKasir POS v1.0",
	})

	// Middleware
	app.Use(recover.New()) // Panic recovery
	app.Use(logger.New())  // Logging request
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: strings.Join([]string{
			fiber.MethodGet, fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete, fiber.MethodOptions,
		}, ","),
	}))
	app.Use(metrics.Middleware())

	// 7. Routes
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	handler.Register(app.Group("/api"), authService, handlers)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(wsHub.Serve))

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedAdmin creates the store owner account on first start.
func seedAdmin(db *gorm.DB, cfg *config.Config) {
	userRepo := repository.NewUserRepo(db)

	if _, err := userRepo.FindByEmail(cfg.SeedAdminEmail); err == nil {
		return
	}

	admin := &model.User{
		Name:   "Owner",
		Email:  cfg.SeedAdminEmail,
		Role:   model.RoleAdmin,
		Active: true,
	}
	if err := admin.SetPassword(cfg.SeedAdminPassword); err != nil {
		log.Printf("Warning: Failed to hash admin password: %v", err)
		return
	}

	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
		return
	}
	log.Printf("Admin user created: %s", cfg.SeedAdminEmail)
}
