package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-store-ledger/internal/config"
	"go-store-ledger/internal/handler"
	"go-store-ledger/internal/model"
	"go-store-ledger/internal/repository"
	"go-store-ledger/internal/service"
	"go-store-ledger/internal/ws"
	"go-store-ledger/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	// 1. Load Config
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	// 2. Setup Session Store
	db := database.ConnectDB(cfg.DatabaseDSN)
	if err := db.AutoMigrate(&model.Product{}, &model.Transaction{}); err != nil {
		log.Fatal("Failed to migrate session store: ", err)
	}

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	txRepo := repository.NewTransactionRepo(db)

	ledgerService := service.NewLedgerService(productRepo, txRepo, db, wsHub)
	reportService := service.NewReportService(productRepo, txRepo)
	importService := service.NewImportService(productRepo, db, wsHub, service.ImportPolicy{
		OverwriteExisting: cfg.ImportOverwriteExisting,
		StrictRows:        cfg.ImportStrictRows,
		DefaultCategory:   cfg.ImportDefaultCategory,
	})
	exportService := service.NewExportService(ledgerService, reportService)

	invHandler := handler.NewInventoryHandler(ledgerService)
	reportHandler := handler.NewReportHandler(reportService)
	importHandler := handler.NewImportHandler(importService)
	exportHandler := handler.NewExportHandler(exportService)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Store Ledger v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 6. Routes
	api := app.Group("/api/v1")

	// Product Routes
	api.Get("/products", invHandler.GetProducts)
	api.Post("/products", invHandler.CreateProduct)
	api.Put("/products/:code/quantity", invHandler.SetQuantity)
	api.Post("/products/recommended/bulk", invHandler.BulkSetRecommended)
	api.Delete("/products", invHandler.ResetProducts)

	// Transaction Routes
	api.Get("/transactions", invHandler.GetTransactions)
	api.Post("/transactions", invHandler.CreateTransaction)
	api.Delete("/transactions", invHandler.ResetTransactions)

	// Report Routes
	api.Get("/reports/reorder", reportHandler.GetReorderList)
	api.Get("/reports/categories", reportHandler.GetCategoryComposition)
	api.Get("/reports/weekday", reportHandler.GetWeekdayMovement)
	api.Get("/reports/monthly", reportHandler.GetMonthlyMovement)
	api.Get("/reports/category-sales", reportHandler.GetCategorySales)
	api.Get("/dashboard/stats", reportHandler.GetDashboardStats)
	api.Get("/dashboard/summary", reportHandler.GetPeriodSummary)

	// Import / Export Routes
	api.Post("/imports", importHandler.Upload)
	api.Get("/exports/products.xlsx", exportHandler.Products)
	api.Get("/exports/transactions.xlsx", exportHandler.Transactions)
	api.Get("/exports/order-sheet.xlsx", exportHandler.OrderSheet)
	api.Get("/exports/template.xlsx", exportHandler.Template)

	// Category lookup table
	api.Get("/categories", invHandler.GetCategories)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 7. Graceful Shutdown
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

	log.Println("Server exited, session store discarded")
}
