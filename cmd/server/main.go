package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"

	"github.com/asg0d/billboards-live/internal/config"
	"github.com/asg0d/billboards-live/internal/database"
	"github.com/asg0d/billboards-live/internal/handlers"
	"github.com/asg0d/billboards-live/internal/middleware"
	"github.com/asg0d/billboards-live/internal/types"

	_ "github.com/asg0d/billboards-live/docs/api" // Swagger docs
)

// @title Billboards API
// @version 1.0.0
// @description Advertising billboard inventory service
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/asg0d/billboards-live

// @license.name MIT

// @host localhost:3333
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name cookie_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler:          customErrorHandler,
		DisableStartupMessage: false,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("billboards")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Uploaded image assets
	app.Static(cfg.MediaURL, cfg.MediaRoot)

	// Health probe
	healthHandler := &handlers.HealthHandler{DB: db, Cfg: cfg}
	app.Get("/health", healthHandler.Check)

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	// Create handlers
	billboardHandler := &handlers.BillboardHandler{DB: db, Cfg: cfg}
	imageHandler := &handlers.ImageHandler{DB: db, Cfg: cfg}
	referenceHandler := &handlers.ReferenceHandler{DB: db, Cfg: cfg}

	admin := middleware.AuthAdmin(cfg)

	// Billboard routes (public GET, admin mutations).
	// Static segments must register before the :id wildcard.
	api.Get("/billboards/statistics", billboardHandler.Statistics)
	api.Get("/billboards/expiring_soon", billboardHandler.ExpiringSoon)
	api.Get("/billboards/by_category", billboardHandler.ByCategory)
	api.Get("/billboards/by_contractor", billboardHandler.ByContractor)
	api.Get("/billboards", billboardHandler.List)
	api.Get("/billboards/:id", billboardHandler.Get)
	api.Post("/billboards", admin, billboardHandler.Create)
	api.Put("/billboards/:id", admin, billboardHandler.Update)
	api.Delete("/billboards/:id", admin, billboardHandler.Delete)

	// Billboard image routes (all mutations, admin only)
	api.Post("/billboards/:id/images", admin, imageHandler.Upload)
	api.Patch("/billboards/:id/images", admin, imageHandler.BatchUpdate)
	api.Patch("/billboards/:id/images/:imageID", admin, imageHandler.Update)
	api.Delete("/billboards/:id/images/:imageID", admin, imageHandler.Delete)

	// Reference routes (public GET, admin mutations)
	api.Get("/employees", referenceHandler.ListEmployees)
	api.Get("/employees/:id", referenceHandler.GetEmployee)
	api.Post("/employees", admin, referenceHandler.CreateEmployee)
	api.Put("/employees/:id", admin, referenceHandler.UpdateEmployee)
	api.Delete("/employees/:id", admin, referenceHandler.DeleteEmployee)

	api.Get("/categories", referenceHandler.ListCategories)
	api.Get("/categories/:id", referenceHandler.GetCategory)
	api.Post("/categories", admin, referenceHandler.CreateCategory)
	api.Put("/categories/:id", admin, referenceHandler.UpdateCategory)
	api.Delete("/categories/:id", admin, referenceHandler.DeleteCategory)

	api.Get("/contractors", referenceHandler.ListContractors)
	api.Get("/contractors/:id", referenceHandler.GetContractor)
	api.Post("/contractors", admin, referenceHandler.CreateContractor)
	api.Put("/contractors/:id", admin, referenceHandler.UpdateContractor)
	api.Delete("/contractors/:id", admin, referenceHandler.DeleteContractor)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"error":     "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	log.Printf("Authorizer will be initialized on first authenticated request")

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	var apiErr *types.APIError
	if errors.As(err, &apiErr) {
		code = apiErr.Code
		message = apiErr.Message
		errorType = apiErr.Kind
		if len(apiErr.Violations) > 0 {
			return c.Status(code).JSON(fiber.Map{
				"status":     code,
				"error":      message,
				"ok":         false,
				"violations": apiErr.Violations,
				"timestamp":  time.Now().UTC().Format(time.RFC3339),
				"url":        c.OriginalURL(),
				"type":       errorType,
			})
		}
	} else if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"error":     message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
