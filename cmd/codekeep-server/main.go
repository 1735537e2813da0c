package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/codekeep/codekeep/pkg/codekeep/apikeys"
	"github.com/codekeep/codekeep/pkg/codekeep/auth"
	"github.com/codekeep/codekeep/pkg/codekeep/barcodes"
	"github.com/codekeep/codekeep/pkg/codekeep/database"
	"github.com/codekeep/codekeep/pkg/codekeep/events"
	"github.com/codekeep/codekeep/pkg/codekeep/history"
	"github.com/codekeep/codekeep/pkg/codekeep/importexport"
	"github.com/codekeep/codekeep/pkg/codekeep/models"
	"github.com/codekeep/codekeep/pkg/codekeep/settings"
	"github.com/codekeep/codekeep/pkg/codekeep/suggest"
	"github.com/codekeep/codekeep/pkg/codekeep/tags"
	"github.com/gin-gonic/gin"
)

// @title CodeKeep API
// @version 1.0
// @description A personal barcode and QR code capture, storage, and retrieval service.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token or API key. Format: "Bearer {token}"

func main() {
	// Get database path from environment or use default
	dbPath := os.Getenv("CODEKEEP_DB_PATH")
	if dbPath == "" {
		dbPath = "codekeep.db"
	}

	// Connect to database
	if err := database.Connect(dbPath); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := models.AutoMigrate(database.GetDB()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// Seed any missing settings with their defaults
	settingsStore := settings.NewStore(database.GetDB())
	if err := settingsStore.EnsureDefaults(); err != nil {
		log.Fatalf("Failed to seed settings: %v", err)
	}

	// Event emitter scoped to this process, torn down on shutdown
	emitter := events.NewEmitter()
	emitter.Subscribe(events.TopicBarcodeSaved, func(ev events.Event) {
		log.Printf("Barcode saved: %v", ev.Payload)
	})
	emitter.Subscribe(events.TopicBarcodeDeleted, func(ev events.Event) {
		log.Printf("Barcode deleted: %v", ev.Payload)
	})

	// Set up Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "ok",
				"service": "codekeep",
			})
		})

		// Auth routes (public)
		authHandler := auth.NewHandler(database.GetDB())
		authHandler.RegisterRoutes(api.Group("/auth"))

		// Combined auth middleware (accepts JWT or API key)
		combinedAuth := apikeys.CombinedAuthMiddleware(database.GetDB())

		// API keys routes (JWT only - need to be logged in to manage keys)
		apiKeysHandler := apikeys.NewHandler(database.GetDB())
		apiKeysHandler.RegisterRoutes(api.Group("", auth.AuthMiddleware()))

		// Barcode lifecycle routes (protected - accepts JWT or API key)
		barcodesHandler := barcodes.NewHandler(database.GetDB(), emitter)
		barcodesHandler.RegisterRoutes(api.Group("", combinedAuth))

		// History routes (protected - accepts JWT or API key)
		historyHandler := history.NewHandler(database.GetDB())
		historyHandler.RegisterRoutes(api.Group("", combinedAuth))

		// Tags routes (protected - accepts JWT or API key)
		tagsHandler := tags.NewHandler(database.GetDB(), emitter)
		tagsHandler.RegisterRoutes(api.Group("", combinedAuth))

		// Suggestion routes (protected - accepts JWT or API key)
		suggestHandler := suggest.NewHandler(database.GetDB(), suggest.NewHTTPGenerator())
		suggestHandler.RegisterRoutes(api.Group("", combinedAuth))

		// Settings routes (protected - accepts JWT or API key)
		settingsHandler := settings.NewHandler(database.GetDB())
		settingsHandler.RegisterRoutes(api.Group("", combinedAuth))

		// Import/Export routes (protected - accepts JWT or API key)
		importExportHandler := importexport.NewHandler(database.GetDB())
		importExportHandler.RegisterRoutes(api.Group("", combinedAuth))
	}

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		log.Printf("Starting CodeKeep server on :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Shut down cleanly on SIGINT/SIGTERM: stop accepting requests, then
	// tear down the emitter
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	emitter.Close()
	log.Println("Server stopped")
}
