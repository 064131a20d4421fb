package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/invoice-api/config"
	"github.com/yourusername/invoice-api/handlers"
	"github.com/yourusername/invoice-api/logger"
	"github.com/yourusername/invoice-api/middleware"
	"github.com/yourusername/invoice-api/models"
	"github.com/yourusername/invoice-api/services"
	"github.com/yourusername/invoice-api/store"
	"github.com/yourusername/invoice-api/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logg, err := logger.NewLogger()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Backend selection happens exactly once, here; everything downstream
	// depends only on the store contract.
	var invoiceStore store.InvoiceStore
	if cfg.UseInMemoryStore {
		invoiceStore = store.NewMemoryStore()
	} else {
		db, err := config.InitDB(cfg)
		if err != nil {
			logg.Fatalw("failed to connect to database", "error", err)
		}
		invoiceStore = store.NewSQLStore(db, logg)
	}

	invoiceService := services.NewInvoiceService(invoiceStore, logg)
	authHandler := handlers.NewAuthHandler(cfg, handlers.DefaultRolePolicy(cfg.AdminUsername))
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService)

	router := SetupRouter(cfg, logg, authHandler, invoiceHandler)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	logg.Infow("starting invoice-api server", "port", port, "in_memory_store", cfg.UseInMemoryStore)
	if err := router.Run(":" + port); err != nil {
		logg.Fatalw("server stopped", "error", err)
	}
}

// SetupRouter wires middleware and routes. Kept separate from main so tests
// can run the full stack over httptest.
func SetupRouter(cfg *config.Config, logg *logger.Logger, authHandler *handlers.AuthHandler, invoiceHandler *handlers.InvoiceHandler) *gin.Engine {
	router := gin.New()
	// Panics get the same response envelope as every other failure.
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logg.Errorw("panic recovered", "error", recovered, "path", c.Request.URL.Path)
		c.AbortWithStatusJSON(http.StatusInternalServerError, utils.Fail("unexpected error", nil))
	}))
	router.Use(middleware.ErrorHandler(logg))

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "invoice-api",
		})
	})

	router.POST("/auth/login", authHandler.Login)

	invoices := router.Group("/invoice")
	invoices.Use(middleware.JWTAuth(cfg))
	{
		anyRole := middleware.RequireRole(models.RoleAdministrator, models.RoleUser)
		adminOnly := middleware.RequireRole(models.RoleAdministrator)

		invoices.POST("", adminOnly, invoiceHandler.Create)
		invoices.GET("/search", anyRole, invoiceHandler.Search)
		invoices.GET("/:id", anyRole, invoiceHandler.GetByID)
		invoices.PATCH("/:id/status", adminOnly, invoiceHandler.UpdateStatus)
	}

	return router
}
