package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"kozsync/internal/api/handlers"
	"kozsync/internal/api/middleware"
	"kozsync/internal/config"
	"kozsync/internal/database"
	"kozsync/internal/logger"
	"kozsync/internal/queue"
	"kozsync/internal/services/bizimhesap"
	"kozsync/internal/services/woocommerce"
	"kozsync/internal/sync"

	"github.com/gin-gonic/gin"
)

type Server struct {
	config *config.Config
	logger *logger.Logger
	db     *database.Database
	router *gin.Engine
	server *http.Server
}

func New(cfg *config.Config, logger *logger.Logger, db *database.Database) *Server {
	// Set Gin mode
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())

	// Collaborators
	catalog := woocommerce.NewClient(cfg.WooBaseURL, cfg.WooConsumerKey, cfg.WooConsumerSecret, logger)
	store := sync.NewGormStore(db.DB)
	publisher := queue.NewPublisher(cfg, logger)
	accounting := bizimhesap.NewClient(cfg.BizimHesapBaseURL, cfg.BizimHesapFirmID, logger)

	categoryImporter := sync.NewCategoryImporter(catalog, store, logger)
	productImporter := sync.NewProductImporter(store, store, logger)
	pusher := sync.NewPusher(catalog, store, logger)

	// Initialize handlers
	productHandler := handlers.NewStagedProductHandler(db.DB, store, logger)
	importHandler := handlers.NewImportHandler(categoryImporter, productImporter, logger)
	pushHandler := handlers.NewPushHandler(pusher, store, publisher, logger)
	runHandler := handlers.NewImportRunHandler(db.DB)
	invoiceHandler := handlers.NewInvoiceHandler(accounting, logger)

	// Routes
	v1 := router.Group("/api/v1")
	{
		// Staged products
		products := v1.Group("/products")
		{
			products.GET("", productHandler.List)
			products.GET("/:id", productHandler.Get)
			products.POST("/:id/reset", productHandler.Reset)
			products.DELETE("/:id", productHandler.Delete)
		}

		// Feed imports
		imports := v1.Group("/import")
		{
			imports.POST("/categories", importHandler.Categories)
			imports.POST("/products", importHandler.Products)
		}

		// Remote pushes
		push := v1.Group("/push")
		{
			push.POST("/batch", pushHandler.Batch)
			push.POST("/:id", pushHandler.One)
		}

		// Import audit
		v1.GET("/import-runs", runHandler.List)

		// Accounting
		v1.POST("/invoices", invoiceHandler.Create)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return &Server{
		config: cfg,
		logger: logger,
		db:     db,
		router: router,
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.APIHost, s.config.APIPort)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting server on " + addr)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	return s.server.Shutdown(ctx)
}

func (s *Server) GetRouter() *gin.Engine {
	return s.router
}
