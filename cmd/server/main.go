package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	billingapp "github.com/tshepo-desh-mathabe/invoice-tracker/internal/application/billing"
	directoryapp "github.com/tshepo-desh-mathabe/invoice-tracker/internal/application/directory"
	settingsapp "github.com/tshepo-desh-mathabe/invoice-tracker/internal/application/settings"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/infrastructure/cache"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/infrastructure/config"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/infrastructure/logger"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/infrastructure/persistence"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/interfaces/http/handler"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/interfaces/http/middleware"
	"github.com/tshepo-desh-mathabe/invoice-tracker/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting application",
		zap.String("name", cfg.App.Name),
		zap.String("env", cfg.App.Env),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn("Failed to close database", zap.Error(err))
		}
	}()

	// Cache store: Redis when enabled, otherwise in-process memory
	var store cache.Store
	if cfg.Redis.Enabled {
		redisStore, err := cache.NewRedisStore(cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		store = redisStore
		log.Info("Using Redis cache",
			zap.String("host", cfg.Redis.Host),
			zap.Int("port", cfg.Redis.Port),
		)
	} else {
		store = cache.NewMemoryStore()
		log.Info("Using in-memory cache")
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("Failed to close cache store", zap.Error(err))
		}
	}()

	// Repositories
	clientRepo := persistence.NewGormClientRepository(db.DB)
	bankNameRepo := persistence.NewGormBankNameRepository(db.DB)
	bankingDetailsRepo := persistence.NewGormBankingDetailsRepository(db.DB)
	paymentMethodRepo := persistence.NewGormPaymentMethodRepository(db.DB)
	configurationRepo := persistence.NewGormConfigurationRepository(db.DB)
	transactionRepo := persistence.NewGormTransactionRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	txManager := persistence.NewGormTxManager(db.DB)

	// Application services
	configurationService := settingsapp.NewConfigurationService(configurationRepo, store, log)
	bankService := directoryapp.NewBankService(bankNameRepo, store, log)
	bankingDetailsService := directoryapp.NewBankingDetailsService(bankingDetailsRepo, bankNameRepo, store, log)
	clientService := directoryapp.NewClientService(clientRepo, bankingDetailsService, store, cfg.Cache.EntityTTL, log)
	paymentMethodService := directoryapp.NewPaymentMethodService(paymentMethodRepo, store, log)

	transactionService := billingapp.NewTransactionService(
		transactionRepo, clientService, paymentMethodService, configurationService, store, log)
	invoiceService := billingapp.NewInvoiceService(billingapp.InvoiceServiceConfig{
		Invoices:     invoiceRepo,
		Transactions: transactionService,
		Pricing:      billingapp.NewPricing(configurationService, log),
		TxManager:    txManager,
		Cache:        store,
		EntityTTL:    cfg.Cache.EntityTTL,
		ListingTTL:   cfg.Cache.ListingTTL,
		Logger:       log,
	})

	// HTTP handlers
	transactionHandler := handler.NewTransactionHandler(transactionService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	clientHandler := handler.NewClientHandler(clientService)
	bankHandler := handler.NewBankHandler(bankService)
	paymentMethodHandler := handler.NewPaymentMethodHandler(paymentMethodService)
	systemHandler := handler.NewSystemHandler()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORS())

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	transactionRoutes := router.NewDomainGroup("transactions", "/transactions")
	transactionRoutes.POST("", transactionHandler.Create)
	transactionRoutes.PUT("", transactionHandler.Update)
	transactionRoutes.GET("/:trxnReference", transactionHandler.GetByReference)

	invoiceRoutes := router.NewDomainGroup("invoices", "/invoice")
	invoiceRoutes.POST("", invoiceHandler.Submit)
	invoiceRoutes.GET("", invoiceHandler.List)
	invoiceRoutes.GET("/:trxnReference", invoiceHandler.GetByReference)

	clientRoutes := router.NewDomainGroup("clients", "/clients")
	clientRoutes.POST("", clientHandler.Create)
	clientRoutes.GET("/search", clientHandler.Search)
	clientRoutes.GET("/:email", clientHandler.GetByEmail)

	bankRoutes := router.NewDomainGroup("banks", "/banks")
	bankRoutes.POST("", bankHandler.Create)
	bankRoutes.GET("", bankHandler.List)
	bankRoutes.GET("/search", bankHandler.Search)

	paymentMethodRoutes := router.NewDomainGroup("paymentMethods", "/payment-methods")
	paymentMethodRoutes.GET("", paymentMethodHandler.List)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/ping", systemHandler.Ping)
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)

	r.Register(transactionRoutes).
		Register(invoiceRoutes).
		Register(clientRoutes).
		Register(bankRoutes).
		Register(paymentMethodRoutes).
		Register(systemRoutes)

	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler reports liveness of the process and its database
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		body := gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		}
		if stats, err := db.Stats(); err == nil {
			body["pool"] = stats
		}
		c.JSON(http.StatusOK, body)
	}
}
