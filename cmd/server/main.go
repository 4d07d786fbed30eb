package main

import (
	"log"
	"time"

	"order_portal/internal/config"
	"order_portal/internal/database"
	"order_portal/internal/handlers"
	"order_portal/internal/logger"
	"order_portal/internal/metrics"
	"order_portal/internal/middleware"
	"order_portal/internal/migrations"
	"order_portal/internal/redis"
	"order_portal/internal/repository"
	"order_portal/internal/services"
	"order_portal/pkg/jwtutil"
	"order_portal/pkg/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zlog, err := logger.Init(cfg.LogLevel, cfg.Environment)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer zlog.Sync()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := migrations.RunMigrations(db, zlog); err != nil {
		zlog.Fatal("Failed to migrate database", zap.Error(err))
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL, time.Duration(cfg.RoleCacheTTLHours)*time.Hour)
	if err != nil {
		zlog.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Object store for brand logos and PDFs
	store, err := storage.New(cfg.StorageDir, cfg.PublicBaseURL)
	if err != nil {
		zlog.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	jwtUtil := jwtutil.New(&jwtutil.Config{
		SigningKey:      cfg.JWTSecret,
		ExpirationHours: cfg.SessionTTLHours,
	})

	// Initialize repositories
	credRepo := repository.NewCredentialRepository(db)
	userRepo := repository.NewUserRepository(db)
	brandRepo := repository.NewBrandRepository(db)
	productRepo := repository.NewProductRepository(db)
	skuRepo := repository.NewSKURepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Initialize services
	authService := services.NewAuthService(credRepo, userRepo, redisClient, jwtUtil)
	userService := services.NewUserService(userRepo, redisClient)
	catalogService := services.NewCatalogService(brandRepo, productRepo, skuRepo)
	orderService := services.NewOrderService(orderRepo)
	dashboardService := services.NewDashboardService(db, zlog)

	// Initialize handlers
	secureCookies := cfg.Environment == "production"
	authHandler := handlers.NewAuthHandler(authService, userService, jwtUtil, cfg.SessionTTLHours*3600, secureCookies)
	userHandler := handlers.NewUserHandler(authService, userService)
	catalogHandler := handlers.NewCatalogHandler(catalogService, store)
	cartHandler := handlers.NewCartHandler(catalogService, redisClient)
	orderHandler := handlers.NewOrderHandler(orderService, userService, redisClient)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Setup routes
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.RequestLogger(zlog))
	router.Use(metrics.Middleware())
	router.Use(middleware.RoleGuard(jwtUtil, redisClient, userRepo, zlog, secureCookies))

	router.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	router.GET("/metrics", metrics.Handler())
	router.Static("/public", store.Root())

	// Auth
	auth := router.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/me", authHandler.Me)
	}

	// Cross-role API paths (authenticated, exempt from prefix redirects)
	api := router.Group("/api")
	{
		api.POST("/users", userHandler.CreateUser)
		api.GET("/search/products", catalogHandler.Search)
	}

	// Super admin section
	admin := router.Group("/admin")
	{
		admin.GET("/dashboard", dashboardHandler.Admin)

		admin.GET("/users", userHandler.ListUsers)
		admin.POST("/users", userHandler.CreateUser)
		admin.GET("/salesmen", userHandler.ListSalesmen)
		admin.PUT("/users/:id", userHandler.UpdateUser)

		admin.GET("/brands", catalogHandler.ListBrands)
		admin.POST("/brands", catalogHandler.CreateBrand)
		admin.PUT("/brands/:id", catalogHandler.UpdateBrand)
		admin.DELETE("/brands/:id", catalogHandler.DeleteBrand)
		admin.POST("/brands/:id/assets/:kind", catalogHandler.UploadBrandAsset)

		admin.GET("/products", catalogHandler.ListProducts)
		admin.POST("/products", catalogHandler.CreateProduct)
		admin.PUT("/products/:id", catalogHandler.UpdateProduct)
		admin.DELETE("/products/:id", catalogHandler.DeleteProduct)

		admin.GET("/skus", catalogHandler.ListSKUs)
		admin.POST("/skus", catalogHandler.CreateSKU)
		admin.POST("/skus/import", catalogHandler.ImportSKUs)
		admin.PUT("/skus/:id", catalogHandler.UpdateSKU)
		admin.DELETE("/skus/:id", catalogHandler.DeleteSKU)

		admin.GET("/orders", orderHandler.ListOrders)
		admin.GET("/orders/:id", orderHandler.GetOrder)
		admin.PUT("/orders/:id/status", orderHandler.UpdateStatus)
	}

	// Salesman section
	salesman := router.Group("/salesman")
	{
		salesman.GET("/dashboard", dashboardHandler.Salesman)
		salesman.GET("/retailers", userHandler.ListMyRetailers)
		salesman.GET("/orders", orderHandler.ListOrders)
		salesman.GET("/orders/:id", orderHandler.GetOrder)
		salesman.PUT("/orders/:id/status", orderHandler.UpdateStatus)
	}

	// Retailer section
	retailer := router.Group("/retailer")
	{
		retailer.GET("/dashboard", dashboardHandler.Retailer)
		retailer.GET("/brands", catalogHandler.ListBrands)
		retailer.GET("/products", catalogHandler.ListProducts)
		retailer.GET("/skus", catalogHandler.ListSKUs)

		retailer.GET("/cart", cartHandler.Get)
		retailer.POST("/cart/items", cartHandler.AddItem)
		retailer.PUT("/cart/items/:sku_id", cartHandler.UpdateQuantity)
		retailer.DELETE("/cart/items/:sku_id", cartHandler.RemoveItem)
		retailer.DELETE("/cart", cartHandler.Clear)

		retailer.POST("/orders", orderHandler.PlaceOrder)
		retailer.GET("/orders", orderHandler.ListOrders)
		retailer.GET("/orders/:id", orderHandler.GetOrder)
	}

	// Start server
	zlog.Info("Server starting", zap.String("port", cfg.ServerPort))
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		zlog.Fatal("Failed to start server", zap.Error(err))
	}
}
