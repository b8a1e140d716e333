package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"stockcast/internal/analytics"
	"stockcast/internal/caching"
	"stockcast/internal/handlers"
	"stockcast/internal/jobs/background"
	"stockcast/internal/middleware"
	"stockcast/internal/repositories"
	"stockcast/internal/services"
	"stockcast/pkg/database"
)

const version = "1.0.0"

const tokenTTL = 24 * time.Hour

func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		log.Printf("WARNING: JWT_SECRET not set, using a generated secret")
	}
	jwksURL := os.Getenv("JWKS_URL")

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin"
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin"
	}
	minioUseSSL := os.Getenv("MINIO_USE_SSL") == "true"

	mediaSvc, err := services.NewMinioMediaService(minioEndpoint, minioAccessKey, minioSecretKey, minioUseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize media service: %v", err)
	}

	// Repositories
	companyRepo := repositories.NewCompanyRepo(pool)
	productRepo := repositories.NewProductRepo(pool)
	retailCenterRepo := repositories.NewRetailCenterRepo(pool)
	inventoryRepo := repositories.NewInventoryRepo(pool)
	forecastRepo := repositories.NewForecastRepo(pool)
	orderRepo := repositories.NewOrderRepo(pool)

	// Cache and analytics
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)
	analyticsSvc := analytics.NewService(retailCenterRepo, forecastRepo, cacheSvc)

	// Services
	companySvc := services.NewCompanyService(companyRepo, cacheSvc, mediaSvc, jwtSecret, tokenTTL)
	productSvc := services.NewProductService(productRepo, mediaSvc)
	retailCenterSvc := services.NewRetailCenterService(retailCenterRepo, cacheSvc)
	inventorySvc := services.NewInventoryService(inventoryRepo, retailCenterRepo, cacheSvc)
	forecastSvc := services.NewForecastService(forecastRepo, productRepo)
	orderSvc := services.NewOrderService(orderRepo, productRepo)

	// Handlers
	authHandlers := handlers.NewAuthHandlers(companySvc)
	productHandlers := handlers.NewProductHandlers(productSvc)
	retailCenterHandlers := handlers.NewRetailCenterHandlers(retailCenterSvc)
	inventoryHandlers := handlers.NewInventoryHandlers(inventorySvc, analyticsSvc)
	forecastHandlers := handlers.NewForecastHandlers(forecastSvc, analyticsSvc)
	orderHandlers := handlers.NewOrderHandlers(orderSvc)

	jwtConfig, err := middleware.JWTConfig(jwtSecret, jwksURL)
	if err != nil {
		log.Fatalf("Failed to configure JWT middleware: %v", err)
	}

	// Background jobs
	scheduler, err := background.NewJobScheduler(analyticsSvc, companyRepo, retailCenterRepo)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("Failed to stop job scheduler: %v", err)
		}
	}()

	e := echo.New()

	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	e.GET("/health", handlers.HealthCheck)

	v1 := e.Group("/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", authHandlers.Register)
	auth.POST("/login", authHandlers.Login)

	protected := v1.Group("")
	protected.Use(echojwt.WithConfig(jwtConfig))
	protected.Use(middleware.CompanyContext(companyRepo, companySvc))

	protected.POST("/auth/logout", authHandlers.Logout)
	protected.GET("/me", authHandlers.Profile)
	protected.POST("/me/logo", authHandlers.UploadLogo)

	protected.GET("/products", productHandlers.ListProducts)
	protected.POST("/products", productHandlers.CreateProduct)
	protected.GET("/products/:id", productHandlers.GetProduct)
	protected.PUT("/products/:id", productHandlers.UpdateProduct)
	protected.DELETE("/products/:id", productHandlers.DeleteProduct)
	protected.POST("/products/:id/image", productHandlers.UploadProductImage)

	protected.GET("/retail-centers", retailCenterHandlers.ListRetailCenters)
	protected.POST("/retail-centers", retailCenterHandlers.CreateRetailCenter)
	protected.PUT("/retail-centers/:id", retailCenterHandlers.UpdateRetailCenter)
	protected.GET("/retail-centers/:center_id/inventory", inventoryHandlers.GetLevels)

	protected.POST("/inventory", inventoryHandlers.CreateInventoryRecord)
	protected.PUT("/inventory/level", inventoryHandlers.SetLevel)
	protected.GET("/inventory/metrics", inventoryHandlers.GetInventoryMetrics)

	protected.POST("/forecasts", forecastHandlers.GenerateForecast)
	protected.PUT("/forecasts/:id/actual", forecastHandlers.RecordActualDemand)
	protected.GET("/forecasts/history", forecastHandlers.GetForecastHistory)
	protected.GET("/forecasts/metrics", forecastHandlers.GetForecastMetrics)

	protected.GET("/orders", orderHandlers.ListOrders)
	protected.POST("/orders", orderHandlers.CreateOrder)
	protected.GET("/orders/:id", orderHandlers.GetOrder)
	protected.PUT("/orders/:id/status", orderHandlers.UpdateOrderStatus)

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("Stockcast server v%s starting on port %d", version, port)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
