package main

import (
	"log"

	"golang-food-storefront/configs"
	"golang-food-storefront/internal/handlers"
	"golang-food-storefront/internal/middleware"
	"golang-food-storefront/internal/models"
	"golang-food-storefront/internal/repositories"
	"golang-food-storefront/internal/services"
	"golang-food-storefront/pkg/auth"
	"golang-food-storefront/pkg/backend"
	"golang-food-storefront/pkg/cache"
	"golang-food-storefront/pkg/database"
	"golang-food-storefront/pkg/messaging"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	config := configs.LoadConfig()

	// Set Gin mode
	gin.SetMode(config.Server.Mode)

	// Initialize database connection
	db, err := database.NewDatabase(config.Database.PostgresURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	// Auto-migrate PostgreSQL tables
	if err := db.Postgres.AutoMigrate(&models.CartRecord{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis cache
	redisCache := cache.NewRedisCache(config.Redis.URL, config.Redis.Password, config.Redis.DB)
	if redisCache == nil {
		log.Fatal("Failed to connect to Redis")
	}
	defer redisCache.Close()

	// Initialize Kafka
	kafkaProducer := messaging.NewKafkaProducer(config.Kafka.Brokers)
	defer kafkaProducer.Close()

	// Session validation (tokens are minted by the commerce backend)
	sessionManager := auth.NewSessionManager(config.Session.SecretKey, 24)

	// Commerce backend client
	backendClient := backend.NewClient(config.Backend.BaseURL, config.Session.CookieName, config.Backend.Timeout)

	// Initialize repositories
	cartRepo := repositories.NewCartRepository(db.Postgres)

	// Initialize services
	cartService := services.NewCartService(cartRepo, redisCache, kafkaProducer, config.Kafka.Brokers)
	catalogService := services.NewCatalogService(backendClient, cartService)
	checkoutService := services.NewCheckoutService(cartService, backendClient, kafkaProducer, config.Kafka.Brokers)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(sessionManager, config.Session.CookieName)

	// Initialize handlers
	cartHandler := handlers.NewCartHandler(cartService, catalogService, checkoutService, config.Session.LoginURL)
	catalogHandler := handlers.NewCatalogHandler(catalogService)

	// Initialize Gin router
	router := gin.New()

	// Global middleware
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(gin.Logger())
	router.Use(middleware.RecoveryMiddleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "golang-food-storefront",
		})
	})

	// API routes
	api := router.Group("/api/v1")

	// Register routes
	cartHandler.RegisterRoutes(api, authMiddleware)
	catalogHandler.RegisterRoutes(api, authMiddleware)

	log.Printf("Server starting on port %s", config.Server.Port)
	log.Fatal(router.Run(":" + config.Server.Port))
}
