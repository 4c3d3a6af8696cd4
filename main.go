package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/maduka-shop/maduka-api/config"
	"github.com/maduka-shop/maduka-api/controllers"
	"github.com/maduka-shop/maduka-api/middleware"
	"github.com/maduka-shop/maduka-api/models"
	"github.com/maduka-shop/maduka-api/services"
)

func main() {
	log.Println("Starting Maduka storefront API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Review{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize S3-backed image storage for product images
	s3Service, err := services.InitS3Service()
	if err != nil {
		log.Fatalf("Failed to initialize S3 service: %v", err)
	}
	services.InitImageService(s3Service)

	router := setupRouter(cfg)

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter builds the full route table
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.FrontendOrigin}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	auth := middleware.EnsureValidToken(cfg)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.GET("/database/status", databaseStatus)

		// Catalog
		v1.GET("/products", controllers.ListProducts)
		v1.GET("/products/:id", controllers.GetProduct)
		v1.POST("/products", auth, controllers.CreateProduct)
		v1.PUT("/products/:id", auth, controllers.UpdateProduct)
		v1.DELETE("/products/:id", auth, controllers.DeleteProduct)
		v1.POST("/products/:id/reviews", auth, controllers.CreateReview)
		v1.DELETE("/products/:id/reviews", auth, controllers.DeleteReview)

		// Taxonomy
		v1.GET("/categories", controllers.ListCategories)
		v1.GET("/categories/:slug", controllers.GetCategoryBySlug)
		v1.POST("/categories", auth, controllers.CreateCategory)
		v1.PUT("/categories/:id", auth, controllers.UpdateCategory)
		v1.DELETE("/categories/:id", auth, controllers.DeleteCategory)

		// Orders
		v1.POST("/orders", auth, controllers.CreateOrder)
		v1.GET("/orders", auth, controllers.ListOrders)
		v1.GET("/orders/myorders", auth, controllers.ListMyOrders)
		v1.GET("/orders/:id", auth, controllers.GetOrder)
		v1.PUT("/orders/:id/pay", auth, controllers.PayOrder)
		v1.PUT("/orders/:id/deliver", auth, controllers.DeliverOrder)
		v1.PUT("/orders/:id/payment-method", auth, controllers.UpdatePaymentMethod)
		v1.PUT("/orders/:id/cancel", auth, controllers.CancelOrder)

		// Users
		v1.POST("/users", auth, controllers.CreateUser)
		v1.GET("/users/me", auth, controllers.GetMyProfile)
		v1.PUT("/users/me", auth, controllers.UpdateMyProfile)

		// Product images
		v1.POST("/uploads", auth, controllers.UploadProductImage)
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Maduka storefront API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get database instance"})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database connection failed"})
		return
	}

	// Get list of tables
	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to query tables"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
