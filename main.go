package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/harborview/harborview-rentals-api/config"
	"github.com/harborview/harborview-rentals-api/controllers"
	"github.com/harborview/harborview-rentals-api/middleware"
	"github.com/harborview/harborview-rentals-api/models"
	"github.com/harborview/harborview-rentals-api/services"
)

func main() {
	// Basic logging
	log.Println("Starting Harborview Rentals API server...")

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
		&models.Property{},
		&models.Unit{},
		&models.Lease{},
		&models.MaintenanceRequest{},
		&models.WorkOrder{},
		&models.Payment{},
		&models.Message{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize S3-backed photo storage
	s3Service, err := services.InitS3Service()
	if err != nil {
		log.Fatalf("Failed to initialize S3 service: %v", err)
	}
	services.InitPhotoService(s3Service)

	// Initialize Gin router
	router := setupRouter(cfg)

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter configures the Gin engine, CORS policy and all routes
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)

		// All remaining routes require a valid JWT
		authorized := v1.Group("")
		authorized.Use(middleware.EnsureValidToken(cfg))
		{
			// Users
			authorized.POST("/users", controllers.CreateUser)
			authorized.GET("/users/me", controllers.GetMyProfile)
			authorized.PUT("/users/me", controllers.UpdateMyProfile)
			authorized.GET("/workmen", controllers.ListWorkmen)

			// Properties and units
			authorized.POST("/properties", controllers.CreateProperty)
			authorized.GET("/properties", controllers.ListProperties)
			authorized.GET("/properties/:id", controllers.GetProperty)
			authorized.POST("/properties/:id/units", controllers.CreateUnit)
			authorized.GET("/properties/:id/units", controllers.ListUnits)

			// Leases
			authorized.POST("/leases", controllers.CreateLease)
			authorized.GET("/leases", controllers.ListLeases)

			// Maintenance requests
			authorized.POST("/maintenance-requests", controllers.CreateMaintenanceRequest)
			authorized.GET("/maintenance-requests", controllers.ListMaintenanceRequests)
			authorized.GET("/maintenance-requests/stats", controllers.GetMaintenanceRequestStats)
			authorized.GET("/maintenance-requests/:id", controllers.GetMaintenanceRequest)
			authorized.PUT("/maintenance-requests/:id/status", controllers.UpdateMaintenanceRequestStatus)
			authorized.PUT("/maintenance-requests/:id/assign", controllers.AssignWorkman)
			authorized.POST("/maintenance-requests/:id/rating", controllers.RateMaintenanceRequest)
			authorized.POST("/maintenance-requests/:id/photo", controllers.UploadRequestPhoto)
			authorized.POST("/maintenance-requests/:id/messages", controllers.SendMessage)
			authorized.GET("/maintenance-requests/:id/messages", controllers.ListMessages)

			// Work orders
			authorized.GET("/work-orders", controllers.ListWorkOrders)
			authorized.PUT("/work-orders/:id/status", controllers.UpdateWorkOrderStatus)

			// Payments
			authorized.POST("/payments", controllers.CreatePayment)
			authorized.GET("/payments", controllers.ListPayments)
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Harborview Rentals API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	// Get list of tables
	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
