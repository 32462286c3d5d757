package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/amara-couture/atelier-api/config"
	"github.com/amara-couture/atelier-api/controllers"
	"github.com/amara-couture/atelier-api/middleware"
	"github.com/amara-couture/atelier-api/models"
	"github.com/amara-couture/atelier-api/services"
)

func main() {
	// Basic logging
	log.Println("Starting Amara Atelier API server...")

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
		&models.BespokeOrder{},
		&models.ProductionTask{},
		&models.BespokeStatusLog{},
		&models.Notification{},
		&models.MeasurementProfile{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Customer notifications are stored in the database
	services.InitNotifier(db)

	// Design image storage; the API still runs without it, uploads are
	// just rejected until AWS credentials are configured
	if s3Service, err := services.InitS3Service(); err != nil {
		log.Printf("S3 service not available, design image uploads disabled: %v", err)
	} else {
		services.InitDesignImageService(s3Service)
	}

	// Initialize Gin router
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)

		auth := v1.Group("")
		auth.Use(middleware.EnsureValidToken(cfg))
		{
			// User profiles
			auth.POST("/users", controllers.CreateUser)
			auth.GET("/users/me", controllers.GetMyProfile)
			auth.PUT("/users/me", controllers.UpdateMyProfile)

			// Bespoke orders and the production workflow
			auth.POST("/bespoke-orders", controllers.CreateBespokeOrder)
			auth.GET("/bespoke-orders", controllers.ListBespokeOrders)
			auth.GET("/bespoke-orders/:id", controllers.GetBespokeOrder)
			auth.PATCH("/bespoke-orders/:id", controllers.UpdateBespokeOrder)
			auth.POST("/bespoke-orders/:id/status", controllers.AdvanceOrderStatus)
			auth.GET("/bespoke-orders/:id/status-log", controllers.GetOrderStatusLog)
			auth.GET("/bespoke-orders/:id/status-options", controllers.GetOrderStatusOptions)
			auth.POST("/bespoke-orders/:id/design-image", controllers.UploadDesignImage)

			// Production tasks
			auth.POST("/bespoke-orders/:id/tasks", controllers.CreateProductionTask)
			auth.GET("/bespoke-orders/:id/tasks", controllers.ListProductionTasks)
			auth.PATCH("/production-tasks/:id", controllers.UpdateProductionTask)
			auth.DELETE("/production-tasks/:id", controllers.DeleteProductionTask)

			// Measurement profiles
			auth.POST("/measurement-profiles", controllers.CreateMeasurementProfile)
			auth.GET("/measurement-profiles", controllers.ListMeasurementProfiles)
			auth.GET("/measurement-profiles/:id", controllers.GetMeasurementProfile)

			// Notifications
			auth.GET("/notifications", controllers.ListNotifications)
			auth.POST("/notifications/:id/read", controllers.MarkNotificationRead)
		}
	}

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Amara Atelier API is running",
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
