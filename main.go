package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"train-feedback-server/config"
	"train-feedback-server/database"
	"train-feedback-server/jobs"
	"train-feedback-server/middleware"
	"train-feedback-server/routes"
	ws "train-feedback-server/websocket"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()

	// Initialize database
	if err := database.Initialize(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Seed optional demo data
	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedUsers(); err != nil {
			log.Printf("❌ Failed to seed users: %v", err)
		}
		if err := seedReferenceData(); err != nil {
			log.Printf("❌ Failed to seed reference data: %v", err)
		}
	}

	// Set Gin mode
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Disable automatic redirects for trailing slashes
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	// Security headers (must be first)
	router.Use(middleware.SecurityHeadersMiddleware())

	// Input validation
	router.Use(middleware.InputValidationMiddleware())

	// Rate limiting
	router.Use(middleware.RateLimitMiddleware())

	// Secure CORS
	router.Use(middleware.CORSMiddleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Train Feedback Server is running",
			"time":    time.Now().UTC(),
		})
	})

	// Admin live feed hub: batch submissions are pushed to connected
	// admin dashboards as they land.
	adminHub := ws.NewHub()
	go adminHub.Run()
	routes.SetAdminHub(adminHub)

	adminFeedHandler := ws.NewAdminHandler(adminHub)
	router.GET("/api/v1/ws/admin", adminFeedHandler.HandleAdmin)

	// API routes
	api := router.Group("/api/v1")
	{
		// Auth routes (no authentication required) - with strict rate limiting
		authRoutes := api.Group("/auth")
		authRoutes.Use(middleware.AuthRateLimitMiddleware())
		routes.RegisterAuthRoutes(authRoutes)

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			routes.RegisterProtectedAuthRoutes(protected)

			// Feedback CRUD and search
			feedbackRoutes := protected.Group("/feedback")
			routes.RegisterFeedbackRoutes(feedbackRoutes)
			routes.RegisterUploadRoutes(feedbackRoutes)
			routes.RegisterBulkRoutes(feedbackRoutes)
			routes.RegisterExportRoutes(feedbackRoutes)

			// Reference data (trains, stations, coaches)
			routes.RegisterReferenceRoutes(protected)

			// Admin-only routes (edit and delete)
			adminRoutes := protected.Group("/feedback")
			adminRoutes.Use(middleware.AdminOnly())
			routes.RegisterAdminFeedbackRoutes(adminRoutes)
		}
	}

	// Start token cleanup job
	cleanupJob := jobs.NewCleanupJob()
	cleanupJob.Start()
	defer cleanupJob.Stop()

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = config.AppConfig.Server.Port
	}

	log.Printf("Server starting on port %s", port)
	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
