// main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/makara-hq/portfolio-backend/internal/api/handlers"
	"github.com/makara-hq/portfolio-backend/internal/api/middleware"
	"github.com/makara-hq/portfolio-backend/internal/config"
	"github.com/makara-hq/portfolio-backend/internal/cron"
	"github.com/makara-hq/portfolio-backend/internal/db"
	"github.com/makara-hq/portfolio-backend/internal/email"
	"github.com/makara-hq/portfolio-backend/internal/repository"
	"github.com/makara-hq/portfolio-backend/internal/seed"
	"github.com/makara-hq/portfolio-backend/internal/service"
	"github.com/makara-hq/portfolio-backend/internal/socket"
)

func main() {
	// ============================================
	// Load environment variables
	// ============================================
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// ============================================
	// Load configuration
	// ============================================
	cfg := config.Load()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// ============================================
	// Initialize storage (postgres or in-memory)
	// ============================================
	var repos *repository.Repositories
	var pgDB *db.PostgresDB

	switch cfg.StorageDriver {
	case "memory":
		repos = repository.NewMemoryRepositories()
		log.Println("📦 Using in-memory storage")
	default:
		log.Println("🔄 Running database migrations...")
		migrationsPath := "./internal/db/migrations"
		if err := db.RunMigrations(cfg.DatabaseURL, migrationsPath); err != nil {
			log.Fatalf("❌ Migration failed: %v", err)
		}
		log.Println("✅ Database migrations completed")

		var err error
		pgDB, err = db.NewPostgresDB(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("❌ Failed to connect to PostgreSQL: %v", err)
		}
		defer pgDB.Close()

		repos = repository.NewRepositories(pgDB.Pool)
	}
	log.Println("📦 Repositories initialized")

	// ============================================
	// Initialize Redis (optional, backs OAuth state)
	// ============================================
	var redisDB *db.RedisDB
	if cfg.RedisURL != "" {
		var err error
		redisDB, err = db.NewRedisDB(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️ Failed to connect to Redis: %v (falling back to in-memory state store)", err)
			redisDB = nil
		} else {
			defer redisDB.Close()
		}
	}
	states := service.NewStateStore(redisDB)

	// ============================================
	// Initialize Email Service (optional)
	// ============================================
	var emailSvc *email.Service
	if cfg.SMTPHost != "" {
		emailSvc = email.NewService(&email.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
			FromName: cfg.SMTPFromName,
			UseTLS:   cfg.SMTPUseTLS,
		})
		log.Println("📧 Email service initialized")
	}

	// ============================================
	// Initialize WebSocket change feed
	// ============================================
	hub := socket.NewHub()
	go hub.Run()
	broadcaster := socket.NewBroadcaster(hub)
	wsHandler := socket.NewHandler(hub, cfg.JWTSecret)
	log.Println("🔌 WebSocket hub initialized")

	// ============================================
	// Seed Data (for development)
	// ============================================
	if cfg.Environment != "production" {
		seed.SeedData(repos)
	}

	// ============================================
	// Initialize Services and Handlers
	// ============================================
	services := service.NewServices(&service.ServiceDeps{
		Config:      cfg,
		Repos:       repos,
		States:      states,
		EmailSvc:    emailSvc,
		Broadcaster: broadcaster,
	})
	h := handlers.NewHandlers(services)
	log.Println("✨ All services initialized")

	// ============================================
	// Initialize Cron Scheduler
	// ============================================
	cronScheduler := cron.NewScheduler(states)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	// ============================================
	// Create Gin Router
	// ============================================
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL, "http://localhost:8000"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "healthy",
			"timestamp":  time.Now(),
			"storage":    cfg.StorageDriver,
			"cache":      getCacheStatus(redisDB),
			"ws_clients": hub.GetConnectedClientsCount(),
			"email":      getEmailStatus(emailSvc),
		})
	})

	// API routes
	api := r.Group("/api/v1")
	{
		// ============================================
		// Authentication
		// ============================================
		auth := api.Group("/auth")
		{
			auth.GET("/signup", h.Auth.Signup)
			auth.GET("/login", h.Auth.Login)
			auth.GET("/callback", h.Auth.Callback)
			auth.POST("/login/local", h.Auth.LoginLocal)
		}

		// WebSocket change feed
		api.GET("/events", wsHandler.HandleWebSocket)

		// ============================================
		// User management
		// ============================================
		users := api.Group("/users")
		{
			users.POST("", h.User.Create)
			users.GET("", h.User.List)
			users.GET("/me", middleware.AuthMiddleware(services.Auth), h.User.GetCurrentUser)
			users.PATCH("/:email", h.User.Update)
			users.DELETE("/:email", h.User.Delete)
		}

		// ============================================
		// Client management
		// ============================================
		clients := api.Group("/clients")
		{
			clients.POST("", h.Client.Create)
			clients.GET("", h.Client.List)
			clients.GET("/:id", h.Client.Get)
			clients.PATCH("/:id", h.Client.Update)
			clients.DELETE("/:id", h.Client.Delete)
		}

		// ============================================
		// Project management
		// ============================================
		projects := api.Group("/projects")
		{
			projects.POST("", h.Project.Create)
			projects.GET("", h.Project.List)
			projects.GET("/:id", h.Project.Get)
			projects.PATCH("/:id", h.Project.Update)
			projects.DELETE("/:id", h.Project.Delete)
		}
	}

	// Create server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		log.Printf("🚀 Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func getCacheStatus(redisDB *db.RedisDB) string {
	if redisDB != nil {
		return "connected"
	}
	return "disabled"
}

func getEmailStatus(emailSvc *email.Service) string {
	if emailSvc != nil {
		return "configured"
	}
	return "disabled"
}
