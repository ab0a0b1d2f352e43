package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"sample-catalog-api/internal/config"
	"sample-catalog-api/internal/handlers"
	"sample-catalog-api/internal/middleware"
	"sample-catalog-api/pkg/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err := server.NewContainer(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer container.Close()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.RateLimiter(50, 100))
	router.Use(middleware.RequestSizeLimit(10 << 20))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		if err := container.HealthCheck(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC(),
		})
	})

	sampleHandler := handlers.NewSampleHandler(container.SampleService, container.Verifier)
	searchHandler := handlers.NewSearchHandler(container.SampleService)
	uploadHandler := handlers.NewUploadHandler(container.UploadService, container.BatchService, container.Verifier)
	authHandler := handlers.NewAuthHandler(container.Authenticator(), container.OAuth, container.Config.Auth.WebClientURL)

	v1 := router.Group("/api/v1")

	// Login endpoints stay open; everything else requires a verified token
	// when a user pool is configured.
	authRoutes := v1.Group("/auth")
	{
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.GET("/callback", authHandler.Callback)
	}

	protected := v1.Group("")
	if container.Verifier != nil {
		protected.Use(middleware.Authentication(container.Verifier))
	}
	{
		samples := protected.Group("/samples")
		{
			samples.POST("", sampleHandler.CreateSample)
			samples.GET("", sampleHandler.ListSamples)
			samples.GET("/:id", sampleHandler.GetSample)
			samples.DELETE("/:id", sampleHandler.DeleteSample)
			samples.POST("/batch", uploadHandler.BatchImport)
			samples.POST("/search/filters", searchHandler.SearchByFilters)
			samples.POST("/search/fulltext", searchHandler.SearchFulltext)
			samples.POST("/search/location", searchHandler.SearchByLocation)
		}

		uploads := protected.Group("/uploads")
		{
			uploads.POST("/presign", uploadHandler.PresignUpload)
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

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
