package main

import (
	"context"
	"log"
	"mime"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/realhome/realhome_backend/config"
	"github.com/realhome/realhome_backend/middleware"
	"github.com/realhome/realhome_backend/models"
	"github.com/realhome/realhome_backend/repositories"
	"github.com/realhome/realhome_backend/routes"
	"github.com/realhome/realhome_backend/services"
	"github.com/realhome/realhome_backend/utils"
	"github.com/realhome/realhome_backend/websocket"
)

// CustomValidator is a custom validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the request body
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found")
	}

	// Ensure correct MIME type for SVG files
	_ = mime.AddExtensionType(".svg", "image/svg+xml")

	// Initialize Firebase
	config.InitFirebase()

	// Connect to Redis
	config.ConnectRedis()

	// Connect to database
	client := config.ConnectDB()

	// Prepare upload directories
	if err := utils.InitializeStorage(); err != nil {
		log.Printf("Warning: failed to initialize upload storage: %v", err)
	}

	// Create WebSocket hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Create a new Echo instance
	e := echo.New()
	e.HideBanner = true

	// Initialize custom validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter()

	// Middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.GlobalCORS())
	e.Use(middleware.SecurityHeaders())
	e.Use(rateLimiter.RateLimit())

	// Background cleanup of expired blacklisted tokens
	go middleware.CleanupBlacklist()

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, models.Response{
			Status:  http.StatusOK,
			Message: "OK",
		})
	})

	// Register routes
	routes.SetupRoutes(e, client, wsHub)

	// Wishlist engine scans listings against saved searches and emails buyers
	// when a match is found
	var engine *services.WishlistEngine
	if os.Getenv("WISHLIST_ENGINE_ENABLED") != "false" {
		interval := 10 * time.Second
		if raw := os.Getenv("WISHLIST_SCAN_INTERVAL_SECONDS"); raw != "" {
			if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
				interval = time.Duration(secs) * time.Second
			}
		}

		engine = services.NewWishlistEngine(
			repositories.NewWishlistRepository(client),
			repositories.NewListingRepository(client),
			services.NewEmailNotifierFromEnv(),
			interval,
			services.NewMatchAlertService(client, wsHub),
		)
		engine.Start()
	}

	// Start server
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	if engine != nil {
		engine.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	config.CloseRedis()

	if err := client.Disconnect(ctx); err != nil {
		log.Printf("Database disconnect error: %v", err)
	}
}
