package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/realhome/realhome_backend/controllers"
	"github.com/realhome/realhome_backend/middleware"
)

// RegisterAuthRoutes sets up authentication routes
func RegisterAuthRoutes(e *echo.Echo, authController *controllers.AuthController) {
	// Public authentication routes
	e.POST("/api/auth/signup", authController.Signup)
	e.POST("/api/auth/login", authController.Login)
	e.POST("/api/auth/remember-me", authController.LoginWithRememberMe)
	e.POST("/api/auth/refresh-token", authController.RefreshToken)
	e.POST("/api/auth/logout", authController.Logout)

	// Protected authentication routes
	auth := e.Group("/api/auth")
	auth.Use(middleware.JWTMiddleware())
	auth.POST("/change-password", authController.ChangePassword)
}
