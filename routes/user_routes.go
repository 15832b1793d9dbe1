package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/realhome/realhome_backend/controllers"
	"github.com/realhome/realhome_backend/middleware"
)

// RegisterUserRoutes sets up profile and notification routes
func RegisterUserRoutes(e *echo.Echo, userController *controllers.UserController, notificationController *controllers.NotificationController) {
	users := e.Group("/api/users")
	users.Use(middleware.JWTMiddleware())
	users.GET("/me", userController.GetProfile)
	users.PUT("/me", userController.UpdateProfile)
	users.POST("/me/profile-picture", userController.UploadProfilePicture)
	users.POST("/me/fcm-token", userController.RegisterFCMToken)

	notifications := e.Group("/api/notifications")
	notifications.Use(middleware.JWTMiddleware())
	notifications.GET("", notificationController.GetNotifications)
	notifications.PUT("/:id/read", notificationController.MarkNotificationRead)
	notifications.PUT("/read-all", notificationController.MarkAllNotificationsRead)
}
