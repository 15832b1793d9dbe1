package routes

import (
	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/realhome/realhome_backend/controllers"
	"github.com/realhome/realhome_backend/middleware"
	"github.com/realhome/realhome_backend/websocket"
)

// SetupRoutes configures all API routes by calling individual route registration functions
func SetupRoutes(e *echo.Echo, db *mongo.Client, hub *websocket.Hub) {
	authController := controllers.NewAuthController(db)
	listingController := controllers.NewListingController(db, hub)
	wishlistController := controllers.NewWishlistController(db)
	userController := controllers.NewUserController(db)
	notificationController := controllers.NewNotificationController(db)

	RegisterAuthRoutes(e, authController)
	RegisterListingRoutes(e, listingController)
	RegisterWishlistRoutes(e, wishlistController)
	RegisterUserRoutes(e, userController, notificationController)
	RegisterFileRoutes(e)

	// WebSocket endpoint for live notifications. A token query parameter
	// authenticates the connection up front; without it the client connects
	// unauthenticated and must send an AUTH message.
	e.GET("/ws", func(c echo.Context) error {
		userID := primitive.NilObjectID
		if tokenStr := c.QueryParam("token"); tokenStr != "" {
			claims := &middleware.JwtCustomClaims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
				return []byte(middleware.GetJWTSecret()), nil
			})
			if err == nil && token.Valid && !middleware.IsTokenBlacklisted(tokenStr) {
				if id, err := primitive.ObjectIDFromHex(claims.UserID); err == nil {
					userID = id
				}
			}
		}
		return websocket.HandleWebSocket(c, hub, userID)
	})
}
