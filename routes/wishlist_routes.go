package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/realhome/realhome_backend/controllers"
	"github.com/realhome/realhome_backend/middleware"
)

// RegisterWishlistRoutes sets up saved-search routes
func RegisterWishlistRoutes(e *echo.Echo, wishlistController *controllers.WishlistController) {
	wishlists := e.Group("/api/wishlists")
	wishlists.Use(middleware.JWTMiddleware())
	wishlists.POST("", wishlistController.CreateWishlist)
	wishlists.GET("", wishlistController.GetMyWishlists)
	wishlists.DELETE("/:id", wishlistController.DeleteWishlist)
}
