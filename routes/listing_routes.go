package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/realhome/realhome_backend/controllers"
	"github.com/realhome/realhome_backend/middleware"
)

// RegisterListingRoutes sets up property listing routes
func RegisterListingRoutes(e *echo.Echo, listingController *controllers.ListingController) {
	// Public browse routes
	e.GET("/api/listings", listingController.GetListings)
	e.GET("/api/listings/:id", listingController.GetListing)

	// Agent-only management routes
	listings := e.Group("/api/listings")
	listings.Use(middleware.JWTMiddleware())
	listings.Use(middleware.RequireUserType("agent", "admin"))
	listings.POST("", listingController.CreateListing)
	listings.PUT("/:id", listingController.UpdateListing)
	listings.POST("/:id/media", listingController.UploadListingMedia)
	listings.DELETE("/:id", listingController.DeleteListing)
}
