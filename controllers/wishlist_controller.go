package controllers

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/realhome/realhome_backend/models"
	"github.com/realhome/realhome_backend/repositories"
	"github.com/realhome/realhome_backend/utils"
)

// WishlistController handles saved-search management
type WishlistController struct {
	DB        *mongo.Client
	wishlists *repositories.WishlistRepository
	logger    *log.Logger
}

// NewWishlistController creates a new wishlist controller
func NewWishlistController(db *mongo.Client) *WishlistController {
	return &WishlistController{
		DB:        db,
		wishlists: repositories.NewWishlistRepository(db),
		logger:    log.New(os.Stdout, "[WISHLIST] ", log.LstdFlags),
	}
}

// CreateWishlist saves a new search for the authenticated user. The contact
// email defaults to the account email when the request leaves it empty.
func (wc *WishlistController) CreateWishlist(c echo.Context) error {
	user, err := utils.GetUserFromToken(c, wc.DB)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	var req models.WishlistRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request data",
		})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Validation failed: " + err.Error(),
		})
	}

	contactEmail := req.ContactEmail
	if contactEmail == "" {
		contactEmail = user.Email
	}
	contactEmail, err = utils.SanitizeEmail(contactEmail)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid contact email",
		})
	}

	wishlist := models.Wishlist{
		UserID:        user.ID,
		ContactEmail:  contactEmail,
		MaxPrice:      req.MaxPrice,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		ParkingSpaces: req.ParkingSpaces,
		PropertyType:  req.PropertyType,
		Suburb:        req.Suburb,
		City:          req.City,
		Province:      req.Province,
		PetsRequired:  req.PetsRequired,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if err := wc.wishlists.Create(ctx, &wishlist); err != nil {
		wc.logger.Printf("Error creating wishlist: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to save wishlist",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Wishlist saved successfully",
		Data:    wishlist,
	})
}

// GetMyWishlists returns the authenticated user's saved searches
func (wc *WishlistController) GetMyWishlists(c echo.Context) error {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	wishlists, err := wc.wishlists.FindByUser(c.Request().Context(), userID)
	if err != nil {
		wc.logger.Printf("Error fetching wishlists for user %s: %v", userID.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch wishlists",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Wishlists retrieved successfully",
		Data:    wishlists,
	})
}

// DeleteWishlist removes a saved search owned by the authenticated user
func (wc *WishlistController) DeleteWishlist(c echo.Context) error {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid wishlist ID",
		})
	}

	if err := wc.wishlists.Delete(c.Request().Context(), id, userID); err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Wishlist not found",
			})
		}
		wc.logger.Printf("Error deleting wishlist %s: %v", id.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete wishlist",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Wishlist deleted successfully",
	})
}
