package controllers

import (
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/realhome/realhome_backend/models"
	"github.com/realhome/realhome_backend/repositories"
	"github.com/realhome/realhome_backend/utils"
	"github.com/realhome/realhome_backend/websocket"
)

// ListingController handles property listing management
type ListingController struct {
	DB       *mongo.Client
	listings *repositories.ListingRepository
	hub      *websocket.Hub
	logger   *log.Logger
}

// NewListingController creates a new listing controller
func NewListingController(db *mongo.Client, hub *websocket.Hub) *ListingController {
	return &ListingController{
		DB:       db,
		listings: repositories.NewListingRepository(db),
		hub:      hub,
		logger:   log.New(os.Stdout, "[LISTING] ", log.LstdFlags),
	}
}

// CreateListing creates a new property listing for the authenticated agent
func (lc *ListingController) CreateListing(c echo.Context) error {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	var req models.ListingRequest
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

	listing := models.Listing{
		OwnerID:       userID,
		Title:         utils.SanitizeInput(req.Title),
		Description:   utils.SanitizeInput(req.Description),
		ListingType:   req.ListingType,
		Price:         req.Price,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		ParkingSpaces: req.ParkingSpaces,
		PropertyType:  strings.TrimSpace(req.PropertyType),
		Address:       utils.SanitizeInput(req.Address),
		Suburb:        strings.TrimSpace(req.Suburb),
		City:          strings.TrimSpace(req.City),
		Province:      strings.TrimSpace(req.Province),
		PetsAllowed:   req.PetsAllowed,
	}

	if err := lc.listings.Create(c.Request().Context(), &listing); err != nil {
		lc.logger.Printf("Error creating listing: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create listing",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Listing created successfully",
		Data:    listing,
	})
}

// GetListings returns active listings matching the browse filter
func (lc *ListingController) GetListings(c echo.Context) error {
	var filter models.ListingFilter
	if err := c.Bind(&filter); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid query parameters",
		})
	}

	listings, err := lc.listings.Find(c.Request().Context(), filter)
	if err != nil {
		lc.logger.Printf("Error fetching listings: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch listings",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Listings retrieved successfully",
		Data:    listings,
	})
}

// GetListing returns a single listing by ID
func (lc *ListingController) GetListing(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid listing ID",
		})
	}

	listing, err := lc.listings.FindByID(c.Request().Context(), id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Listing not found",
			})
		}
		lc.logger.Printf("Error fetching listing %s: %v", id.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch listing",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Listing retrieved successfully",
		Data:    listing,
	})
}

// UpdateListing updates a listing owned by the authenticated agent
func (lc *ListingController) UpdateListing(c echo.Context) error {
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
			Message: "Invalid listing ID",
		})
	}

	var req models.ListingRequest
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

	if err := lc.listings.Update(c.Request().Context(), id, userID, req); err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Listing not found or not owned by you",
			})
		}
		lc.logger.Printf("Error updating listing %s: %v", id.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update listing",
		})
	}

	// Ping the owner's open websocket sessions, best effort
	if lc.hub != nil {
		if err := lc.hub.NotifyListingUpdate(userID, map[string]string{"listingId": id.Hex()}); err != nil {
			lc.logger.Printf("Websocket notify failed for listing %s: %v", id.Hex(), err)
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Listing updated successfully",
	})
}

// UploadListingMedia attaches photos and an optional video tour to a listing.
// A thumbnail is generated from the video when one is uploaded.
func (lc *ListingController) UploadListingMedia(c echo.Context) error {
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
			Message: "Invalid listing ID",
		})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid multipart form",
		})
	}

	var photoURLs []string
	for _, fileHeader := range form.File["photos"] {
		src, err := fileHeader.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			continue
		}

		filename := "listings/" + uuid.New().String() + filepath.Ext(fileHeader.Filename)
		url, err := utils.UploadFile(data, filename, "image")
		if err != nil {
			lc.logger.Printf("Photo upload failed: %v", err)
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Photo upload failed: " + err.Error(),
			})
		}
		photoURLs = append(photoURLs, url)
	}

	var videoURL, thumbnailURL string
	if videoFiles := form.File["videoTour"]; len(videoFiles) > 0 {
		fileHeader := videoFiles[0]
		src, err := fileHeader.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Failed to read video file",
			})
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Failed to read video file",
			})
		}

		filename := "tours/" + uuid.New().String() + filepath.Ext(fileHeader.Filename)
		videoURL, err = utils.UploadFile(data, filename, "video")
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Video upload failed: " + err.Error(),
			})
		}

		thumbnailURL, err = utils.GenerateVideoThumbnail(videoURL)
		if err != nil {
			// Thumbnail generation needs ffmpeg on the host, tolerate failure
			lc.logger.Printf("Thumbnail generation failed for %s: %v", videoURL, err)
			thumbnailURL = ""
		}
	}

	if len(photoURLs) == 0 && videoURL == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "No media files provided",
		})
	}

	if err := lc.listings.AddMedia(c.Request().Context(), id, userID, photoURLs, videoURL, thumbnailURL); err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Listing not found or not owned by you",
			})
		}
		lc.logger.Printf("Error saving media for listing %s: %v", id.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to save media",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Media uploaded successfully",
		Data: map[string]interface{}{
			"photos":       photoURLs,
			"videoTourUrl": videoURL,
			"thumbnailUrl": thumbnailURL,
		},
	})
}

// DeleteListing removes a listing owned by the authenticated agent
func (lc *ListingController) DeleteListing(c echo.Context) error {
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
			Message: "Invalid listing ID",
		})
	}

	if err := lc.listings.Delete(c.Request().Context(), id, userID); err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Listing not found or not owned by you",
			})
		}
		lc.logger.Printf("Error deleting listing %s: %v", id.Hex(), err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete listing",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Listing deleted successfully",
	})
}
