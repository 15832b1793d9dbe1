// models/listing.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Listing represents a property available for sale or rent
type Listing struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OwnerID       primitive.ObjectID `json:"ownerId,omitempty" bson:"ownerId,omitempty"`
	Title         string             `json:"title" bson:"title"`
	Description   string             `json:"description,omitempty" bson:"description,omitempty"`
	ListingType   string             `json:"listingType" bson:"listingType"` // "sale" or "rent"
	Price         float64            `json:"price" bson:"price"`
	Bedrooms      int                `json:"bedrooms" bson:"bedrooms"`
	Bathrooms     int                `json:"bathrooms" bson:"bathrooms"`
	ParkingSpaces int                `json:"parkingSpaces" bson:"parkingSpaces"`
	PropertyType  string             `json:"propertyType" bson:"propertyType"` // e.g. "house", "apartment", "townhouse"
	Address       string             `json:"address,omitempty" bson:"address,omitempty"`
	Suburb        string             `json:"suburb" bson:"suburb"`
	City          string             `json:"city" bson:"city"`
	Province      string             `json:"province" bson:"province"`
	PetsAllowed   bool               `json:"petsAllowed" bson:"petsAllowed"`
	Photos        []string           `json:"photos,omitempty" bson:"photos,omitempty"`
	VideoTourURL  string             `json:"videoTourUrl,omitempty" bson:"videoTourUrl,omitempty"`
	ThumbnailURL  string             `json:"thumbnailUrl,omitempty" bson:"thumbnailUrl,omitempty"`
	IsActive      bool               `json:"isActive" bson:"isActive"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ListingRequest is the payload for creating or updating a listing
type ListingRequest struct {
	Title         string  `json:"title" validate:"required"`
	Description   string  `json:"description,omitempty"`
	ListingType   string  `json:"listingType" validate:"required,oneof=sale rent"`
	Price         float64 `json:"price" validate:"required,gt=0"`
	Bedrooms      int     `json:"bedrooms" validate:"gte=0"`
	Bathrooms     int     `json:"bathrooms" validate:"gte=0"`
	ParkingSpaces int     `json:"parkingSpaces" validate:"gte=0"`
	PropertyType  string  `json:"propertyType" validate:"required"`
	Address       string  `json:"address,omitempty"`
	Suburb        string  `json:"suburb" validate:"required"`
	City          string  `json:"city" validate:"required"`
	Province      string  `json:"province" validate:"required"`
	PetsAllowed   bool    `json:"petsAllowed"`
}

// ListingFilter carries the optional query parameters for browsing listings
type ListingFilter struct {
	MaxPrice     *float64 `query:"maxPrice"`
	MinPrice     *float64 `query:"minPrice"`
	Bedrooms     *int     `query:"bedrooms"`
	PropertyType string   `query:"propertyType"`
	Suburb       string   `query:"suburb"`
	City         string   `query:"city"`
	Province     string   `query:"province"`
	ListingType  string   `query:"listingType"`
}
