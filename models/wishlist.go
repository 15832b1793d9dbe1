// models/wishlist.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Wishlist is a buyer's saved search. Each constraint field is optional:
// a nil pointer means the constraint is unset and matches any listing.
type Wishlist struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID       primitive.ObjectID `json:"userId,omitempty" bson:"userId,omitempty"`
	ContactEmail string             `json:"contactEmail" bson:"contactEmail"`

	MaxPrice      *float64 `json:"maxPrice,omitempty" bson:"maxPrice,omitempty"`
	Bedrooms      *int     `json:"bedrooms,omitempty" bson:"bedrooms,omitempty"`
	Bathrooms     *int     `json:"bathrooms,omitempty" bson:"bathrooms,omitempty"`
	ParkingSpaces *int     `json:"parkingSpaces,omitempty" bson:"parkingSpaces,omitempty"`
	PropertyType  *string  `json:"propertyType,omitempty" bson:"propertyType,omitempty"`
	Suburb        *string  `json:"suburb,omitempty" bson:"suburb,omitempty"`
	City          *string  `json:"city,omitempty" bson:"city,omitempty"`
	Province      *string  `json:"province,omitempty" bson:"province,omitempty"`
	PetsRequired  *bool    `json:"petsRequired,omitempty" bson:"petsRequired,omitempty"`

	// Notified never reverts to false once set. It is written exclusively by the
	// wishlist engine through a conditional update.
	Notified         bool                `json:"notified" bson:"notified"`
	NotifiedAt       *time.Time          `json:"notifiedAt,omitempty" bson:"notifiedAt,omitempty"`
	MatchedListingID *primitive.ObjectID `json:"matchedListingId,omitempty" bson:"matchedListingId,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// WishlistRequest is the payload for saving a new search
type WishlistRequest struct {
	ContactEmail  string   `json:"contactEmail" validate:"omitempty,email"`
	MaxPrice      *float64 `json:"maxPrice,omitempty" validate:"omitempty,gt=0"`
	Bedrooms      *int     `json:"bedrooms,omitempty" validate:"omitempty,gte=0"`
	Bathrooms     *int     `json:"bathrooms,omitempty" validate:"omitempty,gte=0"`
	ParkingSpaces *int     `json:"parkingSpaces,omitempty" validate:"omitempty,gte=0"`
	PropertyType  *string  `json:"propertyType,omitempty"`
	Suburb        *string  `json:"suburb,omitempty"`
	City          *string  `json:"city,omitempty"`
	Province      *string  `json:"province,omitempty"`
	PetsRequired  *bool    `json:"petsRequired,omitempty"`
}
