// services/matcher.go
package services

import (
	"strings"

	"github.com/realhome/realhome_backend/models"
)

// MatchesListing reports whether a listing satisfies every constraint set on a
// wishlist. An unset (nil) constraint matches any listing, so a wishlist with
// no constraints matches everything. Text constraints compare case-insensitively
// after trimming, MaxPrice is an upper bound, and a pets constraint only
// excludes a listing when it is explicitly set to true: "no pet requirement"
// and "pets not required" behave the same.
func MatchesListing(listing models.Listing, wishlist models.Wishlist) bool {
	if wishlist.MaxPrice != nil && listing.Price > *wishlist.MaxPrice {
		return false
	}
	if wishlist.Bedrooms != nil && listing.Bedrooms != *wishlist.Bedrooms {
		return false
	}
	if wishlist.Bathrooms != nil && listing.Bathrooms != *wishlist.Bathrooms {
		return false
	}
	if wishlist.ParkingSpaces != nil && listing.ParkingSpaces != *wishlist.ParkingSpaces {
		return false
	}
	if !matchesText(wishlist.PropertyType, listing.PropertyType) {
		return false
	}
	if !matchesText(wishlist.Suburb, listing.Suburb) {
		return false
	}
	if !matchesText(wishlist.City, listing.City) {
		return false
	}
	if !matchesText(wishlist.Province, listing.Province) {
		return false
	}
	if wishlist.PetsRequired != nil && *wishlist.PetsRequired && !listing.PetsAllowed {
		return false
	}
	return true
}

func matchesText(constraint *string, value string) bool {
	if constraint == nil {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(*constraint), strings.TrimSpace(value))
}
