package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/realhome/realhome_backend/models"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }
func boolPtr(v bool) *bool        { return &v }

func testListing() models.Listing {
	return models.Listing{
		Title:         "Family home with garden",
		Price:         480000,
		Bedrooms:      3,
		Bathrooms:     2,
		ParkingSpaces: 1,
		PropertyType:  "house",
		Suburb:        "Rosebank",
		City:          "Johannesburg",
		Province:      "Gauteng",
		PetsAllowed:   false,
	}
}

func TestMatchesListing(t *testing.T) {
	tests := []struct {
		name     string
		listing  models.Listing
		wishlist models.Wishlist
		want     bool
	}{
		{
			name:     "empty wishlist matches any listing",
			listing:  testListing(),
			wishlist: models.Wishlist{},
			want:     true,
		},
		{
			name:    "all constraints satisfied",
			listing: testListing(),
			wishlist: models.Wishlist{
				MaxPrice:      floatPtr(500000),
				Bedrooms:      intPtr(3),
				Bathrooms:     intPtr(2),
				ParkingSpaces: intPtr(1),
				PropertyType:  strPtr("house"),
				Suburb:        strPtr("Rosebank"),
				City:          strPtr("Johannesburg"),
				Province:      strPtr("Gauteng"),
			},
			want: true,
		},
		{
			name:     "price exactly at max price matches",
			listing:  models.Listing{Price: 500000},
			wishlist: models.Wishlist{MaxPrice: floatPtr(500000)},
			want:     true,
		},
		{
			name:     "price one unit above max price does not match",
			listing:  models.Listing{Price: 500001},
			wishlist: models.Wishlist{MaxPrice: floatPtr(500000)},
			want:     false,
		},
		{
			name:     "bedroom count mismatch",
			listing:  testListing(),
			wishlist: models.Wishlist{Bedrooms: intPtr(2)},
			want:     false,
		},
		{
			name:     "bathroom count mismatch",
			listing:  testListing(),
			wishlist: models.Wishlist{Bathrooms: intPtr(3)},
			want:     false,
		},
		{
			name:     "parking space count mismatch",
			listing:  testListing(),
			wishlist: models.Wishlist{ParkingSpaces: intPtr(2)},
			want:     false,
		},
		{
			name:     "suburb compared case-insensitively",
			listing:  testListing(),
			wishlist: models.Wishlist{Suburb: strPtr("rosebank")},
			want:     true,
		},
		{
			name:     "suburb mismatch",
			listing:  testListing(),
			wishlist: models.Wishlist{Suburb: strPtr("Sandton")},
			want:     false,
		},
		{
			name:     "property type with surrounding spaces still matches",
			listing:  testListing(),
			wishlist: models.Wishlist{PropertyType: strPtr(" house ")},
			want:     true,
		},
		{
			name:     "no-pets listing matches when pets constraint unset",
			listing:  testListing(),
			wishlist: models.Wishlist{},
			want:     true,
		},
		{
			name:     "no-pets listing matches when pets not required",
			listing:  testListing(),
			wishlist: models.Wishlist{PetsRequired: boolPtr(false)},
			want:     true,
		},
		{
			name:     "no-pets listing rejected when pets required",
			listing:  testListing(),
			wishlist: models.Wishlist{PetsRequired: boolPtr(true)},
			want:     false,
		},
		{
			name:     "pets-allowed listing matches when pets required",
			listing:  models.Listing{PetsAllowed: true},
			wishlist: models.Wishlist{PetsRequired: boolPtr(true)},
			want:     true,
		},
		{
			name:    "saved search example matches qualifying listing",
			listing: models.Listing{Price: 480000, Bedrooms: 3, Suburb: "Rosebank"},
			wishlist: models.Wishlist{
				MaxPrice: floatPtr(500000),
				Bedrooms: intPtr(3),
			},
			want: true,
		},
		{
			name:    "saved search example rejects two-bedroom listing",
			listing: models.Listing{Price: 480000, Bedrooms: 2},
			wishlist: models.Wishlist{
				MaxPrice: floatPtr(500000),
				Bedrooms: intPtr(3),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesListing(tt.listing, tt.wishlist))
		})
	}
}

// Adding a constraint can only shrink or preserve the set of matching
// listings, never grow it.
func TestMatchesListing_ConstraintsOnlyNarrow(t *testing.T) {
	listings := []models.Listing{
		{Price: 300000, Bedrooms: 2, Bathrooms: 1, PropertyType: "apartment", Suburb: "Sandton", City: "Johannesburg", Province: "Gauteng", PetsAllowed: true},
		{Price: 480000, Bedrooms: 3, Bathrooms: 2, PropertyType: "house", Suburb: "Rosebank", City: "Johannesburg", Province: "Gauteng", PetsAllowed: false},
		{Price: 750000, Bedrooms: 4, Bathrooms: 3, PropertyType: "house", Suburb: "Claremont", City: "Cape Town", Province: "Western Cape", PetsAllowed: true},
		{Price: 500000, Bedrooms: 3, Bathrooms: 2, PropertyType: "townhouse", Suburb: "Rosebank", City: "Johannesburg", Province: "Gauteng", PetsAllowed: true},
	}

	matchedSet := func(w models.Wishlist) map[int]bool {
		set := make(map[int]bool)
		for i, l := range listings {
			if MatchesListing(l, w) {
				set[i] = true
			}
		}
		return set
	}

	// Tighten the wishlist one constraint at a time
	steps := []models.Wishlist{
		{},
		{MaxPrice: floatPtr(600000)},
		{MaxPrice: floatPtr(600000), Bedrooms: intPtr(3)},
		{MaxPrice: floatPtr(600000), Bedrooms: intPtr(3), Suburb: strPtr("Rosebank")},
		{MaxPrice: floatPtr(600000), Bedrooms: intPtr(3), Suburb: strPtr("Rosebank"), PetsRequired: boolPtr(true)},
	}

	previous := matchedSet(steps[0])
	assert.Len(t, previous, len(listings), "unconstrained wishlist should match everything")

	for _, step := range steps[1:] {
		current := matchedSet(step)
		for idx := range current {
			assert.Contains(t, previous, idx, "tightening constraints must never add matches")
		}
		previous = current
	}
}
