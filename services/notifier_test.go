package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/realhome/realhome_backend/models"
)

func TestRenderMatchEmail(t *testing.T) {
	listing := models.Listing{
		Title:         "Family home with garden",
		Address:       "12 Oak Avenue",
		Suburb:        "Rosebank",
		City:          "Johannesburg",
		Province:      "Gauteng",
		Price:         480000,
		PropertyType:  "house",
		ListingType:   "sale",
		Bedrooms:      3,
		Bathrooms:     2,
		ParkingSpaces: 1,
		PetsAllowed:   true,
	}

	body := RenderMatchEmail(listing)

	// The recipient must be able to recognize the match from the body alone
	assert.Contains(t, body, "Family home with garden")
	assert.Contains(t, body, "12 Oak Avenue")
	assert.Contains(t, body, "Rosebank, Johannesburg, Gauteng")
	assert.Contains(t, body, "R480000")
	assert.Contains(t, body, "house (sale)")
	assert.Contains(t, body, "Bedrooms: 3 | Bathrooms: 2 | Parking spaces: 1")
	assert.Contains(t, body, "Pets allowed: yes")
}

func TestRenderMatchEmail_NoPets(t *testing.T) {
	listing := models.Listing{Title: "City apartment", Suburb: "Sandton", PetsAllowed: false}

	body := RenderMatchEmail(listing)

	assert.Contains(t, body, "Pets allowed: no")
}

func TestNewEmailNotifierFromEnv(t *testing.T) {
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "587")
	t.Setenv("SMTP_USER", "alerts@realhome.example")
	t.Setenv("SMTP_PASS", "secret")
	t.Setenv("SMTP_FROM", "")

	n := NewEmailNotifierFromEnv()

	assert.Equal(t, "smtp.example.com", n.host)
	assert.Equal(t, 587, n.port)
	assert.Equal(t, "alerts@realhome.example", n.username)
	assert.Equal(t, "alerts@realhome.example", n.from, "from falls back to the SMTP user")
}
