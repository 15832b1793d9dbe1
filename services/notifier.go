// services/notifier.go
package services

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"

	"github.com/realhome/realhome_backend/models"
)

// Notifier delivers a wishlist match alert to a buyer. Implementations must
// only return nil once delivery has been confirmed by the transport; the
// engine commits the notified flag based on that outcome.
type Notifier interface {
	Notify(ctx context.Context, email string, listing models.Listing) error
}

// EmailNotifier sends wishlist match alerts over SMTP using gomail
type EmailNotifier struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewEmailNotifierFromEnv builds an EmailNotifier from SMTP_* environment variables
func NewEmailNotifierFromEnv() *EmailNotifier {
	port := 2525
	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		if p, err := strconv.Atoi(portStr); err == nil {
			port = p
		}
	}

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = os.Getenv("SMTP_USER")
	}

	return &EmailNotifier{
		host:     os.Getenv("SMTP_HOST"),
		port:     port,
		username: os.Getenv("SMTP_USER"),
		password: os.Getenv("SMTP_PASS"),
		from:     from,
	}
}

// Notify sends a single match alert email. A non-nil return means delivery was
// not confirmed and the wishlist stays pending.
func (n *EmailNotifier) Notify(ctx context.Context, email string, listing models.Listing) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "A property matching your wishlist is now available")
	m.SetBody("text/plain", RenderMatchEmail(listing))

	d := gomail.NewDialer(n.host, n.port, n.username, n.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send wishlist match email: %w", err)
	}
	return nil
}

// RenderMatchEmail renders the plain-text body for a wishlist match alert. The
// body carries enough listing identity for the buyer to recognize the match.
func RenderMatchEmail(listing models.Listing) string {
	pets := "no"
	if listing.PetsAllowed {
		pets = "yes"
	}

	location := listing.Suburb
	if listing.City != "" {
		location += ", " + listing.City
	}
	if listing.Province != "" {
		location += ", " + listing.Province
	}

	body := fmt.Sprintf(
		"Good news!\n\nA property matching your saved search is now available:\n\n"+
			"%s\n%s\nLocation: %s\nPrice: R%.0f\nType: %s (%s)\n"+
			"Bedrooms: %d | Bathrooms: %d | Parking spaces: %d\nPets allowed: %s\n\n"+
			"Log in to Realhome to view the full listing.\n\nBest regards,\nThe Realhome Team",
		listing.Title, listing.Address, location, listing.Price,
		listing.PropertyType, listing.ListingType,
		listing.Bedrooms, listing.Bathrooms, listing.ParkingSpaces, pets,
	)
	return body
}
