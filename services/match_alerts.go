// services/match_alerts.go
package services

import (
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/realhome/realhome_backend/models"
	"github.com/realhome/realhome_backend/utils"
	"github.com/realhome/realhome_backend/websocket"
)

// MatchAlertService fans a committed wishlist match out to the buyer's other
// channels: an in-app notification record, an FCM push and a websocket ping.
// All three are best-effort; the email delivery that committed the match has
// already happened by the time this runs.
type MatchAlertService struct {
	db  *mongo.Client
	hub *websocket.Hub
}

// NewMatchAlertService creates a match alert service
func NewMatchAlertService(db *mongo.Client, hub *websocket.Hub) *MatchAlertService {
	return &MatchAlertService{db: db, hub: hub}
}

// WishlistMatched implements MatchListener
func (s *MatchAlertService) WishlistMatched(wishlist models.Wishlist, listing models.Listing) {
	if wishlist.UserID.IsZero() {
		// Wishlists saved with only a contact email have no account to alert
		return
	}

	title := "Wishlist match found"
	message := fmt.Sprintf("%s in %s is available for R%.0f", listing.Title, listing.Suburb, listing.Price)
	data := map[string]interface{}{
		"wishlistId": wishlist.ID.Hex(),
		"listingId":  listing.ID.Hex(),
	}

	if err := utils.SaveNotification(s.db, wishlist.UserID, title, message, "wishlist_match", data); err != nil {
		log.Printf("Failed to save wishlist match notification: %v", err)
	}

	if err := utils.SendFCMNotificationToUser(s.db, wishlist.UserID, title, message, data); err != nil {
		log.Printf("Failed to send wishlist match push: %v", err)
	}

	if s.hub != nil {
		if err := s.hub.NotifyWishlistMatch(wishlist.UserID, listing); err != nil {
			log.Printf("Failed to push wishlist match over websocket: %v", err)
		}
	}
}
