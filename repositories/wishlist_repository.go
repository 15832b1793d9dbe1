package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/realhome/realhome_backend/config"
	"github.com/realhome/realhome_backend/models"
)

// ErrWishlistNotPending is returned by MarkNotified when the record was already
// notified or no longer exists. The engine treats it as a lost race, not a failure.
var ErrWishlistNotPending = errors.New("wishlist is not pending notification")

type WishlistRepository struct {
	collection *mongo.Collection
}

func NewWishlistRepository(db *mongo.Client) *WishlistRepository {
	return &WishlistRepository{
		collection: config.GetCollection(db, "wishlists"),
	}
}

// Create saves a new wishlist for a user
func (r *WishlistRepository) Create(ctx context.Context, wishlist *models.Wishlist) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	wishlist.ID = primitive.NewObjectID()
	wishlist.Notified = false
	wishlist.CreatedAt = time.Now()
	wishlist.UpdatedAt = wishlist.CreatedAt

	_, err := r.collection.InsertOne(ctx, wishlist)
	return err
}

// FindByUser returns all wishlists belonging to a user
func (r *WishlistRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Wishlist, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var wishlists []models.Wishlist
	if err := cursor.All(ctx, &wishlists); err != nil {
		return nil, err
	}
	return wishlists, nil
}

// ListPending returns every wishlist that has not yet been notified
func (r *WishlistRepository) ListPending(ctx context.Context) ([]models.Wishlist, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"notified": false})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var wishlists []models.Wishlist
	if err := cursor.All(ctx, &wishlists); err != nil {
		return nil, err
	}
	return wishlists, nil
}

// MarkNotified flips the notified flag in a single conditional update. The
// filter requires notified=false so the flag can never be set twice and a
// record deleted mid-tick is never resurrected.
func (r *WishlistRepository) MarkNotified(ctx context.Context, id, listingID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	now := time.Now()
	filter := bson.M{"_id": id, "notified": false}
	update := bson.M{
		"$set": bson.M{
			"notified":         true,
			"notifiedAt":       now,
			"matchedListingId": listingID,
			"updatedAt":        now,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.ModifiedCount == 0 {
		return ErrWishlistNotPending
	}
	return nil
}

// Delete removes a wishlist owned by the given user
func (r *WishlistRepository) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
