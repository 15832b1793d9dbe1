package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/realhome/realhome_backend/config"
	"github.com/realhome/realhome_backend/models"
)

type ListingRepository struct {
	collection *mongo.Collection
}

func NewListingRepository(db *mongo.Client) *ListingRepository {
	return &ListingRepository{
		collection: config.GetCollection(db, "listings"),
	}
}

// Create inserts a new listing and returns it with its generated ID
func (r *ListingRepository) Create(ctx context.Context, listing *models.Listing) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	listing.ID = primitive.NewObjectID()
	listing.IsActive = true
	listing.CreatedAt = time.Now()
	listing.UpdatedAt = listing.CreatedAt

	_, err := r.collection.InsertOne(ctx, listing)
	return err
}

// FindByID returns a single listing by its ID
func (r *ListingRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var listing models.Listing
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&listing)
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

// Find returns listings matching the browse filter
func (r *ListingRepository) Find(ctx context.Context, filter models.ListingFilter) ([]models.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	query := bson.M{"isActive": true}
	if filter.MaxPrice != nil {
		query["price"] = bson.M{"$lte": *filter.MaxPrice}
	}
	if filter.MinPrice != nil {
		if existing, ok := query["price"].(bson.M); ok {
			existing["$gte"] = *filter.MinPrice
		} else {
			query["price"] = bson.M{"$gte": *filter.MinPrice}
		}
	}
	if filter.Bedrooms != nil {
		query["bedrooms"] = *filter.Bedrooms
	}
	if filter.PropertyType != "" {
		query["propertyType"] = filter.PropertyType
	}
	if filter.Suburb != "" {
		query["suburb"] = filter.Suburb
	}
	if filter.City != "" {
		query["city"] = filter.City
	}
	if filter.Province != "" {
		query["province"] = filter.Province
	}
	if filter.ListingType != "" {
		query["listingType"] = filter.ListingType
	}

	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var listings []models.Listing
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

// ListActive returns the full active inventory. The engine reads this as an
// immutable snapshot at the start of every reconciliation tick.
func (r *ListingRepository) ListActive(ctx context.Context) ([]models.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"isActive": true})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var listings []models.Listing
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

// Update applies the request fields to a listing owned by the given user
func (r *ListingRepository) Update(ctx context.Context, id, ownerID primitive.ObjectID, req models.ListingRequest) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"_id": id, "ownerId": ownerID}
	update := bson.M{
		"$set": bson.M{
			"title":         req.Title,
			"description":   req.Description,
			"listingType":   req.ListingType,
			"price":         req.Price,
			"bedrooms":      req.Bedrooms,
			"bathrooms":     req.Bathrooms,
			"parkingSpaces": req.ParkingSpaces,
			"propertyType":  req.PropertyType,
			"address":       req.Address,
			"suburb":        req.Suburb,
			"city":          req.City,
			"province":      req.Province,
			"petsAllowed":   req.PetsAllowed,
			"updatedAt":     time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// AddMedia appends photo URLs and optionally sets the video tour and thumbnail
func (r *ListingRepository) AddMedia(ctx context.Context, id, ownerID primitive.ObjectID, photoURLs []string, videoURL, thumbnailURL string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	set := bson.M{"updatedAt": time.Now()}
	if videoURL != "" {
		set["videoTourUrl"] = videoURL
	}
	if thumbnailURL != "" {
		set["thumbnailUrl"] = thumbnailURL
	}

	update := bson.M{"$set": set}
	if len(photoURLs) > 0 {
		update["$push"] = bson.M{"photos": bson.M{"$each": photoURLs}}
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id, "ownerId": ownerID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes a listing owned by the given user
func (r *ListingRepository) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "ownerId": ownerID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
