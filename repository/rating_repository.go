package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yaseeradam/smartlink-backend/models"
)

// RatingRepository defines the interface for party-to-party rating access.
// A unique index on (order, reviewer, reviewee) backs the at-most-once rule.
type RatingRepository interface {
	Create(ctx context.Context, rating *models.Rating) error
	ExistsFor(ctx context.Context, orderID, reviewerID, revieweeID string) (bool, error)
	FindByReviewee(ctx context.Context, revieweeID string) ([]*models.Rating, error)
}

// MongoRatingRepository implements RatingRepository using MongoDB.
type MongoRatingRepository struct {
	collection *mongo.Collection
}

func NewMongoRatingRepository(db *mongo.Database) *MongoRatingRepository {
	return &MongoRatingRepository{collection: db.Collection("ratings")}
}

func (r *MongoRatingRepository) Create(ctx context.Context, rating *models.Rating) error {
	_, err := r.collection.InsertOne(ctx, rating)
	return mapWriteErr(err)
}

func (r *MongoRatingRepository) ExistsFor(ctx context.Context, orderID, reviewerID, revieweeID string) (bool, error) {
	filter := bson.M{"order_id": orderID, "reviewer_id": reviewerID, "reviewee_id": revieweeID}
	err := r.collection.FindOne(ctx, filter).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *MongoRatingRepository) FindByReviewee(ctx context.Context, revieweeID string) ([]*models.Rating, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"reviewee_id": revieweeID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ratings []*models.Rating
	if err := cursor.All(ctx, &ratings); err != nil {
		return nil, err
	}
	return ratings, nil
}
