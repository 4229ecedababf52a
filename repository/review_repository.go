package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yaseeradam/smartlink-backend/models"
)

// ReviewRepository defines the interface for product review access. A unique
// index on (product, user, order) backs the at-most-once rule.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	ExistsFor(ctx context.Context, productID, userID, orderID string) (bool, error)
	FindByProduct(ctx context.Context, productID string, rating, page, limit int) ([]*models.Review, int64, error)
	AllByProduct(ctx context.Context, productID string) ([]*models.Review, error)
	IncrementHelpful(ctx context.Context, id string) (*models.Review, error)
}

// MongoReviewRepository implements ReviewRepository using MongoDB.
type MongoReviewRepository struct {
	collection *mongo.Collection
}

func NewMongoReviewRepository(db *mongo.Database) *MongoReviewRepository {
	return &MongoReviewRepository{collection: db.Collection("reviews")}
}

func (r *MongoReviewRepository) Create(ctx context.Context, review *models.Review) error {
	_, err := r.collection.InsertOne(ctx, review)
	return mapWriteErr(err)
}

func (r *MongoReviewRepository) ExistsFor(ctx context.Context, productID, userID, orderID string) (bool, error) {
	filter := bson.M{"product_id": productID, "user_id": userID, "order_id": orderID}
	err := r.collection.FindOne(ctx, filter).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *MongoReviewRepository) FindByProduct(ctx context.Context, productID string, rating, page, limit int) ([]*models.Review, int64, error) {
	query := bson.M{"product_id": productID}
	if rating > 0 {
		query["rating"] = rating
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		findOpts = findOpts.SetLimit(int64(limit)).SetSkip(int64((page - 1) * limit))
	}

	cursor, err := r.collection.Find(ctx, query, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var reviews []*models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

func (r *MongoReviewRepository) AllByProduct(ctx context.Context, productID string) ([]*models.Review, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"product_id": productID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []*models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *MongoReviewRepository) IncrementHelpful(ctx context.Context, id string) (*models.Review, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var review models.Review
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"helpful_votes": 1}}, opts).Decode(&review)
	if err != nil {
		return nil, mapFindErr(err)
	}
	return &review, nil
}
