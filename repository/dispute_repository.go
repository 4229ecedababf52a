package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yaseeradam/smartlink-backend/models"
)

// DisputeRepository defines the interface for dispute records.
type DisputeRepository interface {
	Create(ctx context.Context, dispute *models.Dispute) error
	FindByReporter(ctx context.Context, reporterID string) ([]*models.Dispute, error)
}

// MongoDisputeRepository implements DisputeRepository using MongoDB.
type MongoDisputeRepository struct {
	collection *mongo.Collection
}

func NewMongoDisputeRepository(db *mongo.Database) *MongoDisputeRepository {
	return &MongoDisputeRepository{collection: db.Collection("disputes")}
}

func (r *MongoDisputeRepository) Create(ctx context.Context, dispute *models.Dispute) error {
	_, err := r.collection.InsertOne(ctx, dispute)
	return mapWriteErr(err)
}

func (r *MongoDisputeRepository) FindByReporter(ctx context.Context, reporterID string) ([]*models.Dispute, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"reporter_id": reporterID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var disputes []*models.Dispute
	if err := cursor.All(ctx, &disputes); err != nil {
		return nil, err
	}
	return disputes, nil
}
