package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the repositories rely on. Safe to call
// on every startup; Mongo treats existing identical indexes as a no-op.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	indexes := map[string][]mongo.IndexModel{
		"users": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "phone", Value: 1}}, Options: unique},
		},
		"products": {
			{Keys: bson.D{
				{Key: "name", Value: "text"},
				{Key: "description", Value: "text"},
				{Key: "tags", Value: "text"},
			}},
			{Keys: bson.D{{Key: "seller_id", Value: 1}}},
			{Keys: bson.D{{Key: "category", Value: 1}, {Key: "price", Value: 1}}},
		},
		"orders": {
			{Keys: bson.D{{Key: "order_number", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "buyer_id", Value: 1}}},
			{Keys: bson.D{{Key: "seller_id", Value: 1}}},
			{Keys: bson.D{{Key: "rider_id", Value: 1}, {Key: "status", Value: 1}}},
		},
		"clusters": {
			{Keys: bson.D{{Key: "leader_id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "service_areas", Value: 1}}},
			{Keys: bson.D{
				{Key: "name", Value: "text"},
				{Key: "location.address", Value: "text"},
			}},
		},
		"notifications": {
			{Keys: bson.D{{Key: "recipient_id", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "is_read", Value: 1}}},
		},
		"ratings": {
			{Keys: bson.D{
				{Key: "order_id", Value: 1},
				{Key: "reviewer_id", Value: 1},
				{Key: "reviewee_id", Value: 1},
			}, Options: unique},
			{Keys: bson.D{{Key: "reviewee_id", Value: 1}}},
		},
		"reviews": {
			{Keys: bson.D{
				{Key: "product_id", Value: 1},
				{Key: "user_id", Value: 1},
				{Key: "order_id", Value: 1},
			}, Options: unique},
			{Keys: bson.D{{Key: "product_id", Value: 1}}},
		},
		"chats": {
			{Keys: bson.D{{Key: "participants", Value: 1}, {Key: "order_id", Value: 1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}
