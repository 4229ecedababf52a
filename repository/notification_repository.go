package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yaseeradam/smartlink-backend/models"
)

// NotificationFilter narrows notification listings for one recipient.
type NotificationFilter struct {
	RecipientID string
	UnreadOnly  bool
	Page        int
	Limit       int
}

// NotificationRepository defines the interface for notification data access.
// Notifications are never deleted; only their read flag changes.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	Find(ctx context.Context, filter NotificationFilter) ([]*models.Notification, error)
	CountUnread(ctx context.Context, recipientID string) (int64, error)
	MarkRead(ctx context.Context, recipientID string, ids []string) error
	MarkAllRead(ctx context.Context, recipientID string) error
}

// MongoNotificationRepository implements NotificationRepository using MongoDB.
type MongoNotificationRepository struct {
	collection *mongo.Collection
}

func NewMongoNotificationRepository(db *mongo.Database) *MongoNotificationRepository {
	return &MongoNotificationRepository{collection: db.Collection("notifications")}
}

func (r *MongoNotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	_, err := r.collection.InsertOne(ctx, n)
	return mapWriteErr(err)
}

func (r *MongoNotificationRepository) Find(ctx context.Context, filter NotificationFilter) ([]*models.Notification, error) {
	query := bson.M{"recipient_id": filter.RecipientID}
	if filter.UnreadOnly {
		query["is_read"] = false
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if filter.Limit > 0 {
		findOpts = findOpts.SetLimit(int64(filter.Limit)).
			SetSkip(int64((filter.Page - 1) * filter.Limit))
	}

	cursor, err := r.collection.Find(ctx, query, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []*models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *MongoNotificationRepository) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"recipient_id": recipientID, "is_read": false})
}

func (r *MongoNotificationRepository) MarkRead(ctx context.Context, recipientID string, ids []string) error {
	filter := bson.M{"_id": bson.M{"$in": ids}, "recipient_id": recipientID}
	_, err := r.collection.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"is_read": true}})
	return err
}

func (r *MongoNotificationRepository) MarkAllRead(ctx context.Context, recipientID string) error {
	filter := bson.M{"recipient_id": recipientID, "is_read": false}
	_, err := r.collection.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"is_read": true}})
	return err
}
