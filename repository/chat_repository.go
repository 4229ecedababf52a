package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yaseeradam/smartlink-backend/models"
)

// ChatRepository defines the interface for chat data access.
type ChatRepository interface {
	Create(ctx context.Context, chat *models.Chat) error
	FindByParticipantsAndOrder(ctx context.Context, userID, participantID, orderID string) (*models.Chat, error)
	FindByUser(ctx context.Context, userID string) ([]*models.Chat, error)
	FindByIDForUser(ctx context.Context, chatID, userID string) (*models.Chat, error)
	AppendMessage(ctx context.Context, chatID string, msg models.ChatMessage) error
	// MarkMessagesRead flags every unread message not sent by userID.
	MarkMessagesRead(ctx context.Context, chatID, userID string) error
}

// MongoChatRepository implements ChatRepository using MongoDB.
type MongoChatRepository struct {
	collection *mongo.Collection
}

func NewMongoChatRepository(db *mongo.Database) *MongoChatRepository {
	return &MongoChatRepository{collection: db.Collection("chats")}
}

func (r *MongoChatRepository) Create(ctx context.Context, chat *models.Chat) error {
	_, err := r.collection.InsertOne(ctx, chat)
	return mapWriteErr(err)
}

func (r *MongoChatRepository) FindByParticipantsAndOrder(ctx context.Context, userID, participantID, orderID string) (*models.Chat, error) {
	filter := bson.M{
		"participants": bson.M{"$all": []string{userID, participantID}},
		"order_id":     orderID,
	}
	var chat models.Chat
	err := r.collection.FindOne(ctx, filter).Decode(&chat)
	if err != nil {
		return nil, mapFindErr(err)
	}
	return &chat, nil
}

func (r *MongoChatRepository) FindByUser(ctx context.Context, userID string) ([]*models.Chat, error) {
	filter := bson.M{"participants": userID, "is_active": true}
	opts := options.Find().SetSort(bson.D{{Key: "last_message.timestamp", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var chats []*models.Chat
	if err := cursor.All(ctx, &chats); err != nil {
		return nil, err
	}
	return chats, nil
}

func (r *MongoChatRepository) FindByIDForUser(ctx context.Context, chatID, userID string) (*models.Chat, error) {
	filter := bson.M{"_id": chatID, "participants": userID}
	var chat models.Chat
	err := r.collection.FindOne(ctx, filter).Decode(&chat)
	if err != nil {
		return nil, mapFindErr(err)
	}
	return &chat, nil
}

func (r *MongoChatRepository) AppendMessage(ctx context.Context, chatID string, msg models.ChatMessage) error {
	update := bson.M{
		"$push": bson.M{"messages": msg},
		"$set": bson.M{
			"last_message": models.LastMessage{
				Content:   msg.Content,
				SenderID:  msg.SenderID,
				Timestamp: msg.CreatedAt,
			},
			"updated_at": time.Now().UTC(),
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": chatID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoChatRepository) MarkMessagesRead(ctx context.Context, chatID, userID string) error {
	filter := bson.M{"_id": chatID, "participants": userID}
	update := bson.M{"$set": bson.M{"messages.$[elem].is_read": true}}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{"elem.sender_id": bson.M{"$ne": userID}, "elem.is_read": false}},
	})
	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}
