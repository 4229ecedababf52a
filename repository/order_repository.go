package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yaseeradam/smartlink-backend/models"
)

// OrderFilter narrows order listings by party and status.
type OrderFilter struct {
	BuyerID  string
	SellerID string
	RiderID  string
	Status   string
}

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
	Find(ctx context.Context, filter OrderFilter) ([]*models.Order, error)
	// Update replaces the stored document; the order entity is
	// last-write-wins with no optimistic concurrency token.
	Update(ctx context.Context, order *models.Order) error
	FindDeliveredByRiders(ctx context.Context, riderIDs []string) ([]*models.Order, error)
	// NextOrderNumber issues a unique order number from a monotonic
	// counter combined with the current timestamp.
	NextOrderNumber(ctx context.Context) (string, error)
}

// MongoOrderRepository implements OrderRepository using MongoDB.
type MongoOrderRepository struct {
	collection *mongo.Collection
	counters   *mongo.Collection
}

func NewMongoOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{
		collection: db.Collection("orders"),
		counters:   db.Collection("counters"),
	}
}

func (r *MongoOrderRepository) Create(ctx context.Context, order *models.Order) error {
	_, err := r.collection.InsertOne(ctx, order)
	return mapWriteErr(err)
}

func (r *MongoOrderRepository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		return nil, mapFindErr(err)
	}
	return &order, nil
}

func (r *MongoOrderRepository) Find(ctx context.Context, filter OrderFilter) ([]*models.Order, error) {
	query := bson.M{}
	if filter.BuyerID != "" {
		query["buyer_id"] = filter.BuyerID
	}
	if filter.SellerID != "" {
		query["seller_id"] = filter.SellerID
	}
	if filter.RiderID != "" {
		query["rider_id"] = filter.RiderID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []*models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *MongoOrderRepository) Update(ctx context.Context, order *models.Order) error {
	order.UpdatedAt = time.Now().UTC()
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": order.ID}, order)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoOrderRepository) FindDeliveredByRiders(ctx context.Context, riderIDs []string) ([]*models.Order, error) {
	query := bson.M{
		"rider_id": bson.M{"$in": riderIDs},
		"status":   models.OrderDelivered,
	}
	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []*models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *MongoOrderRepository) NextOrderNumber(ctx context.Context) (string, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(
		ctx,
		bson.M{"_id": "orders"},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("SL%d%d", time.Now().UnixMilli(), counter.Seq), nil
}
