package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yaseeradam/smartlink-backend/models"
)

// ProductFilter narrows product listings.
type ProductFilter struct {
	Category string
	Search   string
	SellerID string
	SortBy   string
	Page     int
	Limit    int
}

// ProductRepository defines the interface for catalog data access.
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id string) (*models.Product, error)
	Find(ctx context.Context, filter ProductFilter) ([]*models.Product, int64, error)
	UpdateFields(ctx context.Context, id string, updates bson.M) (*models.Product, error)
	Deactivate(ctx context.Context, id string) error
	// DecrementStock decrements stock only when at least quantity units
	// remain; it returns ErrInsufficientStock when the condition fails, so
	// stock can never go negative even under concurrent orders.
	DecrementStock(ctx context.Context, id string, quantity int) error
	UpdateRating(ctx context.Context, id string, average float64, count int) error
}

// MongoProductRepository implements ProductRepository using MongoDB.
type MongoProductRepository struct {
	collection *mongo.Collection
}

func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{collection: db.Collection("products")}
}

func (r *MongoProductRepository) Create(ctx context.Context, product *models.Product) error {
	_, err := r.collection.InsertOne(ctx, product)
	return mapWriteErr(err)
}

func (r *MongoProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		return nil, mapFindErr(err)
	}
	return &product, nil
}

func (r *MongoProductRepository) Find(ctx context.Context, filter ProductFilter) ([]*models.Product, int64, error) {
	query := bson.M{"is_active": true}
	if filter.SellerID != "" {
		query = bson.M{"seller_id": filter.SellerID}
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Search != "" {
		query["$text"] = bson.M{"$search": filter.Search}
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	findOpts := options.Find().SetSort(bson.D{{Key: sortBy, Value: -1}})
	if filter.Limit > 0 {
		findOpts = findOpts.SetLimit(int64(filter.Limit)).
			SetSkip(int64((filter.Page - 1) * filter.Limit))
	}

	cursor, err := r.collection.Find(ctx, query, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var products []*models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *MongoProductRepository) UpdateFields(ctx context.Context, id string, updates bson.M) (*models.Product, error) {
	updates["updated_at"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var product models.Product
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": updates}, opts).Decode(&product)
	if err != nil {
		return nil, mapFindErr(err)
	}
	return &product, nil
}

// Deactivate performs a soft delete.
func (r *MongoProductRepository) Deactivate(ctx context.Context, id string) error {
	update := bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now().UTC()}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoProductRepository) DecrementStock(ctx context.Context, id string, quantity int) error {
	filter := bson.M{"_id": id, "stock": bson.M{"$gte": quantity}}
	update := bson.M{
		"$inc": bson.M{"stock": -quantity},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.ModifiedCount == 0 {
		return ErrInsufficientStock
	}
	return nil
}

func (r *MongoProductRepository) UpdateRating(ctx context.Context, id string, average float64, count int) error {
	update := bson.M{"$set": bson.M{
		"rating.average": average,
		"rating.count":   count,
		"updated_at":     time.Now().UTC(),
	}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}
