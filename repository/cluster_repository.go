package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yaseeradam/smartlink-backend/models"
)

// ClusterFilter narrows cluster listings. Only clusters with an active
// subscription are ever listed.
type ClusterFilter struct {
	ServiceArea string
	Search      string
	OnlineOnly  bool
	Page        int
	Limit       int
}

// ClusterRepository defines the interface for rider cluster data access.
type ClusterRepository interface {
	Create(ctx context.Context, cluster *models.RiderCluster) error
	FindByID(ctx context.Context, id string) (*models.RiderCluster, error)
	FindByLeader(ctx context.Context, leaderID string) (*models.RiderCluster, error)
	Find(ctx context.Context, filter ClusterFilter) ([]*models.RiderCluster, int64, error)
	// Update replaces the stored document; only the leader is authorized
	// to mutate membership, so concurrent member edits need no guard.
	Update(ctx context.Context, cluster *models.RiderCluster) error
}

// MongoClusterRepository implements ClusterRepository using MongoDB.
type MongoClusterRepository struct {
	collection *mongo.Collection
}

func NewMongoClusterRepository(db *mongo.Database) *MongoClusterRepository {
	return &MongoClusterRepository{collection: db.Collection("clusters")}
}

func (r *MongoClusterRepository) Create(ctx context.Context, cluster *models.RiderCluster) error {
	_, err := r.collection.InsertOne(ctx, cluster)
	return mapWriteErr(err)
}

func (r *MongoClusterRepository) FindByID(ctx context.Context, id string) (*models.RiderCluster, error) {
	var cluster models.RiderCluster
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&cluster)
	if err != nil {
		return nil, mapFindErr(err)
	}
	return &cluster, nil
}

func (r *MongoClusterRepository) FindByLeader(ctx context.Context, leaderID string) (*models.RiderCluster, error) {
	var cluster models.RiderCluster
	err := r.collection.FindOne(ctx, bson.M{"leader_id": leaderID}).Decode(&cluster)
	if err != nil {
		return nil, mapFindErr(err)
	}
	return &cluster, nil
}

func (r *MongoClusterRepository) Find(ctx context.Context, filter ClusterFilter) ([]*models.RiderCluster, int64, error) {
	query := bson.M{"subscription_status": models.SubscriptionActive}
	if filter.OnlineOnly {
		query["is_online"] = true
	}
	if filter.ServiceArea != "" {
		query["service_areas"] = bson.M{"$in": []string{filter.ServiceArea}}
	}
	if filter.Search != "" {
		query["$text"] = bson.M{"$search": filter.Search}
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	findOpts := options.Find().SetSort(bson.D{
		{Key: "rating.average", Value: -1},
		{Key: "total_deliveries", Value: -1},
	})
	if filter.Limit > 0 {
		findOpts = findOpts.SetLimit(int64(filter.Limit)).
			SetSkip(int64((filter.Page - 1) * filter.Limit))
	}

	cursor, err := r.collection.Find(ctx, query, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var clusters []*models.RiderCluster
	if err := cursor.All(ctx, &clusters); err != nil {
		return nil, 0, err
	}
	return clusters, total, nil
}

func (r *MongoClusterRepository) Update(ctx context.Context, cluster *models.RiderCluster) error {
	cluster.UpdatedAt = time.Now().UTC()
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": cluster.ID}, cluster)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
