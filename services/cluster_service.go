package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yaseeradam/smartlink-backend/apperrors"
	"github.com/yaseeradam/smartlink-backend/models"
	"github.com/yaseeradam/smartlink-backend/repository"
)

type CreateClusterRequest struct {
	Name            string          `json:"name" binding:"required"`
	Location        models.Location `json:"location" binding:"required"`
	ServiceAreas    []string        `json:"serviceAreas" binding:"required,min=1"`
	VehicleTypes    []string        `json:"vehicleTypes" binding:"omitempty,dive,oneof=motorcycle bicycle car"`
	OperatingHours  string          `json:"operatingHours"`
	BackupContactID string          `json:"backupContactId"`
}

// ClusterService coordinates rider clusters: a named group of riders under
// exactly one leader, used as a dispatch unit for order assignment.
type ClusterService struct {
	clusters repository.ClusterRepository
	orders   repository.OrderRepository
	users    repository.UserRepository
	notifier OrderNotifier
	log      *zap.Logger
}

func NewClusterService(clusters repository.ClusterRepository, orders repository.OrderRepository, users repository.UserRepository, notifier OrderNotifier, log *zap.Logger) *ClusterService {
	return &ClusterService{
		clusters: clusters,
		orders:   orders,
		users:    users,
		notifier: notifier,
		log:      log,
	}
}

// CreateCluster creates a cluster led by leaderID. Riders only, and at
// most one cluster per leader.
func (s *ClusterService) CreateCluster(ctx context.Context, leaderID string, req *CreateClusterRequest) (*models.RiderCluster, error) {
	leader, err := s.users.FindByID(ctx, leaderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, apperrors.Unavailable("Failed to load user", err)
	}
	if leader.Role != models.RoleRider {
		return nil, apperrors.Forbidden("Only riders can create clusters")
	}

	if _, err := s.clusters.FindByLeader(ctx, leaderID); err == nil {
		return nil, apperrors.Conflict("You already lead a cluster")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Unavailable("Failed to check existing cluster", err)
	}

	now := time.Now().UTC()
	operatingHours := req.OperatingHours
	if operatingHours == "" {
		operatingHours = "6AM - 10PM"
	}

	cluster := &models.RiderCluster{
		ID:              uuid.NewString(),
		Name:            req.Name,
		Location:        req.Location,
		LeaderID:        leaderID,
		BackupContactID: req.BackupContactID,
		Members: []models.ClusterMember{{
			RiderID:  leaderID,
			IsLeader: true,
			IsActive: true,
			JoinedAt: now,
			Rating:   5.0,
		}},
		IsOnline:           true,
		Rating:             models.RatingSummary{Average: 5.0},
		OperatingHours:     operatingHours,
		ServiceAreas:       req.ServiceAreas,
		VehicleTypes:       req.VehicleTypes,
		SubscriptionStatus: models.SubscriptionActive,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.clusters.Create(ctx, cluster); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict("You already lead a cluster")
		}
		return nil, apperrors.Unavailable("Failed to create cluster", err)
	}
	return cluster, nil
}

// AddMember adds a rider to the cluster. Leader-only; duplicates rejected.
func (s *ClusterService) AddMember(ctx context.Context, clusterID, actorID, riderID string) (*models.RiderCluster, error) {
	cluster, err := s.loadCluster(ctx, clusterID)
	if err != nil {
		return nil, err
	}
	if cluster.LeaderID != actorID {
		return nil, apperrors.Forbidden("Only cluster leader can add members")
	}

	rider, err := s.users.FindByID(ctx, riderID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Unavailable("Failed to load rider", err)
	}
	if rider == nil || rider.Role != models.RoleRider {
		return nil, apperrors.Validation("Invalid rider")
	}

	if cluster.MemberIndex(riderID) != -1 {
		return nil, apperrors.Conflict("Rider is already a member")
	}

	cluster.Members = append(cluster.Members, models.ClusterMember{
		RiderID:  riderID,
		IsActive: true,
		JoinedAt: time.Now().UTC(),
		Rating:   5.0,
	})

	if err := s.clusters.Update(ctx, cluster); err != nil {
		return nil, apperrors.Unavailable("Failed to update cluster", err)
	}
	return cluster, nil
}

// RemoveMember removes a rider from the cluster. Leader-only; the leader
// itself can never be removed.
func (s *ClusterService) RemoveMember(ctx context.Context, clusterID, actorID, riderID string) (*models.RiderCluster, error) {
	cluster, err := s.loadCluster(ctx, clusterID)
	if err != nil {
		return nil, err
	}
	if cluster.LeaderID != actorID {
		return nil, apperrors.Forbidden("Only cluster leader can remove members")
	}
	if riderID == cluster.LeaderID {
		return nil, apperrors.Conflict("Cannot remove cluster leader")
	}

	members := cluster.Members[:0]
	for _, m := range cluster.Members {
		if m.RiderID != riderID {
			members = append(members, m)
		}
	}
	cluster.Members = members

	if err := s.clusters.Update(ctx, cluster); err != nil {
		return nil, apperrors.Unavailable("Failed to update cluster", err)
	}
	return cluster, nil
}

// AssignOrderToCluster dispatches an order to the cluster: to a specific
// rider when given, otherwise to the leader. The seller must own the
// order. Delivery counters are updated on the cluster and, when the rider
// is a member, on the matching member entry; a non-member rider still gets
// the order and the member counter silently stays put.
func (s *ClusterService) AssignOrderToCluster(ctx context.Context, clusterID, sellerID, orderID, specificRiderID string) (*models.Order, *models.RiderCluster, error) {
	cluster, err := s.loadCluster(ctx, clusterID)
	if err != nil {
		return nil, nil, err
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, apperrors.NotFound("Order not found")
		}
		return nil, nil, apperrors.Unavailable("Failed to load order", err)
	}

	if order.SellerID != sellerID {
		return nil, nil, apperrors.Forbidden("Not authorized")
	}

	riderID := specificRiderID
	if riderID == "" {
		riderID = cluster.LeaderID
	}

	order.RiderID = riderID
	order.Status = models.OrderAssigned
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, nil, apperrors.Unavailable("Failed to update order", err)
	}

	cluster.TotalDeliveries++
	if idx := cluster.MemberIndex(riderID); idx != -1 {
		cluster.Members[idx].Deliveries++
	}
	if err := s.clusters.Update(ctx, cluster); err != nil {
		// Order assignment already committed; the counters are stats only.
		s.log.Warn("failed to update cluster stats", zap.String("cluster", clusterID), zap.Error(err))
	}

	s.notifier.NotifyOrderUpdate(ctx, order.ID, order.BuyerID, order.SellerID, order.RiderID, order.Status)

	return order, cluster, nil
}

// GetClusterStats recomputes completed deliveries and earnings from the
// delivered orders of all current members at read time.
func (s *ClusterService) GetClusterStats(ctx context.Context, clusterID string) (*models.ClusterStats, error) {
	cluster, err := s.loadCluster(ctx, clusterID)
	if err != nil {
		return nil, err
	}

	memberIDs := make([]string, 0, len(cluster.Members))
	activeMembers := 0
	for _, m := range cluster.Members {
		memberIDs = append(memberIDs, m.RiderID)
		if m.IsActive {
			activeMembers++
		}
	}

	delivered, err := s.orders.FindDeliveredByRiders(ctx, memberIDs)
	if err != nil {
		return nil, apperrors.Unavailable("Failed to fetch delivered orders", err)
	}

	var totalEarnings float64
	for _, o := range delivered {
		totalEarnings += o.DeliveryFee
	}

	return &models.ClusterStats{
		TotalMembers:        len(cluster.Members),
		ActiveMembers:       activeMembers,
		TotalDeliveries:     cluster.TotalDeliveries,
		CompletedDeliveries: len(delivered),
		TotalEarnings:       totalEarnings,
		AverageRating:       cluster.Rating.Average,
		RatingCount:         cluster.Rating.Count,
	}, nil
}

// clusterUpdatableFields is the allow-list for leader edits.
var clusterUpdatableFields = map[string]bool{
	"name":           true,
	"location":       true,
	"serviceAreas":   true,
	"vehicleTypes":   true,
	"operatingHours": true,
	"isOnline":       true,
	"backupContact":  true,
}

// UpdateCluster applies allow-listed field updates. Leader-only.
func (s *ClusterService) UpdateCluster(ctx context.Context, clusterID, actorID string, updates map[string]interface{}) (*models.RiderCluster, error) {
	cluster, err := s.loadCluster(ctx, clusterID)
	if err != nil {
		return nil, err
	}
	if cluster.LeaderID != actorID {
		return nil, apperrors.Forbidden("Only cluster leader can update")
	}

	for key, value := range updates {
		if !clusterUpdatableFields[key] {
			continue
		}
		switch key {
		case "name":
			if v, ok := value.(string); ok {
				cluster.Name = v
			}
		case "operatingHours":
			if v, ok := value.(string); ok {
				cluster.OperatingHours = v
			}
		case "isOnline":
			if v, ok := value.(bool); ok {
				cluster.IsOnline = v
			}
		case "backupContact":
			if v, ok := value.(string); ok {
				cluster.BackupContactID = v
			}
		case "serviceAreas":
			cluster.ServiceAreas = toStringSlice(value)
		case "vehicleTypes":
			cluster.VehicleTypes = toStringSlice(value)
		case "location":
			if m, ok := value.(map[string]interface{}); ok {
				if addr, ok := m["address"].(string); ok {
					cluster.Location.Address = addr
				}
			}
		}
	}

	if err := s.clusters.Update(ctx, cluster); err != nil {
		return nil, apperrors.Unavailable("Failed to update cluster", err)
	}
	return cluster, nil
}

// ClusterList is a paginated cluster listing.
type ClusterList struct {
	Clusters []*models.RiderCluster `json:"clusters"`
	Total    int64                  `json:"total"`
}

func (s *ClusterService) ListClusters(ctx context.Context, filter repository.ClusterFilter) (*ClusterList, error) {
	clusters, total, err := s.clusters.Find(ctx, filter)
	if err != nil {
		return nil, apperrors.Unavailable("Failed to fetch clusters", err)
	}
	if clusters == nil {
		clusters = []*models.RiderCluster{}
	}
	return &ClusterList{Clusters: clusters, Total: total}, nil
}

func (s *ClusterService) GetCluster(ctx context.Context, clusterID string) (*models.RiderCluster, error) {
	return s.loadCluster(ctx, clusterID)
}

func (s *ClusterService) loadCluster(ctx context.Context, clusterID string) (*models.RiderCluster, error) {
	cluster, err := s.clusters.FindByID(ctx, clusterID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Cluster not found")
		}
		return nil, apperrors.Unavailable("Failed to load cluster", err)
	}
	return cluster, nil
}

func toStringSlice(value interface{}) []string {
	raw, ok := value.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
