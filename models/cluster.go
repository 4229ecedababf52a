package models

import "time"

// Cluster subscription statuses; only active clusters appear in listings.
const (
	SubscriptionActive    = "active"
	SubscriptionInactive  = "inactive"
	SubscriptionSuspended = "suspended"
)

// ClusterMember is one rider's membership entry. Exactly one member per
// cluster has IsLeader=true and it always equals the cluster's LeaderID.
type ClusterMember struct {
	RiderID    string    `json:"rider" bson:"rider_id"`
	IsLeader   bool      `json:"isLeader" bson:"is_leader"`
	IsActive   bool      `json:"isActive" bson:"is_active"`
	JoinedAt   time.Time `json:"joinedAt" bson:"joined_at"`
	Deliveries int       `json:"deliveries" bson:"deliveries"`
	Rating     float64   `json:"rating" bson:"rating"`
}

type RiderCluster struct {
	ID              string          `json:"id" bson:"_id"`
	Name            string          `json:"name" bson:"name"`
	Location        Location        `json:"location" bson:"location"`
	LeaderID        string          `json:"leader" bson:"leader_id"`
	BackupContactID string          `json:"backupContact,omitempty" bson:"backup_contact_id,omitempty"`
	Members         []ClusterMember `json:"members" bson:"members"`
	IsOnline        bool            `json:"isOnline" bson:"is_online"`
	Rating          RatingSummary   `json:"rating" bson:"rating"`
	TotalDeliveries int             `json:"totalDeliveries" bson:"total_deliveries"`
	OperatingHours  string          `json:"operatingHours" bson:"operating_hours"`
	ServiceAreas    []string        `json:"serviceAreas" bson:"service_areas"`
	VehicleTypes    []string        `json:"vehicleTypes" bson:"vehicle_types"`

	SubscriptionStatus string     `json:"subscriptionStatus" bson:"subscription_status"`
	SubscriptionExpiry *time.Time `json:"subscriptionExpiry,omitempty" bson:"subscription_expiry,omitempty"`
	IsVerified         bool       `json:"isVerified" bson:"is_verified"`

	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// MemberIndex returns the index of riderID in the member list, or -1.
func (c *RiderCluster) MemberIndex(riderID string) int {
	for i, m := range c.Members {
		if m.RiderID == riderID {
			return i
		}
	}
	return -1
}

// ClusterStats is the read-time aggregate for a cluster. Completed
// deliveries and earnings are recomputed from delivered orders on request.
type ClusterStats struct {
	TotalMembers        int     `json:"totalMembers"`
	ActiveMembers       int     `json:"activeMembers"`
	TotalDeliveries     int     `json:"totalDeliveries"`
	CompletedDeliveries int     `json:"completedDeliveries"`
	TotalEarnings       float64 `json:"totalEarnings"`
	AverageRating       float64 `json:"averageRating"`
	RatingCount         int     `json:"ratingCount"`
}
