package models

import "time"

// Dispute types
const (
	DisputeDelayed   = "delayed"
	DisputeFailed    = "failed"
	DisputeDamaged   = "damaged"
	DisputeWrongItem = "wrong_item"
	DisputeOther     = "other"
)

// Dispute statuses; resolution is a manual admin action outside this core.
const (
	DisputePending  = "pending"
	DisputeResolved = "resolved"
	DisputeRejected = "rejected"
)

// Dispute is an append-only complaint record against an order.
type Dispute struct {
	ID          string     `json:"id" bson:"_id"`
	OrderID     string     `json:"order" bson:"order_id"`
	ReporterID  string     `json:"reporter" bson:"reporter_id"`
	DisputeType string     `json:"disputeType" bson:"dispute_type"`
	Description string     `json:"description" bson:"description"`
	Status      string     `json:"status" bson:"status"`
	Resolution  string     `json:"resolution,omitempty" bson:"resolution,omitempty"`
	ResolvedAt  *time.Time `json:"resolvedAt,omitempty" bson:"resolved_at,omitempty"`
	ResolvedBy  string     `json:"resolvedBy,omitempty" bson:"resolved_by,omitempty"`
	CreatedAt   time.Time  `json:"createdAt" bson:"created_at"`
}
