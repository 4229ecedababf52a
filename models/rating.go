package models

import "time"

// Reviewee types for party-to-party ratings.
const (
	RevieweeSeller = "seller"
	RevieweeRider  = "rider"
)

// Rating is a party-to-party rating tied to a delivered order. At most one
// rating may exist per (order, reviewer, reviewee) tuple.
type Rating struct {
	ID           string    `json:"id" bson:"_id"`
	OrderID      string    `json:"order" bson:"order_id"`
	ReviewerID   string    `json:"reviewer" bson:"reviewer_id"`
	RevieweeID   string    `json:"reviewee" bson:"reviewee_id"`
	RevieweeType string    `json:"revieweeType" bson:"reviewee_type"`
	Rating       int       `json:"rating" bson:"rating"`
	Comment      string    `json:"comment,omitempty" bson:"comment,omitempty"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
}
