package models

import "time"

// Review is a product-specific review tied to a delivered order. At most one
// review may exist per (product, user, order) tuple.
type Review struct {
	ID           string    `json:"id" bson:"_id"`
	ProductID    string    `json:"product" bson:"product_id"`
	UserID       string    `json:"user" bson:"user_id"`
	OrderID      string    `json:"order" bson:"order_id"`
	Rating       int       `json:"rating" bson:"rating"`
	Comment      string    `json:"comment" bson:"comment"`
	Images       []string  `json:"images,omitempty" bson:"images,omitempty"`
	IsVerified   bool      `json:"isVerified" bson:"is_verified"`
	HelpfulVotes int       `json:"helpfulVotes" bson:"helpful_votes"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
}
