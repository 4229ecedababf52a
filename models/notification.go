package models

import "time"

// Notification types
const (
	NotificationOrderUpdate = "order_update"
	NotificationNewOrder    = "new_order"
	NotificationPayment     = "payment"
	NotificationReview      = "review"
	NotificationSystem      = "system"
	NotificationPromotion   = "promotion"
)

// NotificationData is the small structured payload attached to a notification.
type NotificationData struct {
	OrderID   string  `json:"orderId,omitempty" bson:"order_id,omitempty"`
	ProductID string  `json:"productId,omitempty" bson:"product_id,omitempty"`
	Amount    float64 `json:"amount,omitempty" bson:"amount,omitempty"`
	Status    string  `json:"status,omitempty" bson:"status,omitempty"`
}

// Notification is created only by internal events, never directly by a
// client, and is mutated only by read-state transitions.
type Notification struct {
	ID        string           `json:"id" bson:"_id"`
	Recipient string           `json:"recipient" bson:"recipient_id"`
	Sender    string           `json:"sender,omitempty" bson:"sender_id,omitempty"`
	Type      string           `json:"type" bson:"type"`
	Title     string           `json:"title" bson:"title"`
	Message   string           `json:"message" bson:"message"`
	Data      NotificationData `json:"data" bson:"data"`
	IsRead    bool             `json:"isRead" bson:"is_read"`
	CreatedAt time.Time        `json:"createdAt" bson:"created_at"`
}
