package models

import "time"

// Order statuses
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderPreparing = "preparing"
	OrderReady     = "ready"
	OrderAssigned  = "assigned"
	OrderPickedUp  = "picked_up"
	OrderInTransit = "in_transit"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// Payment statuses
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

// Payment methods
const (
	PaymentCard           = "card"
	PaymentTransfer       = "transfer"
	PaymentCashOnDelivery = "cash_on_delivery"
)

// OrderStatuses is the wire enum for order status values.
var OrderStatuses = []string{
	OrderPending, OrderConfirmed, OrderPreparing, OrderReady, OrderAssigned,
	OrderPickedUp, OrderInTransit, OrderDelivered, OrderCancelled,
}

// Address is a delivery or pickup address.
type Address struct {
	Street      string       `json:"street" bson:"street"`
	City        string       `json:"city" bson:"city"`
	State       string       `json:"state" bson:"state"`
	Coordinates *Coordinates `json:"coordinates,omitempty" bson:"coordinates,omitempty"`
}

// OrderItem is a line item: product reference, quantity and the unit price
// snapshotted at order time. The price is never re-read from the catalog.
type OrderItem struct {
	ProductID string  `json:"product" bson:"product_id"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Price     float64 `json:"price" bson:"price"`
}

// TrackingEntry is one element of an order's append-only tracking history.
type TrackingEntry struct {
	Status    string       `json:"status" bson:"status"`
	Timestamp time.Time    `json:"timestamp" bson:"timestamp"`
	Location  *Coordinates `json:"location,omitempty" bson:"location,omitempty"`
	Note      string       `json:"note,omitempty" bson:"note,omitempty"`
}

type Order struct {
	ID          string `json:"id" bson:"_id"`
	OrderNumber string `json:"orderNumber" bson:"order_number"`
	BuyerID     string `json:"buyer" bson:"buyer_id"`
	SellerID    string `json:"seller" bson:"seller_id"`
	RiderID     string `json:"rider,omitempty" bson:"rider_id,omitempty"`

	Items []OrderItem `json:"items" bson:"items"`

	// Sum of item.Quantity*item.Price, computed once at creation.
	TotalAmount float64 `json:"totalAmount" bson:"total_amount"`
	DeliveryFee float64 `json:"deliveryFee" bson:"delivery_fee"`

	Status        string `json:"status" bson:"status"`
	PaymentStatus string `json:"paymentStatus" bson:"payment_status"`
	PaymentMethod string `json:"paymentMethod" bson:"payment_method"`

	DeliveryAddress Address  `json:"deliveryAddress" bson:"delivery_address"`
	PickupAddress   *Address `json:"pickupAddress,omitempty" bson:"pickup_address,omitempty"`

	EstimatedDeliveryTime *time.Time `json:"estimatedDeliveryTime,omitempty" bson:"estimated_delivery_time,omitempty"`
	ActualDeliveryTime    *time.Time `json:"actualDeliveryTime,omitempty" bson:"actual_delivery_time,omitempty"`

	Notes string `json:"notes,omitempty" bson:"notes,omitempty"`

	CancellationReason string     `json:"cancellationReason,omitempty" bson:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty" bson:"cancelled_at,omitempty"`

	TrackingHistory []TrackingEntry `json:"trackingHistory" bson:"tracking_history"`

	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// IsTerminal reports whether the order can no longer change status.
func (o *Order) IsTerminal() bool {
	return o.Status == OrderDelivered || o.Status == OrderCancelled
}
