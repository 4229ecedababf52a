package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yaseeradam/smartlink-backend/models"
	"github.com/yaseeradam/smartlink-backend/realtime"
	"github.com/yaseeradam/smartlink-backend/repository"
)

// statusMessages maps each order status a buyer is told about to its
// message. Unknown statuses fall back to a generic message.
var statusMessages = map[string]string{
	models.OrderConfirmed: "Your order has been confirmed",
	models.OrderPreparing: "Your order is being prepared",
	models.OrderReady:     "Your order is ready for pickup",
	models.OrderAssigned:  "A rider has been assigned to your order",
	models.OrderPickedUp:  "Your order has been picked up",
	models.OrderInTransit: "Your order is on the way",
	models.OrderDelivered: "Your order has been delivered",
}

const genericStatusMessage = "Your order status has been updated"

// NotificationService persists notifications and pushes them over the
// real-time channel. The push is strictly best-effort: it happens only
// after the record is committed, and failures are logged, never surfaced.
type NotificationService struct {
	repo      repository.NotificationRepository
	publisher realtime.Publisher
	log       *zap.Logger
}

func NewNotificationService(repo repository.NotificationRepository, publisher realtime.Publisher, log *zap.Logger) *NotificationService {
	return &NotificationService{repo: repo, publisher: publisher, log: log}
}

// Create persists a notification and then pushes it to the recipient.
func (s *NotificationService) Create(ctx context.Context, recipientID, notifType, title, message string, data models.NotificationData) (*models.Notification, error) {
	n := &models.Notification{
		ID:        uuid.NewString(),
		Recipient: recipientID,
		Type:      notifType,
		Title:     title,
		Message:   message,
		Data:      data,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	if err := s.publisher.SendToUser(ctx, recipientID, "newNotification", n); err != nil {
		s.log.Warn("realtime push failed",
			zap.String("recipient", recipientID),
			zap.String("type", notifType),
			zap.Error(err))
	}

	return n, nil
}

// NotifyOrderUpdate fans an order status change out to the involved
// parties: the buyer always, the seller only on delivery.
func (s *NotificationService) NotifyOrderUpdate(ctx context.Context, orderID, buyerID, sellerID, riderID, status string) {
	message, ok := statusMessages[status]
	if !ok {
		message = genericStatusMessage
	}

	if buyerID != "" {
		if _, err := s.Create(ctx, buyerID, models.NotificationOrderUpdate, "Order Update", message,
			models.NotificationData{OrderID: orderID, Status: status}); err != nil {
			s.log.Error("failed to notify buyer", zap.String("order", orderID), zap.Error(err))
		}
	}

	if sellerID != "" && status == models.OrderDelivered {
		if _, err := s.Create(ctx, sellerID, models.NotificationOrderUpdate, "Order Completed", "An order has been completed",
			models.NotificationData{OrderID: orderID, Status: status}); err != nil {
			s.log.Error("failed to notify seller", zap.String("order", orderID), zap.Error(err))
		}
	}
}

// NotifyNewOrder tells a seller about a freshly placed order.
func (s *NotificationService) NotifyNewOrder(ctx context.Context, sellerID, orderID, buyerName string) {
	if _, err := s.Create(ctx, sellerID, models.NotificationNewOrder, "New Order Received",
		"You have a new order from "+buyerName,
		models.NotificationData{OrderID: orderID}); err != nil {
		s.log.Error("failed to notify seller of new order", zap.String("order", orderID), zap.Error(err))
	}
}

// NotificationList is the read-side payload for a recipient's inbox.
type NotificationList struct {
	Notifications []*models.Notification `json:"notifications"`
	UnreadCount   int64                  `json:"unreadCount"`
}

func (s *NotificationService) List(ctx context.Context, recipientID string, unreadOnly bool, page, limit int) (*NotificationList, error) {
	notifications, err := s.repo.Find(ctx, repository.NotificationFilter{
		RecipientID: recipientID,
		UnreadOnly:  unreadOnly,
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		return nil, err
	}

	unread, err := s.repo.CountUnread(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	if notifications == nil {
		notifications = []*models.Notification{}
	}
	return &NotificationList{Notifications: notifications, UnreadCount: unread}, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, recipientID string, ids []string) error {
	return s.repo.MarkRead(ctx, recipientID, ids)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID string) error {
	return s.repo.MarkAllRead(ctx, recipientID)
}
