package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yaseeradam/smartlink-backend/models"
)

func TestNotifyOrderUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("Buyer Gets Every Status", func(t *testing.T) {
		repo := &fakeNotificationRepo{}
		pub := &fakePublisher{}
		svc := NewNotificationService(repo, pub, zap.NewNop())

		svc.NotifyOrderUpdate(ctx, "o-1", "buyer-1", "seller-1", "rider-1", models.OrderConfirmed)

		buyer := repo.byRecipient("buyer-1")
		require.Len(t, buyer, 1)
		assert.Equal(t, "Your order has been confirmed", buyer[0].Message)
		assert.Equal(t, models.NotificationOrderUpdate, buyer[0].Type)
		assert.Equal(t, "o-1", buyer[0].Data.OrderID)

		// The seller hears nothing before delivery.
		assert.Empty(t, repo.byRecipient("seller-1"))
	})

	t.Run("Seller Notified On Delivery", func(t *testing.T) {
		repo := &fakeNotificationRepo{}
		svc := NewNotificationService(repo, &fakePublisher{}, zap.NewNop())

		svc.NotifyOrderUpdate(ctx, "o-1", "buyer-1", "seller-1", "rider-1", models.OrderDelivered)

		buyer := repo.byRecipient("buyer-1")
		require.Len(t, buyer, 1)
		assert.Equal(t, "Your order has been delivered", buyer[0].Message)

		seller := repo.byRecipient("seller-1")
		require.Len(t, seller, 1)
		assert.Equal(t, "Order Completed", seller[0].Title)
		assert.Equal(t, "An order has been completed", seller[0].Message)
	})

	t.Run("Unknown Status Falls Back", func(t *testing.T) {
		repo := &fakeNotificationRepo{}
		svc := NewNotificationService(repo, &fakePublisher{}, zap.NewNop())

		svc.NotifyOrderUpdate(ctx, "o-1", "buyer-1", "", "", models.OrderPending)

		buyer := repo.byRecipient("buyer-1")
		require.Len(t, buyer, 1)
		assert.Equal(t, "Your order status has been updated", buyer[0].Message)
	})

	t.Run("Push Failure Does Not Lose The Record", func(t *testing.T) {
		repo := &fakeNotificationRepo{}
		pub := &fakePublisher{failed: true}
		svc := NewNotificationService(repo, pub, zap.NewNop())

		svc.NotifyOrderUpdate(ctx, "o-1", "buyer-1", "", "", models.OrderConfirmed)

		assert.Len(t, repo.byRecipient("buyer-1"), 1)
		assert.Empty(t, pub.pushes())
	})

	t.Run("Push Carries The Notification", func(t *testing.T) {
		repo := &fakeNotificationRepo{}
		pub := &fakePublisher{}
		svc := NewNotificationService(repo, pub, zap.NewNop())

		svc.NotifyNewOrder(ctx, "seller-1", "o-1", "Ada")

		pushes := pub.pushes()
		require.Len(t, pushes, 1)
		assert.Equal(t, "seller-1", pushes[0].UserID)
		assert.Equal(t, "newNotification", pushes[0].Event)

		n, ok := pushes[0].Payload.(*models.Notification)
		require.True(t, ok)
		assert.Equal(t, "You have a new order from Ada", n.Message)
	})
}

func TestNotificationReadSide(t *testing.T) {
	ctx := context.Background()
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, &fakePublisher{}, zap.NewNop())

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, "buyer-1", models.NotificationSystem, "Hello", "msg", models.NotificationData{})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, "buyer-2", models.NotificationSystem, "Hello", "msg", models.NotificationData{})
	require.NoError(t, err)

	list, err := svc.List(ctx, "buyer-1", false, 1, 20)
	require.NoError(t, err)
	assert.Len(t, list.Notifications, 3)
	assert.Equal(t, int64(3), list.UnreadCount)

	// Marking ids belonging to another recipient is a no-op.
	other := repo.byRecipient("buyer-2")[0]
	require.NoError(t, svc.MarkRead(ctx, "buyer-1", []string{other.ID}))
	assert.False(t, other.IsRead)

	require.NoError(t, svc.MarkAllRead(ctx, "buyer-1"))
	list, err = svc.List(ctx, "buyer-1", false, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(0), list.UnreadCount)
}
