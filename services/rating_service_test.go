package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yaseeradam/smartlink-backend/apperrors"
	"github.com/yaseeradam/smartlink-backend/models"
)

func newRatingServiceForTest(orders *fakeOrderRepo, users *fakeUserRepo, products *fakeProductRepo) (*RatingService, *fakeRatingRepo, *fakeReviewRepo, *fakeDisputeRepo) {
	ratings := &fakeRatingRepo{}
	reviews := &fakeReviewRepo{}
	disputes := &fakeDisputeRepo{}
	svc := NewRatingService(ratings, reviews, disputes, orders, users, products, zap.NewNop())
	return svc, ratings, reviews, disputes
}

func deliveredOrder() *models.Order {
	return &models.Order{
		ID: "o-1", BuyerID: "buyer-1", SellerID: "seller-1", RiderID: "rider-1",
		Status: models.OrderDelivered,
	}
}

func TestSubmitRating(t *testing.T) {
	ctx := context.Background()
	req := &SubmitRatingRequest{
		OrderID: "o-1", RevieweeID: "seller-1", RevieweeType: models.RevieweeSeller, Rating: 4,
	}

	t.Run("Success Updates Aggregate", func(t *testing.T) {
		users := newFakeUserRepo(testSeller())
		svc, _, _, _ := newRatingServiceForTest(newFakeOrderRepo(deliveredOrder()), users, newFakeProductRepo())

		rating, err := svc.SubmitRating(ctx, "buyer-1", req)

		require.NoError(t, err)
		assert.Equal(t, 4, rating.Rating)

		seller, _ := users.FindByID(ctx, "seller-1")
		assert.Equal(t, 4.0, seller.Rating)
		assert.Equal(t, 1, seller.RatingCount)
	})

	t.Run("Average Rounded To One Decimal", func(t *testing.T) {
		users := newFakeUserRepo(testSeller())
		orders := newFakeOrderRepo(
			deliveredOrder(),
			&models.Order{ID: "o-2", BuyerID: "buyer-2", SellerID: "seller-1", Status: models.OrderDelivered},
			&models.Order{ID: "o-3", BuyerID: "buyer-3", SellerID: "seller-1", Status: models.OrderDelivered},
		)
		svc, _, _, _ := newRatingServiceForTest(orders, users, newFakeProductRepo())

		for _, tc := range []struct {
			buyer, order string
			stars        int
		}{
			{"buyer-1", "o-1", 5},
			{"buyer-2", "o-2", 4},
			{"buyer-3", "o-3", 4},
		} {
			_, err := svc.SubmitRating(ctx, tc.buyer, &SubmitRatingRequest{
				OrderID: tc.order, RevieweeID: "seller-1", RevieweeType: models.RevieweeSeller, Rating: tc.stars,
			})
			require.NoError(t, err)
		}

		// (5+4+4)/3 = 4.333... -> 4.3
		seller, _ := users.FindByID(ctx, "seller-1")
		assert.Equal(t, 4.3, seller.Rating)
		assert.Equal(t, 3, seller.RatingCount)
	})

	t.Run("Duplicate Conflicts", func(t *testing.T) {
		svc, _, _, _ := newRatingServiceForTest(newFakeOrderRepo(deliveredOrder()), newFakeUserRepo(testSeller()), newFakeProductRepo())

		_, err := svc.SubmitRating(ctx, "buyer-1", req)
		require.NoError(t, err)

		_, err = svc.SubmitRating(ctx, "buyer-1", req)
		assert.Equal(t, http.StatusConflict, apperrors.StatusCode(err))
	})

	t.Run("Undelivered Order Rejected", func(t *testing.T) {
		order := deliveredOrder()
		order.Status = models.OrderInTransit
		svc, _, _, _ := newRatingServiceForTest(newFakeOrderRepo(order), newFakeUserRepo(testSeller()), newFakeProductRepo())

		_, err := svc.SubmitRating(ctx, "buyer-1", req)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperrors.StatusCode(err))
		assert.Equal(t, "Order not found or not delivered", err.Error())
	})

	t.Run("Someone Else's Order Looks The Same", func(t *testing.T) {
		svc, _, _, _ := newRatingServiceForTest(newFakeOrderRepo(deliveredOrder()), newFakeUserRepo(testSeller()), newFakeProductRepo())

		_, err := svc.SubmitRating(ctx, "buyer-2", req)
		require.Error(t, err)
		assert.Equal(t, "Order not found or not delivered", err.Error())
	})
}

func TestCreateReview(t *testing.T) {
	ctx := context.Background()
	req := &CreateReviewRequest{ProductID: "p-1", OrderID: "o-1", Rating: 5, Comment: "great"}

	t.Run("Success Updates Product Aggregate", func(t *testing.T) {
		products := newFakeProductRepo(&models.Product{ID: "p-1", Name: "Rice 5kg", SellerID: "seller-1"})
		svc, _, _, _ := newRatingServiceForTest(newFakeOrderRepo(deliveredOrder()), newFakeUserRepo(), products)

		review, err := svc.CreateReview(ctx, "buyer-1", req)

		require.NoError(t, err)
		assert.True(t, review.IsVerified)

		p, _ := products.FindByID(ctx, "p-1")
		assert.Equal(t, 5.0, p.Rating.Average)
		assert.Equal(t, 1, p.Rating.Count)
	})

	t.Run("Duplicate Conflicts", func(t *testing.T) {
		products := newFakeProductRepo(&models.Product{ID: "p-1", SellerID: "seller-1"})
		svc, _, _, _ := newRatingServiceForTest(newFakeOrderRepo(deliveredOrder()), newFakeUserRepo(), products)

		_, err := svc.CreateReview(ctx, "buyer-1", req)
		require.NoError(t, err)

		_, err = svc.CreateReview(ctx, "buyer-1", req)
		assert.Equal(t, http.StatusConflict, apperrors.StatusCode(err))
	})

	t.Run("Helpful Votes", func(t *testing.T) {
		products := newFakeProductRepo(&models.Product{ID: "p-1", SellerID: "seller-1"})
		svc, _, _, _ := newRatingServiceForTest(newFakeOrderRepo(deliveredOrder()), newFakeUserRepo(), products)

		review, err := svc.CreateReview(ctx, "buyer-1", req)
		require.NoError(t, err)

		voted, err := svc.VoteHelpful(ctx, review.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, voted.HelpfulVotes)
	})
}

func TestSubmitDispute(t *testing.T) {
	ctx := context.Background()

	t.Run("Party Files A Dispute", func(t *testing.T) {
		order := &models.Order{ID: "o-1", BuyerID: "buyer-1", SellerID: "seller-1", RiderID: "rider-1", Status: models.OrderInTransit}
		svc, _, _, _ := newRatingServiceForTest(newFakeOrderRepo(order), newFakeUserRepo(), newFakeProductRepo())

		dispute, err := svc.SubmitDispute(ctx, "rider-1", &SubmitDisputeRequest{
			OrderID: "o-1", DisputeType: models.DisputeDelayed, Description: "traffic closure",
		})

		require.NoError(t, err)
		assert.Equal(t, models.DisputePending, dispute.Status)

		mine, err := svc.GetUserDisputes(ctx, "rider-1")
		require.NoError(t, err)
		assert.Len(t, mine, 1)
	})

	t.Run("Outsider Rejected", func(t *testing.T) {
		order := &models.Order{ID: "o-1", BuyerID: "buyer-1", SellerID: "seller-1", Status: models.OrderInTransit}
		svc, _, _, _ := newRatingServiceForTest(newFakeOrderRepo(order), newFakeUserRepo(), newFakeProductRepo())

		_, err := svc.SubmitDispute(ctx, "stranger", &SubmitDisputeRequest{
			OrderID: "o-1", DisputeType: models.DisputeOther, Description: "x",
		})
		assert.Equal(t, http.StatusForbidden, apperrors.StatusCode(err))
	})
}
