package services

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yaseeradam/smartlink-backend/apperrors"
	"github.com/yaseeradam/smartlink-backend/models"
	"github.com/yaseeradam/smartlink-backend/repository"
)

type SubmitRatingRequest struct {
	OrderID      string `json:"orderId" binding:"required"`
	RevieweeID   string `json:"revieweeId" binding:"required"`
	RevieweeType string `json:"revieweeType" binding:"required,oneof=seller rider"`
	Rating       int    `json:"rating" binding:"required,min=1,max=5"`
	Comment      string `json:"comment" binding:"max=1000"`
}

type CreateReviewRequest struct {
	ProductID string   `json:"productId" binding:"required"`
	OrderID   string   `json:"orderId" binding:"required"`
	Rating    int      `json:"rating" binding:"required,min=1,max=5"`
	Comment   string   `json:"comment" binding:"max=2000"`
	Images    []string `json:"images" binding:"omitempty,max=5"`
}

type SubmitDisputeRequest struct {
	OrderID     string `json:"orderId" binding:"required"`
	DisputeType string `json:"disputeType" binding:"required,oneof=delayed failed damaged wrong_item other"`
	Description string `json:"description" binding:"required,max=2000"`
}

// RatingService handles party ratings, product reviews and disputes.
// Aggregates on users and products are recomputed as a full mean over all
// stored entries after each write, rounded to one decimal place.
type RatingService struct {
	ratings  repository.RatingRepository
	reviews  repository.ReviewRepository
	disputes repository.DisputeRepository
	orders   repository.OrderRepository
	users    repository.UserRepository
	products repository.ProductRepository
	log      *zap.Logger
}

func NewRatingService(ratings repository.RatingRepository, reviews repository.ReviewRepository, disputes repository.DisputeRepository, orders repository.OrderRepository, users repository.UserRepository, products repository.ProductRepository, log *zap.Logger) *RatingService {
	return &RatingService{
		ratings:  ratings,
		reviews:  reviews,
		disputes: disputes,
		orders:   orders,
		users:    users,
		products: products,
		log:      log,
	}
}

// SubmitRating records a buyer's rating of the seller or rider on a
// delivered order the buyer owns. One rating per (order, reviewer,
// reviewee); duplicates conflict.
func (s *RatingService) SubmitRating(ctx context.Context, reviewerID string, req *SubmitRatingRequest) (*models.Rating, error) {
	if err := s.requireDeliveredOrder(ctx, req.OrderID, reviewerID); err != nil {
		return nil, err
	}

	exists, err := s.ratings.ExistsFor(ctx, req.OrderID, reviewerID, req.RevieweeID)
	if err != nil {
		return nil, apperrors.Unavailable("Failed to check existing rating", err)
	}
	if exists {
		return nil, apperrors.Conflict("You have already rated this order")
	}

	rating := &models.Rating{
		ID:           uuid.NewString(),
		OrderID:      req.OrderID,
		ReviewerID:   reviewerID,
		RevieweeID:   req.RevieweeID,
		RevieweeType: req.RevieweeType,
		Rating:       req.Rating,
		Comment:      req.Comment,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.ratings.Create(ctx, rating); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict("You have already rated this order")
		}
		return nil, apperrors.Unavailable("Failed to save rating", err)
	}

	if err := s.recomputeUserRating(ctx, req.RevieweeID); err != nil {
		s.log.Warn("failed to recompute user rating", zap.String("user", req.RevieweeID), zap.Error(err))
	}
	return rating, nil
}

// CreateReview records a product review tied to a delivered order the
// reviewer owns. One review per (product, user, order).
func (s *RatingService) CreateReview(ctx context.Context, userID string, req *CreateReviewRequest) (*models.Review, error) {
	if err := s.requireDeliveredOrder(ctx, req.OrderID, userID); err != nil {
		return nil, err
	}

	exists, err := s.reviews.ExistsFor(ctx, req.ProductID, userID, req.OrderID)
	if err != nil {
		return nil, apperrors.Unavailable("Failed to check existing review", err)
	}
	if exists {
		return nil, apperrors.Conflict("You have already reviewed this product for this order")
	}

	review := &models.Review{
		ID:         uuid.NewString(),
		ProductID:  req.ProductID,
		UserID:     userID,
		OrderID:    req.OrderID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		Images:     req.Images,
		IsVerified: true,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict("You have already reviewed this product for this order")
		}
		return nil, apperrors.Unavailable("Failed to save review", err)
	}

	if err := s.recomputeProductRating(ctx, req.ProductID); err != nil {
		s.log.Warn("failed to recompute product rating", zap.String("product", req.ProductID), zap.Error(err))
	}
	return review, nil
}

// SubmitDispute files a complaint against an order by one of its parties.
// Disputes are append-only; resolution happens elsewhere.
func (s *RatingService) SubmitDispute(ctx context.Context, reporterID string, req *SubmitDisputeRequest) (*models.Dispute, error) {
	order, err := s.orders.FindByID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Order not found")
		}
		return nil, apperrors.Unavailable("Failed to load order", err)
	}
	if order.BuyerID != reporterID && order.SellerID != reporterID && order.RiderID != reporterID {
		return nil, apperrors.Forbidden("Not authorized")
	}

	dispute := &models.Dispute{
		ID:          uuid.NewString(),
		OrderID:     req.OrderID,
		ReporterID:  reporterID,
		DisputeType: req.DisputeType,
		Description: req.Description,
		Status:      models.DisputePending,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.disputes.Create(ctx, dispute); err != nil {
		return nil, apperrors.Unavailable("Failed to save dispute", err)
	}
	return dispute, nil
}

// UserRatingSummary pairs a user's stored aggregate with their ratings.
type UserRatingSummary struct {
	Average float64          `json:"average"`
	Count   int              `json:"count"`
	Ratings []*models.Rating `json:"ratings"`
}

func (s *RatingService) GetUserRatings(ctx context.Context, userID string) (*UserRatingSummary, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, apperrors.Unavailable("Failed to load user", err)
	}

	ratings, err := s.ratings.FindByReviewee(ctx, userID)
	if err != nil {
		return nil, apperrors.Unavailable("Failed to fetch ratings", err)
	}
	if ratings == nil {
		ratings = []*models.Rating{}
	}

	return &UserRatingSummary{
		Average: user.Rating,
		Count:   user.RatingCount,
		Ratings: ratings,
	}, nil
}

// ReviewList is a paginated review listing for a product.
type ReviewList struct {
	Reviews []*models.Review `json:"reviews"`
	Total   int64            `json:"total"`
}

func (s *RatingService) GetProductReviews(ctx context.Context, productID string, rating, page, limit int) (*ReviewList, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	reviews, total, err := s.reviews.FindByProduct(ctx, productID, rating, page, limit)
	if err != nil {
		return nil, apperrors.Unavailable("Failed to fetch reviews", err)
	}
	if reviews == nil {
		reviews = []*models.Review{}
	}
	return &ReviewList{Reviews: reviews, Total: total}, nil
}

func (s *RatingService) VoteHelpful(ctx context.Context, reviewID string) (*models.Review, error) {
	review, err := s.reviews.IncrementHelpful(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Review not found")
		}
		return nil, apperrors.Unavailable("Failed to vote", err)
	}
	return review, nil
}

func (s *RatingService) GetUserDisputes(ctx context.Context, reporterID string) ([]*models.Dispute, error) {
	disputes, err := s.disputes.FindByReporter(ctx, reporterID)
	if err != nil {
		return nil, apperrors.Unavailable("Failed to fetch disputes", err)
	}
	if disputes == nil {
		disputes = []*models.Dispute{}
	}
	return disputes, nil
}

// requireDeliveredOrder checks the order exists, belongs to the buyer and
// has been delivered. All three failures collapse to the same validation
// message so callers cannot probe other users' orders.
func (s *RatingService) requireDeliveredOrder(ctx context.Context, orderID, buyerID string) error {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.Validation("Order not found or not delivered")
		}
		return apperrors.Unavailable("Failed to load order", err)
	}
	if order.BuyerID != buyerID || order.Status != models.OrderDelivered {
		return apperrors.Validation("Order not found or not delivered")
	}
	return nil
}

func (s *RatingService) recomputeUserRating(ctx context.Context, userID string) error {
	ratings, err := s.ratings.FindByReviewee(ctx, userID)
	if err != nil {
		return err
	}
	avg, count := roundedMean(len(ratings), func(i int) int { return ratings[i].Rating })
	return s.users.UpdateRating(ctx, userID, avg, count)
}

func (s *RatingService) recomputeProductRating(ctx context.Context, productID string) error {
	reviews, err := s.reviews.AllByProduct(ctx, productID)
	if err != nil {
		return err
	}
	avg, count := roundedMean(len(reviews), func(i int) int { return reviews[i].Rating })
	return s.products.UpdateRating(ctx, productID, avg, count)
}

// roundedMean is the arithmetic mean rounded to one decimal place.
func roundedMean(n int, value func(int) int) (float64, int) {
	if n == 0 {
		return 0, 0
	}
	sum := 0
	for i := 0; i < n; i++ {
		sum += value(i)
	}
	return math.Round(float64(sum)/float64(n)*10) / 10, n
}
