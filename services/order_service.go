package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yaseeradam/smartlink-backend/apperrors"
	"github.com/yaseeradam/smartlink-backend/models"
	"github.com/yaseeradam/smartlink-backend/repository"
)

// OrderNotifier is the fan-out side effect of the order lifecycle. Calls
// are fire-and-forget: implementations log their own failures.
type OrderNotifier interface {
	NotifyNewOrder(ctx context.Context, sellerID, orderID, buyerName string)
	NotifyOrderUpdate(ctx context.Context, orderID, buyerID, sellerID, riderID, status string)
}

type CreateOrderItem struct {
	ProductID string `json:"product" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type CreateOrderRequest struct {
	Items           []CreateOrderItem `json:"items" binding:"required,min=1,dive"`
	DeliveryAddress models.Address    `json:"deliveryAddress" binding:"required"`
	PaymentMethod   string            `json:"paymentMethod" binding:"omitempty,oneof=card transfer cash_on_delivery"`
	Notes           string            `json:"notes"`
}

var validStatuses = func() map[string]bool {
	m := make(map[string]bool, len(models.OrderStatuses))
	for _, s := range models.OrderStatuses {
		m[s] = true
	}
	return m
}()

// OrderService owns the order entity: status transition rules, inventory
// debit, tracking history and rider assignment.
type OrderService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	users    repository.UserRepository
	notifier OrderNotifier
	log      *zap.Logger
}

func NewOrderService(orders repository.OrderRepository, products repository.ProductRepository, users repository.UserRepository, notifier OrderNotifier, log *zap.Logger) *OrderService {
	return &OrderService{
		orders:   orders,
		products: products,
		users:    users,
		notifier: notifier,
		log:      log,
	}
}

// CreateOrder places an order for a buyer. Unit prices are snapshotted from
// the catalog at this moment and never re-read; the total is computed once
// and immutable. The seller is taken from the first line item's product.
func (s *OrderService) CreateOrder(ctx context.Context, buyerID string, req *CreateOrderRequest) (*models.Order, error) {
	buyer, err := s.users.FindByID(ctx, buyerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Buyer not found")
		}
		return nil, apperrors.Unavailable("Failed to load buyer", err)
	}

	var (
		totalAmount float64
		orderItems  = make([]models.OrderItem, 0, len(req.Items))
		sellerID    string
	)

	for _, item := range req.Items {
		product, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperrors.OutOfStock("Product not found is out of stock")
			}
			return nil, apperrors.Unavailable("Failed to load product", err)
		}
		if product.Stock < item.Quantity {
			return nil, apperrors.OutOfStock(fmt.Sprintf("Product %s is out of stock", product.Name))
		}

		totalAmount += product.Price * float64(item.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			Price:     product.Price,
		})

		if sellerID == "" {
			sellerID = product.SellerID
		}
	}

	orderNumber, err := s.orders.NextOrderNumber(ctx)
	if err != nil {
		return nil, apperrors.Unavailable("Failed to generate order number", err)
	}

	now := time.Now().UTC()
	order := &models.Order{
		ID:              uuid.NewString(),
		OrderNumber:     orderNumber,
		BuyerID:         buyerID,
		SellerID:        sellerID,
		Items:           orderItems,
		TotalAmount:     totalAmount,
		Status:          models.OrderPending,
		PaymentStatus:   models.PaymentPending,
		PaymentMethod:   req.PaymentMethod,
		DeliveryAddress: req.DeliveryAddress,
		Notes:           req.Notes,
		TrackingHistory: []models.TrackingEntry{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = models.PaymentCashOnDelivery
	}

	s.fillDeliveryEstimates(ctx, order)

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, apperrors.Unavailable("Failed to create order", err)
	}

	// Inventory debit happens after the authoritative write commits. The
	// decrement is conditional at the store (stock >= quantity), so stock
	// can never go negative; a lost race is logged, not surfaced.
	for _, item := range req.Items {
		if err := s.products.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.log.Warn("stock decrement failed",
				zap.String("order", order.ID),
				zap.String("product", item.ProductID),
				zap.Int("quantity", item.Quantity),
				zap.Error(err))
		}
	}

	s.notifier.NotifyNewOrder(ctx, sellerID, order.ID, buyer.Name)

	return order, nil
}

// fillDeliveryEstimates computes the delivery fee, pickup address and ETA
// from the seller's location when coordinates are available. Best-effort:
// without coordinates the fee stays zero.
func (s *OrderService) fillDeliveryEstimates(ctx context.Context, order *models.Order) {
	seller, err := s.users.FindByID(ctx, order.SellerID)
	if err != nil {
		s.log.Warn("failed to load seller for delivery estimate", zap.String("order", order.ID), zap.Error(err))
		return
	}
	if seller.Location == nil {
		return
	}

	order.PickupAddress = &models.Address{
		Street:      seller.Location.Address,
		Coordinates: seller.Location.Coordinates,
	}

	if order.DeliveryAddress.Coordinates == nil || seller.Location.Coordinates == nil {
		return
	}

	distance := Distance(*seller.Location.Coordinates, *order.DeliveryAddress.Coordinates)
	order.DeliveryFee = DeliveryFee(distance)

	eta := time.Now().UTC().Add(time.Duration(EstimateDeliveryMinutes(distance, models.VehicleMotorcycle)) * time.Minute)
	order.EstimatedDeliveryTime = &eta
}

// UpdateStatus applies a status transition requested by actor. Only actor
// authorization is validated, not sequence legality: sellers act on their
// own orders, riders on orders assigned to them, buyers only to cancel.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, actor Actor, status string, location *models.Coordinates, note string) (*models.Order, error) {
	if !validStatuses[status] {
		return nil, apperrors.Validation("Invalid order status: " + status)
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Order not found")
		}
		return nil, apperrors.Unavailable("Failed to load order", err)
	}

	switch actor.Role {
	case models.RoleSeller:
		if order.SellerID != actor.ID {
			return nil, apperrors.Forbidden("Not authorized")
		}
	case models.RoleRider:
		if order.RiderID != actor.ID {
			return nil, apperrors.Forbidden("Not authorized")
		}
	case models.RoleBuyer:
		if status != models.OrderCancelled || order.BuyerID != actor.ID {
			return nil, apperrors.Forbidden("Not authorized")
		}
	default:
		return nil, apperrors.Forbidden("Not authorized")
	}

	now := time.Now().UTC()
	order.Status = status
	order.TrackingHistory = append(order.TrackingHistory, models.TrackingEntry{
		Status:    status,
		Timestamp: now,
		Location:  location,
		Note:      note,
	})
	if status == models.OrderDelivered {
		order.ActualDeliveryTime = &now
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, apperrors.Unavailable("Failed to update order", err)
	}

	s.notifier.NotifyOrderUpdate(ctx, order.ID, order.BuyerID, order.SellerID, order.RiderID, status)

	return order, nil
}

// AssignRider attaches a rider to an order. Seller-only; the target
// identity must have the rider role.
func (s *OrderService) AssignRider(ctx context.Context, orderID, sellerID, riderID string) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Order not found")
		}
		return nil, apperrors.Unavailable("Failed to load order", err)
	}

	if order.SellerID != sellerID {
		return nil, apperrors.Forbidden("Not authorized")
	}

	rider, err := s.users.FindByID(ctx, riderID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Unavailable("Failed to load rider", err)
	}
	if rider == nil || rider.Role != models.RoleRider {
		return nil, apperrors.Validation("Invalid rider")
	}

	order.RiderID = riderID
	order.Status = models.OrderAssigned

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, apperrors.Unavailable("Failed to update order", err)
	}

	s.notifier.NotifyOrderUpdate(ctx, order.ID, order.BuyerID, order.SellerID, order.RiderID, order.Status)

	return order, nil
}

// CancelOrder cancels a buyer's own order, recording the reason. Inventory
// is intentionally not restocked.
func (s *OrderService) CancelOrder(ctx context.Context, orderID, buyerID, reason string) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Order not found")
		}
		return nil, apperrors.Unavailable("Failed to load order", err)
	}

	if order.BuyerID != buyerID {
		return nil, apperrors.Forbidden("Order not found or not authorized")
	}
	if order.IsTerminal() {
		return nil, apperrors.Conflict("Order can no longer be cancelled")
	}

	now := time.Now().UTC()
	order.Status = models.OrderCancelled
	order.CancellationReason = reason
	order.CancelledAt = &now

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, apperrors.Unavailable("Failed to update order", err)
	}

	s.notifier.NotifyOrderUpdate(ctx, order.ID, order.BuyerID, order.SellerID, order.RiderID, order.Status)

	return order, nil
}

// GetOrder returns a single order, visible only to its parties.
func (s *OrderService) GetOrder(ctx context.Context, orderID string, actor Actor) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Order not found")
		}
		return nil, apperrors.Unavailable("Failed to load order", err)
	}

	if order.BuyerID != actor.ID && order.SellerID != actor.ID && order.RiderID != actor.ID {
		return nil, apperrors.Forbidden("Not authorized")
	}
	return order, nil
}

// ListOrders returns the actor's orders for their role, newest first.
func (s *OrderService) ListOrders(ctx context.Context, actor Actor, status string) ([]*models.Order, error) {
	filter := repository.OrderFilter{Status: status}
	switch actor.Role {
	case models.RoleBuyer:
		filter.BuyerID = actor.ID
	case models.RoleSeller:
		filter.SellerID = actor.ID
	case models.RoleRider:
		filter.RiderID = actor.ID
	}

	orders, err := s.orders.Find(ctx, filter)
	if err != nil {
		return nil, apperrors.Unavailable("Failed to fetch orders", err)
	}
	if orders == nil {
		orders = []*models.Order{}
	}
	return orders, nil
}
