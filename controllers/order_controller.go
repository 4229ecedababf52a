package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yaseeradam/smartlink-backend/apperrors"
	"github.com/yaseeradam/smartlink-backend/middleware"
	"github.com/yaseeradam/smartlink-backend/models"
	"github.com/yaseeradam/smartlink-backend/services"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// Create places an order. Buyers only.
func (oc *OrderController) Create(c *gin.Context) {
	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	order, err := oc.orders.CreateOrder(c.Request.Context(), c.GetString(middleware.ContextUserID), &req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// List returns the caller's orders, scoped by their role.
func (oc *OrderController) List(c *gin.Context) {
	orders, err := oc.orders.ListOrders(c.Request.Context(), middleware.Actor(c), c.Query("status"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (oc *OrderController) Get(c *gin.Context) {
	order, err := oc.orders.GetOrder(c.Request.Context(), c.Param("id"), middleware.Actor(c))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

type updateStatusRequest struct {
	Status   string              `json:"status" binding:"required"`
	Location *models.Coordinates `json:"location"`
	Note     string              `json:"note" binding:"max=500"`
}

// UpdateStatus advances the order through its lifecycle.
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	order, err := oc.orders.UpdateStatus(c.Request.Context(), c.Param("id"), middleware.Actor(c), req.Status, req.Location, req.Note)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

type assignRiderRequest struct {
	RiderID string `json:"riderId" binding:"required"`
}

// AssignRider hands the order to a rider. Sellers only.
func (oc *OrderController) AssignRider(c *gin.Context) {
	var req assignRiderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	order, err := oc.orders.AssignRider(c.Request.Context(), c.Param("id"), c.GetString(middleware.ContextUserID), req.RiderID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

type cancelOrderRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// Cancel cancels the caller's own order. Buyers only.
func (oc *OrderController) Cancel(c *gin.Context) {
	var req cancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	order, err := oc.orders.CancelOrder(c.Request.Context(), c.Param("id"), c.GetString(middleware.ContextUserID), req.Reason)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}
