package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yaseeradam/smartlink-backend/apperrors"
	"github.com/yaseeradam/smartlink-backend/middleware"
	"github.com/yaseeradam/smartlink-backend/services"
)

type NotificationController struct {
	notifications *services.NotificationService
}

func NewNotificationController(notifications *services.NotificationService) *NotificationController {
	return &NotificationController{notifications: notifications}
}

// List returns the caller's notifications with the unread count.
func (nc *NotificationController) List(c *gin.Context) {
	list, err := nc.notifications.List(
		c.Request.Context(),
		c.GetString(middleware.ContextUserID),
		c.Query("unread") == "true",
		queryInt(c, "page", 1),
		queryInt(c, "limit", 20),
	)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

type markReadRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// MarkRead marks the given notifications as read; ids belonging to other
// users are ignored.
func (nc *NotificationController) MarkRead(c *gin.Context) {
	var req markReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := nc.notifications.MarkRead(c.Request.Context(), c.GetString(middleware.ContextUserID), req.IDs); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notifications marked as read"})
}

func (nc *NotificationController) MarkAllRead(c *gin.Context) {
	if err := nc.notifications.MarkAllRead(c.Request.Context(), c.GetString(middleware.ContextUserID)); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}
