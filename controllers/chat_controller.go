package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yaseeradam/smartlink-backend/apperrors"
	"github.com/yaseeradam/smartlink-backend/middleware"
	"github.com/yaseeradam/smartlink-backend/services"
)

type ChatController struct {
	chats *services.ChatService
}

func NewChatController(chats *services.ChatService) *ChatController {
	return &ChatController{chats: chats}
}

// Start creates or returns the chat with another participant for an order.
func (cc *ChatController) Start(c *gin.Context) {
	var req services.StartChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	chat, err := cc.chats.StartChat(c.Request.Context(), c.GetString(middleware.ContextUserID), &req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chat": chat})
}

func (cc *ChatController) List(c *gin.Context) {
	chats, err := cc.chats.ListChats(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chats": chats})
}

// Messages returns a page of the chat history, newest page first.
func (cc *ChatController) Messages(c *gin.Context) {
	page, err := cc.chats.GetMessages(
		c.Request.Context(),
		c.Param("id"),
		c.GetString(middleware.ContextUserID),
		queryInt(c, "page", 1),
		queryInt(c, "limit", 50),
	)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (cc *ChatController) Send(c *gin.Context) {
	var req services.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	msg, err := cc.chats.SendMessage(c.Request.Context(), c.Param("id"), c.GetString(middleware.ContextUserID), &req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

func (cc *ChatController) MarkRead(c *gin.Context) {
	if err := cc.chats.MarkRead(c.Request.Context(), c.Param("id"), c.GetString(middleware.ContextUserID)); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Messages marked as read"})
}
