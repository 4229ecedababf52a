package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yaseeradam/smartlink-backend/apperrors"
	"github.com/yaseeradam/smartlink-backend/models"
	"github.com/yaseeradam/smartlink-backend/realtime"
	"github.com/yaseeradam/smartlink-backend/repository"
)

type StartChatRequest struct {
	ParticipantID string `json:"participantId" binding:"required"`
	OrderID       string `json:"orderId"`
}

type SendMessageRequest struct {
	Content     string `json:"content" binding:"required,max=5000"`
	MessageType string `json:"messageType" binding:"omitempty,oneof=text image file"`
	FileURL     string `json:"fileUrl"`
}

// ChatService manages two-party order conversations. Messages are
// persisted first, then pushed best-effort to the other participant.
type ChatService struct {
	chats     repository.ChatRepository
	users     repository.UserRepository
	publisher realtime.Publisher
	log       *zap.Logger
}

func NewChatService(chats repository.ChatRepository, users repository.UserRepository, publisher realtime.Publisher, log *zap.Logger) *ChatService {
	return &ChatService{chats: chats, users: users, publisher: publisher, log: log}
}

// StartChat returns the existing chat between the two participants for the
// order, creating one if none exists.
func (s *ChatService) StartChat(ctx context.Context, userID string, req *StartChatRequest) (*models.Chat, error) {
	if req.ParticipantID == userID {
		return nil, apperrors.Validation("Cannot start a chat with yourself")
	}

	if _, err := s.users.FindByID(ctx, req.ParticipantID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, apperrors.Unavailable("Failed to load user", err)
	}

	chat, err := s.chats.FindByParticipantsAndOrder(ctx, userID, req.ParticipantID, req.OrderID)
	if err == nil {
		return chat, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Unavailable("Failed to look up chat", err)
	}

	now := time.Now().UTC()
	chat = &models.Chat{
		ID:           uuid.NewString(),
		Participants: []string{userID, req.ParticipantID},
		OrderID:      req.OrderID,
		Messages:     []models.ChatMessage{},
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.chats.Create(ctx, chat); err != nil {
		return nil, apperrors.Unavailable("Failed to create chat", err)
	}
	return chat, nil
}

func (s *ChatService) ListChats(ctx context.Context, userID string) ([]*models.Chat, error) {
	chats, err := s.chats.FindByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Unavailable("Failed to fetch chats", err)
	}
	if chats == nil {
		chats = []*models.Chat{}
	}
	return chats, nil
}

// MessagePage is a window over a chat's message history, newest-last.
type MessagePage struct {
	Messages []models.ChatMessage `json:"messages"`
	Total    int                  `json:"total"`
}

// GetMessages returns a page of the chat's messages. Fetching also marks
// the other party's messages as read.
func (s *ChatService) GetMessages(ctx context.Context, chatID, userID string, page, limit int) (*MessagePage, error) {
	chat, err := s.loadChatForUser(ctx, chatID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.chats.MarkMessagesRead(ctx, chatID, userID); err != nil {
		s.log.Warn("failed to mark messages read", zap.String("chat", chatID), zap.Error(err))
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}

	total := len(chat.Messages)
	// Page 1 is the most recent window; older pages walk backwards.
	end := total - (page-1)*limit
	if end < 0 {
		end = 0
	}
	start := end - limit
	if start < 0 {
		start = 0
	}

	return &MessagePage{Messages: chat.Messages[start:end], Total: total}, nil
}

// SendMessage appends a message to the chat and pushes it to the other
// participant. Push failure never fails the send.
func (s *ChatService) SendMessage(ctx context.Context, chatID, senderID string, req *SendMessageRequest) (*models.ChatMessage, error) {
	chat, err := s.loadChatForUser(ctx, chatID, senderID)
	if err != nil {
		return nil, err
	}

	messageType := req.MessageType
	if messageType == "" {
		messageType = models.MessageText
	}

	msg := models.ChatMessage{
		ID:          uuid.NewString(),
		SenderID:    senderID,
		Content:     req.Content,
		MessageType: messageType,
		FileURL:     req.FileURL,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.chats.AppendMessage(ctx, chatID, msg); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Chat not found")
		}
		return nil, apperrors.Unavailable("Failed to send message", err)
	}

	if other := chat.OtherParticipant(senderID); other != "" {
		payload := map[string]interface{}{"chatId": chatID, "message": msg}
		if err := s.publisher.SendToUser(ctx, other, "newMessage", payload); err != nil {
			s.log.Warn("failed to push chat message", zap.String("chat", chatID), zap.Error(err))
		}
	}

	return &msg, nil
}

func (s *ChatService) MarkRead(ctx context.Context, chatID, userID string) error {
	if _, err := s.loadChatForUser(ctx, chatID, userID); err != nil {
		return err
	}
	if err := s.chats.MarkMessagesRead(ctx, chatID, userID); err != nil {
		return apperrors.Unavailable("Failed to mark messages read", err)
	}
	return nil
}

func (s *ChatService) loadChatForUser(ctx context.Context, chatID, userID string) (*models.Chat, error) {
	chat, err := s.chats.FindByIDForUser(ctx, chatID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Chat not found")
		}
		return nil, apperrors.Unavailable("Failed to load chat", err)
	}
	return chat, nil
}
