package models

import "time"

// Message types
const (
	MessageText  = "text"
	MessageImage = "image"
	MessageFile  = "file"
)

type ChatMessage struct {
	ID          string    `json:"id" bson:"id"`
	SenderID    string    `json:"sender" bson:"sender_id"`
	Content     string    `json:"content" bson:"content"`
	MessageType string    `json:"messageType" bson:"message_type"`
	FileURL     string    `json:"fileUrl,omitempty" bson:"file_url,omitempty"`
	IsRead      bool      `json:"isRead" bson:"is_read"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
}

// LastMessage is a denormalized preview of the most recent message, used to
// sort chat listings.
type LastMessage struct {
	Content   string    `json:"content" bson:"content"`
	SenderID  string    `json:"sender" bson:"sender_id"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// Chat is a two-party conversation scoped to an order.
type Chat struct {
	ID           string        `json:"id" bson:"_id"`
	Participants []string      `json:"participants" bson:"participants"`
	OrderID      string        `json:"order,omitempty" bson:"order_id,omitempty"`
	Messages     []ChatMessage `json:"messages" bson:"messages"`
	LastMessage  *LastMessage  `json:"lastMessage,omitempty" bson:"last_message,omitempty"`
	IsActive     bool          `json:"isActive" bson:"is_active"`
	CreatedAt    time.Time     `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time     `json:"updatedAt" bson:"updated_at"`
}

// OtherParticipant returns the participant that is not userID, or "".
func (c *Chat) OtherParticipant(userID string) string {
	for _, p := range c.Participants {
		if p != userID {
			return p
		}
	}
	return ""
}
