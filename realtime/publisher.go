// Package realtime is the outbound side of the real-time channel. Every user
// has a personal channel; core services only ever need "send event E to user
// U". Delivery is at-most-once with no acknowledgment: publish failures are
// the caller's to log and ignore, never to surface or retry.
package realtime

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Publisher pushes a named event to a single user's channel.
type Publisher interface {
	SendToUser(ctx context.Context, userID, event string, payload interface{}) error
}

// Envelope is the wire format on a user channel.
type Envelope struct {
	Event     string      `json:"event"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// RedisPublisher publishes events over Redis Pub/Sub. A websocket gateway
// subscribed to the per-user channels fans messages out to connections.
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

// UserChannel returns the Pub/Sub channel name for a user.
func UserChannel(userID string) string {
	return "user:" + userID
}

func (p *RedisPublisher) SendToUser(ctx context.Context, userID, event string, payload interface{}) error {
	raw, err := json.Marshal(Envelope{
		Event:     event,
		Data:      payload,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, UserChannel(userID), raw).Err()
}

// NoopPublisher discards all events. Used when real-time push is disabled.
type NoopPublisher struct{}

func (NoopPublisher) SendToUser(ctx context.Context, userID, event string, payload interface{}) error {
	return nil
}
