package mq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Channel is the Redis pub/sub channel domain events are published on.
const Channel = "recipe-events"

// Index describes one change to a stored entity.
type Index struct {
	Event      string    `json:"event"`
	EntityType string    `json:"entity_type"`
	Method     string    `json:"method"`
	EntityId   string    `json:"entity_id"`
	UserId     string    `json:"user_id,omitempty"`
	Value      float64   `json:"value,omitempty"`
	At         time.Time `json:"at"`
}

// Emitter publishes domain events. Publishing is best effort: failures are
// logged and never reach the caller.
type Emitter interface {
	Emit(ctx context.Context, eventName string, content Index)
}

type publisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

type RedisEmitter struct {
	conn    publisher
	channel string
}

func NewRedisEmitter(conn *redis.Client) *RedisEmitter {
	return &RedisEmitter{conn: conn, channel: Channel}
}

func (e *RedisEmitter) Emit(ctx context.Context, eventName string, content Index) {
	content.Event = eventName
	if content.At.IsZero() {
		content.At = time.Now().UTC()
	}

	data, err := json.Marshal(content)
	if err != nil {
		logrus.WithError(err).WithField("event", eventName).Error("failed to marshal event")
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if err := e.conn.Publish(ctx, e.channel, data).Err(); err != nil {
		logrus.WithError(err).WithField("event", eventName).Warn("failed to publish event")
		return
	}
	logrus.WithFields(logrus.Fields{"event": eventName, "entity_id": content.EntityId}).Debug("event published")
}

// Nop drops every event; used when Redis is not configured.
type Nop struct{}

func (Nop) Emit(context.Context, string, Index) {}
