package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/devboard/devboard/internal/constants"
)

const publishTimeout = 2 * time.Second

// RedisSink publishes events to a Redis pub/sub channel for the push
// frontends to fan out. Publish failures are logged and dropped.
type RedisSink struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisSink creates a sink backed by the given Redis client.
func NewRedisSink(client *redis.Client, logger *zap.Logger) *RedisSink {
	return &RedisSink{
		client: client,
		logger: logger,
	}
}

type envelope struct {
	Event   Event       `json:"event"`
	Payload interface{} `json:"payload"`
}

// Emit broadcasts an event on the shared channel.
func (s *RedisSink) Emit(event Event, payload interface{}) {
	s.publish(constants.EventChannel, event, payload)
}

// EmitTo publishes an event on a per-user channel.
func (s *RedisSink) EmitTo(userID uint64, event Event, payload interface{}) {
	s.publish(fmt.Sprintf("%s.user.%d", constants.EventChannel, userID), event, payload)
}

func (s *RedisSink) publish(channel string, event Event, payload interface{}) {
	data, err := json.Marshal(envelope{Event: event, Payload: payload})
	if err != nil {
		s.logger.Warn("failed to encode event",
			zap.String("event", string(event)),
			zap.Error(err),
		)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := s.client.Publish(ctx, channel, data).Err(); err != nil {
		s.logger.Warn("failed to publish event",
			zap.String("event", string(event)),
			zap.String("channel", channel),
			zap.Error(err),
		)
	}
}
