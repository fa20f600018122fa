package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"medisecure/internal/cache"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const relayPrefix = "realtime:"

// RedisRelay shares rooms between service instances. Emit publishes to Redis
// and every instance's Run loop delivers into its local hub.
type RedisRelay struct {
	cache  cache.Cache
	hub    *Hub
	logger logrus.FieldLogger
}

func NewRedisRelay(c cache.Cache, hub *Hub, logger logrus.FieldLogger) *RedisRelay {
	return &RedisRelay{cache: c, hub: hub, logger: logger}
}

func (r *RedisRelay) Emit(ctx context.Context, room, event string, data any) error {
	payload, err := json.Marshal(Frame{Event: event, Data: data})
	if err != nil {
		return fmt.Errorf("encode %s frame: %w", event, err)
	}
	if err := r.cache.Publish(ctx, relayPrefix+room, payload).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", event, err)
	}
	return nil
}

// Run 訂閱 realtime:* 直到 ctx 結束
func (r *RedisRelay) Run(ctx context.Context) error {
	ps := r.cache.PSubscribe(ctx, relayPrefix+"*")
	defer ps.Close()

	if _, err := ps.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s*: %w", relayPrefix, err)
	}
	ch := ps.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			r.handleMessage(msg)
		}
	}
}

func (r *RedisRelay) handleMessage(msg *redis.Message) {
	room := strings.TrimPrefix(msg.Channel, relayPrefix)
	if room == "" || room == msg.Channel {
		r.logger.WithField("channel", msg.Channel).Warn("relay message on unexpected channel")
		return
	}
	r.hub.deliver(room, []byte(msg.Payload))
}
