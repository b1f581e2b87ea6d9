package pubsub

import (
	"context"
	"encoding/json"
	"time"

	"cerebro/internal/logger"

	"github.com/redis/go-redis/v9"
)

// Redis 发布器：把信号/订单事件推送到 Redis 频道，订阅方自行消费。
type Redis struct {
	client *redis.Client
}

func NewRedis(url string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return &Redis{client: client}, nil
}

func (r *Redis) Publish(ctx context.Context, topic string, payload map[string]any) bool {
	if r == nil || r.client == nil {
		return false
	}
	body, err := json.Marshal(payload)
	if err != nil {
		logger.Errorf("publish %s: marshal payload failed: %v", topic, err)
		return false
	}
	if err := r.client.Publish(ctx, topic, body).Err(); err != nil {
		logger.Warnf("publish %s failed: %v", topic, err)
		return false
	}
	return true
}

// CacheSet stores a value with a TTL. Best effort, like Publish.
func (r *Redis) CacheSet(ctx context.Context, key, value string, ttl time.Duration) bool {
	if r == nil || r.client == nil {
		return false
	}
	if err := r.client.SetEx(ctx, key, value, ttl).Err(); err != nil {
		logger.Warnf("cache set %s failed: %v", key, err)
		return false
	}
	return true
}

func (r *Redis) CacheGet(ctx context.Context, key string) (string, bool) {
	if r == nil || r.client == nil {
		return "", false
	}
	value, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return value, true
}

func (r *Redis) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Close()
}
