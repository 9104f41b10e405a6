package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

// StreamPublisher 将事件发布到 Redis Streams（供审计/下游消费）
type StreamPublisher struct {
	c      *redis.Client
	stream string
}

// NewStreamPublisher 创建 Stream 发布器
func NewStreamPublisher(c *redis.Client, stream string) *StreamPublisher {
	return &StreamPublisher{c: c, stream: stream}
}

// PublishJSON 将 data 序列化为 JSON 后 XADD 到 Stream，返回消息 ID
func (p *StreamPublisher) PublishJSON(ctx context.Context, data any) (string, error) {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return "", err
	}

	return p.c.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{
			"data":      string(jsonBytes),
			"timestamp": time.Now().Unix(),
		},
	}).Result()
}
