package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"touchbase-data/internal/domain"
	"touchbase-data/internal/store"
)

// ProgressCache 目标进度快照缓存
// 看板每 30s~5min 轮询一次进度，这里用短 TTL 的 KV 缓存挡掉重复聚合；
// 写入（记互动/改目标）后立即失效，轮询读不到旧快照
type ProgressCache struct {
	kv     store.KV
	ttl    time.Duration
	logger *zap.Logger
}

// NewProgressCache 创建进度缓存
func NewProgressCache(kv store.KV, ttl time.Duration, logger *zap.Logger) *ProgressCache {
	return &ProgressCache{kv: kv, ttl: ttl, logger: logger}
}

func progressCacheKey(userID string, day time.Time) string {
	return fmt.Sprintf("touchbase:goal-progress:%s:%s", userID, day.Format("2006-01-02"))
}

// Get 读取缓存的进度快照（未命中返回 false）
func (c *ProgressCache) Get(ctx context.Context, userID string, asOf time.Time) (*domain.GoalProgress, bool) {
	raw, err := c.kv.Get(ctx, progressCacheKey(userID, asOf))
	if err != nil {
		if err != store.ErrMiss {
			c.logger.Warn("Progress cache read failed", zap.String("user_id", userID), zap.Error(err))
		}
		return nil, false
	}

	var p domain.GoalProgress
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		c.logger.Warn("Progress cache entry corrupted", zap.String("user_id", userID), zap.Error(err))
		return nil, false
	}
	return &p, true
}

// Put 写入进度快照
func (c *ProgressCache) Put(ctx context.Context, userID string, asOf time.Time, p *domain.GoalProgress) {
	raw, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := c.kv.Set(ctx, progressCacheKey(userID, asOf), string(raw), c.ttl); err != nil {
		c.logger.Warn("Progress cache write failed", zap.String("user_id", userID), zap.Error(err))
	}
}

// Invalidate 使当天的进度快照失效（互动写入、目标修改后调用）
func (c *ProgressCache) Invalidate(ctx context.Context, userID string, asOf time.Time) {
	if err := c.kv.Del(ctx, progressCacheKey(userID, asOf)); err != nil {
		c.logger.Warn("Progress cache invalidation failed", zap.String("user_id", userID), zap.Error(err))
	}
}
