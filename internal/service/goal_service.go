package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"touchbase-data/internal/domain"
	"touchbase-data/internal/repository"
)

// GoalService 当日目标进度聚合
type GoalService struct {
	due          *DueService
	interactions repository.InteractionsRepository
	settings     repository.SettingsRepository
	cache        *ProgressCache // 可为 nil
	logger       *zap.Logger
}

// NewGoalService 创建目标进度服务
func NewGoalService(
	due *DueService,
	interactions repository.InteractionsRepository,
	settings repository.SettingsRepository,
	cache *ProgressCache,
	logger *zap.Logger,
) *GoalService {
	return &GoalService{
		due:          due,
		interactions: interactions,
		settings:     settings,
		cache:        cache,
		logger:       logger,
	}
}

// Progress 计算 asOf 当天的目标进度
// 有效目标 = max(用户设置的目标, 当日应联系数)：积压未清时不会显示“已完成”
// 纯派生读，无副作用，可重复/并发调用
func (s *GoalService) Progress(ctx context.Context, userID string, asOf time.Time) (*domain.GoalProgress, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}

	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, userID, asOf); ok {
			return cached, nil
		}
	}

	due, err := s.due.DueToday(ctx, userID, asOf)
	if err != nil {
		return nil, err
	}

	dayStart, dayEnd := dayBounds(asOf)
	contacted, err := s.interactions.CountOutreach(ctx, userID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to count outreach interactions: %w", err)
	}

	storedGoal, err := s.settings.GetDailyGoal(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily goal: %w", err)
	}

	effectiveGoal := storedGoal
	if len(due) > effectiveGoal {
		effectiveGoal = len(due)
	}
	remaining := effectiveGoal - contacted
	if remaining < 0 {
		remaining = 0
	}

	progress := &domain.GoalProgress{
		DailyGoal: effectiveGoal,
		Contacted: contacted,
		Remaining: remaining,
		DueToday:  len(due),
	}

	if s.cache != nil {
		s.cache.Put(ctx, userID, asOf, progress)
	}

	s.logger.Debug("Goal progress computed",
		zap.String("user_id", userID),
		zap.Int("daily_goal", progress.DailyGoal),
		zap.Int("contacted", progress.Contacted),
		zap.Int("due_today", progress.DueToday),
	)
	return progress, nil
}

// UpdateDailyGoal 设置用户的每日目标并使当天缓存失效
func (s *GoalService) UpdateDailyGoal(ctx context.Context, userID string, goal int, asOf time.Time) error {
	if userID == "" {
		return fmt.Errorf("user_id is required")
	}
	if goal < 0 {
		return fmt.Errorf("daily goal must be non-negative")
	}
	if err := s.settings.PutDailyGoal(ctx, userID, goal); err != nil {
		return fmt.Errorf("failed to update daily goal: %w", err)
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, userID, asOf)
	}
	return nil
}

// DailyGoal 读取用户设置的原始目标（不做 max 调整，设置页展示用）
func (s *GoalService) DailyGoal(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, fmt.Errorf("user_id is required")
	}
	goal, err := s.settings.GetDailyGoal(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get daily goal: %w", err)
	}
	return goal, nil
}
