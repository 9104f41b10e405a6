package repository

import (
	"context"

	"touchbase-data/internal/domain"
)

// SettingsRepository 用户设置Repository接口
// 跟进间隔/通知设置都是每用户单条记录，整条替换更新
type SettingsRepository interface {
	// GetFollowupSettings 获取跟进间隔设置（不存在时返回默认值，不报错）
	GetFollowupSettings(ctx context.Context, userID string) (*domain.FollowupSettings, error)

	// PutFollowupSettings 整条替换跟进间隔设置（调用方负责先校验）
	PutFollowupSettings(ctx context.Context, userID string, s *domain.FollowupSettings) error

	// GetDailyGoal 获取用户设置的每日目标（未设置时为 0）
	GetDailyGoal(ctx context.Context, userID string) (int, error)

	// PutDailyGoal 设置每日目标（非负）
	PutDailyGoal(ctx context.Context, userID string, goal int) error

	// GetNotificationSettings 获取通知设置（不存在时返回默认值，不报错）
	GetNotificationSettings(ctx context.Context, userID string) (*domain.NotificationSettings, error)

	// PutNotificationSettings 整条替换通知设置
	PutNotificationSettings(ctx context.Context, userID string, s *domain.NotificationSettings) error
}
