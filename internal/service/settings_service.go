package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"touchbase-data/internal/domain"
	"touchbase-data/internal/repository"
)

// SettingsService 用户设置服务（跟进间隔 / 通知设置）
type SettingsService struct {
	settings repository.SettingsRepository
	logger   *zap.Logger
}

// NewSettingsService 创建用户设置服务
func NewSettingsService(settings repository.SettingsRepository, logger *zap.Logger) *SettingsService {
	return &SettingsService{settings: settings, logger: logger}
}

// FollowupSettings 获取跟进间隔设置（首次访问返回默认值）
func (s *SettingsService) FollowupSettings(ctx context.Context, userID string) (*domain.FollowupSettings, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}
	settings, err := s.settings.GetFollowupSettings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get followup settings: %w", err)
	}
	return settings, nil
}

// UpdateFollowupSettings 整条替换跟进间隔设置（写入前校验 1-365）
// 只影响之后的互动排期，已排期的 next_contact_date 不回溯调整
func (s *SettingsService) UpdateFollowupSettings(ctx context.Context, userID string, settings *domain.FollowupSettings) (*domain.FollowupSettings, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}
	if settings == nil {
		return nil, fmt.Errorf("settings are required")
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if err := s.settings.PutFollowupSettings(ctx, userID, settings); err != nil {
		return nil, fmt.Errorf("failed to update followup settings: %w", err)
	}
	s.logger.Info("Followup settings updated", zap.String("user_id", userID))
	settings.UserID = userID
	return settings, nil
}

// ResetFollowupSettings 恢复默认跟进间隔（重置不是删除）
func (s *SettingsService) ResetFollowupSettings(ctx context.Context, userID string) (*domain.FollowupSettings, error) {
	defaults := domain.DefaultFollowupSettings(userID)
	return s.UpdateFollowupSettings(ctx, userID, defaults)
}

// NotificationSettings 获取通知设置（首次访问返回默认值）
func (s *SettingsService) NotificationSettings(ctx context.Context, userID string) (*domain.NotificationSettings, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}
	settings, err := s.settings.GetNotificationSettings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get notification settings: %w", err)
	}
	return settings, nil
}

// UpdateNotificationSettings 整条替换通知设置
func (s *SettingsService) UpdateNotificationSettings(ctx context.Context, userID string, settings *domain.NotificationSettings) (*domain.NotificationSettings, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}
	if settings == nil {
		return nil, fmt.Errorf("settings are required")
	}
	if settings.NotificationsEnabled && settings.SMSEnabled && settings.PhoneNumber == "" {
		return nil, fmt.Errorf("phoneNumber is required when SMS notifications are enabled")
	}
	if err := s.settings.PutNotificationSettings(ctx, userID, settings); err != nil {
		return nil, fmt.Errorf("failed to update notification settings: %w", err)
	}
	s.logger.Info("Notification settings updated", zap.String("user_id", userID))
	settings.UserID = userID
	return settings, nil
}
