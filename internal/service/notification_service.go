package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"touchbase-data/internal/domain"
	"touchbase-data/internal/repository"
)

// NotificationKind 提醒类型
type NotificationKind string

const (
	NotificationMorning   NotificationKind = "morning"
	NotificationAfternoon NotificationKind = "afternoon"
)

// IsValid 判断是否为已知提醒类型
func (k NotificationKind) IsValid() bool {
	return k == NotificationMorning || k == NotificationAfternoon
}

// BuildMessage 生成提醒文案
// 纯格式化函数：同一进度快照多次调用输出一致（手动触发/定时触发共用）
func BuildMessage(kind NotificationKind, progress *domain.GoalProgress) string {
	if kind == NotificationAfternoon {
		return fmt.Sprintf("You have %d people left to reach out to today.", progress.DueToday)
	}
	return fmt.Sprintf("You need to reach out to %d people today.", progress.DueToday)
}

// EventPublisher 通知事件发布（Redis Streams，可为 nil）
type EventPublisher interface {
	PublishJSON(ctx context.Context, data any) (string, error)
}

// DispatchResult 投递结果
// 投递失败以 success=false 返回，不作为调度错误抛出
type DispatchResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NotificationEvent 发布到事件流的通知记录
type NotificationEvent struct {
	UserID   string              `json:"userId"`
	Kind     NotificationKind    `json:"kind"`
	Message  string              `json:"message"`
	Progress domain.GoalProgress `json:"progress"`
}

// NotificationService 提醒触发服务
// 只负责取进度、生成文案、交给外部投递协作方；不维护定时器，
// 早/晚触发由外部调度器（HTTP 或 MQTT）调用
type NotificationService struct {
	goals    *GoalService
	settings repository.SettingsRepository
	notifier Notifier
	events   EventPublisher // 可为 nil
	clock    Clock
	logger   *zap.Logger
}

// NewNotificationService 创建提醒触发服务
func NewNotificationService(
	goals *GoalService,
	settings repository.SettingsRepository,
	notifier Notifier,
	events EventPublisher,
	clock Clock,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		goals:    goals,
		settings: settings,
		notifier: notifier,
		events:   events,
		clock:    clock,
		logger:   logger,
	}
}

// Dispatch 触发一次提醒投递
// 进度计算失败是调度错误，返回 error；投递失败只反映在结果里
func (s *NotificationService) Dispatch(ctx context.Context, userID string, kind NotificationKind) (*DispatchResult, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("invalid notification kind: %s", kind)
	}

	settings, err := s.settings.GetNotificationSettings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get notification settings: %w", err)
	}
	if !settings.NotificationsEnabled {
		return &DispatchResult{Success: true, Message: "Notifications are disabled"}, nil
	}

	progress, err := s.goals.Progress(ctx, userID, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to compute goal progress: %w", err)
	}

	message := BuildMessage(kind, progress)
	err = s.notifier.SendReminder(ctx, DeliveryRequest{
		UserID:       userID,
		Kind:         string(kind),
		Message:      message,
		PhoneNumber:  settings.PhoneNumber,
		Email:        settings.Email,
		SMSEnabled:   settings.SMSEnabled,
		EmailEnabled: settings.EmailEnabled,
	})
	if err != nil {
		s.logger.Warn("Reminder delivery failed",
			zap.String("user_id", userID),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		return &DispatchResult{
			Success: false,
			Message: fmt.Sprintf("Failed to send %s notification", kind),
		}, nil
	}

	s.publishEvent(ctx, NotificationEvent{
		UserID:   userID,
		Kind:     kind,
		Message:  message,
		Progress: *progress,
	})

	s.logger.Info("Reminder dispatched",
		zap.String("user_id", userID),
		zap.String("kind", string(kind)),
		zap.Int("due_today", progress.DueToday),
	)
	return &DispatchResult{Success: true, Message: message}, nil
}

// SendTestSMS 通过投递协作方发送测试短信
func (s *NotificationService) SendTestSMS(ctx context.Context, userID, phoneNumber, message string) *DispatchResult {
	if phoneNumber == "" {
		return &DispatchResult{Success: false, Message: "phoneNumber is required"}
	}
	if err := s.notifier.SendTestSMS(ctx, phoneNumber, message); err != nil {
		s.logger.Warn("Test SMS delivery failed", zap.String("user_id", userID), zap.Error(err))
		return &DispatchResult{Success: false, Message: "Failed to send test SMS"}
	}
	return &DispatchResult{Success: true, Message: "Test SMS sent successfully"}
}

// SendTestEmail 通过投递协作方发送测试邮件
func (s *NotificationService) SendTestEmail(ctx context.Context, userID, subject, message string) *DispatchResult {
	if err := s.notifier.SendTestEmail(ctx, subject, message); err != nil {
		s.logger.Warn("Test email delivery failed", zap.String("user_id", userID), zap.Error(err))
		return &DispatchResult{Success: false, Message: "Failed to send test email"}
	}
	return &DispatchResult{Success: true, Message: "Test email sent successfully"}
}

// publishEvent 发布通知事件（尽力而为，失败只记日志）
func (s *NotificationService) publishEvent(ctx context.Context, event NotificationEvent) {
	if s.events == nil {
		return
	}
	if _, err := s.events.PublishJSON(ctx, event); err != nil {
		s.logger.Warn("Failed to publish notification event",
			zap.String("user_id", event.UserID),
			zap.String("kind", string(event.Kind)),
			zap.Error(err),
		)
	}
}
