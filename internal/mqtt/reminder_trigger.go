package mqtt

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"touchbase-data/internal/service"
)

// ReminderTriggerBroker 外部调度器经 MQTT 触发提醒投递
// 核心不维护定时器：cron 侧在早/晚时间点发一条触发消息即可
//
// 消息格式：
// {
//   "kind": "morning" | "afternoon",
//   "userId": "uuid"   // 可选，缺省走默认用户
// }
type ReminderTriggerBroker struct {
	notifications *service.NotificationService
	defaultUserID string
	logger        *zap.Logger
}

// NewReminderTriggerBroker 创建提醒触发 Broker
func NewReminderTriggerBroker(
	notifications *service.NotificationService,
	defaultUserID string,
	logger *zap.Logger,
) *ReminderTriggerBroker {
	return &ReminderTriggerBroker{
		notifications: notifications,
		defaultUserID: defaultUserID,
		logger:        logger,
	}
}

// triggerMessage MQTT 触发消息
type triggerMessage struct {
	Kind   string `json:"kind"`
	UserID string `json:"userId"`
}

// HandleMessage 处理 MQTT 触发消息
func (b *ReminderTriggerBroker) HandleMessage(topic string, payload []byte) error {
	var msg triggerMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return fmt.Errorf("failed to unmarshal trigger message: %w", err)
	}

	userID := msg.UserID
	if userID == "" {
		userID = b.defaultUserID
	}

	result, err := b.notifications.Dispatch(context.Background(), userID, service.NotificationKind(msg.Kind))
	if err != nil {
		return fmt.Errorf("failed to dispatch reminder: %w", err)
	}

	if result.Success {
		b.logger.Info("MQTT reminder trigger handled",
			zap.String("topic", topic),
			zap.String("user_id", userID),
			zap.String("kind", msg.Kind),
		)
	} else {
		b.logger.Warn("MQTT reminder trigger delivery failed",
			zap.String("topic", topic),
			zap.String("user_id", userID),
			zap.String("kind", msg.Kind),
			zap.String("message", result.Message),
		)
	}
	return nil
}
