package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"touchbase-data/internal/domain"
	"touchbase-data/internal/service"
)

// NotificationHandler 提醒通知接口
// 投递失败不报 5xx：以 {success:false} 返回，调度状态不受影响
type NotificationHandler struct {
	notifications *service.NotificationService
	settings      *service.SettingsService
	defaultUserID string
	logger        *zap.Logger
}

// NewNotificationHandler 创建通知 Handler
func NewNotificationHandler(
	notifications *service.NotificationService,
	settings *service.SettingsService,
	defaultUserID string,
	logger *zap.Logger,
) *NotificationHandler {
	return &NotificationHandler{
		notifications: notifications,
		settings:      settings,
		defaultUserID: defaultUserID,
		logger:        logger,
	}
}

// sendNotificationBody POST /send body
type sendNotificationBody struct {
	Kind string `json:"kind"`
	// NotificationType 兼容旧前端字段名
	NotificationType string `json:"notificationType"`
}

// SendNotification 触发一次提醒投递
// POST /api/v1/notifications/send {kind: morning|afternoon}
func (h *NotificationHandler) SendNotification(w http.ResponseWriter, r *http.Request) {
	var body sendNotificationBody
	if err := readBodyJSON(r, 4*1024, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	kind := body.Kind
	if kind == "" {
		kind = body.NotificationType
	}
	h.dispatch(w, r, service.NotificationKind(kind))
}

// TriggerMorning 外部调度器的早间触发入口
// POST /api/v1/notifications/trigger-morning
func (h *NotificationHandler) TriggerMorning(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, service.NotificationMorning)
}

// TriggerAfternoon 外部调度器的午后触发入口
// POST /api/v1/notifications/trigger-afternoon
func (h *NotificationHandler) TriggerAfternoon(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, service.NotificationAfternoon)
}

func (h *NotificationHandler) dispatch(w http.ResponseWriter, r *http.Request, kind service.NotificationKind) {
	userID := userIDFromReq(r, h.defaultUserID)

	result, err := h.notifications.Dispatch(r.Context(), userID, kind)
	if err != nil {
		if strings.Contains(err.Error(), "invalid notification kind") {
			writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
			return
		}
		h.logger.Error("Notification dispatch failed",
			zap.String("user_id", userID),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, Fail("failed to dispatch notification"))
		return
	}

	writeJSON(w, http.StatusOK, Ok(result))
}

// testSMSBody POST /test-sms body
type testSMSBody struct {
	PhoneNumber string `json:"phoneNumber"`
	Message     string `json:"message"`
}

// SendTestSMS 发送测试短信
// POST /api/v1/notifications/test-sms
func (h *NotificationHandler) SendTestSMS(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromReq(r, h.defaultUserID)

	var body testSMSBody
	if err := readBodyJSON(r, 4*1024, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	result := h.notifications.SendTestSMS(r.Context(), userID, body.PhoneNumber, body.Message)
	writeJSON(w, http.StatusOK, Ok(result))
}

// testEmailBody POST /test-email body
type testEmailBody struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// SendTestEmail 发送测试邮件
// POST /api/v1/notifications/test-email
func (h *NotificationHandler) SendTestEmail(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromReq(r, h.defaultUserID)

	var body testEmailBody
	if err := readBodyJSON(r, 8*1024, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	result := h.notifications.SendTestEmail(r.Context(), userID, body.Subject, body.Message)
	writeJSON(w, http.StatusOK, Ok(result))
}

// GetNotificationSettings 获取通知设置
// GET /api/v1/notifications/settings
func (h *NotificationHandler) GetNotificationSettings(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromReq(r, h.defaultUserID)

	settings, err := h.settings.NotificationSettings(r.Context(), userID)
	if err != nil {
		h.logger.Error("GetNotificationSettings failed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, Fail("failed to get notification settings"))
		return
	}

	writeJSON(w, http.StatusOK, Ok(settings))
}

// UpdateNotificationSettings 整条替换通知设置
// POST /api/v1/notifications/settings
func (h *NotificationHandler) UpdateNotificationSettings(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromReq(r, h.defaultUserID)

	var body domain.NotificationSettings
	if err := readBodyJSON(r, 16*1024, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	settings, err := h.settings.UpdateNotificationSettings(r.Context(), userID, &body)
	if err != nil {
		if strings.Contains(err.Error(), "is required") {
			writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
			return
		}
		h.logger.Error("UpdateNotificationSettings failed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, Fail("failed to update notification settings"))
		return
	}

	writeJSON(w, http.StatusOK, Ok(settings))
}
