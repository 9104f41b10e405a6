package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"touchbase-data/internal/domain"
	"touchbase-data/internal/service"
)

// SettingsHandler 跟进间隔设置接口
type SettingsHandler struct {
	settings      *service.SettingsService
	defaultUserID string
	logger        *zap.Logger
}

// NewSettingsHandler 创建设置 Handler
func NewSettingsHandler(settings *service.SettingsService, defaultUserID string, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		settings:      settings,
		defaultUserID: defaultUserID,
		logger:        logger,
	}
}

// GetFollowupSettings 获取跟进间隔设置（首次访问返回默认值）
// GET /api/v1/users/followup-settings
func (h *SettingsHandler) GetFollowupSettings(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromReq(r, h.defaultUserID)

	settings, err := h.settings.FollowupSettings(r.Context(), userID)
	if err != nil {
		h.logger.Error("GetFollowupSettings failed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, Fail("failed to get followup settings"))
		return
	}

	writeJSON(w, http.StatusOK, Ok(settings))
}

// UpdateFollowupSettings 整条替换跟进间隔设置
// PUT /api/v1/users/followup-settings
// 校验不过整条拒绝，不写任何字段；错误信息原样返回给前端展示
func (h *SettingsHandler) UpdateFollowupSettings(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromReq(r, h.defaultUserID)

	var body domain.FollowupSettings
	if err := readBodyJSON(r, 16*1024, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	settings, err := h.settings.UpdateFollowupSettings(r.Context(), userID, &body)
	if err != nil {
		if strings.Contains(err.Error(), "must be between") {
			writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
			return
		}
		h.logger.Error("UpdateFollowupSettings failed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, Fail("failed to update followup settings"))
		return
	}

	writeJSON(w, http.StatusOK, Ok(settings))
}

// ResetFollowupSettings 恢复默认跟进间隔
// POST /api/v1/users/followup-settings/reset
func (h *SettingsHandler) ResetFollowupSettings(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromReq(r, h.defaultUserID)

	settings, err := h.settings.ResetFollowupSettings(r.Context(), userID)
	if err != nil {
		h.logger.Error("ResetFollowupSettings failed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, Fail("failed to reset followup settings"))
		return
	}

	writeJSON(w, http.StatusOK, Ok(settings))
}
