package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"touchbase-data/internal/domain"
	"touchbase-data/internal/repository"
	"touchbase-data/internal/service"
)

// InteractionHandler 联系人互动接口
// 路由：/api/v1/contacts/:id/interactions、/api/v1/contacts/:id/initialize-next-contact
type InteractionHandler struct {
	interactions  *service.InteractionService
	defaultUserID string
	logger        *zap.Logger
}

// NewInteractionHandler 创建互动接口 Handler
func NewInteractionHandler(interactions *service.InteractionService, defaultUserID string, logger *zap.Logger) *InteractionHandler {
	return &InteractionHandler{
		interactions:  interactions,
		defaultUserID: defaultUserID,
		logger:        logger,
	}
}

// ServeHTTP 处理 HTTP 请求
func (h *InteractionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/contacts/")

	switch {
	case strings.HasSuffix(path, "/interactions"):
		contactID := strings.TrimSuffix(path, "/interactions")
		if contactID == "" || strings.Contains(contactID, "/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch r.Method {
		case http.MethodPost:
			h.RecordInteraction(w, r, contactID)
		case http.MethodGet:
			h.ListInteractions(w, r, contactID)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	case strings.HasSuffix(path, "/initialize-next-contact"):
		contactID := strings.TrimSuffix(path, "/initialize-next-contact")
		if contactID == "" || strings.Contains(contactID, "/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.InitializeNextContact(w, r, contactID)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// recordInteractionBody POST body
type recordInteractionBody struct {
	Type  string `json:"type"`
	Notes string `json:"notes"`
}

// RecordInteraction 记录一次互动并返回更新后的联系人
// POST /api/v1/contacts/:id/interactions
func (h *InteractionHandler) RecordInteraction(w http.ResponseWriter, r *http.Request, contactID string) {
	userID := userIDFromReq(r, h.defaultUserID)

	var body recordInteractionBody
	if err := readBodyJSON(r, 64*1024, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	contact, err := h.interactions.RecordInteraction(r.Context(), service.RecordInteractionRequest{
		UserID:    userID,
		ContactID: contactID,
		Type:      domain.InteractionType(body.Type),
		Notes:     body.Notes,
	})
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			writeJSON(w, http.StatusNotFound, Fail(err.Error()))
			return
		}
		if isValidationMessage(err) {
			writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
			return
		}
		h.logger.Error("RecordInteraction failed",
			zap.String("user_id", userID),
			zap.String("contact_id", contactID),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, Fail("failed to record interaction"))
		return
	}

	writeJSON(w, http.StatusOK, Ok(contact))
}

// ListInteractions 查询联系人互动历史
// GET /api/v1/contacts/:id/interactions
func (h *InteractionHandler) ListInteractions(w http.ResponseWriter, r *http.Request, contactID string) {
	userID := userIDFromReq(r, h.defaultUserID)

	interactions, err := h.interactions.ListInteractions(r.Context(), userID, contactID)
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			writeJSON(w, http.StatusNotFound, Fail(err.Error()))
			return
		}
		h.logger.Error("ListInteractions failed",
			zap.String("user_id", userID),
			zap.String("contact_id", contactID),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, Fail("failed to list interactions"))
		return
	}
	if interactions == nil {
		interactions = []*domain.Interaction{}
	}

	writeJSON(w, http.StatusOK, Ok(interactions))
}

// InitializeNextContact 为导入的联系人按分类生成下次联系时间
// POST /api/v1/contacts/:id/initialize-next-contact
func (h *InteractionHandler) InitializeNextContact(w http.ResponseWriter, r *http.Request, contactID string) {
	userID := userIDFromReq(r, h.defaultUserID)

	contact, err := h.interactions.InitializeNextContact(r.Context(), userID, contactID)
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			writeJSON(w, http.StatusNotFound, Fail(err.Error()))
			return
		}
		h.logger.Error("InitializeNextContact failed",
			zap.String("user_id", userID),
			zap.String("contact_id", contactID),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, Fail("failed to initialize next contact date"))
		return
	}

	writeJSON(w, http.StatusOK, Ok(contact))
}

// isValidationMessage 区分写入前校验错误与存储错误
// 校验错误原样返回给前端展示
func isValidationMessage(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "is required") ||
		strings.Contains(msg, "invalid interaction type") ||
		strings.Contains(msg, "must be at most") ||
		strings.Contains(msg, "must be between") ||
		strings.Contains(msg, "must be non-negative")
}
