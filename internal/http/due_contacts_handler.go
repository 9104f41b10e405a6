package httpapi

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"touchbase-data/internal/domain"
	"touchbase-data/internal/service"
)

// DueContactsHandler 当日应联系名单接口
type DueContactsHandler struct {
	due           *service.DueService
	clock         service.Clock
	defaultUserID string
	logger        *zap.Logger
}

// NewDueContactsHandler 创建应联系名单 Handler
func NewDueContactsHandler(due *service.DueService, clock service.Clock, defaultUserID string, logger *zap.Logger) *DueContactsHandler {
	return &DueContactsHandler{
		due:           due,
		clock:         clock,
		defaultUserID: defaultUserID,
		logger:        logger,
	}
}

// dueContactsResult GET 响应
type dueContactsResult struct {
	Contacts []*domain.Contact `json:"contacts"`
	Total    int               `json:"total"`
}

// GetDueContacts 查询当日应联系的联系人（按分类优先级排序）
// GET /api/v1/contacts/due-today?asOf=RFC3339
func (h *DueContactsHandler) GetDueContacts(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromReq(r, h.defaultUserID)
	asOf := parseAsOf(r.URL.Query().Get("asOf"), h.clock.Now())

	contacts, err := h.due.DueToday(r.Context(), userID, asOf)
	if err != nil {
		h.logger.Error("GetDueContacts failed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, Fail("failed to list due contacts"))
		return
	}
	if contacts == nil {
		contacts = []*domain.Contact{}
	}

	writeJSON(w, http.StatusOK, Ok(dueContactsResult{Contacts: contacts, Total: len(contacts)}))
}

// ExportDueContacts 导出当日应联系名单（xlsx）
// GET /api/v1/contacts/due-today/export?asOf=RFC3339
func (h *DueContactsHandler) ExportDueContacts(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromReq(r, h.defaultUserID)
	asOf := parseAsOf(r.URL.Query().Get("asOf"), h.clock.Now())

	contacts, err := h.due.DueToday(r.Context(), userID, asOf)
	if err != nil {
		h.logger.Error("ExportDueContacts failed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, Fail("failed to list due contacts"))
		return
	}

	data, err := GenerateDueContactsExport(contacts)
	if err != nil {
		h.logger.Error("ExportDueContacts excel generation failed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, Fail("failed to generate export"))
		return
	}

	filename := fmt.Sprintf("due-contacts-%s.xlsx", asOf.Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
