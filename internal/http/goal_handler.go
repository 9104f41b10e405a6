package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"touchbase-data/internal/domain"
	"touchbase-data/internal/service"
)

// GoalHandler 目标进度接口
type GoalHandler struct {
	goals         *service.GoalService
	clock         service.Clock
	defaultUserID string
	logger        *zap.Logger
}

// NewGoalHandler 创建目标进度 Handler
func NewGoalHandler(goals *service.GoalService, clock service.Clock, defaultUserID string, logger *zap.Logger) *GoalHandler {
	return &GoalHandler{
		goals:         goals,
		clock:         clock,
		defaultUserID: defaultUserID,
		logger:        logger,
	}
}

// GetGoalProgress 查询当日目标进度
// GET /api/v1/reminders/goal-progress?asOf=RFC3339
// 看板接口：存储故障时降级为全零快照（HTTP 200），不阻塞页面其他部分
func (h *GoalHandler) GetGoalProgress(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromReq(r, h.defaultUserID)
	asOf := parseAsOf(r.URL.Query().Get("asOf"), h.clock.Now())

	progress, err := h.goals.Progress(r.Context(), userID, asOf)
	if err != nil {
		h.logger.Error("GetGoalProgress failed, returning zero snapshot",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		writeJSON(w, http.StatusOK, Ok(&domain.GoalProgress{}))
		return
	}

	writeJSON(w, http.StatusOK, Ok(progress))
}

// dailyGoalResult 每日目标响应/请求体
type dailyGoalResult struct {
	DailyGoal int `json:"dailyGoal"`
}

// GetDailyGoal 查询用户设置的每日目标（原始值，不做 max 调整）
// GET /api/v1/reminders/daily-goal
func (h *GoalHandler) GetDailyGoal(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromReq(r, h.defaultUserID)

	goal, err := h.goals.DailyGoal(r.Context(), userID)
	if err != nil {
		h.logger.Error("GetDailyGoal failed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, Fail("failed to get daily goal"))
		return
	}

	writeJSON(w, http.StatusOK, Ok(dailyGoalResult{DailyGoal: goal}))
}

// UpdateDailyGoal 设置每日目标
// PUT/PATCH /api/v1/reminders/daily-goal {dailyGoal}
func (h *GoalHandler) UpdateDailyGoal(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromReq(r, h.defaultUserID)

	var body dailyGoalResult
	if err := readBodyJSON(r, 4*1024, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	if body.DailyGoal < 0 {
		writeJSON(w, http.StatusBadRequest, Fail("daily goal must be non-negative"))
		return
	}

	if err := h.goals.UpdateDailyGoal(r.Context(), userID, body.DailyGoal, h.clock.Now()); err != nil {
		h.logger.Error("UpdateDailyGoal failed",
			zap.String("user_id", userID),
			zap.Int("daily_goal", body.DailyGoal),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, Fail("failed to update daily goal"))
		return
	}

	writeJSON(w, http.StatusOK, Ok(dailyGoalResult{DailyGoal: body.DailyGoal}))
}
