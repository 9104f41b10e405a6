package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Router 使用标准库 http.ServeMux（避免引入第三方路由依赖）
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

// HandleHandler 支持 http.Handler 接口
func (r *Router) HandleHandler(pattern string, h http.Handler) {
	r.mux.Handle(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterContactRoutes 注册联系人互动/应联系名单路由
// due-today 用精确 pattern 注册，优先于 /api/v1/contacts/ 子树匹配
func (r *Router) RegisterContactRoutes(interactions *InteractionHandler, due *DueContactsHandler) {
	r.Handle("/api/v1/contacts/due-today", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		due.GetDueContacts(w, req)
	})

	r.Handle("/api/v1/contacts/due-today/export", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		due.ExportDueContacts(w, req)
	})

	// :id/interactions 与 :id/initialize-next-contact 由 handler 内部解析
	r.HandleHandler("/api/v1/contacts/", interactions)
}

// RegisterReminderRoutes 注册目标进度路由
func (r *Router) RegisterReminderRoutes(goal *GoalHandler) {
	r.Handle("/api/v1/reminders/goal-progress", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		goal.GetGoalProgress(w, req)
	})

	r.Handle("/api/v1/reminders/daily-goal", func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodGet:
			goal.GetDailyGoal(w, req)
		case http.MethodPut, http.MethodPatch:
			goal.UpdateDailyGoal(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
}

// RegisterSettingsRoutes 注册跟进间隔设置路由
func (r *Router) RegisterSettingsRoutes(settings *SettingsHandler) {
	r.Handle("/api/v1/users/followup-settings", func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodGet:
			settings.GetFollowupSettings(w, req)
		case http.MethodPut:
			settings.UpdateFollowupSettings(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	r.Handle("/api/v1/users/followup-settings/reset", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		settings.ResetFollowupSettings(w, req)
	})
}

// RegisterNotificationRoutes 注册提醒通知路由
func (r *Router) RegisterNotificationRoutes(n *NotificationHandler) {
	r.Handle("/api/v1/notifications/settings", func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodGet:
			n.GetNotificationSettings(w, req)
		case http.MethodPost, http.MethodPut:
			n.UpdateNotificationSettings(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	post := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, req *http.Request) {
			if req.Method != http.MethodPost {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			h(w, req)
		}
	}
	r.Handle("/api/v1/notifications/send", post(n.SendNotification))
	r.Handle("/api/v1/notifications/trigger-morning", post(n.TriggerMorning))
	r.Handle("/api/v1/notifications/trigger-afternoon", post(n.TriggerAfternoon))
	r.Handle("/api/v1/notifications/test-sms", post(n.SendTestSMS))
	r.Handle("/api/v1/notifications/test-email", post(n.SendTestEmail))
}
