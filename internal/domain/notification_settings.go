package domain

// NotificationSettings 提醒通知设置（对应 notification_settings 表，每个用户一条）
// 早/晚触发时间只供外部调度器读取，核心不维护定时器
type NotificationSettings struct {
	UserID               string `db:"user_id" json:"-"`
	NotificationsEnabled bool   `db:"notifications_enabled" json:"notificationsEnabled"`
	SMSEnabled           bool   `db:"sms_enabled" json:"smsEnabled"`
	EmailEnabled         bool   `db:"email_enabled" json:"emailEnabled"`
	PhoneNumber          string `db:"phone_number" json:"phoneNumber,omitempty"` // VARCHAR(25), nullable
	Email                string `db:"email" json:"email,omitempty"`              // VARCHAR(255), nullable
	MorningTime          string `db:"morning_time" json:"morningTime"`           // "HH:MM"
	AfternoonTime        string `db:"afternoon_time" json:"afternoonTime"`       // "HH:MM"
}

// DefaultNotificationSettings 默认通知设置（首次访问时生成）
func DefaultNotificationSettings(userID string) *NotificationSettings {
	return &NotificationSettings{
		UserID:               userID,
		NotificationsEnabled: true,
		SMSEnabled:           true,
		EmailEnabled:         true,
		MorningTime:          "09:00",
		AfternoonTime:        "15:00",
	}
}
