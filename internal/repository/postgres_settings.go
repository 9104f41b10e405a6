package repository

import (
	"context"
	"database/sql"
	"fmt"

	"touchbase-data/internal/domain"
)

// PostgresSettingsRepository 用户设置Repository实现
// followup_settings / notification_settings / user_goals 三张每用户单行表
type PostgresSettingsRepository struct {
	db *sql.DB
}

// NewPostgresSettingsRepository 创建用户设置Repository
func NewPostgresSettingsRepository(db *sql.DB) *PostgresSettingsRepository {
	return &PostgresSettingsRepository{db: db}
}

// 确保实现了接口
var _ SettingsRepository = (*PostgresSettingsRepository)(nil)

// GetFollowupSettings 获取跟进间隔设置（不存在时返回默认值）
func (r *PostgresSettingsRepository) GetFollowupSettings(ctx context.Context, userID string) (*domain.FollowupSettings, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}

	query := `
		SELECT
			user_id::text,
			followup_hotlist,
			followup_a_list,
			followup_b_list,
			followup_c_list,
			followup_standard
		FROM followup_settings
		WHERE user_id = $1
	`

	var s domain.FollowupSettings
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&s.UserID,
		&s.FollowupHotlist,
		&s.FollowupAList,
		&s.FollowupBList,
		&s.FollowupCList,
		&s.FollowupStandard,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.DefaultFollowupSettings(userID), nil
		}
		return nil, fmt.Errorf("failed to get followup settings: %w", err)
	}
	return &s, nil
}

// PutFollowupSettings 整条替换跟进间隔设置
func (r *PostgresSettingsRepository) PutFollowupSettings(ctx context.Context, userID string, s *domain.FollowupSettings) error {
	if userID == "" || s == nil {
		return fmt.Errorf("user_id and settings are required")
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO followup_settings (user_id, followup_hotlist, followup_a_list, followup_b_list, followup_c_list, followup_standard, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, NOW())
		 ON CONFLICT (user_id)
		 DO UPDATE SET followup_hotlist = EXCLUDED.followup_hotlist,
		               followup_a_list = EXCLUDED.followup_a_list,
		               followup_b_list = EXCLUDED.followup_b_list,
		               followup_c_list = EXCLUDED.followup_c_list,
		               followup_standard = EXCLUDED.followup_standard,
		               updated_at = NOW()`,
		userID, s.FollowupHotlist, s.FollowupAList, s.FollowupBList, s.FollowupCList, s.FollowupStandard,
	)
	if err != nil {
		return fmt.Errorf("failed to put followup settings: %w", err)
	}
	return nil
}

// GetDailyGoal 获取用户设置的每日目标（未设置时为 0）
func (r *PostgresSettingsRepository) GetDailyGoal(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, fmt.Errorf("user_id is required")
	}

	var goal int
	err := r.db.QueryRowContext(ctx,
		`SELECT daily_goal FROM user_goals WHERE user_id = $1`,
		userID,
	).Scan(&goal)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get daily goal: %w", err)
	}
	return goal, nil
}

// PutDailyGoal 设置每日目标
func (r *PostgresSettingsRepository) PutDailyGoal(ctx context.Context, userID string, goal int) error {
	if userID == "" {
		return fmt.Errorf("user_id is required")
	}
	if goal < 0 {
		return fmt.Errorf("daily goal must be non-negative")
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_goals (user_id, daily_goal, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (user_id)
		 DO UPDATE SET daily_goal = EXCLUDED.daily_goal, updated_at = NOW()`,
		userID, goal,
	)
	if err != nil {
		return fmt.Errorf("failed to put daily goal: %w", err)
	}
	return nil
}

// GetNotificationSettings 获取通知设置（不存在时返回默认值）
func (r *PostgresSettingsRepository) GetNotificationSettings(ctx context.Context, userID string) (*domain.NotificationSettings, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}

	query := `
		SELECT
			user_id::text,
			notifications_enabled,
			sms_enabled,
			email_enabled,
			COALESCE(phone_number, ''),
			COALESCE(email, ''),
			morning_time,
			afternoon_time
		FROM notification_settings
		WHERE user_id = $1
	`

	var s domain.NotificationSettings
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&s.UserID,
		&s.NotificationsEnabled,
		&s.SMSEnabled,
		&s.EmailEnabled,
		&s.PhoneNumber,
		&s.Email,
		&s.MorningTime,
		&s.AfternoonTime,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.DefaultNotificationSettings(userID), nil
		}
		return nil, fmt.Errorf("failed to get notification settings: %w", err)
	}
	return &s, nil
}

// PutNotificationSettings 整条替换通知设置
func (r *PostgresSettingsRepository) PutNotificationSettings(ctx context.Context, userID string, s *domain.NotificationSettings) error {
	if userID == "" || s == nil {
		return fmt.Errorf("user_id and settings are required")
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notification_settings (user_id, notifications_enabled, sms_enabled, email_enabled, phone_number, email, morning_time, afternoon_time, updated_at)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8, NOW())
		 ON CONFLICT (user_id)
		 DO UPDATE SET notifications_enabled = EXCLUDED.notifications_enabled,
		               sms_enabled = EXCLUDED.sms_enabled,
		               email_enabled = EXCLUDED.email_enabled,
		               phone_number = EXCLUDED.phone_number,
		               email = EXCLUDED.email,
		               morning_time = EXCLUDED.morning_time,
		               afternoon_time = EXCLUDED.afternoon_time,
		               updated_at = NOW()`,
		userID, s.NotificationsEnabled, s.SMSEnabled, s.EmailEnabled, s.PhoneNumber, s.Email, s.MorningTime, s.AfternoonTime,
	)
	if err != nil {
		return fmt.Errorf("failed to put notification settings: %w", err)
	}
	return nil
}
