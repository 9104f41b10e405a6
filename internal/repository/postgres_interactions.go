package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"touchbase-data/internal/domain"
)

// PostgresInteractionsRepository 互动记录Repository实现（interactions 表）
type PostgresInteractionsRepository struct {
	db *sql.DB
}

// NewPostgresInteractionsRepository 创建互动记录Repository
func NewPostgresInteractionsRepository(db *sql.DB) *PostgresInteractionsRepository {
	return &PostgresInteractionsRepository{db: db}
}

// 确保实现了接口
var _ InteractionsRepository = (*PostgresInteractionsRepository)(nil)

// CreateInteraction 写入一条互动记录
func (r *PostgresInteractionsRepository) CreateInteraction(ctx context.Context, userID string, in *domain.Interaction) (string, error) {
	if userID == "" || in == nil || in.ContactID == "" {
		return "", fmt.Errorf("user_id and contact_id are required")
	}

	interactionID := in.InteractionID
	if interactionID == "" {
		interactionID = uuid.NewString()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO interactions (interaction_id, contact_id, user_id, interaction_type, notes, created_at)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)`,
		interactionID, in.ContactID, userID, string(in.Type), in.Notes, in.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create interaction: %w", err)
	}
	return interactionID, nil
}

// ListByContact 查询联系人的互动历史（按时间倒序）
func (r *PostgresInteractionsRepository) ListByContact(ctx context.Context, userID, contactID string) ([]*domain.Interaction, error) {
	if userID == "" || contactID == "" {
		return nil, fmt.Errorf("user_id and contact_id are required")
	}

	query := `
		SELECT
			interaction_id::text,
			contact_id::text,
			user_id::text,
			interaction_type,
			COALESCE(notes, ''),
			created_at
		FROM interactions
		WHERE user_id = $1 AND contact_id = $2
		ORDER BY created_at DESC, interaction_id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, contactID)
	if err != nil {
		return nil, fmt.Errorf("failed to list interactions: %w", err)
	}
	defer rows.Close()

	var interactions []*domain.Interaction
	for rows.Next() {
		var (
			in    domain.Interaction
			iType string
		)
		if err := rows.Scan(&in.InteractionID, &in.ContactID, &in.UserID, &iType, &in.Notes, &in.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan interaction: %w", err)
		}
		in.Type = domain.InteractionType(iType)
		interactions = append(interactions, &in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate interactions: %w", err)
	}
	return interactions, nil
}

// CountOutreach 统计 [from, to) 区间内的外联互动数（NOTE 不计入）
func (r *PostgresInteractionsRepository) CountOutreach(ctx context.Context, userID string, from, to time.Time) (int, error) {
	if userID == "" {
		return 0, fmt.Errorf("user_id is required")
	}

	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*)
		 FROM interactions
		 WHERE user_id = $1
		   AND interaction_type <> $2
		   AND created_at >= $3 AND created_at < $4`,
		userID, string(domain.InteractionNote), from, to,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count outreach interactions: %w", err)
	}
	return count, nil
}

// LogOutreach 互动写入 + 联系人调度字段更新，单事务提交
// 读取方看到的要么是两者都更新，要么都未更新
func (r *PostgresInteractionsRepository) LogOutreach(ctx context.Context, userID string, in *domain.Interaction, lastContacted, nextContactDate time.Time) (string, error) {
	if userID == "" || in == nil || in.ContactID == "" {
		return "", fmt.Errorf("user_id and contact_id are required")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	interactionID := in.InteractionID
	if interactionID == "" {
		interactionID = uuid.NewString()
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO interactions (interaction_id, contact_id, user_id, interaction_type, notes, created_at)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)`,
		interactionID, in.ContactID, userID, string(in.Type), in.Notes, in.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create interaction: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE contacts
		 SET last_contacted = $3, next_contact_date = $4, updated_at = NOW()
		 WHERE user_id = $1 AND contact_id = $2`,
		userID, in.ContactID, lastContacted, nextContactDate,
	)
	if err != nil {
		return "", fmt.Errorf("failed to update contact schedule: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return "", ErrContactNotFound
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit interaction: %w", err)
	}
	return interactionID, nil
}
