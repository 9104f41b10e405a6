package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"touchbase-data/internal/domain"
)

// PostgresContactsRepository 联系人Repository实现（contacts 表）
type PostgresContactsRepository struct {
	db *sql.DB
}

// NewPostgresContactsRepository 创建联系人Repository
func NewPostgresContactsRepository(db *sql.DB) *PostgresContactsRepository {
	return &PostgresContactsRepository{db: db}
}

// 确保实现了接口
var _ ContactsRepository = (*PostgresContactsRepository)(nil)

const contactColumns = `
	contact_id::text,
	user_id::text,
	full_name,
	COALESCE(email, ''),
	COALESCE(phone, ''),
	COALESCE(company, ''),
	category,
	last_contacted,
	next_contact_date,
	created_at,
	updated_at
`

// GetContact 根据 contact_id 获取联系人
func (r *PostgresContactsRepository) GetContact(ctx context.Context, userID, contactID string) (*domain.Contact, error) {
	if userID == "" || contactID == "" {
		return nil, ErrContactNotFound
	}

	query := `
		SELECT ` + contactColumns + `
		FROM contacts
		WHERE user_id = $1 AND contact_id = $2
	`

	c, err := scanContact(r.db.QueryRowContext(ctx, query, userID, contactID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	return c, nil
}

// ListContacts 查询联系人列表
func (r *PostgresContactsRepository) ListContacts(ctx context.Context, userID string, filter ContactsFilter) ([]*domain.Contact, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}

	// 构建WHERE条件
	where := []string{"user_id = $1"}
	args := []any{userID}

	if filter.Category != "" {
		args = append(args, string(filter.Category))
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.DueBefore != nil {
		args = append(args, *filter.DueBefore)
		cond := fmt.Sprintf("next_contact_date < $%d", len(args))
		if filter.IncludeNeverContacted {
			cond = fmt.Sprintf("(last_contacted IS NULL OR %s)", cond)
		}
		where = append(where, cond)
	}
	if filter.LastContactedFrom != nil {
		args = append(args, *filter.LastContactedFrom)
		where = append(where, fmt.Sprintf("last_contacted >= $%d", len(args)))
	}
	if filter.LastContactedTo != nil {
		args = append(args, *filter.LastContactedTo)
		where = append(where, fmt.Sprintf("last_contacted < $%d", len(args)))
	}

	query := `
		SELECT ` + contactColumns + `
		FROM contacts
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY full_name, contact_id
	`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []*domain.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contacts: %w", err)
	}
	return contacts, nil
}

// UpdateSchedule 更新联系人调度字段
func (r *PostgresContactsRepository) UpdateSchedule(ctx context.Context, userID, contactID string, lastContacted, nextContactDate *time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE contacts
		 SET last_contacted = $3, next_contact_date = $4, updated_at = NOW()
		 WHERE user_id = $1 AND contact_id = $2`,
		userID, contactID, nullableTime(lastContacted), nullableTime(nextContactDate),
	)
	if err != nil {
		return fmt.Errorf("failed to update contact schedule: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrContactNotFound
	}
	return nil
}

// CreateContact 创建联系人
func (r *PostgresContactsRepository) CreateContact(ctx context.Context, userID string, c *domain.Contact) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("user_id is required")
	}
	if c.FullName == "" {
		return "", fmt.Errorf("full_name is required")
	}
	category := c.Category
	if !category.IsValid() {
		category = domain.CategoryStandard
	}

	contactID := c.ContactID
	if contactID == "" {
		contactID = uuid.NewString()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO contacts (contact_id, user_id, full_name, email, phone, company, category, last_contacted, next_contact_date, created_at, updated_at)
		 VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9, NOW(), NOW())`,
		contactID, userID, c.FullName, c.Email, c.Phone, c.Company, string(category),
		nullableTime(c.LastContacted), nullableTime(c.NextContactDate),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create contact: %w", err)
	}
	return contactID, nil
}

// rowScanner QueryRow / rows 共用的 Scan 接口
type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(row rowScanner) (*domain.Contact, error) {
	var (
		c             domain.Contact
		category      string
		lastContacted sql.NullTime
		nextContact   sql.NullTime
	)
	err := row.Scan(
		&c.ContactID,
		&c.UserID,
		&c.FullName,
		&c.Email,
		&c.Phone,
		&c.Company,
		&category,
		&lastContacted,
		&nextContact,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Category = domain.ContactCategory(category)
	if lastContacted.Valid {
		t := lastContacted.Time
		c.LastContacted = &t
	}
	if nextContact.Valid {
		t := nextContact.Time
		c.NextContactDate = &t
	}
	return &c, nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
