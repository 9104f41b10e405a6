package repository

import (
	"context"
	"errors"
	"time"

	"touchbase-data/internal/domain"
)

// ErrContactNotFound 联系人不存在
var ErrContactNotFound = errors.New("contact not found")

// ContactsRepository 联系人Repository接口
// 使用强类型领域模型；联系人 CRUD 本身属于外部协作方，这里只暴露
// 调度核心需要的读取与调度字段更新
type ContactsRepository interface {
	// GetContact 根据 contact_id 获取联系人（不存在返回 ErrContactNotFound）
	GetContact(ctx context.Context, userID, contactID string) (*domain.Contact, error)

	// ListContacts 查询联系人列表（支持分类与日期范围过滤）
	ListContacts(ctx context.Context, userID string, filter ContactsFilter) ([]*domain.Contact, error)

	// UpdateSchedule 更新联系人调度字段（last_contacted / next_contact_date）
	UpdateSchedule(ctx context.Context, userID, contactID string, lastContacted, nextContactDate *time.Time) error

	// CreateContact 创建联系人（导入/测试用，返回 contact_id）
	CreateContact(ctx context.Context, userID string, c *domain.Contact) (string, error)
}

// ContactsFilter 联系人查询过滤器
type ContactsFilter struct {
	// Category 可选，按分类过滤
	Category domain.ContactCategory

	// DueBefore 可选：next_contact_date 严格早于该时刻的联系人
	// 与 IncludeNeverContacted 组合即为“应联系”集合
	DueBefore *time.Time

	// IncludeNeverContacted DueBefore 过滤时是否包含从未联系过的联系人
	IncludeNeverContacted bool

	// LastContactedFrom / LastContactedTo 可选，last_contacted 所在区间 [from, to)
	LastContactedFrom *time.Time
	LastContactedTo   *time.Time
}
