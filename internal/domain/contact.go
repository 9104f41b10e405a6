package domain

import "time"

// ContactCategory 联系人分类（五档，数值越小优先级越高）
type ContactCategory string

const (
	CategoryHotlist  ContactCategory = "HOTLIST"
	CategoryAList    ContactCategory = "A_LIST"
	CategoryBList    ContactCategory = "B_LIST"
	CategoryCList    ContactCategory = "C_LIST"
	CategoryStandard ContactCategory = "STANDARD"
)

// Priority 分类优先级（HOTLIST=1 最高，STANDARD=5 最低）
// 未知分类按 STANDARD 处理，保证排序稳定
func (c ContactCategory) Priority() int {
	switch c {
	case CategoryHotlist:
		return 1
	case CategoryAList:
		return 2
	case CategoryBList:
		return 3
	case CategoryCList:
		return 4
	default:
		return 5
	}
}

// IsValid 判断是否为已知分类
func (c ContactCategory) IsValid() bool {
	switch c {
	case CategoryHotlist, CategoryAList, CategoryBList, CategoryCList, CategoryStandard:
		return true
	}
	return false
}

// Contact 联系人领域模型（对应 contacts 表）
// last_contacted / next_contact_date 只通过互动记录服务变更
type Contact struct {
	// 主键
	ContactID string `db:"contact_id" json:"id"` // UUID, PRIMARY KEY

	// 归属用户
	UserID string `db:"user_id" json:"userId"` // UUID, NOT NULL

	// 基本信息
	FullName string `db:"full_name" json:"fullName"` // VARCHAR(200), NOT NULL
	Email    string `db:"email" json:"email,omitempty"`       // VARCHAR(255), nullable
	Phone    string `db:"phone" json:"phone,omitempty"`       // VARCHAR(25), nullable
	Company  string `db:"company" json:"company,omitempty"`   // VARCHAR(200), nullable

	// 分类
	Category ContactCategory `db:"category" json:"category"` // VARCHAR(20), NOT NULL, DEFAULT 'STANDARD'

	// 跟进调度字段
	LastContacted   *time.Time `db:"last_contacted" json:"lastContacted,omitempty"`      // TIMESTAMPTZ, nullable
	NextContactDate *time.Time `db:"next_contact_date" json:"nextContactDate,omitempty"` // TIMESTAMPTZ, nullable

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// IsDue 判断联系人在 dayEnd（当天边界，次日 00:00）之前是否应被联系
// 从未联系过的联系人始终应被联系；逾期的联系人在被联系前一直保持应联系状态
func (c *Contact) IsDue(dayEnd time.Time) bool {
	if c.LastContacted == nil {
		return true
	}
	return c.NextContactDate != nil && c.NextContactDate.Before(dayEnd)
}
