package domain

import "time"

// InteractionType 互动类型
type InteractionType string

const (
	InteractionCall     InteractionType = "CALL"
	InteractionEmail    InteractionType = "EMAIL"
	InteractionText     InteractionType = "TEXT"
	InteractionInPerson InteractionType = "IN_PERSON"
	InteractionOther    InteractionType = "OTHER"
	InteractionNote     InteractionType = "NOTE"
)

// MaxNotesLength 互动备注最大长度（字符数）
const MaxNotesLength = 500

// IsValid 判断是否为已知互动类型
func (t InteractionType) IsValid() bool {
	switch t {
	case InteractionCall, InteractionEmail, InteractionText, InteractionInPerson, InteractionOther, InteractionNote:
		return true
	}
	return false
}

// IsOutreach 判断是否计入“当日已联系”
// NOTE 只是备注，不算外联
func (t InteractionType) IsOutreach() bool {
	return t.IsValid() && t != InteractionNote
}

// Interaction 互动记录领域模型（对应 interactions 表）
// 只由互动记录服务创建，创建后不可变更、不可删除
type Interaction struct {
	InteractionID string          `db:"interaction_id" json:"id"` // UUID, PRIMARY KEY
	ContactID     string          `db:"contact_id" json:"contactId"`
	UserID        string          `db:"user_id" json:"userId"`
	Type          InteractionType `db:"interaction_type" json:"type"`
	Notes         string          `db:"notes" json:"notes,omitempty"` // VARCHAR(500), nullable
	CreatedAt     time.Time       `db:"created_at" json:"createdAt"`
}
