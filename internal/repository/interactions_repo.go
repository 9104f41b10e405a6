package repository

import (
	"context"
	"time"

	"touchbase-data/internal/domain"
)

// InteractionsRepository 互动记录Repository接口
// 互动记录只增不改：创建后不可变更、不可删除
type InteractionsRepository interface {
	// CreateInteraction 写入一条互动记录，返回 interaction_id
	CreateInteraction(ctx context.Context, userID string, in *domain.Interaction) (string, error)

	// ListByContact 查询联系人的互动历史（按时间倒序）
	ListByContact(ctx context.Context, userID, contactID string) ([]*domain.Interaction, error)

	// CountOutreach 统计 [from, to) 区间内的外联互动数（NOTE 不计入）
	CountOutreach(ctx context.Context, userID string, from, to time.Time) (int, error)

	// LogOutreach 写入互动记录并同步更新联系人调度字段
	// 两个写入是同一逻辑操作：读取方不允许观察到其中一半
	LogOutreach(ctx context.Context, userID string, in *domain.Interaction, lastContacted, nextContactDate time.Time) (string, error)
}
