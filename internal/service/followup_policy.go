package service

import (
	"time"

	"touchbase-data/internal/domain"
)

// IntervalDays 返回分类对应的跟进间隔天数（纯函数，无副作用）
// 未知分类回落到 STANDARD 间隔；settings 已在写入时校验过（1-365），
// 这里不再重复校验
func IntervalDays(category domain.ContactCategory, settings *domain.FollowupSettings) int {
	switch category {
	case domain.CategoryHotlist:
		return settings.FollowupHotlist
	case domain.CategoryAList:
		return settings.FollowupAList
	case domain.CategoryBList:
		return settings.FollowupBList
	case domain.CategoryCList:
		return settings.FollowupCList
	default:
		return settings.FollowupStandard
	}
}

// NextContactDate 按分类间隔推算下次联系时间
// 固定天数直接加在时间戳上，保留时刻，不做日界对齐
func NextContactDate(lastContacted time.Time, category domain.ContactCategory, settings *domain.FollowupSettings) time.Time {
	return lastContacted.AddDate(0, 0, IntervalDays(category, settings))
}
