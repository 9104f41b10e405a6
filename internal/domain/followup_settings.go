package domain

import "fmt"

// 各分类默认跟进间隔（天）
const (
	DefaultFollowupHotlist  = 30
	DefaultFollowupAList    = 60
	DefaultFollowupBList    = 90
	DefaultFollowupCList    = 120
	DefaultFollowupStandard = 180
)

// 跟进间隔允许范围（天）
const (
	MinFollowupDays = 1
	MaxFollowupDays = 365
)

// FollowupSettings 跟进间隔设置（对应 followup_settings 表，每个用户一条）
// 整条替换更新，重置即恢复默认值，不存在删除
type FollowupSettings struct {
	UserID           string `db:"user_id" json:"-"`
	FollowupHotlist  int    `db:"followup_hotlist" json:"followupHotlist"`   // 天数 1-365
	FollowupAList    int    `db:"followup_a_list" json:"followupAList"`      // 天数 1-365
	FollowupBList    int    `db:"followup_b_list" json:"followupBList"`      // 天数 1-365
	FollowupCList    int    `db:"followup_c_list" json:"followupCList"`      // 天数 1-365
	FollowupStandard int    `db:"followup_standard" json:"followupStandard"` // 天数 1-365
}

// DefaultFollowupSettings 默认跟进间隔设置（首次访问时生成）
func DefaultFollowupSettings(userID string) *FollowupSettings {
	return &FollowupSettings{
		UserID:           userID,
		FollowupHotlist:  DefaultFollowupHotlist,
		FollowupAList:    DefaultFollowupAList,
		FollowupBList:    DefaultFollowupBList,
		FollowupCList:    DefaultFollowupCList,
		FollowupStandard: DefaultFollowupStandard,
	}
}

// Validate 写入时校验（每项 1-365 天）
// 调度计算假定输入已通过本校验，不再重复校验
func (s *FollowupSettings) Validate() error {
	fields := []struct {
		name string
		days int
	}{
		{"followupHotlist", s.FollowupHotlist},
		{"followupAList", s.FollowupAList},
		{"followupBList", s.FollowupBList},
		{"followupCList", s.FollowupCList},
		{"followupStandard", s.FollowupStandard},
	}
	for _, f := range fields {
		if f.days < MinFollowupDays || f.days > MaxFollowupDays {
			return fmt.Errorf("%s must be between %d and %d days", f.name, MinFollowupDays, MaxFollowupDays)
		}
	}
	return nil
}
