package domain

// GoalProgress 当日目标进度（派生值，不落库，每次查询重算）
// dailyGoal 为有效目标：max(用户设置的目标, 当日应联系数)
type GoalProgress struct {
	DailyGoal int `json:"dailyGoal"`
	Contacted int `json:"contacted"`
	Remaining int `json:"remaining"`
	DueToday  int `json:"dueToday"`
}
