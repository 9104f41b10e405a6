package service

import "time"

// Clock 时钟接口（测试可注入固定时间）
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// NewRealClock 返回系统时钟
func NewRealClock() Clock { return realClock{} }

// dayBounds 返回 t 所在时区当天的 [00:00, 次日00:00) 边界
func dayBounds(t time.Time) (time.Time, time.Time) {
	year, month, day := t.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}
