package metrics

import (
	"math"
	"time"
)

const xpPerMinute = 1.8

// NextStreak 计算记录学习后的连续天数：
// 同一天再次记录保持不变（至少为 1），前一天有记录则 +1，否则重置为 1。
func NextStreak(current int, lastDate, today string) int {
	if lastDate == today {
		return max(1, current)
	}
	if lastDate != "" && lastDate == previousDay(today) {
		return max(1, current+1)
	}
	return 1
}

// SessionXP 每分钟 1.8 经验
func SessionXP(durationMinutes int) int {
	return int(math.Floor(float64(durationMinutes)*xpPerMinute + 0.5))
}

func previousDay(day string) string {
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format("2006-01-02")
}
