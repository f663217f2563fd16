package metrics

import (
	"time"

	"prepos_backend/internal/model"
)

// WeeksInSeries 周学习时长序列固定 6 个点
const WeeksInSeries = 6

type WeekPoint struct {
	WeekLabel string  `json:"weekLabel"`
	Hours     float64 `json:"hours"`
}

// StartOfWeek 返回 t 所在周的周一零点（t 的时区）
func StartOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
}

// WeeklyHours 最近 6 个自然周（周一开始）的学习小时数，从旧到新
func WeeklyHours(sessions []model.StudySession, now time.Time) []WeekPoint {
	first := StartOfWeek(now).AddDate(0, 0, -7*(WeeksInSeries-1))

	minutes := make([]int, WeeksInSeries)
	starts := make([]time.Time, WeeksInSeries+1)
	for i := range starts {
		starts[i] = first.AddDate(0, 0, 7*i)
	}

	for _, s := range sessions {
		if s.CreatedAt.IsZero() {
			continue
		}
		created := s.CreatedAt.In(now.Location())
		for i := 0; i < WeeksInSeries; i++ {
			if !created.Before(starts[i]) && created.Before(starts[i+1]) {
				minutes[i] += s.Duration
				break
			}
		}
	}

	points := make([]WeekPoint, WeeksInSeries)
	for i := range points {
		points[i] = WeekPoint{
			WeekLabel: starts[i].Format("02 Jan"),
			Hours:     round1(float64(minutes[i]) / 60),
		}
	}
	return points
}
