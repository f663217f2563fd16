package metrics

import (
	"testing"
	"time"

	"prepos_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartOfWeekIsMonday(t *testing.T) {
	sunday := time.Date(2025, 3, 16, 22, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), StartOfWeek(sunday))

	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, monday, StartOfWeek(monday))
}

func TestWeeklyHoursSixPointsOldestFirst(t *testing.T) {
	now := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC) // 周三
	sessions := []model.StudySession{
		{Duration: 90, CreatedAt: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)},  // 本周
		{Duration: 30, CreatedAt: time.Date(2025, 3, 9, 23, 59, 0, 0, time.UTC)}, // 上周日
		{Duration: 60, CreatedAt: time.Date(2025, 2, 3, 8, 0, 0, 0, time.UTC)},   // 第一周
		{Duration: 45, CreatedAt: time.Date(2025, 2, 2, 8, 0, 0, 0, time.UTC)},   // 窗口之外
		{Duration: 15},
	}

	points := WeeklyHours(sessions, now)
	require.Len(t, points, WeeksInSeries)

	assert.Equal(t, "03 Feb", points[0].WeekLabel)
	assert.Equal(t, 1.0, points[0].Hours)
	assert.Equal(t, "03 Mar", points[4].WeekLabel)
	assert.Equal(t, 0.5, points[4].Hours)
	assert.Equal(t, "10 Mar", points[5].WeekLabel)
	assert.Equal(t, 1.5, points[5].Hours)

	total := 0.0
	for _, p := range points {
		total += p.Hours
	}
	assert.InDelta(t, 3.0, total, 1e-9)
}

func TestWeeklyHoursBucketsInNowLocation(t *testing.T) {
	kolkata := time.FixedZone("IST", 5*3600+30*60)
	now := time.Date(2025, 3, 12, 10, 0, 0, 0, kolkata)
	sessions := []model.StudySession{
		{Duration: 60, CreatedAt: time.Date(2025, 3, 9, 19, 0, 0, 0, time.UTC)}, // 当地周一 00:30
		{Duration: 30, CreatedAt: time.Date(2025, 3, 9, 18, 0, 0, 0, time.UTC)}, // 当地周日 23:30
	}

	points := WeeklyHours(sessions, now)
	require.Len(t, points, WeeksInSeries)
	assert.Equal(t, "10 Mar", points[5].WeekLabel)
	assert.Equal(t, 1.0, points[5].Hours)
	assert.Equal(t, "03 Mar", points[4].WeekLabel)
	assert.Equal(t, 0.5, points[4].Hours)

	// 同样的记录按 UTC 计算都落在上一周
	utc := WeeklyHours(sessions, now.In(time.UTC))
	assert.Equal(t, 0.0, utc[5].Hours)
	assert.Equal(t, 1.5, utc[4].Hours)
}
