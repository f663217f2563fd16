package metrics

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"prepos_backend/internal/model"
)

const (
	minSubjectHours   = 2.0
	mockSeriesLength  = 8
	weakSubjectCount  = 2
	minDailyExamMins  = 45
	examStreakFactor  = 6
	unknownDifficulty = 1.15
)

var difficultyMultipliers = map[string]float64{
	"easy":   1.0,
	"medium": 1.2,
	"hard":   1.45,
}

// DifficultyMultiplier 难度标签不区分大小写，未知标签按 1.15
func DifficultyMultiplier(label string) float64 {
	if m, ok := difficultyMultipliers[strings.ToLower(strings.TrimSpace(label))]; ok {
		return m
	}
	return unknownDifficulty
}

// SubjectRequiredHours 科目所需学时，至少 2 小时
func SubjectRequiredHours(topics []model.Topic) float64 {
	total := 0.0
	for _, t := range topics {
		total += (t.WeightageOrDefault()*0.75 + 2.2) * DifficultyMultiplier(t.Difficulty)
	}
	return math.Max(minSubjectHours, total)
}

type ExamInput struct {
	Streak         int
	DailyStudyTime *float64
	TargetDate     *string
	Subjects       []model.Subject
	Sessions       []model.StudySession
	// MockTests 按创建时间倒序
	MockTests []model.MockTestAttempt
}

type SubjectProgress struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Progress      int     `json:"progress"`
	StudiedHours  float64 `json:"studiedHours"`
	RequiredHours float64 `json:"requiredHours"`
}

type MockPoint struct {
	Label string `json:"label"`
	Score int    `json:"score"`
}

type ExamMetrics struct {
	CountdownDays      int               `json:"countdownDays"`
	TotalTopics        int               `json:"totalTopics"`
	RequiredHours      float64           `json:"requiredHours"`
	StudiedHours       float64           `json:"studiedHours"`
	ReadinessScore     int               `json:"readinessScore"`
	TodayTargetMinutes int               `json:"todayTargetMinutes"`
	WeeklyTargetHours  float64           `json:"weeklyTargetHours"`
	WeakSubjects       []string          `json:"weakSubjects"`
	SubjectProgress    []SubjectProgress `json:"subjectProgress"`
	WeeklyHours        []WeekPoint       `json:"weeklyHours"`
	MockPerformance    []MockPoint       `json:"mockPerformance"`
}

// CountdownDays 距目标日期的天数（向上取整，不小于 0）；日期缺失或无法解析时为 0
func CountdownDays(targetDate *string, now time.Time) int {
	if targetDate == nil || *targetDate == "" {
		return 0
	}
	target, err := time.Parse("2006-01-02", *targetDate)
	if err != nil {
		return 0
	}
	days := math.Ceil(target.Sub(now).Hours() / 24)
	if days < 0 {
		return 0
	}
	return int(days)
}

// MockScore 所有模考百分比的平均值
func MockScore(attempts []model.MockTestAttempt) int {
	if len(attempts) == 0 {
		return 0
	}
	sum := 0.0
	for i := range attempts {
		sum += attempts[i].Percent()
	}
	return clampPercent(round(sum / float64(len(attempts))))
}

// ExamReadiness completion*0.5 + mock*0.35 + streak*0.15
func ExamReadiness(completion, mockScore, streak int) int {
	streakScore := min(100, streak*examStreakFactor)
	return clampPercent(round(float64(completion)*0.5 + float64(mockScore)*0.35 + float64(streakScore)*0.15))
}

func BuildExamMetrics(in ExamInput, now time.Time) ExamMetrics {
	countdown := CountdownDays(in.TargetDate, now)

	totalTopics := 0
	totalMinutes := 0
	for _, s := range in.Subjects {
		totalTopics += len(s.Topics)
	}
	for _, s := range in.Sessions {
		totalMinutes += s.Duration
	}
	studiedHours := round1(float64(totalMinutes) / 60)

	progress := make([]SubjectProgress, 0, len(in.Subjects))
	requiredSum := 0.0
	for _, subject := range in.Subjects {
		required := SubjectRequiredHours(subject.Topics)

		studied := 0.0
		for _, s := range in.Sessions {
			if s.SubjectID != nil && *s.SubjectID == subject.ID {
				studied += float64(s.Duration) / 60
			}
		}

		p := SubjectProgress{
			ID:            subject.ID,
			Name:          subject.Name,
			Progress:      min(100, round(studied/required*100)),
			StudiedHours:  round1(studied),
			RequiredHours: round1(required),
		}
		requiredSum += p.RequiredHours
		progress = append(progress, p)
	}

	requiredHours := round1(requiredSum)
	completion := 0
	if requiredHours > 0 {
		completion = min(100, round(studiedHours/requiredHours*100))
	}
	mockScore := MockScore(in.MockTests)
	readiness := ExamReadiness(completion, mockScore, in.Streak)

	dailyHours := 2.0
	if in.DailyStudyTime != nil {
		dailyHours = *in.DailyStudyTime
	}
	todayTarget := max(minDailyExamMins, round(dailyHours*60+float64(100-completion)*0.3))

	remaining := math.Max(0, requiredHours-studiedHours)
	weeksLeft := math.Max(1, math.Ceil(float64(max(countdown, 1))/7))
	weeklyTarget := round1(remaining / weeksLeft)

	return ExamMetrics{
		CountdownDays:      countdown,
		TotalTopics:        totalTopics,
		RequiredHours:      requiredHours,
		StudiedHours:       studiedHours,
		ReadinessScore:     readiness,
		TodayTargetMinutes: todayTarget,
		WeeklyTargetHours:  weeklyTarget,
		WeakSubjects:       weakSubjects(progress),
		SubjectProgress:    progress,
		WeeklyHours:        WeeklyHours(in.Sessions, now),
		MockPerformance:    MockPerformance(in.MockTests),
	}
}

func weakSubjects(progress []SubjectProgress) []string {
	sorted := make([]SubjectProgress, len(progress))
	copy(sorted, progress)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Progress < sorted[j].Progress
	})

	names := make([]string, 0, weakSubjectCount)
	for i := 0; i < len(sorted) && i < weakSubjectCount; i++ {
		names = append(names, sorted[i].Name)
	}
	return names
}

// MockPerformance 最近 8 次模考，按时间正序，标签 T1..Tn
func MockPerformance(attempts []model.MockTestAttempt) []MockPoint {
	newestFirst := make([]model.MockTestAttempt, len(attempts))
	copy(newestFirst, attempts)
	sort.SliceStable(newestFirst, func(i, j int) bool {
		return newestFirst[i].CreatedAt.After(newestFirst[j].CreatedAt)
	})

	n := min(mockSeriesLength, len(newestFirst))
	points := make([]MockPoint, 0, n)
	for i := n - 1; i >= 0; i-- {
		points = append(points, MockPoint{
			Label: "T" + strconv.Itoa(len(points)+1),
			Score: clampPercent(round(newestFirst[i].Percent())),
		})
	}
	return points
}
