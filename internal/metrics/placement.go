package metrics

import (
	"sort"
	"time"

	"prepos_backend/internal/model"
)

const (
	aptitudeStep          = 12
	placementStreakFactor = 12
	minDailyPlacementMins = 60
	weakTopicCount        = 3
	defaultInterviewTopic = "General"
)

type PlacementInput struct {
	Streak             int
	DailyStudyTime     *float64
	DsaTopics          []model.DsaTopic
	Sessions           []model.StudySession
	MockTests          []model.MockTestAttempt
	MockInterviews     []model.MockInterview
	InterviewQuestions []model.InterviewQuestion
}

type DifficultyBreakdown struct {
	Difficulty model.DsaDifficulty `json:"difficulty"`
	Total      int                 `json:"total"`
	Completed  int                 `json:"completed"`
}

type PlacementMetrics struct {
	ReadinessScore        int                   `json:"readinessScore"`
	DsaCompletion         int                   `json:"dsaCompletion"`
	AptitudeProgress      int                   `json:"aptitudeProgress"`
	MockInterviewScore    int                   `json:"mockInterviewScore"`
	VirtualInterviewScore int                   `json:"virtualInterviewScore"`
	StudyConsistency      int                   `json:"studyConsistency"`
	Streak                int                   `json:"streak"`
	DailyTargetMinutes    int                   `json:"dailyTargetMinutes"`
	WeakDsaTopics         []string              `json:"weakDsaTopics"`
	WeakInterviewTopics   []string              `json:"weakInterviewTopics"`
	WeeklyHours           []WeekPoint           `json:"weeklyHours"`
	DsaByDifficulty       []DifficultyBreakdown `json:"dsaByDifficulty"`
}

// DsaCompletion 已完成 DSA 清单项占比
func DsaCompletion(topics []model.DsaTopic) int {
	if len(topics) == 0 {
		return 0
	}
	done := 0
	for _, t := range topics {
		if t.Completed {
			done++
		}
	}
	return round(float64(done) / float64(len(topics)) * 100)
}

// AptitudeProgress 就业模式下 coding/aptitude 模考次数 * 12，封顶 100
func AptitudeProgress(attempts []model.MockTestAttempt) int {
	count := 0
	for _, a := range attempts {
		if a.Mode == model.MockModePlacement && (a.Segment == model.SegmentAptitude || a.Segment == model.SegmentCoding) {
			count++
		}
	}
	return min(100, count*aptitudeStep)
}

func MockInterviewScore(records []model.MockInterview) int {
	if len(records) == 0 {
		return 0
	}
	sum := 0
	for _, r := range records {
		sum += r.Score
	}
	return clampPercent(round(float64(sum) / float64(len(records))))
}

// VirtualInterviewScore 已评分 AI 面试题（0-10）的均值换算到 0-100；未评分的题不计入
func VirtualInterviewScore(questions []model.InterviewQuestion) (score int, scored int) {
	sum := 0.0
	for _, q := range questions {
		if q.Score == nil {
			continue
		}
		sum += *q.Score
		scored++
	}
	if scored == 0 {
		return 0, 0
	}
	return clampPercent(round(sum / float64(scored) * 10)), scored
}

// BlendedInterviewScore 有 AI 评分时按 0.75/0.25 混合，否则直接取模拟面试分
func BlendedInterviewScore(virtual, mock, scored int) int {
	if scored == 0 {
		return mock
	}
	return clampPercent(round(float64(virtual)*0.75 + float64(mock)*0.25))
}

func PlacementReadiness(dsa, aptitude, blended, consistency int) int {
	return clampPercent(round(float64(dsa)*0.32 + float64(aptitude)*0.20 + float64(blended)*0.33 + float64(consistency)*0.15))
}

func BuildPlacementMetrics(in PlacementInput, now time.Time) PlacementMetrics {
	dsa := DsaCompletion(in.DsaTopics)
	aptitude := AptitudeProgress(in.MockTests)
	mock := MockInterviewScore(in.MockInterviews)
	virtual, scored := VirtualInterviewScore(in.InterviewQuestions)
	blended := BlendedInterviewScore(virtual, mock, scored)
	consistency := min(100, in.Streak*placementStreakFactor)
	readiness := PlacementReadiness(dsa, aptitude, blended, consistency)

	dailyHours := 2.0
	if in.DailyStudyTime != nil {
		dailyHours = *in.DailyStudyTime
	}
	dailyTarget := max(minDailyPlacementMins, round(dailyHours*60+float64(100-readiness)*0.45))

	return PlacementMetrics{
		ReadinessScore:        readiness,
		DsaCompletion:         dsa,
		AptitudeProgress:      aptitude,
		MockInterviewScore:    blended,
		VirtualInterviewScore: virtual,
		StudyConsistency:      consistency,
		Streak:                in.Streak,
		DailyTargetMinutes:    dailyTarget,
		WeakDsaTopics:         WeakDsaTopics(in.DsaTopics),
		WeakInterviewTopics:   WeakInterviewTopics(in.InterviewQuestions),
		WeeklyHours:           WeeklyHours(in.Sessions, now),
		DsaByDifficulty:       DsaByDifficulty(in.DsaTopics),
	}
}

// WeakDsaTopics 未完成项按难度 Hard > Medium > Easy 排序取前 3
func WeakDsaTopics(topics []model.DsaTopic) []string {
	pending := make([]model.DsaTopic, 0, len(topics))
	for _, t := range topics {
		if !t.Completed {
			pending = append(pending, t)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].Difficulty.Weight() > pending[j].Difficulty.Weight()
	})

	names := make([]string, 0, weakTopicCount)
	for i := 0; i < len(pending) && i < weakTopicCount; i++ {
		names = append(names, pending[i].Name)
	}
	return names
}

// WeakInterviewTopics 按主题求已评分题目的平均分，升序取前 3
func WeakInterviewTopics(questions []model.InterviewQuestion) []string {
	type bucket struct {
		topic string
		sum   float64
		count int
	}
	var order []*bucket
	index := make(map[string]*bucket)

	for _, q := range questions {
		if q.Score == nil {
			continue
		}
		topic := q.Topic
		if topic == "" {
			topic = defaultInterviewTopic
		}
		b, ok := index[topic]
		if !ok {
			b = &bucket{topic: topic}
			index[topic] = b
			order = append(order, b)
		}
		b.sum += *q.Score
		b.count++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].sum/float64(order[i].count) < order[j].sum/float64(order[j].count)
	})

	names := make([]string, 0, weakTopicCount)
	for i := 0; i < len(order) && i < weakTopicCount; i++ {
		names = append(names, order[i].topic)
	}
	return names
}

func DsaByDifficulty(topics []model.DsaTopic) []DifficultyBreakdown {
	levels := []model.DsaDifficulty{model.DsaEasy, model.DsaMedium, model.DsaHard}
	out := make([]DifficultyBreakdown, 0, len(levels))
	for _, level := range levels {
		row := DifficultyBreakdown{Difficulty: level}
		for _, t := range topics {
			if t.Difficulty != level {
				continue
			}
			row.Total++
			if t.Completed {
				row.Completed++
			}
		}
		out = append(out, row)
	}
	return out
}
