package metrics

import (
	"testing"
	"time"

	"prepos_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func seededTopics(completed int) []model.DsaTopic {
	topics := make([]model.DsaTopic, len(model.DefaultDsaTopics))
	copy(topics, model.DefaultDsaTopics)
	for i := 0; i < completed; i++ {
		topics[i].Completed = true
	}
	return topics
}

func TestBuildPlacementMetricsExample(t *testing.T) {
	now := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	m := BuildPlacementMetrics(PlacementInput{
		Streak:    2,
		DsaTopics: seededTopics(3),
	}, now)

	assert.Equal(t, 30, m.DsaCompletion)
	assert.Equal(t, 0, m.AptitudeProgress)
	assert.Equal(t, 0, m.MockInterviewScore)
	assert.Equal(t, 24, m.StudyConsistency)
	assert.Equal(t, 13, m.ReadinessScore)
	// 2h*60 + 87*0.45 = 159.15
	assert.Equal(t, 159, m.DailyTargetMinutes)
	assert.Equal(t, []string{"Dynamic Programming", "Graphs", "Sliding Window"}, m.WeakDsaTopics)
	assert.Len(t, m.WeeklyHours, WeeksInSeries)
	assert.Equal(t, []DifficultyBreakdown{
		{Difficulty: model.DsaEasy, Total: 4, Completed: 3},
		{Difficulty: model.DsaMedium, Total: 4, Completed: 0},
		{Difficulty: model.DsaHard, Total: 2, Completed: 0},
	}, m.DsaByDifficulty)
}

func TestBuildPlacementMetricsAllZero(t *testing.T) {
	m := BuildPlacementMetrics(PlacementInput{}, time.Now())
	assert.Equal(t, 0, m.ReadinessScore)
	assert.Equal(t, 0, m.DsaCompletion)
	assert.Empty(t, m.WeakDsaTopics)
	assert.Empty(t, m.WeakInterviewTopics)
}

func TestAptitudeProgressCountsPlacementCodingAndAptitudeOnly(t *testing.T) {
	attempts := []model.MockTestAttempt{
		{Mode: model.MockModePlacement, Segment: model.SegmentAptitude},
		{Mode: model.MockModePlacement, Segment: model.SegmentCoding},
		{Mode: model.MockModePlacement, Segment: model.SegmentHR},
		{Mode: model.MockModeExam, Segment: model.SegmentCoding},
	}
	assert.Equal(t, 24, AptitudeProgress(attempts))

	many := make([]model.MockTestAttempt, 20)
	for i := range many {
		many[i] = model.MockTestAttempt{Mode: model.MockModePlacement, Segment: model.SegmentCoding}
	}
	assert.Equal(t, 100, AptitudeProgress(many))
}

func TestInterviewScoresIgnoreUnscoredQuestions(t *testing.T) {
	questions := []model.InterviewQuestion{
		{Topic: "Graphs", Score: ptr(4.0)},
		{Topic: "Graphs", Score: nil},
		{Topic: "DP", Score: ptr(8.0)},
		{Topic: "", Score: ptr(6.0)},
		{Topic: "Unanswered"},
	}

	virtual, scored := VirtualInterviewScore(questions)
	assert.Equal(t, 3, scored)
	assert.Equal(t, 60, virtual)

	assert.Equal(t, []string{"Graphs", "General", "DP"}, WeakInterviewTopics(questions))
	assert.Equal(t, round(60*0.75+80*0.25), BlendedInterviewScore(virtual, 80, scored))
	assert.Equal(t, 80, BlendedInterviewScore(0, 80, 0))
}

func TestPlacementReadinessWithInterviews(t *testing.T) {
	now := time.Now()
	m := BuildPlacementMetrics(PlacementInput{
		Streak:         10,
		DailyStudyTime: ptr(4.0),
		DsaTopics:      seededTopics(10),
		MockTests: []model.MockTestAttempt{
			{Mode: model.MockModePlacement, Segment: model.SegmentAptitude},
		},
		MockInterviews: []model.MockInterview{{Score: 70}, {Score: 80}},
		InterviewQuestions: []model.InterviewQuestion{
			{Topic: "DP", Score: ptr(9.0)},
		},
	}, now)

	assert.Equal(t, 100, m.DsaCompletion)
	assert.Equal(t, 12, m.AptitudeProgress)
	assert.Equal(t, 90, m.VirtualInterviewScore)
	assert.Equal(t, 86, m.MockInterviewScore) // round(67.5 + 18.75)
	assert.Equal(t, 100, m.StudyConsistency)
	assert.Equal(t, 78, m.ReadinessScore) // round(32 + 2.4 + 28.38 + 15)
	assert.Equal(t, 250, m.DailyTargetMinutes)
	assert.Empty(t, m.WeakDsaTopics)
}
