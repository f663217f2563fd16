package service

import (
	"context"
	"testing"

	"prepos_backend/internal/model"
	"prepos_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExamDashboard_ComputesAndPersistsReadiness(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.onboardExam(t, "u1")

	_, err := f.practice.SaveMockTestAttempt("u1", MockTestAttemptRequest{ExamID: "gate", Score: 8, TotalQuestions: 10})
	require.NoError(t, err)
	_, err = f.study.LogSession(ctx, "u1", StudySessionRequest{Duration: 60})
	require.NoError(t, err)

	dash, err := f.dashboard.GetExamDashboard(ctx, "u1")
	require.NoError(t, err)

	assert.Equal(t, "GATE Computer Science", dash.Exam.Name)
	assert.Len(t, dash.Subjects, 4)
	assert.Equal(t, 15, dash.Metrics.TotalTopics)
	assert.Equal(t, 30, dash.Metrics.CountdownDays)
	assert.Equal(t, 1.0, dash.Metrics.StudiedHours)
	// completion 1, mock 80, streak 1: round(0.5 + 28 + 0.9)
	assert.Equal(t, 29, dash.Metrics.ReadinessScore)
	assert.Equal(t, 29, dash.User.ReadinessScore)
	require.Len(t, dash.Metrics.MockPerformance, 1)
	assert.Equal(t, "T1", dash.Metrics.MockPerformance[0].Label)

	stored, err := f.users.FindByID("u1")
	require.NoError(t, err)
	assert.Equal(t, 29, stored.ReadinessScore)
}

func TestExamDashboard_Prerequisites(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.dashboard.GetExamDashboard(ctx, "ghost")
	assert.ErrorIs(t, err, util.ErrUserNotFound)

	f.createUser(t, "fresh")
	_, err = f.dashboard.GetExamDashboard(ctx, "fresh")
	assert.ErrorIs(t, err, util.ErrOnboardingRequired)

	f.onboardPlacement(t, "p1")
	_, err = f.dashboard.GetExamDashboard(ctx, "p1")
	assert.ErrorIs(t, err, util.ErrWrongTrack)

	f.createUser(t, "stale")
	missing := "deleted-exam"
	require.NoError(t, f.db.Model(&model.User{}).Where("id = ?", "stale").Update("exam_id", missing).Error)
	_, err = f.dashboard.GetExamDashboard(ctx, "stale")
	assert.ErrorIs(t, err, util.ErrExamNotFound)
}

func TestPlacementDashboard_ComputesReadiness(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.onboardPlacement(t, "p1")

	topics, err := f.practice.ListDsaTopics("p1")
	require.NoError(t, err)
	require.Len(t, topics, 10)
	for _, topic := range topics[:2] {
		_, err := f.practice.ToggleDsaTopic("p1", topic.ID, true)
		require.NoError(t, err)
	}
	_, err = f.practice.SaveMockTestAttempt("p1", MockTestAttemptRequest{
		ExamID: "aptitude", Score: 12, TotalQuestions: 20, Mode: model.MockModePlacement, Segment: model.SegmentAptitude,
	})
	require.NoError(t, err)
	_, err = f.practice.SaveMockInterview("p1", MockInterviewRequest{Mode: model.InterviewModeHR, Score: 80, FeedbackSummary: "Clear and structured."})
	require.NoError(t, err)
	_, err = f.study.LogSession(ctx, "p1", StudySessionRequest{Duration: 90})
	require.NoError(t, err)

	dash, err := f.dashboard.GetPlacementDashboard(ctx, "p1")
	require.NoError(t, err)

	m := dash.Metrics
	assert.Equal(t, 20, m.DsaCompletion)
	assert.Equal(t, 12, m.AptitudeProgress)
	assert.Equal(t, 80, m.MockInterviewScore)
	assert.Equal(t, 12, m.StudyConsistency)
	// 20*0.32 + 12*0.20 + 80*0.33 + 12*0.15
	assert.Equal(t, 37, m.ReadinessScore)
	assert.Len(t, m.WeakDsaTopics, 3)
	assert.Len(t, m.WeeklyHours, 6)
	assert.Equal(t, 1.5, m.WeeklyHours[5].Hours)

	stored, err := f.users.FindByID("p1")
	require.NoError(t, err)
	assert.Equal(t, 37, stored.ReadinessScore)
}

func TestDashboard_DispatchesByGoal(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.onboardExam(t, "e1")
	f.onboardPlacement(t, "p1")

	exam, err := f.dashboard.GetDashboard(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, model.GoalExam, exam.GoalType)
	assert.NotNil(t, exam.Exam)
	assert.Nil(t, exam.Placement)

	placement, err := f.dashboard.GetDashboard(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, model.GoalPlacement, placement.GoalType)
	assert.NotNil(t, placement.Placement)
	assert.Nil(t, placement.Exam)

	_, err = f.dashboard.GetPlacementDashboard(ctx, "e1")
	assert.ErrorIs(t, err, util.ErrWrongTrack)
}
