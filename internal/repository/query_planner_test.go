package repository

import (
	"testing"
	"time"

	"prepos_backend/internal/model"
	"prepos_backend/internal/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSessions(t *testing.T, repo *UserRepository, uid string, n int) {
	t.Helper()
	_, _, err := repo.EnsureProfile(ProfileInput{UID: uid})
	require.NoError(t, err)

	base := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	// 乱序写入
	for _, i := range []int{3, 0, 4, 1, 2}[:n] {
		_, err := repo.ApplyStudySession(&model.StudySession{
			UserID:    uid,
			Date:      base.AddDate(0, 0, i).Format("2006-01-02"),
			Duration:  10 + i,
			CreatedAt: base.AddDate(0, 0, i),
		})
		require.NoError(t, err)
	}
}

func TestQueryPlannerDetectsIndexes(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	planner := NewQueryPlanner(db)
	assert.Equal(t, PlanOrdered, planner.Plan("study_sessions"))

	require.NoError(t, db.Migrator().DropIndex(&model.StudySession{}, "idx_study_sessions_user_created"))
	planner.Probe()
	assert.Equal(t, PlanUnordered, planner.Plan("study_sessions"))
	assert.Equal(t, PlanOrdered, planner.Plan("mock_tests"))
}

func TestListRecentPlansAgree(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	seedSessions(t, NewUserRepository(db), "u1", 5)
	seedSessions(t, NewUserRepository(db), "u2", 2)

	planner := NewQueryPlanner(db)
	repo := NewStudySessionRepository(db, planner)

	ordered, err := repo.ListByUser("u1", 3)
	require.NoError(t, err)

	planner.SetPlan("study_sessions", PlanUnordered)
	unordered, err := repo.ListByUser("u1", 3)
	require.NoError(t, err)

	require.Len(t, ordered, 3)
	require.Len(t, unordered, 3)
	for i := range ordered {
		assert.Equal(t, ordered[i].ID, unordered[i].ID)
	}
	assert.Equal(t, 14, ordered[0].Duration)
	assert.Equal(t, 13, ordered[1].Duration)
	assert.Equal(t, 12, ordered[2].Duration)
}

func TestNilPlannerDefaultsToOrdered(t *testing.T) {
	var planner *QueryPlanner
	assert.Equal(t, PlanOrdered, planner.Plan("study_sessions"))
}
