package repository

import (
	"testing"
	"time"

	"prepos_backend/internal/model"
	"prepos_backend/internal/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockTestAttemptRoundTripsWeakSubjects(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repo := NewMockTestRepository(db, NewQueryPlanner(db))

	attempt := &model.MockTestAttempt{UserID: "u1", ExamID: "gate", Score: 14, TotalQuestions: 20}
	attempt.SetWeakSubjects([]string{"DBMS", "OS"})
	require.NoError(t, repo.Create(attempt))

	attempts, err := repo.ListByUser("u1", 40)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, []string{"DBMS", "OS"}, attempts[0].WeakSubjectList())
	assert.Equal(t, model.MockModeExam, attempts[0].Mode)
	assert.Equal(t, model.SegmentCoding, attempts[0].Segment)
	assert.Equal(t, 70.0, attempts[0].Percent())
}

func TestPostsNewestFirstWithDefaults(t *testing.T) {
	repo := NewPostRepository(testhelpers.SetupTestDB(t))
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(&model.Post{UserID: "u1", Content: "older post", CreatedAt: base}))
	require.NoError(t, repo.Create(&model.Post{UserID: "u2", UserName: "Ravi", Type: model.PostReferral, Content: "newer post", CreatedAt: base.Add(time.Hour)}))

	posts, err := repo.ListRecent(40)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "newer post", posts[0].Content)
	assert.Equal(t, model.PostReferral, posts[0].Type)
	assert.Equal(t, model.AnonymousAuthor, posts[1].UserName)
	assert.Equal(t, model.PostDiscussion, posts[1].Type)

	limited, err := repo.ListRecent(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestCompanyApplicationsScopedToUser(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repo := NewCompanyApplicationRepository(db, NewQueryPlanner(db))

	require.NoError(t, repo.Create(&model.CompanyApplication{UserID: "u1", CompanyName: "Acme", Role: "SDE", Status: model.StatusApplied, Result: "pending"}))
	require.NoError(t, repo.Create(&model.CompanyApplication{UserID: "u2", CompanyName: "Globex", Role: "SDE", Status: model.StatusOA}))

	apps, err := repo.ListByUser("u1", 80)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "Acme", apps[0].CompanyName)
}

func TestMotivationsEnabledOnly(t *testing.T) {
	repo := NewMotivationRepository(testhelpers.SetupTestDB(t))
	require.NoError(t, repo.Create(&model.Motivation{Content: "one", IsEnabled: true}))
	require.NoError(t, repo.Create(&model.Motivation{Content: "two", IsEnabled: true}))
	require.NoError(t, repo.DB.Model(&model.Motivation{}).Where("content = ?", "two").Update("is_enabled", false).Error)

	enabled, err := repo.GetEnabled()
	require.NoError(t, err)
	require.Len(t, enabled, 1)
	assert.Equal(t, "one", enabled[0].Content)
}
