package service

import (
	"context"
	"testing"
	"time"

	"prepos_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogSession_StreakAndXP(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.createUser(t, "u1")

	name := "  DBMS "
	first, err := f.study.LogSession(ctx, "u1", StudySessionRequest{Duration: 45, SubjectName: &name})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Streak)
	assert.Equal(t, 81, first.XP)
	assert.Equal(t, "2025-03-10", first.Session.Date)
	require.NotNil(t, first.Session.SubjectName)
	assert.Equal(t, "DBMS", *first.Session.SubjectName)
	assert.Nil(t, first.Session.SubjectID)

	// 同一天再次记录不增加连续天数
	second, err := f.study.LogSession(ctx, "u1", StudySessionRequest{Duration: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, second.Streak)
	assert.Equal(t, 99, second.XP)

	f.calendar.Now = func() time.Time { return fixedNow.AddDate(0, 0, 1) }
	third, err := f.study.LogSession(ctx, "u1", StudySessionRequest{Duration: 30})
	require.NoError(t, err)
	assert.Equal(t, 2, third.Streak)

	f.calendar.Now = func() time.Time { return fixedNow.AddDate(0, 0, 5) }
	gap, err := f.study.LogSession(ctx, "u1", StudySessionRequest{Duration: 30})
	require.NoError(t, err)
	assert.Equal(t, 1, gap.Streak)

	sessions, err := f.study.ListSessions("u1")
	require.NoError(t, err)
	require.Len(t, sessions, 4)
	assert.Equal(t, "2025-03-15", sessions[0].Date)
}

func TestLogSession_Validation(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.createUser(t, "u1")

	for _, minutes := range []int{0, -5, MaxSessionMinutes + 1} {
		_, err := f.study.LogSession(ctx, "u1", StudySessionRequest{Duration: minutes})
		assert.ErrorIs(t, err, util.ErrInvalidInput, "duration %d", minutes)
	}

	_, err := f.study.LogSession(ctx, "ghost", StudySessionRequest{Duration: 30})
	assert.ErrorIs(t, err, util.ErrUserNotFound)

	user, err := f.users.FindByID("u1")
	require.NoError(t, err)
	assert.Zero(t, user.XP)
	assert.Zero(t, user.Streak)
}
