package repository

import (
	"sync"
	"testing"

	"prepos_backend/internal/model"
	"prepos_backend/internal/testhelpers"
	"prepos_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListOrSeedIsIdempotent(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repo := NewDsaTopicRepository(db)

	first, err := repo.ListOrSeed("u1")
	require.NoError(t, err)
	require.Len(t, first, len(model.DefaultDsaTopics))
	assert.Equal(t, "Arrays and Strings", first[0].Name)
	assert.Equal(t, "Two Pointers", first[len(first)-1].Name)

	second, err := repo.ListOrSeed("u1")
	require.NoError(t, err)
	assert.Len(t, second, len(model.DefaultDsaTopics))

	other, err := repo.ListOrSeed("u2")
	require.NoError(t, err)
	assert.Len(t, other, len(model.DefaultDsaTopics))
}

func TestListOrSeedConcurrentFirstAccess(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repo := NewDsaTopicRepository(db)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.ListOrSeed("u1")
		}()
	}
	wg.Wait()

	var count int64
	db.Model(&model.DsaTopic{}).Where("user_id = ?", "u1").Count(&count)
	assert.Equal(t, int64(len(model.DefaultDsaTopics)), count)
}

func TestToggleOnlyOwnTopics(t *testing.T) {
	repo := NewDsaTopicRepository(testhelpers.SetupTestDB(t))
	topics, err := repo.ListOrSeed("u1")
	require.NoError(t, err)

	toggled, err := repo.Toggle("u1", topics[0].ID, true)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	_, err = repo.Toggle("u2", topics[0].ID, false)
	assert.ErrorIs(t, err, util.ErrDsaTopicNotFound)

	reloaded, err := repo.ListOrSeed("u1")
	require.NoError(t, err)
	assert.True(t, reloaded[0].Completed)
}
