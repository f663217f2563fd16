package repository

import (
	"context"
	"testing"
	"time"

	"prepos_backend/internal/model"
	"prepos_backend/internal/testhelpers"
	"prepos_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedExam(t *testing.T, db *gorm.DB) string {
	t.Helper()
	exam := model.Exam{Name: "Test Exam", Category: "Engineering"}
	require.NoError(t, db.Create(&exam).Error)

	subjects := []model.Subject{
		{ExamID: exam.ID, Name: "Operating Systems", Difficulty: "Hard"},
		{ExamID: exam.ID, Name: "DBMS"},
	}
	require.NoError(t, db.Omit("Topics").Create(&subjects).Error)

	w := 2.0
	topics := []model.Topic{
		{SubjectID: subjects[1].ID, Name: "Normalization", Weightage: &w, Difficulty: "Easy"},
		{SubjectID: subjects[1].ID, Name: "", Difficulty: ""},
		{SubjectID: subjects[0].ID, Name: "Paging", Difficulty: "Hard"},
	}
	require.NoError(t, db.Create(&topics).Error)
	return exam.ID
}

func TestGetExamWithSyllabusOrdersAndNormalizes(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	examID := seedExam(t, db)
	repo := NewCatalogRepository(db)

	syllabus, err := repo.GetExamWithSyllabus(examID)
	require.NoError(t, err)
	assert.Equal(t, "Test Exam", syllabus.Exam.Name)
	require.Len(t, syllabus.Subjects, 2)

	dbms := syllabus.Subjects[0]
	assert.Equal(t, "DBMS", dbms.Name)
	assert.Equal(t, model.DefaultDifficulty, dbms.Difficulty)
	require.Len(t, dbms.Topics, 2)
	// 空名称排在最前，补默认值
	assert.Equal(t, model.UntitledTopic, dbms.Topics[0].Name)
	assert.Equal(t, model.DefaultDifficulty, dbms.Topics[0].Difficulty)
	require.NotNil(t, dbms.Topics[0].Weightage)
	assert.Equal(t, 1.0, *dbms.Topics[0].Weightage)
	assert.Equal(t, "Normalization", dbms.Topics[1].Name)

	assert.Equal(t, "Operating Systems", syllabus.Subjects[1].Name)
}

func TestGetExamWithSyllabusMissing(t *testing.T) {
	repo := NewCatalogRepository(testhelpers.SetupTestDB(t))
	_, err := repo.GetExamWithSyllabus("missing")
	assert.ErrorIs(t, err, util.ErrExamNotFound)
}

func TestCatalogCacheServesFromRedis(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	examID := seedExam(t, db)
	rdb, mr := testhelpers.SetupTestRedis(t)
	cache := NewCatalogCache(NewCatalogRepository(db), rdb, time.Minute)
	ctx := context.Background()

	first, err := cache.GetSyllabus(ctx, examID)
	require.NoError(t, err)
	assert.True(t, mr.Exists(catalogSyllabusKey+examID))

	// 缓存命中时不再查库
	require.NoError(t, db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Topic{}).Error)
	second, err := cache.GetSyllabus(ctx, examID)
	require.NoError(t, err)
	assert.Equal(t, len(first.Subjects[0].Topics), len(second.Subjects[0].Topics))

	exams, err := cache.ListExams(ctx)
	require.NoError(t, err)
	assert.Len(t, exams, 1)
	assert.True(t, mr.Exists(catalogExamsKey))

	require.NoError(t, cache.Invalidate(ctx))
	assert.False(t, mr.Exists(catalogExamsKey))
	assert.False(t, mr.Exists(catalogSyllabusKey+examID))
}

func TestCatalogCacheEntriesExpire(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	seedExam(t, db)
	rdb, mr := testhelpers.SetupTestRedis(t)
	cache := NewCatalogCache(NewCatalogRepository(db), rdb, time.Minute)

	_, err := cache.ListExams(context.Background())
	require.NoError(t, err)
	assert.True(t, mr.Exists(catalogExamsKey))

	mr.FastForward(2 * time.Minute)
	assert.False(t, mr.Exists(catalogExamsKey))
}

func TestCatalogCacheDoesNotCacheMissingExam(t *testing.T) {
	rdb, mr := testhelpers.SetupTestRedis(t)
	cache := NewCatalogCache(NewCatalogRepository(testhelpers.SetupTestDB(t)), rdb, time.Minute)

	_, err := cache.GetSyllabus(context.Background(), "missing")
	assert.ErrorIs(t, err, util.ErrExamNotFound)
	assert.False(t, mr.Exists(catalogSyllabusKey+"missing"))
}

func TestCatalogCacheWithoutRedis(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	examID := seedExam(t, db)
	cache := NewCatalogCache(NewCatalogRepository(db), nil, 0)

	syllabus, err := cache.GetSyllabus(context.Background(), examID)
	require.NoError(t, err)
	assert.Len(t, syllabus.Subjects, 2)
	assert.NoError(t, cache.Invalidate(context.Background()))
}
