package repository

import (
	"time"

	"prepos_backend/internal/model"

	"gorm.io/gorm"
)

type MockTestRepository struct {
	DB      *gorm.DB
	Planner *QueryPlanner
}

func NewMockTestRepository(db *gorm.DB, planner *QueryPlanner) *MockTestRepository {
	return &MockTestRepository{DB: db, Planner: planner}
}

func (r *MockTestRepository) Create(attempt *model.MockTestAttempt) error {
	return r.DB.Create(attempt).Error
}

func (r *MockTestRepository) ListByUser(userID string, limit int) ([]model.MockTestAttempt, error) {
	return listRecent(r.DB, r.Planner, model.MockTestAttempt{}.TableName(), userID, limit,
		func(a *model.MockTestAttempt) time.Time { return a.CreatedAt })
}

type MockInterviewRepository struct {
	DB      *gorm.DB
	Planner *QueryPlanner
}

func NewMockInterviewRepository(db *gorm.DB, planner *QueryPlanner) *MockInterviewRepository {
	return &MockInterviewRepository{DB: db, Planner: planner}
}

func (r *MockInterviewRepository) Create(record *model.MockInterview) error {
	return r.DB.Create(record).Error
}

func (r *MockInterviewRepository) ListByUser(userID string, limit int) ([]model.MockInterview, error) {
	return listRecent(r.DB, r.Planner, model.MockInterview{}.TableName(), userID, limit,
		func(m *model.MockInterview) time.Time { return m.CreatedAt })
}
