package repository

import (
	"time"

	"prepos_backend/internal/model"

	"gorm.io/gorm"
)

// StudySessionRepository 学习记录只追加；写入走 UserRepository.ApplyStudySession
type StudySessionRepository struct {
	DB      *gorm.DB
	Planner *QueryPlanner
}

func NewStudySessionRepository(db *gorm.DB, planner *QueryPlanner) *StudySessionRepository {
	return &StudySessionRepository{DB: db, Planner: planner}
}

func (r *StudySessionRepository) ListByUser(userID string, limit int) ([]model.StudySession, error) {
	return listRecent(r.DB, r.Planner, model.StudySession{}.TableName(), userID, limit,
		func(s *model.StudySession) time.Time { return s.CreatedAt })
}
