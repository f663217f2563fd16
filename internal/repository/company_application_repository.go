package repository

import (
	"time"

	"prepos_backend/internal/model"

	"gorm.io/gorm"
)

type CompanyApplicationRepository struct {
	DB      *gorm.DB
	Planner *QueryPlanner
}

func NewCompanyApplicationRepository(db *gorm.DB, planner *QueryPlanner) *CompanyApplicationRepository {
	return &CompanyApplicationRepository{DB: db, Planner: planner}
}

func (r *CompanyApplicationRepository) Create(app *model.CompanyApplication) error {
	return r.DB.Create(app).Error
}

func (r *CompanyApplicationRepository) ListByUser(userID string, limit int) ([]model.CompanyApplication, error) {
	return listRecent(r.DB, r.Planner, model.CompanyApplication{}.TableName(), userID, limit,
		func(a *model.CompanyApplication) time.Time { return a.CreatedAt })
}
