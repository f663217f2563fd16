package repository

import (
	"prepos_backend/internal/model"

	"gorm.io/gorm"
)

type MotivationRepository struct {
	DB *gorm.DB
}

func NewMotivationRepository(db *gorm.DB) *MotivationRepository {
	return &MotivationRepository{DB: db}
}

// GetEnabled 按 id 排序，保证每日轮换结果稳定
func (r *MotivationRepository) GetEnabled() ([]model.Motivation, error) {
	var motivations []model.Motivation
	err := r.DB.Where("is_enabled = ?", true).Order("id ASC").Find(&motivations).Error
	return motivations, err
}

func (r *MotivationRepository) Create(motivation *model.Motivation) error {
	return r.DB.Create(motivation).Error
}
