package repository

import (
	"errors"
	"strings"

	"prepos_backend/internal/model"
	"prepos_backend/internal/util"

	"gorm.io/gorm"
)

// CatalogRepository 只读考试目录
type CatalogRepository struct {
	DB *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

func (r *CatalogRepository) ListExams() ([]model.Exam, error) {
	var exams []model.Exam
	err := r.DB.Order("name ASC").Find(&exams).Error
	return exams, err
}

// GetExamWithSyllabus 科目与知识点均按名称排序，缺失字段补默认值
func (r *CatalogRepository) GetExamWithSyllabus(examID string) (*model.Syllabus, error) {
	var exam model.Exam
	err := r.DB.
		Preload("Subjects", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		Preload("Subjects.Topics", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		Where("id = ?", examID).
		First(&exam).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrExamNotFound
	}
	if err != nil {
		return nil, err
	}

	subjects := exam.Subjects
	exam.Subjects = nil
	for i := range subjects {
		normalizeSubject(&subjects[i])
	}
	if subjects == nil {
		subjects = []model.Subject{}
	}
	return &model.Syllabus{Exam: exam, Subjects: subjects}, nil
}

func normalizeSubject(s *model.Subject) {
	if strings.TrimSpace(s.Name) == "" {
		s.Name = model.UntitledSubject
	}
	if strings.TrimSpace(s.Difficulty) == "" {
		s.Difficulty = model.DefaultDifficulty
	}
	if s.Topics == nil {
		s.Topics = []model.Topic{}
	}
	for i := range s.Topics {
		t := &s.Topics[i]
		if strings.TrimSpace(t.Name) == "" {
			t.Name = model.UntitledTopic
		}
		if strings.TrimSpace(t.Difficulty) == "" {
			t.Difficulty = model.DefaultDifficulty
		}
		if t.Weightage == nil {
			w := model.DefaultWeightage
			t.Weightage = &w
		}
	}
}
