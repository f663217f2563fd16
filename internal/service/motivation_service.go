package service

import (
	"prepos_backend/internal/repository"
)

const defaultMotivation = "Small daily progress beats occasional marathons."

type MotivationService struct {
	MotivationRepo *repository.MotivationRepository
	Calendar       *Calendar
}

func NewMotivationService(motivationRepo *repository.MotivationRepository, calendar *Calendar) *MotivationService {
	return &MotivationService{MotivationRepo: motivationRepo, Calendar: calendar}
}

// GetDailyMotivation 按自纪元以来的天数在启用的短句中轮换，同一天内结果不变
func (s *MotivationService) GetDailyMotivation() (string, error) {
	enabled, err := s.MotivationRepo.GetEnabled()
	if err != nil {
		return "", err
	}
	if len(enabled) == 0 {
		return defaultMotivation, nil
	}

	now := s.Calendar.Current()
	_, offset := now.Zone()
	day := (now.Unix() + int64(offset)) / 86400
	return enabled[day%int64(len(enabled))].Content, nil
}
