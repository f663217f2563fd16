package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"prepos_backend/internal/model"
	"prepos_backend/internal/repository"
	"prepos_backend/internal/util"
	"prepos_backend/pkg/logger"

	"go.uber.org/zap"
)

type ProfileService struct {
	UserRepo *repository.UserRepository
	Catalog  *repository.CatalogCache
	Storage  *StorageService
	Calendar *Calendar
}

func NewProfileService(userRepo *repository.UserRepository, catalog *repository.CatalogCache, storage *StorageService, calendar *Calendar) *ProfileService {
	return &ProfileService{
		UserRepo: userRepo,
		Catalog:  catalog,
		Storage:  storage,
		Calendar: calendar,
	}
}

type OnboardingRequest struct {
	GoalType       model.GoalType  `json:"goalType" binding:"required,oneof=exam placement"`
	ExamID         string          `json:"examId"`
	TargetRole     string          `json:"targetRole" binding:"max=120"`
	TargetDate     string          `json:"targetDate" binding:"required"`
	DailyStudyTime float64         `json:"dailyStudyTime" binding:"required,min=1,max=16"`
	Level          model.PrepLevel `json:"level" binding:"required,oneof=Beginner Intermediate Advanced"`
}

// GoalUpdateRequest 未提供的字段沿用当前资料
type GoalUpdateRequest struct {
	GoalType       *model.GoalType  `json:"goalType" binding:"omitempty,oneof=exam placement"`
	ExamID         *string          `json:"examId"`
	TargetRole     *string          `json:"targetRole" binding:"omitempty,max=120"`
	TargetDate     *string          `json:"targetDate"`
	DailyStudyTime *float64         `json:"dailyStudyTime" binding:"omitempty,min=1,max=16"`
	Level          *model.PrepLevel `json:"level" binding:"omitempty,oneof=Beginner Intermediate Advanced"`
}

// EnsureProfile 登录时调用，首次创建默认资料
func (s *ProfileService) EnsureProfile(in repository.ProfileInput) (*model.User, error) {
	user, created, err := s.UserRepo.EnsureProfile(in)
	if err != nil {
		return nil, err
	}
	if created {
		logger.Log.Info("User profile created", zap.String("user_id", in.UID))
	}
	return user, nil
}

func (s *ProfileService) GetProfile(uid string) (*model.User, error) {
	return s.UserRepo.FindByID(uid)
}

func (s *ProfileService) CompleteOnboarding(ctx context.Context, uid string, req OnboardingRequest) (*model.User, error) {
	if _, err := s.UserRepo.FindByID(uid); err != nil {
		return nil, err
	}

	update, err := s.resolveGoal(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.UserRepo.UpdateOnboarding(uid, update); err != nil {
		return nil, err
	}
	return s.UserRepo.FindByID(uid)
}

func (s *ProfileService) UpdateGoal(ctx context.Context, uid string, req GoalUpdateRequest) (*model.User, error) {
	user, err := s.UserRepo.FindByID(uid)
	if err != nil {
		return nil, err
	}

	merged := OnboardingRequest{
		GoalType:       user.GoalType,
		TargetDate:     s.Calendar.Today(),
		DailyStudyTime: user.DailyHours(),
		Level:          model.LevelBeginner,
	}
	if merged.GoalType == "" {
		merged.GoalType = model.GoalExam
	}
	if user.ExamID != nil {
		merged.ExamID = *user.ExamID
	}
	if user.TargetRole != nil {
		merged.TargetRole = *user.TargetRole
	}
	if user.TargetDate != nil && *user.TargetDate != "" {
		merged.TargetDate = *user.TargetDate
	}
	if user.Level != nil {
		merged.Level = *user.Level
	}

	if req.GoalType != nil {
		merged.GoalType = *req.GoalType
	}
	if req.ExamID != nil {
		merged.ExamID = *req.ExamID
	}
	if req.TargetRole != nil {
		merged.TargetRole = *req.TargetRole
	}
	if req.TargetDate != nil {
		merged.TargetDate = *req.TargetDate
	}
	if req.DailyStudyTime != nil {
		merged.DailyStudyTime = *req.DailyStudyTime
	}
	if req.Level != nil {
		merged.Level = *req.Level
	}

	update, err := s.resolveGoal(ctx, merged)
	if err != nil {
		return nil, err
	}
	if err := s.UserRepo.UpdateOnboarding(uid, update); err != nil {
		return nil, err
	}
	logger.Log.Info("Goal updated",
		zap.String("user_id", uid),
		zap.String("from", string(user.GoalType)),
		zap.String("to", string(update.GoalType)))
	return s.UserRepo.FindByID(uid)
}

// resolveGoal 考试模式必须选择已存在的考试；就业模式清空考试并补默认岗位
func (s *ProfileService) resolveGoal(ctx context.Context, req OnboardingRequest) (repository.OnboardingUpdate, error) {
	var update repository.OnboardingUpdate

	switch req.GoalType {
	case model.GoalExam, model.GoalPlacement:
	default:
		return update, util.Invalid("goalType must be exam or placement")
	}
	if _, err := time.Parse(util.DateFormat, req.TargetDate); err != nil {
		return update, util.Invalid("Target date must be in YYYY-MM-DD format.")
	}
	if req.DailyStudyTime < 1 || req.DailyStudyTime > 16 {
		return update, util.Invalid("dailyStudyTime must be between 1 and 16 hours")
	}
	switch req.Level {
	case model.LevelBeginner, model.LevelIntermediate, model.LevelAdvanced:
	default:
		return update, util.Invalid("level must be Beginner, Intermediate or Advanced")
	}

	update = repository.OnboardingUpdate{
		GoalType:       req.GoalType,
		TargetDate:     req.TargetDate,
		DailyStudyTime: req.DailyStudyTime,
		Level:          req.Level,
	}

	if req.GoalType == model.GoalPlacement {
		role := strings.TrimSpace(req.TargetRole)
		if role == "" {
			role = model.DefaultTargetRole
		}
		update.TargetRole = &role
		return update, nil
	}

	examID := strings.TrimSpace(req.ExamID)
	if examID == "" {
		return update, util.ErrExamRequired
	}
	if _, err := s.Catalog.GetSyllabus(ctx, examID); err != nil {
		return update, err
	}
	update.ExamID = &examID
	return update, nil
}

// UploadAvatar 校验图片内容后上传并更新资料中的头像地址
func (s *ProfileService) UploadAvatar(ctx context.Context, uid string, file *multipart.FileHeader) (string, error) {
	if _, err := s.UserRepo.FindByID(uid); err != nil {
		return "", err
	}
	if file.Size > util.MaxAvatarSize {
		return "", util.Invalid("avatar must be at most %d MB", util.MaxAvatarSize>>20)
	}
	if !util.HasAllowedExtension(file.Filename, util.AllowedImageExtensions) {
		return "", util.Invalid("unsupported avatar file type")
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	mimeType, err := util.ValidateMimeType(src, []string{util.MimeImage})
	if err != nil {
		return "", util.Invalid("avatar content is not an image")
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	url, err := s.Storage.Upload(ctx, AvatarKey(uid, file.Filename), src, file.Size, mimeType)
	if err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}
	if err := s.UserRepo.UpdatePhotoURL(uid, url); err != nil {
		return "", err
	}
	return url, nil
}
