package repository

import (
	"errors"
	"time"

	"prepos_backend/internal/metrics"
	"prepos_backend/internal/model"
	"prepos_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// ProfileInput 登录时从令牌带来的资料
type ProfileInput struct {
	UID      string
	Name     string
	Email    string
	PhotoURL string
}

// OnboardingUpdate 引导/目标切换写入的字段
type OnboardingUpdate struct {
	GoalType       model.GoalType
	ExamID         *string
	TargetRole     *string
	TargetDate     string
	DailyStudyTime float64
	Level          model.PrepLevel
}

// AIUsageKind 区分考试建议与就业导师两类配额
type AIUsageKind int

const (
	AIUsageRecommendation AIUsageKind = iota
	AIUsagePlacement
)

func (r *UserRepository) FindByID(id string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

// EnsureProfile 首次登录创建默认资料，之后只合并非空的 name/email/photo
// 并发首次登录时只有一方插入成功，另一方按已存在处理
func (r *UserRepository) EnsureProfile(in ProfileInput) (*model.User, bool, error) {
	var user model.User
	created := false

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		fresh := model.User{
			ID:               in.UID,
			Name:             in.Name,
			Email:            in.Email,
			PhotoURL:         in.PhotoURL,
			GoalType:         model.GoalExam,
			SubscriptionType: model.SubscriptionFree,
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&fresh)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 1 {
			created = true
			user = fresh
			return nil
		}

		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", in.UID).First(&user).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if in.Name != "" && in.Name != user.Name {
			updates["name"] = in.Name
		}
		if in.Email != "" && in.Email != user.Email {
			updates["email"] = in.Email
		}
		if in.PhotoURL != "" && in.PhotoURL != user.PhotoURL {
			updates["photo_url"] = in.PhotoURL
		}
		if user.GoalType == "" {
			updates["goal_type"] = model.GoalExam
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&user).Updates(updates).Error
	})
	if err != nil {
		return nil, false, err
	}
	return &user, created, nil
}

// UpdateOnboarding 调用方负责确认用户存在
func (r *UserRepository) UpdateOnboarding(uid string, in OnboardingUpdate) error {
	return r.DB.Model(&model.User{}).Where("id = ?", uid).Updates(map[string]interface{}{
		"goal_type":            in.GoalType,
		"exam_id":              in.ExamID,
		"target_role":          in.TargetRole,
		"target_date":          in.TargetDate,
		"daily_study_time":     in.DailyStudyTime,
		"placement_track":      in.GoalType == model.GoalPlacement,
		"level":                in.Level,
		"onboarding_completed": true,
	}).Error
}

// UpdateReadiness 后写覆盖
func (r *UserRepository) UpdateReadiness(uid string, score int) error {
	return r.DB.Model(&model.User{}).Where("id = ?", uid).Update("readiness_score", score).Error
}

func (r *UserRepository) UpdatePhotoURL(uid, url string) error {
	return r.DB.Model(&model.User{}).Where("id = ?", uid).Update("photo_url", url).Error
}

// RecordAIUsage 记录当日已使用的 AI 配额和生成的文本
func (r *UserRepository) RecordAIUsage(uid string, kind AIUsageKind, date, text string) error {
	updates := map[string]interface{}{
		"last_ai_recommendation_date": date,
		"last_ai_recommendation":      text,
	}
	if kind == AIUsagePlacement {
		updates = map[string]interface{}{
			"last_placement_ai_date":           date,
			"last_placement_ai_recommendation": text,
		}
	}
	return r.DB.Model(&model.User{}).Where("id = ?", uid).Updates(updates).Error
}

func (r *UserRepository) FindTopByXP(limit int) ([]model.User, error) {
	var users []model.User
	err := r.DB.Order("xp DESC").Order("id ASC").Limit(limit).Find(&users).Error
	return users, err
}

// ApplyStudySession 在同一事务内追加学习记录并更新连续天数与经验值
func (r *UserRepository) ApplyStudySession(session *model.StudySession) (*model.User, error) {
	var user model.User
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", session.UserID).
			First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		if err != nil {
			return err
		}

		if session.CreatedAt.IsZero() {
			session.CreatedAt = time.Now()
		}
		if err := tx.Create(session).Error; err != nil {
			return err
		}

		user.Streak = metrics.NextStreak(user.Streak, user.LastStudyDate, session.Date)
		user.XP += metrics.SessionXP(session.Duration)
		user.LastStudyDate = session.Date

		return tx.Model(&user).Updates(map[string]interface{}{
			"streak":          user.Streak,
			"xp":              user.XP,
			"last_study_date": user.LastStudyDate,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
