package model

import (
	"time"
)

type GoalType string

const (
	GoalExam      GoalType = "exam"
	GoalPlacement GoalType = "placement"
)

type SubscriptionType string

const (
	SubscriptionFree SubscriptionType = "free"
	SubscriptionPro  SubscriptionType = "pro"
)

type PrepLevel string

const (
	LevelBeginner     PrepLevel = "Beginner"
	LevelIntermediate PrepLevel = "Intermediate"
	LevelAdvanced     PrepLevel = "Advanced"
)

const DefaultTargetRole = "Software Developer"

// swagger:model User
// User 主键为身份提供方下发的 uid
type User struct {
	ID                  string           `gorm:"primaryKey;type:varchar(128)" json:"uid"`
	Name                string           `gorm:"size:100" json:"name"`
	Email               string           `gorm:"size:191;index" json:"email"`
	PhotoURL            string           `gorm:"size:512" json:"photoURL"`
	GoalType            GoalType         `gorm:"size:16;default:'exam'" json:"goalType"`
	ExamID              *string          `gorm:"size:36" json:"examId"`
	TargetRole          *string          `gorm:"size:120" json:"targetRole"`
	TargetDate          *string          `gorm:"size:10" json:"targetDate"` // YYYY-MM-DD
	DailyStudyTime      *float64         `json:"dailyStudyTime"`            // 小时
	PlacementTrack      bool             `gorm:"default:false" json:"placementTrack"`
	Level               *PrepLevel       `gorm:"size:16" json:"level"`
	ReadinessScore      int              `gorm:"default:0" json:"readinessScore"`
	Streak              int              `gorm:"default:0" json:"streak"`
	XP                  int              `gorm:"default:0;index" json:"xp"`
	LastStudyDate       string           `gorm:"size:10" json:"-"`
	SubscriptionType    SubscriptionType `gorm:"size:8;default:'free'" json:"subscriptionType"`
	OnboardingCompleted bool             `gorm:"default:false" json:"onboardingCompleted"`

	LastAIRecommendationDate      string `gorm:"column:last_ai_recommendation_date;size:10" json:"lastAiRecommendationDate,omitempty"`
	LastAIRecommendation          string `gorm:"column:last_ai_recommendation;type:text" json:"lastAiRecommendation,omitempty"`
	LastPlacementAIDate           string `gorm:"column:last_placement_ai_date;size:10" json:"lastPlacementAiDate,omitempty"`
	LastPlacementAIRecommendation string `gorm:"column:last_placement_ai_recommendation;type:text" json:"lastPlacementAiRecommendation,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsPro() bool {
	return u.SubscriptionType == SubscriptionPro
}

// DailyHours 未设置时按每天 2 小时计算
func (u *User) DailyHours() float64 {
	if u.DailyStudyTime == nil {
		return 2
	}
	return *u.DailyStudyTime
}

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	UID      string `json:"uid"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
	XP       int    `json:"xp"`
	Streak   int    `json:"streak"`
}
