package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type InterviewType string

const (
	InterviewTechnicalDSA    InterviewType = "technical-dsa"
	InterviewCoreCS          InterviewType = "core-cs"
	InterviewHRBehavioral    InterviewType = "hr-behavioral"
	InterviewSystemDesign    InterviewType = "system-design"
	InterviewCompanySpecific InterviewType = "company-specific"
)

type InterviewSession struct {
	UUIDBase
	UserID     string        `gorm:"type:varchar(128);not null;index:idx_interview_sessions_user_created,priority:1" json:"userId"`
	Type       InterviewType `gorm:"size:32" json:"type"`
	Difficulty DsaDifficulty `gorm:"size:10" json:"difficulty"`
	Company    *string       `gorm:"size:120" json:"company"`
	FinalScore *float64      `json:"finalScore"`
	CreatedAt  time.Time     `gorm:"index:idx_interview_sessions_user_created,priority:2" json:"createdAt"`
}

func (InterviewSession) TableName() string {
	return "interview_sessions"
}

// InterviewFeedback AI 对单题的评价，Score 0-10
type InterviewFeedback struct {
	Score       float64 `json:"score"`
	Strengths   string  `json:"strengths"`
	Weaknesses  string  `json:"weaknesses"`
	ModelAnswer string  `json:"modelAnswer"`
	FollowUp    string  `json:"followUp"`
}

type InterviewQuestion struct {
	UUIDBase
	SessionID  string         `gorm:"type:varchar(36);not null;index" json:"sessionId"`
	UserID     string         `gorm:"type:varchar(128);not null;index:idx_interview_questions_user_created,priority:1" json:"userId"`
	Question   string         `gorm:"type:text;not null" json:"question"`
	Topic      string         `gorm:"size:120" json:"topic"`
	Difficulty DsaDifficulty  `gorm:"size:10" json:"difficulty"`
	UserAnswer *string        `gorm:"type:text" json:"userAnswer"`
	AIFeedback datatypes.JSON `gorm:"column:ai_feedback" json:"aiFeedback"`
	Score      *float64       `json:"score"`
	CreatedAt  time.Time      `gorm:"index:idx_interview_questions_user_created,priority:2" json:"createdAt"`
}

func (InterviewQuestion) TableName() string {
	return "interview_questions"
}

func (q *InterviewQuestion) SetFeedback(feedback InterviewFeedback) {
	raw, _ := json.Marshal(feedback)
	q.AIFeedback = datatypes.JSON(raw)
}

// Feedback 未评估时返回 nil
func (q *InterviewQuestion) Feedback() *InterviewFeedback {
	if len(q.AIFeedback) == 0 || string(q.AIFeedback) == "null" {
		return nil
	}
	var feedback InterviewFeedback
	if err := json.Unmarshal(q.AIFeedback, &feedback); err != nil {
		return nil
	}
	return &feedback
}
