package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type MockMode string

const (
	MockModeExam      MockMode = "exam"
	MockModePlacement MockMode = "placement"
)

type MockSegment string

const (
	SegmentCoding     MockSegment = "coding"
	SegmentAptitude   MockSegment = "aptitude"
	SegmentHR         MockSegment = "hr"
	SegmentBehavioral MockSegment = "behavioral"
)

type MockTestAttempt struct {
	UUIDBase
	UserID         string         `gorm:"type:varchar(128);not null;index:idx_mock_tests_user_created,priority:1" json:"userId"`
	ExamID         string         `gorm:"size:64" json:"examId"`
	Score          int            `json:"score"`
	TotalQuestions int            `json:"totalQuestions"`
	WeakSubjects   datatypes.JSON `json:"weakSubjects"`
	Mode           MockMode       `gorm:"size:16;default:'exam'" json:"mode"`
	Segment        MockSegment    `gorm:"size:16;default:'coding'" json:"segment"`
	CreatedAt      time.Time      `gorm:"index:idx_mock_tests_user_created,priority:2" json:"createdAt"`
}

func (MockTestAttempt) TableName() string {
	return "mock_tests"
}

func (a *MockTestAttempt) SetWeakSubjects(subjects []string) {
	if subjects == nil {
		subjects = []string{}
	}
	raw, _ := json.Marshal(subjects)
	a.WeakSubjects = datatypes.JSON(raw)
}

func (a *MockTestAttempt) WeakSubjectList() []string {
	var subjects []string
	if len(a.WeakSubjects) == 0 {
		return subjects
	}
	_ = json.Unmarshal(a.WeakSubjects, &subjects)
	return subjects
}

// Percent 单次得分百分比，总题数至少按 1 计
func (a *MockTestAttempt) Percent() float64 {
	total := a.TotalQuestions
	if total < 1 {
		total = 1
	}
	return float64(a.Score) / float64(total) * 100
}

type MockInterviewMode string

const (
	InterviewModeCoding     MockInterviewMode = "coding"
	InterviewModeHR         MockInterviewMode = "hr"
	InterviewModeBehavioral MockInterviewMode = "behavioral"
)

// MockInterview 手动记录或 AI 评估的模拟面试，分数 0-100
type MockInterview struct {
	UUIDBase
	UserID          string            `gorm:"type:varchar(128);not null;index:idx_mock_interviews_user_created,priority:1" json:"userId"`
	Mode            MockInterviewMode `gorm:"size:16" json:"mode"`
	Score           int               `json:"score"`
	FeedbackSummary string            `gorm:"type:text" json:"feedbackSummary"`
	CreatedAt       time.Time         `gorm:"index:idx_mock_interviews_user_created,priority:2" json:"createdAt"`
}

func (MockInterview) TableName() string {
	return "mock_interviews"
}
