package model

import "time"

// StudySession 只追加，不修改不删除
type StudySession struct {
	UUIDBase
	UserID      string    `gorm:"type:varchar(128);not null;index:idx_study_sessions_user_created,priority:1" json:"userId"`
	Date        string    `gorm:"size:10;not null" json:"date"`
	Duration    int       `gorm:"not null" json:"duration"` // 分钟
	SubjectID   *string   `gorm:"type:varchar(36)" json:"subjectId"`
	SubjectName *string   `gorm:"size:120" json:"subjectName"`
	CreatedAt   time.Time `gorm:"index:idx_study_sessions_user_created,priority:2" json:"createdAt"`
}

func (StudySession) TableName() string {
	return "study_sessions"
}
