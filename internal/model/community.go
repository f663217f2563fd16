package model

import "time"

type PostType string

const (
	PostJob        PostType = "job"
	PostReferral   PostType = "referral"
	PostDiscussion PostType = "discussion"
)

const AnonymousAuthor = "Anonymous"

// Post 社区动态
type Post struct {
	UUIDBase
	UserID       string    `gorm:"type:varchar(128);index" json:"userId"`
	UserName     string    `gorm:"size:100" json:"userName"`
	UserPhotoURL string    `gorm:"size:512" json:"userPhotoURL"`
	Type         PostType  `gorm:"size:16;default:'discussion'" json:"type"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`
}

func (Post) TableName() string {
	return "posts"
}
