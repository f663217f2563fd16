package model

import "time"

// Motivation 每日激励短句，按日期轮换
type Motivation struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	IsEnabled bool      `gorm:"default:true" json:"isEnabled"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Motivation) TableName() string {
	return "motivations"
}
