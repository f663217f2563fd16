package model

import "time"

type ApplicationStatus string

const (
	StatusApplied   ApplicationStatus = "applied"
	StatusOA        ApplicationStatus = "oa"
	StatusInterview ApplicationStatus = "interview"
	StatusOffer     ApplicationStatus = "offer"
	StatusRejected  ApplicationStatus = "rejected"
)

type CompanyApplication struct {
	UUIDBase
	UserID      string            `gorm:"type:varchar(128);not null;index:idx_company_apps_user_created,priority:1" json:"userId"`
	CompanyName string            `gorm:"size:120;not null" json:"companyName"`
	Role        string            `gorm:"size:120;not null" json:"role"`
	Status      ApplicationStatus `gorm:"size:16;not null" json:"status"`
	Round       string            `gorm:"size:120" json:"round"`
	Result      string            `gorm:"size:120;default:'pending'" json:"result"`
	CreatedAt   time.Time         `gorm:"index:idx_company_apps_user_created,priority:2" json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func (CompanyApplication) TableName() string {
	return "company_applications"
}
