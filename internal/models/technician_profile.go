package models

import "time"

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

type TechnicianProfile struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	AccountID uint `gorm:"uniqueIndex;not null" json:"account_id"`

	Specialization  string `gorm:"size:100" json:"specialization"`
	ExperienceYears int    `gorm:"default:0" json:"experience_years"`
	District        string `gorm:"size:100" json:"district"`
	Province        string `gorm:"size:100" json:"province"`

	Status     ApprovalStatus `gorm:"size:20;default:'PENDING'" json:"status"`
	ReviewedAt *time.Time     `json:"reviewed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
