package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Public reference shared with the customer, safer than a raw id.
	Reference string `gorm:"size:36;uniqueIndex;not null" json:"reference"`

	CustomerID uint    `gorm:"index;not null" json:"customer_id"`
	Customer   Account `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer"`

	TechnicianID uint    `gorm:"index;not null" json:"technician_id"`
	Technician   Account `gorm:"foreignKey:TechnicianID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"technician"`

	LocationID uint     `gorm:"index;not null" json:"location_id"`
	Location   Location `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"location"`

	Service     string `gorm:"size:100;not null" json:"service"`
	Description string `gorm:"size:255" json:"description"`

	ScheduledAt time.Time `json:"scheduled_at"`

	Status string `gorm:"size:20;default:'PENDING'" json:"status"`

	Notes       string     `gorm:"size:255" json:"notes"`
	ConfirmedAt *time.Time `json:"confirmed_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
