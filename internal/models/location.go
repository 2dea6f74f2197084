package models

import "time"

type Location struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint    `gorm:"index;not null" json:"customer_id"`
	Customer   Account `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	AddressName string `gorm:"size:100;default:'Home'" json:"address_name"`
	Description string `gorm:"size:255;not null" json:"description"`
	District    string `gorm:"size:100;not null" json:"district"`
	Province    string `gorm:"size:100;not null" json:"province"`

	// Set together from a successful geocode, never partially.
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	GoogleMapURL string  `gorm:"size:255" json:"google_map_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
