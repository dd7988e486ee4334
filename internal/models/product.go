package models

import "time"

type Product struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	EstablishmentID uint      `gorm:"index;not null" json:"establishment_id"`
	CategoryID      *uint     `gorm:"index" json:"category_id"`
	Category        *Category `json:"category,omitempty"`
	Name            string    `gorm:"size:150;not null" json:"name"`
	Price           float64   `gorm:"not null" json:"price"`
	Description     string    `gorm:"size:500" json:"description"`
	ImageURL        string    `gorm:"size:255" json:"image_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
