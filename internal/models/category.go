package models

import "time"

type Category struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	EstablishmentID uint      `gorm:"index;not null" json:"establishment_id"`
	Name            string    `gorm:"size:100;not null" json:"name"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
