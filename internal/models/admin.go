package models

import "time"

type Admin struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	EstablishmentID uint      `gorm:"index;not null" json:"establishment_id"`
	Username        string    `gorm:"size:100;not null;index" json:"username"`
	PasswordHash    string    `gorm:"size:255;not null" json:"-"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
