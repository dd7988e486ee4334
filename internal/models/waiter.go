package models

import "time"

type Waiter struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	EstablishmentID uint   `gorm:"index;not null" json:"establishment_id"`
	Name            string `gorm:"size:100;not null" json:"name"`
	PasswordHash    string `gorm:"size:255;not null" json:"-"`
	// Soft disable; disabled waiters keep their historical orders.
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
