package models

import "time"

type Review struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	EstablishmentID *uint     `gorm:"index" json:"establishment_id"`
	TableID         *uint     `json:"table_id"`
	OrderID         *uint     `json:"order_id"`
	Stars           int       `gorm:"not null" json:"stars"` // 0..5
	Comment         string    `gorm:"size:500" json:"comment"`
	CreatedAt       time.Time `gorm:"index" json:"created_at"`
}
