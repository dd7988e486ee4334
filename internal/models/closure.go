package models

import "time"

// Closure seals an operating period. Tables holds the client-supplied
// snapshot of the tables as they looked at closing time, stored verbatim.
type Closure struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	EstablishmentID uint      `gorm:"index;not null" json:"establishment_id"`
	ClosedAt        time.Time `gorm:"index;not null" json:"closed_at"`
	Tables          string    `gorm:"type:jsonb" json:"tables"`
	CreatedAt       time.Time `json:"created_at"`
}
