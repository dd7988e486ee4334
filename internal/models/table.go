package models

import "time"

// Table is one seating period of a physical table. The number is whatever the
// staff typed in, so it is not unique over time: closing a table and opening
// the same number again creates a new row, keeping historical orders attached
// to the period they belong to. At most one open row may exist per
// (establishment, number). Rows are never deleted.
type Table struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	EstablishmentID uint       `gorm:"index;not null" json:"establishment_id"`
	Number          string     `gorm:"size:20;not null;index" json:"number"`
	Open            bool       `gorm:"not null;default:true" json:"open"`
	ServiceFeePaid  bool       `gorm:"not null;default:false" json:"service_fee_paid"`
	ClosedAt        *time.Time `json:"closed_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	Orders []Order `gorm:"constraint:OnDelete:CASCADE" json:"orders,omitempty"`
}
