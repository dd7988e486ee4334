package models

import "time"

type OrderStatus string

const (
	OrderStatusSent   OrderStatus = "SENT"
	OrderStatusServed OrderStatus = "SERVED"
	OrderStatusClosed OrderStatus = "CLOSED"
)

// ValidOrderStatus reports whether s is one of the known statuses.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusSent, OrderStatusServed, OrderStatusClosed:
		return true
	}
	return false
}

// Order is append-only history: it is never deleted, only its items change.
// Total is derived from the items and recomputed after every item edit.
type Order struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	EstablishmentID uint        `gorm:"index;not null" json:"establishment_id"`
	TableID         uint        `gorm:"index;not null" json:"table_id"`
	Table           *Table      `json:"table,omitempty"`
	WaiterID        *uint       `gorm:"index" json:"waiter_id"`
	Status          OrderStatus `gorm:"size:20;not null" json:"status"`
	Total           float64     `gorm:"not null;default:0" json:"total"`
	CreatedAt       time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`

	Items []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// OrderItem carries the product price as it was when the order was placed, so
// later price changes never alter historical orders. Quantity is at least 1
// while the row exists; setting it to 0 deletes the row instead.
type OrderItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"index;not null" json:"order_id"`
	ProductID uint      `gorm:"index;not null" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	UnitPrice float64   `gorm:"not null" json:"unit_price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
