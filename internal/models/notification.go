package models

import "time"

const (
	NotificationOrderCreated   = "order_created"
	NotificationOrderUpdated   = "order_updated"
	NotificationCloseRequested = "table_close_requested"
	NotificationWaiterCalled   = "waiter_called"
	NotificationReviewCreated  = "review_created"
)

// Notification is the persisted side of a broadcast event. Writing it is
// best-effort: the broadcast and the originating mutation go ahead even if
// this row is never created.
type Notification struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	EstablishmentID uint   `gorm:"index;not null" json:"establishment_id"`
	Type            string `gorm:"size:50;index;not null" json:"type"`
	TableID         *uint  `json:"table_id"`
	OrderID         *uint  `json:"order_id"`
	Title           string `gorm:"size:150" json:"title"`
	Body            string `gorm:"size:500" json:"body"`

	Attended           bool       `gorm:"not null;default:false" json:"attended"`
	AttendedByWaiterID *uint      `json:"attended_by_waiter_id"`
	AttendedAt         *time.Time `json:"attended_at"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
