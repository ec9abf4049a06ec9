package entities

import "time"

// NotificationCategory classifies in-app notifications
type NotificationCategory string

const (
	CategoryBooking   NotificationCategory = "booking"
	CategoryPayment   NotificationCategory = "payment"
	CategoryReview    NotificationCategory = "review"
	CategoryPromotion NotificationCategory = "promotion"
	CategoryReminder  NotificationCategory = "reminder"
	CategorySystem    NotificationCategory = "system"
)

// Notification is an in-app notification for a user
type Notification struct {
	ID        string               `json:"id" db:"id"`
	UserID    string               `json:"user_id" db:"user_id"`
	Category  NotificationCategory `json:"category" db:"category"`
	Title     string               `json:"title" db:"title"`
	Message   string               `json:"message" db:"message"`
	IsRead    bool                 `json:"is_read" db:"is_read"`
	CreatedAt time.Time            `json:"created_at" db:"created_at"`
}
