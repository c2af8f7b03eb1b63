package entity

import "time"

// Notification categories used by the application.
const (
	NotificationTypeWelcome  = "welcome"
	NotificationTypePurchase = "purchase"
	NotificationTypeCashback = "cashback"
	NotificationTypePromo    = "promo"
)

// Notification is a per-user alert shown in the app's notification center.
// Creating one increments the owner's unread counter; marking it read
// decrements the counter, floored at zero.
type Notification struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"` // Category tag, one of the NotificationType constants.
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
