package entity

import "time"

// UserDevice is a mobile device registered for push notifications.
// The FCM token is unique across devices; re-registering the same token
// reassigns it to the registering user.
type UserDevice struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	FCMToken  string    `json:"fcmToken"`
	Platform  string    `json:"platform"` // "ios" or "android".
	CreatedAt time.Time `json:"createdAt"`
}
