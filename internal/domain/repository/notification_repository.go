package repository

import (
	"context"
	"errors"

	"condor/internal/domain/entity"
)

// ErrNotificationNotFound is returned when a notification lookup fails.
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationRepository defines persistence operations for per-user notifications.
// The unread counter on the user record is maintained by the usecase layer in the
// same transaction as the flag changes here.
type NotificationRepository interface {
	// ListByUser returns the user's notifications, newest first.
	ListByUser(ctx context.Context, userID int64) ([]*entity.Notification, error)

	// FindByID retrieves a single notification by its unique ID.
	FindByID(ctx context.Context, id int64) (*entity.Notification, error)

	// Create persists a new unread notification and fills in the generated ID.
	Create(ctx context.Context, notification *entity.Notification) error

	// MarkRead flips the read flag of a single notification.
	MarkRead(ctx context.Context, id int64) error

	// MarkAllReadByUser flips every unread notification of the user and returns
	// the number of rows affected.
	MarkAllReadByUser(ctx context.Context, userID int64) (int64, error)
}
