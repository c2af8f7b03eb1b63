package usecase

import (
	"context"

	"condor/internal/domain/entity"
)

// NotificationUsecase defines notification center use cases.
type NotificationUsecase interface {
	// ListNotifications returns the user's notifications, newest first.
	ListNotifications(ctx context.Context, userID int64) ([]*entity.Notification, error)

	// Notify creates an unread notification for the user and increments the
	// unread counter in the same logical step.
	Notify(ctx context.Context, userID int64, title, message, category string) (*entity.Notification, error)

	// MarkRead flips one owned notification to read and decrements the unread
	// counter, floored at zero. Marking an already-read notification is a no-op.
	MarkRead(ctx context.Context, userID, notificationID int64) error

	// MarkAllRead flips every unread notification of the user and resets the
	// unread counter to exactly zero, healing any counter drift.
	MarkAllRead(ctx context.Context, userID int64) error
}
