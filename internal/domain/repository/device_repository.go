package repository

import (
	"context"
	"errors"

	"condor/internal/domain/entity"
)

// ErrDeviceNotFound is returned when a device lookup fails.
var ErrDeviceNotFound = errors.New("device not found")

// DeviceRepository defines persistence operations for push-notification devices.
type DeviceRepository interface {
	// Upsert registers a device token for a user. A token already registered to
	// another user is reassigned to the given user.
	Upsert(ctx context.Context, device *entity.UserDevice) error

	// ListByUser returns the user's registered devices.
	ListByUser(ctx context.Context, userID int64) ([]*entity.UserDevice, error)

	// DeleteByToken removes a device by its FCM token. Used to prune tokens
	// Firebase reports as invalid or unregistered.
	DeleteByToken(ctx context.Context, token string) error
}
