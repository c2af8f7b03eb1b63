package usecase

import (
	"context"

	"condor/internal/domain/entity"
)

// RegisterDeviceInput carries a device push token registration.
type RegisterDeviceInput struct {
	FCMToken string `json:"fcmToken" validate:"required"`
	Platform string `json:"platform" validate:"required,oneof=ios android"`
}

// DeviceUsecase defines push device registration use cases.
type DeviceUsecase interface {
	// RegisterDevice stores or reassigns a device token for the user.
	RegisterDevice(ctx context.Context, userID int64, input *RegisterDeviceInput) (*entity.UserDevice, error)
}
