package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"condor/internal/domain/entity"
	domainerrors "condor/internal/domain/errors"
	"condor/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestDeviceService(t *testing.T) (*fakeStore, usecase.DeviceUsecase) {
	t.Helper()

	store := newFakeStore()
	service := NewDeviceService(DeviceServiceParams{
		DeviceRepo: fakeDeviceRepo{store},
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return store, service
}

func TestDeviceService_RegisterDevice(t *testing.T) {
	store, service := createTestDeviceService(t)
	ctx := context.Background()
	user := store.putUser(&entity.User{Email: "device@example.com"})

	device, err := service.RegisterDevice(ctx, user.ID, &usecase.RegisterDeviceInput{
		FCMToken: "fcm-token-1",
		Platform: "android",
	})
	require.NoError(t, err)
	assert.NotZero(t, device.ID)
	assert.Len(t, store.devices, 1)
}

func TestDeviceService_RegisterDevice_ReassignsToken(t *testing.T) {
	store, service := createTestDeviceService(t)
	ctx := context.Background()
	first := store.putUser(&entity.User{Email: "first@example.com"})
	second := store.putUser(&entity.User{Email: "second@example.com"})

	_, err := service.RegisterDevice(ctx, first.ID, &usecase.RegisterDeviceInput{FCMToken: "shared-token", Platform: "ios"})
	require.NoError(t, err)

	// The same physical device logging into another account moves the token.
	_, err = service.RegisterDevice(ctx, second.ID, &usecase.RegisterDeviceInput{FCMToken: "shared-token", Platform: "ios"})
	require.NoError(t, err)

	require.Len(t, store.devices, 1)
	for _, device := range store.devices {
		assert.Equal(t, second.ID, device.UserID)
	}
}

func TestDeviceService_RegisterDevice_NilInput(t *testing.T) {
	store, service := createTestDeviceService(t)

	device, err := service.RegisterDevice(context.Background(), 1, nil)
	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	assert.Nil(t, device)
	assert.Empty(t, store.devices)
}
