package impl

import (
	"context"
	"log/slog"

	deliverycontext "condor/internal/delivery/context"
	"condor/internal/domain/entity"
	domainerrors "condor/internal/domain/errors"
	"condor/internal/domain/repository"
	"condor/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// deviceService implements the DeviceUsecase interface.
type deviceService struct {
	deviceRepo repository.DeviceRepository
	logger     *slog.Logger
}

// DeviceServiceParams holds dependencies for DeviceService, injected by Fx.
type DeviceServiceParams struct {
	fx.In

	DeviceRepo repository.DeviceRepository
	Logger     *slog.Logger
}

// NewDeviceService is the constructor for deviceService.
func NewDeviceService(params DeviceServiceParams) usecase.DeviceUsecase {
	return &deviceService{
		deviceRepo: params.DeviceRepo,
		logger:     params.Logger,
	}
}

// RegisterDevice stores or reassigns a device push token for the user.
func (srv *deviceService) RegisterDevice(ctx context.Context, userID int64, input *usecase.RegisterDeviceInput) (*entity.UserDevice, error) {
	if input == nil {
		return nil, domainerrors.ErrValidationFailed
	}

	device := &entity.UserDevice{
		UserID:   userID,
		FCMToken: input.FCMToken,
		Platform: input.Platform,
	}

	if err := srv.deviceRepo.Upsert(ctx, device); err != nil {
		return nil, errors.Wrap(err, "failed to register device")
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Debug("Device registered",
		slog.Int64("userID", userID),
		slog.String("platform", input.Platform),
	)

	return device, nil
}
