package handler

import (
	"net/http"

	"condor/internal/delivery/http/middleware"
	"condor/internal/delivery/http/response"
	"condor/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// DeviceHandler exposes push device registration.
type DeviceHandler struct {
	uc usecase.DeviceUsecase
}

// NewDeviceHandler is the constructor for DeviceHandler, injected by Fx.
func NewDeviceHandler(uc usecase.DeviceUsecase) *DeviceHandler {
	return &DeviceHandler{uc: uc}
}

// RegisterDevice stores or reassigns a device push token for the user.
func (h *DeviceHandler) RegisterDevice(c echo.Context) error {
	var input usecase.RegisterDeviceInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Dados do dispositivo inválidos")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	device, err := h.uc.RegisterDevice(c.Request().Context(), middleware.UserID(c), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, device, "Dispositivo registrado")
}
