package handler

import (
	"net/http"

	"condor/internal/delivery/http/middleware"
	"condor/internal/delivery/http/response"
	"condor/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// NotificationHandler exposes the user's notification center.
type NotificationHandler struct {
	uc usecase.NotificationUsecase
}

// NewNotificationHandler is the constructor for NotificationHandler, injected by Fx.
func NewNotificationHandler(uc usecase.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

// ListNotifications returns the user's notifications, newest first.
func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	notifications, err := h.uc.ListNotifications(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, notifications, "")
}

// MarkRead flips one owned notification to read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	notificationID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.MarkRead(c.Request().Context(), middleware.UserID(c), notificationID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Notificação marcada como lida")
}

// MarkAllRead flips every unread notification and zeroes the counter.
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	if err := h.uc.MarkAllRead(c.Request().Context(), middleware.UserID(c)); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Notificações marcadas como lidas")
}
