// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"
	"strconv"

	domainerrors "condor/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// HealthCheck reports process liveness.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// pathID parses a numeric path parameter. Failures surface through the shared
// error handler as a validation error.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domainerrors.ErrValidationFailed.WithDetails("parâmetro " + name + " inválido")
	}

	return id, nil
}
