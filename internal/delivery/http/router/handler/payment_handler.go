package handler

import (
	"net/http"

	"condor/internal/delivery/http/middleware"
	"condor/internal/delivery/http/response"
	"condor/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PaymentHandler exposes stored payment method management.
type PaymentHandler struct {
	uc usecase.PaymentMethodUsecase
}

// NewPaymentHandler is the constructor for PaymentHandler, injected by Fx.
func NewPaymentHandler(uc usecase.PaymentMethodUsecase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// ListMethods returns the user's stored methods in insertion order.
func (h *PaymentHandler) ListMethods(c echo.Context) error {
	methods, err := h.uc.ListMethods(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, methods, "")
}

// AddMethod stores a new payment method.
func (h *PaymentHandler) AddMethod(c echo.Context) error {
	var input usecase.AddPaymentMethodInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Dados do método de pagamento inválidos")
	}

	method, err := h.uc.AddMethod(c.Request().Context(), middleware.UserID(c), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, method, "Método de pagamento adicionado")
}

// SetPreferred makes one owned method the preferred one.
func (h *PaymentHandler) SetPreferred(c echo.Context) error {
	methodID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.SetPreferred(c.Request().Context(), middleware.UserID(c), methodID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Método de pagamento preferido atualizado")
}

// RemoveMethod deletes an owned method.
func (h *PaymentHandler) RemoveMethod(c echo.Context) error {
	methodID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.RemoveMethod(c.Request().Context(), middleware.UserID(c), methodID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Método de pagamento removido")
}
