package handler

import (
	"net/http"

	"condor/internal/delivery/http/middleware"
	"condor/internal/delivery/http/response"
	"condor/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PurchaseHandler exposes checkout and purchase history.
type PurchaseHandler struct {
	uc usecase.CheckoutUsecase
}

// NewPurchaseHandler is the constructor for PurchaseHandler, injected by Fx.
func NewPurchaseHandler(uc usecase.CheckoutUsecase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

// Checkout converts the user's cart into a purchase.
func (h *PurchaseHandler) Checkout(c echo.Context) error {
	input := &usecase.CheckoutInput{}
	if c.Request().ContentLength > 0 {
		if err := c.Bind(&input); err != nil {
			return response.BindingError(c, "INVALID_INPUT", "Dados de pagamento inválidos")
		}
	}

	purchase, err := h.uc.Checkout(c.Request().Context(), middleware.UserID(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, purchase, "Compra realizada com sucesso")
}

// ListPurchases returns the purchase history, newest first.
func (h *PurchaseHandler) ListPurchases(c echo.Context) error {
	purchases, err := h.uc.ListPurchases(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, purchases, "")
}

// GetPixQR renders a pix BR Code QR PNG charging the purchase total.
func (h *PurchaseHandler) GetPixQR(c echo.Context) error {
	purchaseID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	png, err := h.uc.GetPurchasePixQR(c.Request().Context(), middleware.UserID(c), purchaseID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
