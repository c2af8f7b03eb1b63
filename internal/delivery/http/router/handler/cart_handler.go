package handler

import (
	"net/http"

	"condor/internal/delivery/http/middleware"
	"condor/internal/delivery/http/response"
	"condor/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CartHandler exposes the authenticated user's shopping cart.
type CartHandler struct {
	uc usecase.CartUsecase
}

// NewCartHandler is the constructor for CartHandler, injected by Fx.
func NewCartHandler(uc usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

// setQuantityInput carries the body of a cart entry update.
type setQuantityInput struct {
	Quantity int `json:"quantity"`
}

// ListItems returns the cart joined with live product data.
func (h *CartHandler) ListItems(c echo.Context) error {
	items, err := h.uc.ListItems(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, items, "")
}

// AddItem adds a product to the cart or increments an existing entry.
func (h *CartHandler) AddItem(c echo.Context) error {
	var input usecase.AddCartItemInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Dados do item inválidos")
	}

	item, err := h.uc.AddItem(c.Request().Context(), middleware.UserID(c), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, item, "Item adicionado ao carrinho")
}

// SetQuantity replaces an entry's quantity. Zero or less removes the entry.
func (h *CartHandler) SetQuantity(c echo.Context) error {
	itemID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var input setQuantityInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Quantidade inválida")
	}

	item, err := h.uc.SetQuantity(c.Request().Context(), middleware.UserID(c), itemID, input.Quantity)
	if err != nil {
		return errors.WithStack(err)
	}

	if item == nil {
		return response.Success(c, http.StatusOK, nil, "Item removido do carrinho")
	}

	return response.Success(c, http.StatusOK, item, "Quantidade atualizada")
}

// RemoveItem deletes a single cart entry.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	itemID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.RemoveItem(c.Request().Context(), middleware.UserID(c), itemID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Item removido do carrinho")
}

// Clear empties the cart.
func (h *CartHandler) Clear(c echo.Context) error {
	if err := h.uc.Clear(c.Request().Context(), middleware.UserID(c)); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Carrinho esvaziado")
}
