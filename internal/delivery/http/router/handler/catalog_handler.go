package handler

import (
	"net/http"
	"strings"

	"condor/internal/delivery/http/response"
	domainerrors "condor/internal/domain/errors"
	"condor/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CatalogHandler exposes read access to the product catalog.
type CatalogHandler struct {
	uc usecase.CatalogUsecase
}

// NewCatalogHandler is the constructor for CatalogHandler, injected by Fx.
func NewCatalogHandler(uc usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// ListProducts returns every catalog product.
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	products, err := h.uc.ListProducts(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products, "")
}

// GetProduct returns a single product by id.
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	product, err := h.uc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "")
}

// GetProductByBarcode resolves a scanned barcode to a product.
func (h *CatalogHandler) GetProductByBarcode(c echo.Context) error {
	barcode := strings.TrimSpace(c.Param("barcode"))
	if barcode == "" {
		return domainerrors.ErrValidationFailed.WithDetails("código de barras vazio")
	}

	product, err := h.uc.GetProductByBarcode(c.Request().Context(), barcode)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "")
}
