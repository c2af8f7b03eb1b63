package usecase

import (
	"context"

	"condor/internal/domain/entity"
)

// CatalogUsecase defines read access to the product catalog.
type CatalogUsecase interface {
	// ListProducts returns every catalog product.
	ListProducts(ctx context.Context) ([]*entity.Product, error)

	// GetProduct returns a product by id.
	GetProduct(ctx context.Context, id int64) (*entity.Product, error)

	// GetProductByBarcode returns a product by its scanned barcode.
	GetProductByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
}
