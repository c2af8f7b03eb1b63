package repository

import (
	"context"
	"errors"

	"condor/internal/domain/entity"
)

// ErrProductNotFound is returned when a product id or barcode does not resolve.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines read and seed operations for the product catalog.
// The catalog is read-only for the request path; Create exists for seeding.
type ProductRepository interface {
	// FindByID retrieves a single product by its unique ID.
	FindByID(ctx context.Context, id int64) (*entity.Product, error)

	// FindByBarcode retrieves a single product by its unique barcode.
	FindByBarcode(ctx context.Context, barcode string) (*entity.Product, error)

	// ListAll returns every catalog product ordered by id.
	ListAll(ctx context.Context) ([]*entity.Product, error)

	// Create persists a new product. Used by the startup seeder only.
	Create(ctx context.Context, product *entity.Product) error
}
