package repository

import (
	"context"
	"errors"

	"condor/internal/domain/entity"
)

// ErrPurchaseNotFound is returned when a purchase lookup fails.
var ErrPurchaseNotFound = errors.New("purchase not found")

// PurchaseRepository defines persistence operations for immutable purchase records.
type PurchaseRepository interface {
	// Create persists a purchase together with its line items, filling in the
	// generated purchase and item IDs.
	Create(ctx context.Context, purchase *entity.Purchase) error

	// FindByID retrieves a purchase with its items.
	FindByID(ctx context.Context, id int64) (*entity.Purchase, error)

	// ListByUser returns the user's purchases, newest first, items included.
	ListByUser(ctx context.Context, userID int64) ([]*entity.Purchase, error)
}
