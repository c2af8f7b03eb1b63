package repository

import (
	"context"
	"errors"

	"condor/internal/domain/entity"
)

// ErrCartItemNotFound is returned when a cart entry lookup fails.
var ErrCartItemNotFound = errors.New("cart item not found")

// CartRepository defines persistence operations for per-user cart entries.
type CartRepository interface {
	// ListByUser returns the user's cart entries joined with live product data,
	// in insertion (id) order.
	ListByUser(ctx context.Context, userID int64) ([]*entity.CartItem, error)

	// FindByID retrieves a single cart entry by its unique ID.
	FindByID(ctx context.Context, id int64) (*entity.CartItem, error)

	// FindByUserAndProduct retrieves the entry for a (user, product) pair.
	FindByUserAndProduct(ctx context.Context, userID, productID int64) (*entity.CartItem, error)

	// Create persists a new cart entry and fills in the generated ID.
	Create(ctx context.Context, item *entity.CartItem) error

	// UpdateQuantity replaces the quantity of an existing entry.
	UpdateQuantity(ctx context.Context, id int64, quantity int) error

	// Delete removes a single cart entry. Deleting an absent entry is not an error.
	Delete(ctx context.Context, id int64) error

	// ClearByUser removes every entry owned by the user. Idempotent.
	ClearByUser(ctx context.Context, userID int64) error
}
