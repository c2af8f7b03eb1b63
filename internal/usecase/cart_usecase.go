package usecase

import (
	"context"

	"condor/internal/domain/entity"
)

// AddCartItemInput carries the data for adding a product to the cart.
type AddCartItemInput struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// CartUsecase defines cart management use cases. Every operation is scoped to
// the authenticated user; entries owned by other users behave as absent.
type CartUsecase interface {
	// ListItems returns the user's cart joined with live product data, in
	// insertion order.
	ListItems(ctx context.Context, userID int64) ([]*entity.CartItem, error)

	// AddItem adds a product to the cart, incrementing the quantity when an
	// entry for the product already exists.
	AddItem(ctx context.Context, userID int64, input *AddCartItemInput) (*entity.CartItem, error)

	// SetQuantity replaces an entry's quantity. A quantity of zero or less
	// deletes the entry and returns (nil, nil); deleting twice is not an error.
	SetQuantity(ctx context.Context, userID, itemID int64, quantity int) (*entity.CartItem, error)

	// RemoveItem deletes a single entry.
	RemoveItem(ctx context.Context, userID, itemID int64) error

	// Clear removes every entry from the user's cart. Idempotent.
	Clear(ctx context.Context, userID int64) error
}
