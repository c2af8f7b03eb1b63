package repository

import (
	"context"
	"errors"

	"condor/internal/domain/entity"
)

// ErrPaymentMethodNotFound is returned when a payment method lookup fails.
var ErrPaymentMethodNotFound = errors.New("payment method not found")

// PaymentMethodRepository defines persistence operations for stored payment methods.
// The preferred-flag invariant (at most one per user) is enforced by the usecase
// layer inside a transaction; the repository only provides the primitives.
type PaymentMethodRepository interface {
	// ListByUser returns the user's payment methods in insertion (id) order.
	ListByUser(ctx context.Context, userID int64) ([]*entity.PaymentMethod, error)

	// FindByID retrieves a single payment method by its unique ID.
	FindByID(ctx context.Context, id int64) (*entity.PaymentMethod, error)

	// FindPreferredByUser retrieves the user's preferred method, or
	// ErrPaymentMethodNotFound when the user has none.
	FindPreferredByUser(ctx context.Context, userID int64) (*entity.PaymentMethod, error)

	// Create persists a new payment method and fills in the generated ID.
	Create(ctx context.Context, method *entity.PaymentMethod) error

	// SetPreferred flips the preferred flag of a single method.
	SetPreferred(ctx context.Context, id int64, preferred bool) error

	// ClearPreferredByUser unsets the preferred flag on every method of the user.
	ClearPreferredByUser(ctx context.Context, userID int64) error

	// Delete removes a payment method.
	Delete(ctx context.Context, id int64) error
}
