package usecase

import (
	"context"

	"condor/internal/domain/entity"
)

// AddPaymentMethodInput carries the data for storing a payment method.
type AddPaymentMethodInput struct {
	Kind           entity.PaymentMethodKind `json:"kind"`
	CardNumber     string                   `json:"cardNumber"`
	CardholderName string                   `json:"cardholderName"`
	ExpiryDate     string                   `json:"expiryDate"`
	Brand          string                   `json:"brand"`
	Preferred      bool                     `json:"preferred"`
}

// PaymentMethodUsecase defines stored payment method use cases. The invariant
// maintained across every operation: a user with methods has exactly one
// preferred method, a user without methods has none.
type PaymentMethodUsecase interface {
	// ListMethods returns the user's stored methods in insertion order.
	ListMethods(ctx context.Context, userID int64) ([]*entity.PaymentMethod, error)

	// AddMethod stores a new method. The user's first method, or a method
	// added with Preferred set, becomes the single preferred one.
	AddMethod(ctx context.Context, userID int64, input *AddPaymentMethodInput) (*entity.PaymentMethod, error)

	// SetPreferred makes one owned method preferred and unsets all others.
	SetPreferred(ctx context.Context, userID, methodID int64) error

	// RemoveMethod deletes an owned method. When the preferred method is
	// removed and others remain, the oldest remaining one is promoted.
	RemoveMethod(ctx context.Context, userID, methodID int64) error
}
