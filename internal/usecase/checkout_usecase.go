package usecase

import (
	"context"

	"condor/internal/domain/entity"
)

// CheckoutInput carries the checkout request. PaymentMethodID may be nil, in
// which case the user's preferred method is used.
type CheckoutInput struct {
	PaymentMethodID *int64 `json:"paymentMethodId"`
}

// CheckoutUsecase converts a user's current cart into an immutable purchase.
type CheckoutUsecase interface {
	// Checkout runs the full purchase flow: validate the cart and payment
	// method, compute the total and cashback, persist the purchase with its
	// items, credit the user's balance, clear the cart and emit a purchase
	// notification. All of it commits atomically or not at all.
	Checkout(ctx context.Context, userID int64, input *CheckoutInput) (*entity.Purchase, error)

	// ListPurchases returns the user's purchase history, newest first.
	ListPurchases(ctx context.Context, userID int64) ([]*entity.Purchase, error)

	// GetPurchasePixQR renders a pix BR Code QR PNG charging the purchase total.
	GetPurchasePixQR(ctx context.Context, userID, purchaseID int64) ([]byte, error)
}
