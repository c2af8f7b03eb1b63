package entity

import "time"

// Purchase is an immutable record of a completed checkout.
// Total and CashbackEarned are computed once at creation and never recalculated.
type Purchase struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"userId"`
	Total          float64   `json:"total"`          // Sum of item price x quantity at purchase time.
	CashbackEarned float64   `json:"cashbackEarned"` // round(Total x cashback rate, 2), half-up.
	PaymentMethod  string    `json:"paymentMethod"`  // Label of the method used, not a live reference.
	Date           time.Time `json:"date"`

	Items []*PurchaseItem `json:"items,omitempty"`
}

// PurchaseItem is a line of a purchase with price and quantity snapshotted at
// transaction time. It never reflects later catalog price changes.
type PurchaseItem struct {
	ID         int64   `json:"id"`
	PurchaseID int64   `json:"purchaseId"`
	ProductID  int64   `json:"productId"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"` // Unit price captured at purchase time.

	Product *Product `json:"product,omitempty"`
}
