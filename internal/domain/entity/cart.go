package entity

// CartItem is a (user, product) pairing with a quantity, mutable until checkout.
// At most one entry exists per (UserID, ProductID) pair; adding the same product
// again increments the quantity instead of creating a second entry.
type CartItem struct {
	ID        int64 `json:"id"`
	UserID    int64 `json:"userId"`
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"` // Always >= 1; dropping to 0 deletes the entry.

	// Product carries the live catalog data when the item is read through
	// CartRepository.ListByUser. Prices are never snapshotted here.
	Product *Product `json:"product,omitempty"`
}
