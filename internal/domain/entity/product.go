package entity

// Product is a catalog item looked up by id or barcode.
// Products are seeded at startup and immutable afterwards.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Barcode     string  `json:"barcode"` // Unique EAN-13 style barcode.
	Price       float64 `json:"price"`   // Unit price in reais, always positive.
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}
