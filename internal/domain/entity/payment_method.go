package entity

// PaymentMethodKind distinguishes stored payment instruments.
type PaymentMethodKind string

const (
	PaymentMethodCard PaymentMethodKind = "card"
	PaymentMethodPix  PaymentMethodKind = "pix"
)

// PaymentMethod is a stored payment instrument owned by a single user.
// Invariant: a user with at least one method has exactly one preferred method;
// a user with no methods has none.
type PaymentMethod struct {
	ID             int64             `json:"id"`
	UserID         int64             `json:"userId"`
	Kind           PaymentMethodKind `json:"kind"`
	CardNumber     string            `json:"cardNumber,omitempty"` // Stored masked, last four digits only.
	CardholderName string            `json:"cardholderName,omitempty"`
	ExpiryDate     string            `json:"expiryDate,omitempty"`
	Brand          string            `json:"brand,omitempty"`
	Preferred      bool              `json:"preferred"`
}

// Label returns the human-readable name used on purchase records.
func (m *PaymentMethod) Label() string {
	if m.Kind == PaymentMethodPix {
		return "Pix"
	}
	if m.Brand != "" && m.CardNumber != "" {
		return m.Brand + " " + m.CardNumber
	}

	return "Cartão"
}
