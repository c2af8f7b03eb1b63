package service

// PixChargeService generates static pix charges for purchase receipts.
type PixChargeService interface {
	// BuildPayload builds the EMV BR Code "copia e cola" string for an amount
	// in reais, tagged with a transaction identifier.
	BuildPayload(amount float64, txid string) (string, error)

	// GenerateQR renders the payload for an amount as a QR code PNG.
	GenerateQR(amount float64, txid string) ([]byte, error)
}
