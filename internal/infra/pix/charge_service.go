// Package pix builds static pix BR Code payloads and QR images for purchase
// charges.
package pix

import (
	"fmt"
	"strings"

	"condor/config"
	"condor/internal/domain/service"

	"github.com/pkg/errors"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	defaultQRSize = 256

	maxMerchantNameLen = 25
	maxMerchantCityLen = 15
	maxTxIDLen         = 25

	// Two-digit TLV lengths cap every value at 99 bytes. The pix key sits
	// inside the tag 26 template next to the 22 bytes of GUI framing.
	maxEMVValueLen = 99
	maxPixKeyLen   = 77
)

// chargeService implements the PixChargeService interface following the
// EMV MPM layout the Banco Central defines for static pix charges.
type chargeService struct {
	key          string
	merchantName string
	merchantCity string
	qrSize       int
}

// NewChargeService is the constructor for chargeService.
func NewChargeService(cfg *config.Config) (service.PixChargeService, error) {
	if cfg.Pix == nil || cfg.Pix.Key == "" {
		return nil, errors.New("pix key must be configured")
	}
	if len(cfg.Pix.Key) > maxPixKeyLen {
		return nil, errors.Errorf("pix key exceeds %d bytes", maxPixKeyLen)
	}

	size := cfg.Pix.QRSize
	if size <= 0 {
		size = defaultQRSize
	}

	return &chargeService{
		key:          cfg.Pix.Key,
		merchantName: truncate(strings.ToUpper(cfg.Pix.MerchantName), maxMerchantNameLen),
		merchantCity: truncate(strings.ToUpper(cfg.Pix.MerchantCity), maxMerchantCityLen),
		qrSize:       size,
	}, nil
}

// BuildPayload builds the EMV "copia e cola" string for an amount in reais.
func (s *chargeService) BuildPayload(amount float64, txid string) (string, error) {
	if amount <= 0 {
		return "", errors.New("pix amount must be positive")
	}
	if txid == "" {
		txid = "***"
	}

	var payload strings.Builder
	payload.WriteString(emv("00", "01")) // payload format indicator
	payload.WriteString(emv("26", // merchant account information
		emv("00", "br.gov.bcb.pix")+emv("01", s.key),
	))
	payload.WriteString(emv("52", "0000")) // merchant category code, none
	payload.WriteString(emv("53", "986"))  // BRL
	payload.WriteString(emv("54", fmt.Sprintf("%.2f", amount)))
	payload.WriteString(emv("58", "BR"))
	payload.WriteString(emv("59", s.merchantName))
	payload.WriteString(emv("60", s.merchantCity))
	payload.WriteString(emv("62", emv("05", truncate(txid, maxTxIDLen))))

	// The CRC covers everything up to and including its own tag and length.
	withCRCPrefix := payload.String() + "6304"

	return withCRCPrefix + fmt.Sprintf("%04X", crc16CCITT(withCRCPrefix)), nil
}

// GenerateQR renders the payload for an amount as a QR code PNG.
func (s *chargeService) GenerateQR(amount float64, txid string) ([]byte, error) {
	payload, err := s.BuildPayload(amount, txid)
	if err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(payload, qrcode.Medium, s.qrSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode pix QR")
	}

	return png, nil
}

// emv renders a tag-length-value element with a two-digit length.
func emv(tag, value string) string {
	return fmt.Sprintf("%s%02d%s", tag, len(value), value)
}

// crc16CCITT computes CRC-16/CCITT-FALSE (poly 0x1021, init 0xFFFF) as
// required by the BR Code specification.
func crc16CCITT(data string) uint16 {
	crc := uint16(0xFFFF)
	for i := range len(data) {
		crc ^= uint16(data[i]) << 8
		for range 8 {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}

	return crc
}

// truncate cuts s to at most limit runes, never splitting a multibyte rune,
// and keeps the result inside the TLV byte cap.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) > limit {
		runes = runes[:limit]
	}
	out := string(runes)
	for len(out) > maxEMVValueLen {
		runes = runes[:len(runes)-1]
		out = string(runes)
	}

	return out
}
