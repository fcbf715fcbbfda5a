package imagepkg

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	minQRSize = 64
	maxQRSize = 2048
)

// GenerateQRPNG returns a PNG QR code of the given pixel size encoding
// text. Sizes are clamped to a range a phone camera can scan.
func GenerateQRPNG(text string, size int) ([]byte, error) {
	qr, err := newQR(text)
	if err != nil {
		return nil, err
	}
	return qr.PNG(clampQRSize(size))
}

func newQR(text string) (*qrcode.QRCode, error) {
	if text == "" {
		return nil, fmt.Errorf("qr: empty content")
	}
	qr, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("qr: %w", err)
	}
	return qr, nil
}

func clampQRSize(size int) int {
	return min(max(size, minQRSize), maxQRSize)
}
