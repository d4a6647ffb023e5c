package render

import (
	"fmt"
	"image"

	"github.com/nfnt/resize"
	qrcode "github.com/skip2/go-qrcode"
)

// qrRenderSize is the resolution the QR code is rendered at before being
// scaled down to the configured size on the card.
const qrRenderSize = 1024

// qrImages encodes a URL as a QR code and returns the full-resolution image
// along with a copy scaled to the configured card size.
func qrImages(url string, size int) (raw, scaled image.Image, err error) {
	code, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		return nil, nil, fmt.Errorf("error encoding QR code: %w", err)
	}
	raw = code.Image(qrRenderSize)

	// Nearest neighbor keeps the module edges sharp when shrinking
	scaled = resize.Resize(uint(size), uint(size), raw, resize.NearestNeighbor)
	return raw, scaled, nil
}
