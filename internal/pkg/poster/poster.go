package poster

import (
	"fmt"
	"net/url"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	// DefaultQRSize matches the share poster layout of the landing page (px)
	DefaultQRSize = 420
	minQRSize     = 128
	maxQRSize     = 1024
)

// Generator renders downloadable QR images for already-persisted referral
// codes. It only ever receives a finalized code; existence checks are the
// caller's responsibility.
type Generator struct {
	baseURL string
}

// NewGenerator creates a poster generator pointing at the public landing page origin
func NewGenerator(baseURL string) *Generator {
	return &Generator{baseURL: baseURL}
}

// InviteURL builds the landing page link that credits the given referral code
func (g *Generator) InviteURL(code string) string {
	return fmt.Sprintf("%s?ref=%s", g.baseURL, url.QueryEscape(code))
}

// FileName is the suggested download name for a poster QR image
func (g *Generator) FileName(code string) string {
	return fmt.Sprintf("countdown-invite-%s.png", code)
}

// RenderQR encodes the invite URL for a referral code as a PNG QR image of
// the requested pixel size. Sizes outside the supported range are clamped.
func (g *Generator) RenderQR(code string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultQRSize
	}
	if size < minQRSize {
		size = minQRSize
	}
	if size > maxQRSize {
		size = maxQRSize
	}

	png, err := qrcode.Encode(g.InviteURL(code), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR image: %w", err)
	}

	return png, nil
}
