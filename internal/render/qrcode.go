package render

import (
	"encoding/base64"

	qrcode "github.com/skip2/go-qrcode"
)

// QRGenerator turns a URL into a PNG data URL for the qrcode placeholder.
type QRGenerator interface {
	DataURL(url string) (string, error)
}

type qrGenerator struct {
	size int
}

// NewQRGenerator returns the default generator. size is the PNG edge in
// pixels; values <= 0 fall back to 256.
func NewQRGenerator(size int) QRGenerator {
	if size <= 0 {
		size = 256
	}
	return &qrGenerator{size: size}
}

func (g *qrGenerator) DataURL(url string) (string, error) {
	png, err := qrcode.Encode(url, qrcode.Medium, g.size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
