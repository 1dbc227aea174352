// Package qrcode renders QR code payloads as base64-encoded PNG images.
package qrcode

import (
	"encoding/base64"
	"fmt"

	qr "github.com/skip2/go-qrcode"
)

const defaultSize = 256

// Generator renders QR payloads into images suitable for embedding in
// HTML and JSON responses
type Generator interface {
	Generate(payload string) (string, error)
}

type pngGenerator struct {
	size int
}

// NewGenerator creates a PNG generator at the default size
func NewGenerator() Generator {
	return &pngGenerator{size: defaultSize}
}

// Generate encodes the payload as a PNG QR code and returns it base64 encoded
func (g *pngGenerator) Generate(payload string) (string, error) {
	if payload == "" {
		return "", fmt.Errorf("qr payload is empty")
	}

	png, err := qr.Encode(payload, qr.Medium, g.size)
	if err != nil {
		return "", fmt.Errorf("failed to encode qr code: %w", err)
	}
	return base64.StdEncoding.EncodeToString(png), nil
}
