// Package qr renders deck share codes as QR images.
package qr

import (
	"fmt"
	"os"

	qrcode "github.com/skip2/go-qrcode"

	coredeck "github.com/example/deckforge/internal/core/deck"
)

// DefaultSize is the default PNG edge length in pixels.
const DefaultSize = 256

// MaxSize is the largest PNG edge length SharePNG will render.
const MaxSize = 1024

// SharePNG returns PNG bytes of a QR code encoding the deck's share code.
func SharePNG(deckID string, size int) ([]byte, error) {
	if deckID == "" {
		return nil, fmt.Errorf("deck must be saved before it can be shared")
	}
	if size <= 0 {
		size = DefaultSize
	}
	if size > MaxSize {
		return nil, coredeck.NewValidationError(fmt.Sprintf("QR size %d exceeds the %d px limit", size, MaxSize))
	}

	pngBytes, err := qrcode.Encode(coredeck.ShareCode(deckID), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR: %w", err)
	}
	return pngBytes, nil
}

// WriteSharePNG writes the deck's share QR code to path.
func WriteSharePNG(path, deckID string, size int) error {
	b, err := SharePNG(deckID, size)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return fmt.Errorf("failed to write QR: %w", err)
	}
	return nil
}
