//go:build !ocr

// Package ocr recovers the text of blocks the text layer could not represent,
// such as formulas and tables, by running OCR over their rendered crops.
//
// This is the stub build used when the "ocr" build tag is not set. Every
// client operation returns ErrOCRNotEnabled. To enable OCR, rebuild with:
//
//	go build -tags ocr
//
// This requires Tesseract to be installed. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"errors"

	"github.com/tsawler/outline/layout"
	"github.com/tsawler/outline/render"
)

// ErrOCRNotEnabled is returned when OCR functions are called but OCR support
// was not compiled in. Rebuild with -tags ocr to enable OCR support.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Client is a stub OCR client that returns errors for all operations.
type Client struct{}

// New returns an error indicating OCR support is not enabled.
func New() (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// NewWithConfig returns an error indicating OCR support is not enabled.
func NewWithConfig(config ClientConfig) (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// Config returns the zero configuration.
func (c *Client) Config() ClientConfig {
	return ClientConfig{}
}

// Close is a no-op for the stub client.
// It is safe to call on a nil client.
func (c *Client) Close() error {
	return nil
}

// RecognizeImage returns ErrOCRNotEnabled.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	return "", ErrOCRNotEnabled
}

// RecognizeBlock returns ErrOCRNotEnabled without rendering anything.
func (c *Client) RecognizeBlock(r *render.RegionRenderer, b *layout.Block) (string, error) {
	return "", ErrOCRNotEnabled
}

// SetLanguage returns ErrOCRNotEnabled.
func (c *Client) SetLanguage(lang string) error {
	return ErrOCRNotEnabled
}

// SetPageSegMode returns ErrOCRNotEnabled.
func (c *Client) SetPageSegMode(mode PageSegMode) error {
	return ErrOCRNotEnabled
}
