//go:build ocr

// Package ocr recovers the text of blocks the text layer could not represent,
// such as formulas and tables, by running OCR over their rendered crops.
//
// This build wraps the Tesseract OCR engine via gosseract. It requires
// Tesseract to be installed on the system. On macOS, install via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/tsawler/outline/layout"
	"github.com/tsawler/outline/render"
)

// Client reads block crops with Tesseract. A Client is not safe for
// concurrent use.
type Client struct {
	client *gosseract.Client
	config ClientConfig
}

// New creates a client with DefaultClientConfig.
// The client should be closed when no longer needed to release resources.
func New() (*Client, error) {
	return NewWithConfig(DefaultClientConfig())
}

// NewWithConfig creates a client and applies config to it.
func NewWithConfig(config ClientConfig) (*Client, error) {
	c := &Client{client: gosseract.NewClient(), config: config}
	if err := c.apply(); err != nil {
		c.client.Close()
		return nil, err
	}
	return c, nil
}

func (c *Client) apply() error {
	if c.config.Language != "" {
		if err := c.client.SetLanguage(strings.Split(c.config.Language, "+")...); err != nil {
			return fmt.Errorf("failed to set language %q: %w", c.config.Language, err)
		}
	}
	if err := c.setMode(c.config.PageSegMode); err != nil {
		return err
	}
	if c.config.Whitelist != "" {
		if err := c.client.SetWhitelist(c.config.Whitelist); err != nil {
			return fmt.Errorf("failed to set whitelist: %w", err)
		}
	}
	return nil
}

func (c *Client) setMode(mode PageSegMode) error {
	if err := c.client.SetPageSegMode(gosseract.PageSegMode(mode)); err != nil {
		return fmt.Errorf("failed to set page segmentation mode %d: %w", mode, err)
	}
	return nil
}

// Config returns the client's current settings.
func (c *Client) Config() ClientConfig {
	return c.config
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// RecognizeImage performs OCR on encoded image data (PNG, TIFF, JPEG, etc.).
// Returns the recognized text with leading/trailing whitespace trimmed.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	return strings.TrimSpace(text), nil
}

// RecognizeBlock runs OCR over the rendered crops of b. A crop holding a
// single line is read in single-line mode; the configured mode is restored
// afterwards.
func (c *Client) RecognizeBlock(r *render.RegionRenderer, b *layout.Block) (string, error) {
	mode := blockSegMode(b, c.config.PageSegMode)
	if mode != c.config.PageSegMode {
		if err := c.setMode(mode); err != nil {
			return "", err
		}
		defer c.setMode(c.config.PageSegMode)
	}
	return RecognizeBlock(c, r, b)
}

// SetLanguage sets the language(s) for OCR recognition.
// Multiple languages can be specified as a "+" separated string (e.g., "eng+fra").
func (c *Client) SetLanguage(lang string) error {
	if err := c.client.SetLanguage(strings.Split(lang, "+")...); err != nil {
		return err
	}
	c.config.Language = lang
	return nil
}

// SetPageSegMode sets the segmentation mode used for multi-line crops.
func (c *Client) SetPageSegMode(mode PageSegMode) error {
	if err := c.setMode(mode); err != nil {
		return err
	}
	c.config.PageSegMode = mode
	return nil
}
