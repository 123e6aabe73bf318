package ocr

import "github.com/tsawler/outline/layout"

// ClientConfig holds the recognition settings of a Client.
type ClientConfig struct {
	// Language is one or more Tesseract languages joined by "+"
	Language string

	// PageSegMode is the segmentation mode for multi-line crops
	PageSegMode PageSegMode

	// Whitelist restricts recognition to these characters. Empty allows all.
	Whitelist string
}

// DefaultClientConfig returns English recognition of single text blocks,
// which is what a block crop holds.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Language:    "eng",
		PageSegMode: PSMSingleBlock,
	}
}

// blockSegMode picks the segmentation mode for the crops of b. A block that
// sits on one page and is less than two characters high holds a single line
// of text, formulas included, and is read in single-line mode.
func blockSegMode(b *layout.Block, fallback PageSegMode) PageSegMode {
	regions := b.PageRegions()
	if len(regions) != 1 {
		return fallback
	}
	if regions[0].Height() < 2*b.MedianCharHeight() {
		return PSMSingleLine
	}
	return fallback
}
