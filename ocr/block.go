package ocr

import (
	"fmt"
	"strings"

	"github.com/tsawler/outline/layout"
	"github.com/tsawler/outline/render"
)

// PageSegMode controls how Tesseract analyzes an image. The values match
// Tesseract's own numbering.
type PageSegMode int

const (
	PSMOSDOnly             PageSegMode = 0  // Orientation and script detection only
	PSMAutoOSD             PageSegMode = 1  // Automatic with OSD
	PSMAutoOnly            PageSegMode = 2  // Automatic, no OSD or OCR
	PSMAuto                PageSegMode = 3  // Fully automatic (default)
	PSMSingleColumn        PageSegMode = 4  // Single column of variable sizes
	PSMSingleBlockVertText PageSegMode = 5  // Single uniform block of vertically aligned text
	PSMSingleBlock         PageSegMode = 6  // Single uniform block of text
	PSMSingleLine          PageSegMode = 7  // Single text line
	PSMSingleWord          PageSegMode = 8  // Single word
	PSMCircleWord          PageSegMode = 9  // Single word in a circle
	PSMSingleChar          PageSegMode = 10 // Single character
	PSMSparseText          PageSegMode = 11 // Find as much text as possible
	PSMSparseTextOSD       PageSegMode = 12 // Sparse text with OSD
	PSMRawLine             PageSegMode = 13 // Treat image as single text line
)

// ImageRecognizer turns an encoded image into text. *Client implements it.
type ImageRecognizer interface {
	RecognizeImage(imageData []byte) (string, error)
}

// RecognizeBlock renders every page fragment of b and runs OCR over it. The
// fragments' texts are joined by newlines.
func RecognizeBlock(rec ImageRecognizer, r *render.RegionRenderer, b *layout.Block) (string, error) {
	images, err := r.RenderBlock(b)
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, len(images))
	for i, img := range images {
		data, err := render.EncodeTIFF(img)
		if err != nil {
			return "", err
		}
		txt, err := rec.RecognizeImage(data)
		if err != nil {
			return "", fmt.Errorf("fragment %d: %w", i, err)
		}
		if txt != "" {
			parts = append(parts, txt)
		}
	}
	return strings.Join(parts, "\n"), nil
}

// RecognizeKinds runs OCR over every block of doc whose kind is one of kinds
// and returns the recognized text keyed by block index.
func RecognizeKinds(rec ImageRecognizer, r *render.RegionRenderer, doc *layout.Document, kinds ...layout.Kind) (map[int]string, error) {
	out := make(map[int]string)
	for i, b := range doc.Blocks {
		if !hasKind(kinds, b.Type.Kind) {
			continue
		}
		txt, err := RecognizeBlock(rec, r, b)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		out[i] = txt
	}
	return out, nil
}

func hasKind(kinds []layout.Kind, k layout.Kind) bool {
	for _, want := range kinds {
		if want == k {
			return true
		}
	}
	return false
}
