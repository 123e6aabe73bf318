// Package outline reconstructs the logical structure of a document from the
// positioned text runs of its pages: paragraphs, numbered items, formulas
// and the heading hierarchy.
//
// Basic usage:
//
//	tree, err := outline.Open("report.events.jsonl").Outline()
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(tree)
//
// With options:
//
//	err := outline.Open("report.events.jsonl").
//	    RequirePermission("report.pdf", "").
//	    KeepHeadersAndFooters().
//	    Export(os.Stdout, export.FormatMarkdown)
//
// The layout, text and export packages are available for lower-level control.
package outline

import (
	"path/filepath"
	"strings"

	"github.com/tsawler/outline/layout"
	"github.com/tsawler/outline/text"
)

// Open returns an Extractor reading a JSON lines event stream from filename.
// The document is named after the file, without directory or extensions.
//
// Example:
//
//	tree, err := outline.Open("report.events.jsonl").Outline()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		name:     documentName(filename),
		options:  defaultOptions(),
	}
}

// FromEvents returns an Extractor over already decoded events.
//
// Example:
//
//	events, err := text.DecodeEvents(r)
//	records, err := outline.FromEvents("report", events).Records()
func FromEvents(name string, events []text.Event) *Extractor {
	return &Extractor{
		name:    name,
		events:  events,
		options: defaultOptions(),
	}
}

// FromDocument returns an Extractor over a document assembled by the caller.
// The document is analyzed in place, so only one terminal method should be
// called on the result.
func FromDocument(doc *layout.Document) *Extractor {
	return &Extractor{
		name:    doc.Name,
		doc:     doc,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	tree := outline.Must(outline.Open("report.events.jsonl").Outline())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

func documentName(filename string) string {
	base := filepath.Base(filename)
	if i := strings.Index(base, "."); i > 0 {
		base = base[:i]
	}
	return base
}
