package outline

import (
	"github.com/tsawler/outline/layout"
)

// ExtractOptions holds configuration for an Extractor.
type ExtractOptions struct {
	config layout.AnalyzerConfig

	// Permission check against the source PDF
	pdfPath  string
	password string
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		config: layout.DefaultAnalyzerConfig(),
	}
}

// clone creates a copy of ExtractOptions. The analyzer configuration holds
// no slices, so a value copy is deep apart from the shared logger.
func (o ExtractOptions) clone() ExtractOptions {
	return o
}
