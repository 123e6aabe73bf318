package outline

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/tsawler/outline/export"
	"github.com/tsawler/outline/layout"
	"github.com/tsawler/outline/source"
	"github.com/tsawler/outline/text"
)

// Extractor provides a fluent interface for reconstructing a document's
// structure. Each configuration method returns a new Extractor instance,
// allowing method chaining without mutating the receiver.
type Extractor struct {
	// Source, exactly one of which is set
	filename string
	events   []text.Event
	doc      *layout.Document

	name string

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a copy of options.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		events:   e.events,
		doc:      e.doc,
		name:     e.name,
		options:  e.options.clone(),
		err:      e.err,
	}
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// WithConfig replaces the analyzer configuration. A logger already set with
// WithLogger is kept when config has none.
func (e *Extractor) WithConfig(config layout.AnalyzerConfig) *Extractor {
	newExt := e.clone()
	if config.Logger == nil {
		config.Logger = e.options.config.Logger
	}
	newExt.options.config = config
	return newExt
}

// WithLogger sets the logger the analyzer reports its stages to.
func (e *Extractor) WithLogger(log *zap.Logger) *Extractor {
	newExt := e.clone()
	newExt.options.config.Logger = log
	return newExt
}

// Named overrides the document name.
func (e *Extractor) Named(name string) *Extractor {
	newExt := e.clone()
	newExt.name = name
	return newExt
}

// RequirePermission makes every terminal operation first check that the PDF
// at pdfPath permits text extraction. Nothing is analyzed when it does not.
//
// Example:
//
//	_, err := outline.Open("doc.events.jsonl").RequirePermission("doc.pdf", "").Outline()
//	if errors.Is(err, source.ErrExtractionNotPermitted) { ... }
func (e *Extractor) RequirePermission(pdfPath, password string) *Extractor {
	newExt := e.clone()
	if pdfPath == "" {
		newExt.err = errors.Join(newExt.err, errors.New("RequirePermission: empty pdf path"))
		return newExt
	}
	newExt.options.pdfPath = pdfPath
	newExt.options.password = password
	return newExt
}

// KeepHeadersAndFooters disables removal of repeated page furniture.
func (e *Extractor) KeepHeadersAndFooters() *Extractor {
	newExt := e.clone()
	newExt.options.config.RemoveHeadersFooters = false
	return newExt
}

// Flat skips hierarchy construction; the result keeps its blocks as a flat
// list.
func (e *Extractor) Flat() *Extractor {
	newExt := e.clone()
	newExt.options.config.BuildHierarchy = false
	return newExt
}

// ============================================================================
// Terminal Methods
// ============================================================================

// load builds the unanalyzed document from the configured source.
func (e *Extractor) load() (*layout.Document, error) {
	switch {
	case e.doc != nil:
		if e.name != "" {
			e.doc.Name = e.name
		}
		return e.doc, nil
	case e.events != nil:
		return text.Replay(e.name, e.events)
	case e.filename != "":
		f, err := os.Open(e.filename)
		if err != nil {
			return nil, fmt.Errorf("failed to open events: %w", err)
		}
		defer f.Close()
		events, err := text.DecodeEvents(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.filename, err)
		}
		return text.Replay(e.name, events)
	default:
		return nil, errors.New("no source specified")
	}
}

// Analyze runs the full pipeline and returns the document with its
// statistics.
//
// Example:
//
//	result, err := outline.Open("doc.events.jsonl").Analyze()
//	fmt.Println(result.Stats.HeadingCount)
func (e *Extractor) Analyze() (*layout.AnalysisResult, error) {
	if e.err != nil {
		return nil, e.err
	}
	if e.options.pdfPath != "" {
		if err := source.CheckFile(e.options.pdfPath, e.options.password); err != nil {
			return nil, err
		}
	}
	doc, err := e.load()
	if err != nil {
		return nil, err
	}
	return layout.NewAnalyzerWithConfig(e.options.config).Analyze(doc)
}

// Document returns the analyzed document.
func (e *Extractor) Document() (*layout.Document, error) {
	result, err := e.Analyze()
	if err != nil {
		return nil, err
	}
	return result.Document, nil
}

// Outline returns the heading tree as text: the document name followed by
// every heading, each level indented by four spaces.
//
// Example:
//
//	tree, err := outline.Open("doc.events.jsonl").Outline()
func (e *Extractor) Outline() (string, error) {
	doc, err := e.Document()
	if err != nil {
		return "", err
	}
	return doc.Outline(), nil
}

// Records returns the analyzed document as an export tree.
func (e *Extractor) Records() ([]export.Record, error) {
	doc, err := e.Document()
	if err != nil {
		return nil, err
	}
	return export.FromDocument(doc), nil
}

// Export writes the analyzed document to w in the given format.
//
// Example:
//
//	err := outline.Open("doc.events.jsonl").Export(os.Stdout, export.FormatJSON)
func (e *Extractor) Export(w io.Writer, format export.Format) error {
	doc, err := e.Document()
	if err != nil {
		return err
	}
	config := export.DefaultExportConfig()
	config.Format = format
	config.Title = doc.Name
	return export.NewExporter(config).Export(w, export.FromDocument(doc))
}
