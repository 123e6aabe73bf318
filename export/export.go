// Package export writes a document hierarchy in several output formats.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format defines the available export formats
type Format int

const (
	// FormatOutline prints the heading tree, one heading per line, each
	// nesting level indented by four spaces
	FormatOutline Format = iota
	// FormatJSON exports the full tree as JSON
	FormatJSON
	// FormatYAML exports the full tree as YAML
	FormatYAML
	// FormatHTML exports nested sections
	FormatHTML
	// FormatMarkdown exports headings and paragraphs as Markdown
	FormatMarkdown
)

var formatNames = map[Format]string{
	FormatOutline:  "outline",
	FormatJSON:     "json",
	FormatYAML:     "yaml",
	FormatHTML:     "html",
	FormatMarkdown: "markdown",
}

// String returns a human-readable representation of the format
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "unknown"
}

// FileExtension returns the typical file extension for this format
func (f Format) FileExtension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatYAML:
		return ".yaml"
	case FormatHTML:
		return ".html"
	case FormatMarkdown:
		return ".md"
	default:
		return ".txt"
	}
}

// ParseFormat returns the format with the given name. "md" and "yml" are
// accepted as aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "outline", "tree", "":
		return FormatOutline, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "html":
		return FormatHTML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return 0, fmt.Errorf("unknown export format %q", name)
	}
}

// ExportConfig holds configuration options for export
type ExportConfig struct {
	// Format specifies the export format
	Format Format

	// PrettyPrint indents JSON output
	PrettyPrint bool

	// Title names the document in every format
	Title string
}

// DefaultExportConfig returns the default configuration
func DefaultExportConfig() ExportConfig {
	return ExportConfig{
		Format:      FormatOutline,
		PrettyPrint: true,
	}
}

// Tree is the serialized form of an exported document
type Tree struct {
	Title  string   `json:"title" yaml:"title"`
	Blocks []Record `json:"blocks" yaml:"blocks"`
}

// Exporter writes records in the configured format
type Exporter struct {
	config ExportConfig
}

// NewExporter creates an exporter with the given configuration
func NewExporter(config ExportConfig) *Exporter {
	return &Exporter{config: config}
}

// Config returns the exporter configuration
func (e *Exporter) Config() ExportConfig {
	return e.config
}

// Export writes records to w
func (e *Exporter) Export(w io.Writer, records []Record) error {
	switch e.config.Format {
	case FormatOutline:
		return e.exportOutline(w, records)
	case FormatJSON:
		return e.exportJSON(w, records)
	case FormatYAML:
		return e.exportYAML(w, records)
	case FormatHTML:
		return e.exportHTML(w, records)
	case FormatMarkdown:
		return e.exportMarkdown(w, records)
	default:
		return fmt.Errorf("unsupported export format: %v", e.config.Format)
	}
}

// ExportToString exports records and returns the result as a string
func (e *Exporter) ExportToString(records []Record) (string, error) {
	var buf bytes.Buffer
	if err := e.Export(&buf, records); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (e *Exporter) tree(records []Record) Tree {
	if records == nil {
		records = []Record{}
	}
	return Tree{Title: e.config.Title, Blocks: records}
}

// exportOutline prints the title followed by every heading. Records without
// sons are body text and are skipped. Nothing is written when there are no
// records.
func (e *Exporter) exportOutline(w io.Writer, records []Record) error {
	if len(records) == 0 {
		return nil
	}
	var sb strings.Builder
	sb.WriteString(e.config.Title)
	sb.WriteString("\n")
	writeHeadings(&sb, records, "    ")
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeHeadings(sb *strings.Builder, records []Record, indent string) {
	for _, r := range records {
		if !r.IsHeading() {
			continue
		}
		for _, line := range strings.Split(r.Text, "\n") {
			sb.WriteString(indent)
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		writeHeadings(sb, r.SubBlocks, indent+"    ")
	}
}

func (e *Exporter) exportJSON(w io.Writer, records []Record) error {
	enc := json.NewEncoder(w)
	if e.config.PrettyPrint {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(e.tree(records)); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}

func (e *Exporter) exportYAML(w io.Writer, records []Record) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(e.tree(records)); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}
