package layout

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tsawler/outline/model"
)

// AnalyzerConfig holds the tuning knobs of the structure reconstruction
// pipeline. The zero value is not useful; start from DefaultAnalyzerConfig.
type AnalyzerConfig struct {
	// HeaderFooterLookahead is how many following page boundaries each
	// boundary is compared with when looking for running headers and footers
	HeaderFooterLookahead int `mapstructure:"header_footer_lookahead"`

	// AlignmentWindow is the number of blocks on either side that form the
	// neighbourhood of a block whose alignment is being refined
	AlignmentWindow int `mapstructure:"alignment_window"`

	// MedianWindow is the number of blocks on either side used for the local
	// median first-line position
	MedianWindow int `mapstructure:"median_window"`

	// FirstLineMedianRatio divides the line width to get the tolerance around
	// the median first-line position when re-attaching split first lines
	FirstLineMedianRatio float64 `mapstructure:"first_line_median_ratio"`

	// EOPVerticalFraction is the share of the document height within which a
	// block counts as touching the top or bottom of the text area
	EOPVerticalFraction float64 `mapstructure:"eop_vertical_fraction"`

	// RemoveHeadersFooters enables running header and footer removal
	RemoveHeadersFooters bool `mapstructure:"remove_headers_footers"`

	// BuildHierarchy enables the heading tree; when false the hierarchy is
	// the flat block list
	BuildHierarchy bool `mapstructure:"build_hierarchy"`

	// Logger receives per-stage debug output. Nil means no logging.
	Logger *zap.Logger `mapstructure:"-"`
}

// DefaultAnalyzerConfig returns the configuration used by the stage methods
// when they are called directly.
func DefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		HeaderFooterLookahead: 10,
		AlignmentWindow:       7,
		MedianWindow:          5,
		FirstLineMedianRatio:  50,
		EOPVerticalFraction:   0.1,
		RemoveHeadersFooters:  true,
		BuildHierarchy:        true,
	}
}

// AnalysisResult holds the analyzed document and statistics about the run.
type AnalysisResult struct {
	// Document is the input document, mutated in place by every stage
	Document *Document

	// Statistics
	Stats AnalysisStats
}

// AnalysisStats contains counts collected while the pipeline ran.
type AnalysisStats struct {
	BlocksIn        int
	BlocksOut       int
	LinesRemoved    int
	FirstLineMerges int
	EOPMerges       int
	NumberedCount   int
	FormulaCount    int
	StyleCount      int
	HeadingCount    int
}

// Analyzer runs the structure reconstruction stages over a document in the
// fixed order they depend on.
type Analyzer struct {
	config AnalyzerConfig
	log    *zap.Logger
}

// NewAnalyzer creates a new analyzer with default configuration.
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithConfig(DefaultAnalyzerConfig())
}

// NewAnalyzerWithConfig creates a new analyzer with the specified configuration.
// Windows below 1 are raised to 1, since a block needs at least one neighbour
// to be compared with.
func NewAnalyzerWithConfig(config AnalyzerConfig) *Analyzer {
	config.AlignmentWindow = max(config.AlignmentWindow, 1)
	config.MedianWindow = max(config.MedianWindow, 1)
	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Analyzer{config: config, log: log}
}

// Config returns the analyzer configuration
func (a *Analyzer) Config() AnalyzerConfig {
	return a.config
}

// Analyze reconstructs the structure of doc: header and footer removal,
// block merging, alignment and type classification, the style histogram and
// the heading hierarchy. An invariant violation inside any stage aborts the
// document and is returned as a *model.InvariantError. Documents without
// blocks produce an empty result.
func (a *Analyzer) Analyze(doc *Document) (result *AnalysisResult, err error) {
	result = &AnalysisResult{
		Document: doc,
		Stats:    AnalysisStats{BlocksIn: len(doc.Blocks)},
	}
	log := a.log.With(zap.String("document", doc.Name))

	defer func() {
		if r := recover(); r != nil {
			ie, ok := r.(*model.InvariantError)
			if !ok {
				panic(r)
			}
			log.Debug("analysis aborted", zap.Error(ie))
			result, err = nil, fmt.Errorf("analyze %q: %w", doc.Name, ie)
		}
	}()

	cfg := a.config
	stats := &result.Stats

	// Step 1: Running headers and footers
	if cfg.RemoveHeadersFooters {
		stats.LinesRemoved = doc.removeHeadersAndFooters(cfg.HeaderFooterLookahead)
		log.Debug("removed headers and footers", zap.Int("lines", stats.LinesRemoved))
	}

	// Step 2: Split paragraphs
	doc.FillBounds()
	stats.FirstLineMerges = doc.mergeFirstLinesWithRest(cfg.MedianWindow, cfg.FirstLineMedianRatio)
	doc.fillBlocksAlignments(cfg.AlignmentWindow, cfg.MedianWindow)
	stats.EOPMerges = doc.mergeEOPBlocks(cfg.MedianWindow, cfg.EOPVerticalFraction)
	log.Debug("merged blocks",
		zap.Int("firstLine", stats.FirstLineMerges),
		zap.Int("endOfPage", stats.EOPMerges),
		zap.Int("blocks", len(doc.Blocks)))

	// Step 3: One logical line per block, then classification
	doc.MergeLinesInsideBlocks()
	doc.FillBlocksTypes()
	for _, b := range doc.Blocks {
		switch {
		case b.IsNumbered():
			stats.NumberedCount++
		case b.Type.Kind == KindFormula:
			stats.FormulaCount++
		}
	}
	log.Debug("classified blocks",
		zap.Int("numbered", stats.NumberedCount),
		zap.Int("formula", stats.FormulaCount))

	// Step 4: Styles and hierarchy
	doc.FillStylesHist()
	stats.StyleCount = doc.Histogram.Len()
	if cfg.BuildHierarchy {
		doc.FillHierarchy()
	} else {
		for _, b := range doc.Blocks {
			b.Sons = nil
		}
		doc.Hierarchy = append([]*Block(nil), doc.Blocks...)
	}
	stats.HeadingCount = countHeadings(doc.Hierarchy)
	stats.BlocksOut = len(doc.Blocks)
	log.Debug("built hierarchy",
		zap.Int("styles", stats.StyleCount),
		zap.Int("headings", stats.HeadingCount))

	return result, nil
}

func countHeadings(blocks []*Block) int {
	n := 0
	for _, b := range blocks {
		if len(b.Sons) > 0 {
			n += 1 + countHeadings(b.Sons)
		}
	}
	return n
}
