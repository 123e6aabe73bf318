// Package layout reconstructs the logical structure of a document from its
// positioned text lines.
//
// A [Document] is a sequence of [Block] values, each holding one or more
// [Line] values with per-character style and position data. The stages below
// rewrite the document in place and must run in this order:
//
//   - [Document.RemoveHeadersAndFooters] - drops lines repeated at page boundaries
//   - [Document.FillBounds] - computes the text area
//   - [Document.MergeFirstLinesWithRest] - re-attaches split first lines
//   - [Document.FillBlocksAlignments] - classifies left, right, center and justified blocks
//   - [Document.MergeEOPBlocks] - joins paragraphs split by a page break
//   - [Document.MergeLinesInsideBlocks] - collapses each block into one logical line
//   - [Document.FillBlocksTypes] - detects numbered headings and formulas
//   - [Document.FillStylesHist] - groups blocks by style
//   - [Document.FillHierarchy] - nests body text under headings
//
// # Pipeline
//
// The [Analyzer] runs every stage with one configuration:
//
//	analyzer := layout.NewAnalyzer()
//	result, err := analyzer.Analyze(doc)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Document.Outline())
//
// # Configuration
//
//	config := layout.DefaultAnalyzerConfig()
//	config.HeaderFooterLookahead = 4
//	config.BuildHierarchy = false
//	analyzer := layout.NewAnalyzerWithConfig(config)
//
// # Errors
//
// Geometry on an empty line or block is a broken precondition and panics with
// a *model.InvariantError. [Analyzer.Analyze] recovers it and returns it as
// an error for that document only.
package layout
