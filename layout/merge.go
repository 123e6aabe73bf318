package layout

import (
	"math"
	"slices"

	"github.com/tsawler/outline/model"
)

// Continues is the ingestion-time continuation rule: line belongs to the
// block ending with last when they share styles, are aligned with each other
// (or last ends in a hyphen) and sit next to each other on the page.
func Continues(last, line *Line) bool {
	return last.HaveSameStyles(line) &&
		(line.AlignWith(last) != model.AlignUnknown || last.EndsWithHyphen()) &&
		line.Near(last)
}

// MergeFirstLinesWithRest re-attaches single-line blocks that were split off
// the paragraph they start, typically an indented first line. It returns the
// number of merges.
func (d *Document) MergeFirstLinesWithRest() int {
	cfg := DefaultAnalyzerConfig()
	return d.mergeFirstLinesWithRest(cfg.MedianWindow, cfg.FirstLineMedianRatio)
}

func (d *Document) mergeFirstLinesWithRest(medianWindow int, ratio float64) int {
	merged := 0
	for i := 0; i < len(d.Blocks)-1; i++ {
		cur, next := d.Blocks[i], d.Blocks[i+1]
		if len(cur.Lines) != 1 || len(next.Lines) == 0 {
			continue
		}
		if !next.IsLeftAligned() {
			continue
		}
		line := cur.Lines[0]
		// Aligned first lines look like a deliberate list, not a split paragraph.
		if line.AlignWith(next.Lines[0]) != model.AlignUnknown {
			continue
		}
		tolerance := math.Max(line.Width(), next.MaxLineWidth()) / ratio
		// Written as a negation so a NaN median rejects the merge.
		if !(math.Abs(line.XMin()-d.medianFirstLinePos(i, medianWindow)) <= tolerance) {
			continue
		}
		if !cur.MedianStyle().AlmostEquals(next.MedianStyle()) {
			continue
		}
		if !cur.EndOfPage && !line.Near(next.Lines[0]) {
			continue
		}
		cur.Absorb(next)
		d.Blocks = slices.Delete(d.Blocks, i+1, i+2)
		merged++
	}
	return merged
}

// MergeEOPBlocks joins a paragraph that a page break split in two: a
// page-ending block absorbs the following block when their styles match,
// they sit at the bottom and top of the text area, and their alignments are
// compatible. It returns the number of merges.
func (d *Document) MergeEOPBlocks() int {
	cfg := DefaultAnalyzerConfig()
	return d.mergeEOPBlocks(cfg.MedianWindow, cfg.EOPVerticalFraction)
}

func (d *Document) mergeEOPBlocks(medianWindow int, fraction float64) int {
	vertEps := (d.Bounds.YMax - d.Bounds.YMin) * fraction
	merged := 0
	for i := 0; i < len(d.Blocks)-1; i++ {
		cur, next := d.Blocks[i], d.Blocks[i+1]
		if !cur.EndOfPage {
			continue
		}
		if !cur.MedianStyle().AlmostEquals(next.MedianStyle()) {
			continue
		}
		if math.Abs(cur.LastLine().YMax()-d.Bounds.YMax) > vertEps {
			continue
		}
		if math.Abs(next.FirstLine().YMin()-d.Bounds.YMin) > vertEps {
			continue
		}
		if !d.continuesAcrossPage(i, medianWindow) {
			continue
		}
		cur.Absorb(next)
		d.Blocks = slices.Delete(d.Blocks, i+1, i+2)
		merged++
	}
	return merged
}

// continuesAcrossPage reports whether block i+1 can continue block i given
// their alignments.
func (d *Document) continuesAcrossPage(i, medianWindow int) bool {
	a, b := d.Blocks[i], d.Blocks[i+1]
	weak := func(al model.Align) bool {
		return al == model.AlignUnknown || al == model.AlignMultiple
	}
	loose := func(al model.Align) bool {
		return al == model.AlignFull || al == model.AlignMultiple
	}
	junction := a.LastLine().AlignWith(b.FirstLine())
	reverse := b.FirstLine().AlignWith(a.LastLine())

	// Both sides agree, or the adjoining lines follow the first block.
	if !weak(a.Alignment) && b.Alignment != model.AlignMultiple &&
		(a.Alignment == b.Alignment || junction == a.Alignment) {
		return true
	}
	// A justified paragraph ending in a one-line tail on the next page.
	if loose(a.Alignment) && len(b.Lines) == 1 && reverse == model.AlignLeft {
		return true
	}
	// A one-line head at the paragraph indent ahead of a justified paragraph.
	if loose(b.Alignment) && len(a.Lines) == 1 && reverse == model.AlignRight {
		first := a.FirstLine()
		tolerance := math.Max(first.Width(), b.MaxLineWidth()) / alignEpsDivisor
		if math.Abs(first.XMin()-d.medianFirstLinePos(i, medianWindow)) < tolerance {
			return true
		}
	}
	// The adjoining lines follow the second block.
	return !weak(b.Alignment) && junction == b.Alignment
}
