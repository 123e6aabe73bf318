package layout

import (
	"math"

	"github.com/tsawler/outline/model"
)

// selectKth returns the k-th smallest value (0-based), reordering values in
// place. It uses Hoare's selection with a middle pivot.
func selectKth(values []float64, k int) float64 {
	lo, hi := 0, len(values)-1
	for lo < hi {
		pivot := values[lo+(hi-lo)/2]
		i, j := lo, hi
		for i <= j {
			for values[i] < pivot {
				i++
			}
			for values[j] > pivot {
				j--
			}
			if i <= j {
				values[i], values[j] = values[j], values[i]
				i++
				j--
			}
		}
		switch {
		case k <= j:
			hi = j
		case k >= i:
			lo = i
		default:
			return values[k]
		}
	}
	return values[k]
}

// medianFirstLinePos returns the median first-line x position of the blocks
// within window of block i, excluding i itself. It returns NaN when there are
// no such blocks; callers must treat that as "not near the median".
func (d *Document) medianFirstLinePos(i, window int) float64 {
	lo, hi := max(i-window, 0), min(i+window, len(d.Blocks)-1)
	positions := make([]float64, 0, hi-lo+1)
	for j := lo; j <= hi; j++ {
		if j == i || len(d.Blocks[j].Lines) == 0 {
			continue
		}
		positions = append(positions, d.Blocks[j].Lines[0].XMin())
	}
	if len(positions) == 0 {
		return math.NaN()
	}
	return selectKth(positions, len(positions)/2)
}

// neighbourhood returns the horizontal extent of the blocks within window of
// block i that share its first page (before it) or last page (after it).
func (d *Document) neighbourhood(i, window int) (xMin, xMax float64) {
	xMin, xMax = math.Inf(1), math.Inf(-1)
	self := d.Blocks[i]
	lo, hi := max(i-window, 0), min(i+window, len(d.Blocks)-1)
	for j := lo; j <= hi; j++ {
		if j == i {
			continue
		}
		b := d.Blocks[j]
		if j < i && b.FirstPage() != self.FirstPage() || j > i && b.LastPage() != self.LastPage() {
			continue
		}
		xMin = math.Min(xMin, b.XMin())
		xMax = math.Max(xMax, b.XMax())
	}
	return xMin, xMax
}

func near(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// FillBlocksAlignments classifies every block from its own lines, then
// revisits weak verdicts (Unknown, Multiple, or Full with at most three
// lines) against the geometry of neighbouring blocks on the same page.
// Running it twice on unchanged blocks gives the same result.
func (d *Document) FillBlocksAlignments() {
	cfg := DefaultAnalyzerConfig()
	d.fillBlocksAlignments(cfg.AlignmentWindow, cfg.MedianWindow)
}

func (d *Document) fillBlocksAlignments(window, medianWindow int) {
	for _, b := range d.Blocks {
		b.FillAlignment()
	}
	if len(d.Blocks) <= 1 {
		return
	}
	for i, b := range d.Blocks {
		shortFull := len(b.Lines) <= 3 && b.Alignment == model.AlignFull
		if b.Alignment != model.AlignUnknown && b.Alignment != model.AlignMultiple && !shortFull {
			continue
		}
		xMin, xMax := d.neighbourhood(i, window)
		selfMin, selfMax := b.XMin(), b.XMax()
		eps := b.Eps()

		switch {
		case len(b.Lines) == 1 || shortFull:
			if near(selfMin-xMin, xMax-selfMax, eps) {
				b.Alignment = model.AlignCenter
			}
			atRight := near(xMax, selfMax, eps)
			if near(xMin, selfMin, eps) || near(selfMin, d.medianFirstLinePos(i, medianWindow), eps) {
				if b.Alignment != model.AlignUnknown && atRight {
					b.Alignment = model.AlignMultiple
					continue
				}
				b.Alignment = model.AlignLeft
			}
			if atRight {
				if b.Alignment != model.AlignUnknown {
					b.Alignment = model.AlignMultiple
					continue
				}
				b.Alignment = model.AlignRight
			}
		case len(b.Lines) == 2:
			// A justified pair with a hanging first line.
			if near(b.Lines[0].XMin(), d.medianFirstLinePos(i, medianWindow), eps) &&
				near(b.Lines[0].XMax(), xMax, eps) &&
				near(b.Lines[1].XMin(), xMin, eps) {
				b.Alignment = model.AlignFull
			}
		}
	}
}
