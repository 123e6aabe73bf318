package layout

import (
	"cmp"
	"slices"
)

// linePos addresses one line of a document: Blocks[block].Lines[line].
type linePos struct {
	block, line int
}

func (d *Document) lineAt(p linePos) *Line {
	return d.Blocks[p.block].Lines[p.line]
}

// lineBefore returns the line preceding p in document order, crossing block
// boundaries and skipping empty blocks.
func (d *Document) lineBefore(p linePos) (linePos, bool) {
	block, line := p.block, p.line-1
	for block >= 0 {
		if block < len(d.Blocks) && line >= 0 {
			return linePos{block, line}, true
		}
		block--
		if block < 0 {
			break
		}
		line = len(d.Blocks[block].Lines) - 1
	}
	return linePos{}, false
}

// lineAfter returns the line following p in document order.
func (d *Document) lineAfter(p linePos) (linePos, bool) {
	block, line := p.block, p.line+1
	for block < len(d.Blocks) {
		if block >= 0 && line < len(d.Blocks[block].Lines) {
			return linePos{block, line}, true
		}
		block++
		line = 0
	}
	return linePos{}, false
}

// matchRepeated walks from a and b in lockstep using step and collects both
// positions for as long as the lines almost match. It stops at the first
// mismatch.
func (d *Document) matchRepeated(step func(linePos) (linePos, bool), a, b linePos, into map[linePos]struct{}) {
	l1, ok1 := step(a)
	l2, ok2 := step(b)
	for ok1 && ok2 {
		if !d.lineAt(l1).AlmostEquals(d.lineAt(l2)) {
			return
		}
		into[l1] = struct{}{}
		into[l2] = struct{}{}
		l1, ok1 = step(l1)
		l2, ok2 = step(l2)
	}
}

// markRepeatedFurniture compares the page boundary at PageEnds[idx] with the
// next lookahead boundaries. Footers are matched walking up from the start of
// the following page, headers walking down from it.
func (d *Document) markRepeatedFurniture(idx, lookahead int, into map[linePos]struct{}) {
	last := min(len(d.PageEnds)-1, idx+lookahead)
	for i := idx + 1; i <= last; i++ {
		next, cur := d.PageEnds[i]+1, d.PageEnds[idx]+1
		d.matchRepeated(d.lineBefore, linePos{next, 0}, linePos{cur, 0}, into)
		d.matchRepeated(d.lineAfter, linePos{next, -1}, linePos{cur, -1}, into)
	}
}

// RemoveHeadersAndFooters deletes running headers and footers: lines that
// repeat, up to digit and numeral drift, at the same distance from a page
// boundary on nearby pages. It returns the number of lines removed.
func (d *Document) RemoveHeadersAndFooters() int {
	return d.removeHeadersAndFooters(DefaultAnalyzerConfig().HeaderFooterLookahead)
}

func (d *Document) removeHeadersAndFooters(lookahead int) int {
	marked := make(map[linePos]struct{})
	for i := range d.PageEnds {
		d.markRepeatedFurniture(i, lookahead, marked)
	}

	// The page-ending flag moves to the nearest block that survives.
	for _, end := range d.PageEnds {
		b := end
		for b >= 0 && d.fullyMarked(b, marked) {
			b--
		}
		if b >= 0 {
			d.Blocks[b].EndOfPage = true
		}
	}

	positions := make([]linePos, 0, len(marked))
	for p := range marked {
		positions = append(positions, p)
	}
	slices.SortFunc(positions, func(a, b linePos) int {
		if c := cmp.Compare(b.block, a.block); c != 0 {
			return c
		}
		return cmp.Compare(b.line, a.line)
	})
	for _, p := range positions {
		blk := d.Blocks[p.block]
		blk.Lines = slices.Delete(blk.Lines, p.line, p.line+1)
		if len(blk.Lines) == 0 {
			d.Blocks = slices.Delete(d.Blocks, p.block, p.block+1)
		}
	}
	d.rebuildPageEnds()
	return len(positions)
}

func (d *Document) fullyMarked(block int, marked map[linePos]struct{}) bool {
	for i := range d.Blocks[block].Lines {
		if _, ok := marked[linePos{block, i}]; !ok {
			return false
		}
	}
	return true
}
