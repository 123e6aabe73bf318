package layout

import (
	"cmp"
	"slices"

	"github.com/tsawler/outline/model"
)

// StyleHistogram groups blocks by their median style and alignment.
type StyleHistogram struct {
	// Keys are ordered by prominence, most heading-like first
	Keys []model.Style

	// Blocks maps every key to its blocks in document order
	Blocks map[model.Style][]*Block
}

// Count returns the number of blocks carrying style s
func (h *StyleHistogram) Count(s model.Style) int {
	return len(h.Blocks[s])
}

func newStyleHistogram() *StyleHistogram {
	return &StyleHistogram{Blocks: make(map[model.Style][]*Block)}
}

func (h *StyleHistogram) add(s model.Style, blocks ...*Block) {
	if _, ok := h.Blocks[s]; !ok {
		h.Keys = append(h.Keys, s)
	}
	h.Blocks[s] = append(h.Blocks[s], blocks...)
}

func (h *StyleHistogram) sort() {
	slices.SortFunc(h.Keys, model.Compare)
	for _, blocks := range h.Blocks {
		slices.SortFunc(blocks, func(a, b *Block) int { return cmp.Compare(a.seq, b.seq) })
	}
}

// FillStylesHist builds the style histogram. Blocks whose alignment is
// Unknown or Multiple carry no alignment evidence of their own; they join the
// most populated key with the same font and size, or form their own key when
// there is none. Blocks must not be added, removed or reordered afterwards
// until the histogram is rebuilt.
func (d *Document) FillStylesHist() {
	hist := newStyleHistogram()
	side := newStyleHistogram()
	for i, b := range d.Blocks {
		b.seq = i
		if len(b.Lines) == 0 {
			continue
		}
		s := b.MedianStyle().WithAlign(b.Alignment)
		if s.Align == model.AlignUnknown || s.Align == model.AlignMultiple {
			side.add(s, b)
		} else {
			hist.add(s, b)
		}
	}

	side.sort()
	for _, s := range side.Keys {
		slices.SortFunc(hist.Keys, model.Compare)
		target, best := s, -1
		for _, k := range hist.Keys {
			// Later keys win ties, so the less prominent style absorbs the bucket.
			if k.EqualIgnoringAlign(s) && hist.Count(k) >= best {
				target, best = k, hist.Count(k)
			}
		}
		hist.add(target, side.Blocks[s]...)
	}
	hist.sort()
	d.Histogram = hist
}

// Len returns the number of keys
func (h *StyleHistogram) Len() int {
	return len(h.Keys)
}
