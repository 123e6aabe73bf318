package layout

import (
	"math"
	"strings"

	"github.com/tsawler/outline/model"
)

// Document is the shared value every pipeline stage mutates in place.
type Document struct {
	// Name is the document title, printed at the root of the outline
	Name string

	// Blocks are the top-level blocks in reading order
	Blocks []*Block

	// PageEnds holds the index of the block that ends each page. The first
	// entry is the sentinel -1, meaning "before the first page".
	PageEnds []int

	// Bounds is the extent of all lines (Page is 0). Valid after FillBounds.
	Bounds model.Box

	// Histogram groups blocks by style. Valid after FillStylesHist.
	Histogram *StyleHistogram

	// Hierarchy is the heading forest. Valid after FillHierarchy.
	Hierarchy []*Block
}

// NewDocument creates an empty document
func NewDocument(name string) *Document {
	return &Document{
		Name:     name,
		PageEnds: []int{-1},
	}
}

// Append adds a sealed block to the end of the document
func (d *Document) Append(b *Block) {
	d.Blocks = append(d.Blocks, b)
}

// EndPage marks b as the block ending the current page and appends it.
func (d *Document) EndPage(b *Block) {
	b.EndOfPage = true
	d.PageEnds = append(d.PageEnds, len(d.Blocks))
	d.Append(b)
}

// LineCount returns the number of lines over all blocks
func (d *Document) LineCount() int {
	n := 0
	for _, b := range d.Blocks {
		n += len(b.Lines)
	}
	return n
}

// FillBounds computes the extent of every line in the document.
func (d *Document) FillBounds() {
	bounds := model.EmptyBounds()
	for _, b := range d.Blocks {
		for _, l := range b.Lines {
			bounds.XMin = math.Min(bounds.XMin, l.XMin())
			bounds.XMax = math.Max(bounds.XMax, l.XMax())
			bounds.YMin = math.Min(bounds.YMin, l.YMin())
			bounds.YMax = math.Max(bounds.YMax, l.YMax())
		}
	}
	d.Bounds = bounds
}

// MergeLinesInsideBlocks collapses every block into a single logical line.
func (d *Document) MergeLinesInsideBlocks() {
	for _, b := range d.Blocks {
		b.MergeLines()
	}
}

// rebuildPageEnds recomputes PageEnds from the EndOfPage flags.
func (d *Document) rebuildPageEnds() {
	ends := []int{-1}
	for i, b := range d.Blocks {
		if b.EndOfPage {
			ends = append(ends, i)
		}
	}
	d.PageEnds = ends
}

// Outline prints the heading tree depth first: the document name, then every
// block that has sons, each nesting level indented by four spaces. Blocks
// without sons are body text and are not printed. An empty hierarchy prints
// nothing.
func (d *Document) Outline() string {
	if len(d.Hierarchy) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(d.Name)
	for _, b := range d.Hierarchy {
		for _, l := range headingLines(b) {
			sb.WriteString("\n    ")
			sb.WriteString(l)
		}
	}
	return sb.String()
}

func headingLines(b *Block) []string {
	if len(b.Sons) == 0 {
		return nil
	}
	out := strings.Split(b.Text(), "\n")
	for _, son := range b.Sons {
		for _, l := range headingLines(son) {
			out = append(out, "    "+l)
		}
	}
	return out
}
