package layout

import (
	"math"
	"slices"
	"strings"

	"github.com/tsawler/outline/model"
)

// Kind is the semantic type of a block
type Kind int

const (
	KindPlainText Kind = iota
	KindNumbered
	KindNumberedLabel
	KindFormula
	// KindTable is reserved for table reconstruction and never assigned by
	// the pipeline.
	KindTable
)

// String returns a string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindNumbered:
		return "numbered"
	case KindNumberedLabel:
		return "numbered-label"
	case KindFormula:
		return "formula"
	case KindTable:
		return "table"
	default:
		return "plain"
	}
}

// BlockType is the cached result of type classification.
type BlockType struct {
	Kind Kind

	// Number is the parsed numeral chain, e.g. ["3", "2", "1"] for "3.2.1"
	Number []string

	// Delim separates the numeral groups ("" for a single numeral)
	Delim string

	// Label is the text preceding the numeral, e.g. "Chapter" or "§"
	Label string

	// HasLabel is true when a label prefix was matched
	HasLabel bool
}

// Block is a paragraph-like unit: an ordered run of lines sharing style and
// alignment continuity.
//
// Alignment, Type and Sons are derived values. Alignment is valid after
// Document.FillBlocksAlignments, Type after Document.FillBlocksTypes and Sons
// after Document.FillHierarchy. Any change to Lines invalidates them until the
// corresponding stage runs again.
type Block struct {
	Lines     []*Line
	EndOfPage bool
	Alignment model.Align
	Type      BlockType
	Sons      []*Block

	// seq is the block's position in Document.Blocks, captured when the
	// style histogram is built.
	seq int
}

// NewBlock creates a block holding the given lines
func NewBlock(lines ...*Line) *Block {
	return &Block{Lines: lines}
}

// Text returns the lines joined by newlines
func (b *Block) Text() string {
	parts := make([]string, len(b.Lines))
	for i, l := range b.Lines {
		parts[i] = l.Text()
	}
	return strings.Join(parts, "\n")
}

// String implements fmt.Stringer.
func (b *Block) String() string {
	return b.Text()
}

// LineCount returns the number of lines
func (b *Block) LineCount() int {
	return len(b.Lines)
}

// FirstLine returns the first line or nil for an empty block
func (b *Block) FirstLine() *Line {
	if len(b.Lines) == 0 {
		return nil
	}
	return b.Lines[0]
}

// LastLine returns the last line or nil for an empty block
func (b *Block) LastLine() *Line {
	if len(b.Lines) == 0 {
		return nil
	}
	return b.Lines[len(b.Lines)-1]
}

func (b *Block) mustHaveLines(what string) {
	if len(b.Lines) == 0 {
		model.Violatef("%s of an empty block", what)
	}
}

// FirstPage returns the page the block starts on
func (b *Block) FirstPage() int {
	b.mustHaveLines("first page")
	return b.Lines[0].FirstPage()
}

// LastPage returns the page the block ends on
func (b *Block) LastPage() int {
	b.mustHaveLines("last page")
	return b.LastLine().LastPage()
}

// XMin returns the leftmost edge over all lines
func (b *Block) XMin() float64 {
	b.mustHaveLines("xMin")
	res := b.Lines[0].XMin()
	for _, l := range b.Lines[1:] {
		res = math.Min(res, l.XMin())
	}
	return res
}

// XMax returns the rightmost edge over all lines
func (b *Block) XMax() float64 {
	b.mustHaveLines("xMax")
	res := b.Lines[0].XMax()
	for _, l := range b.Lines[1:] {
		res = math.Max(res, l.XMax())
	}
	return res
}

// Eps returns the largest line tolerance in the block.
func (b *Block) Eps() float64 {
	b.mustHaveLines("eps")
	res := b.Lines[0].Eps()
	for _, l := range b.Lines[1:] {
		res = math.Max(res, l.Eps())
	}
	return res
}

// MaxLineWidth returns the width of the widest line
func (b *Block) MaxLineWidth() float64 {
	var w float64
	for _, l := range b.Lines {
		w = math.Max(w, l.Width())
	}
	return w
}

// IsLeftAligned reports whether every line starts within width/80 of the
// others. An empty block counts as left aligned.
func (b *Block) IsLeftAligned() bool {
	if len(b.Lines) == 0 {
		return true
	}
	maxWidth := b.Lines[0].Width()
	lo, hi := b.Lines[0].XMin(), b.Lines[0].XMin()
	for _, l := range b.Lines {
		maxWidth = math.Max(maxWidth, l.Width())
		x := l.XMin()
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	return hi-lo < maxWidth/alignEpsDivisor
}

// MedianStyle returns the most common line median style; the first seen wins
// ties.
func (b *Block) MedianStyle() model.Style {
	b.mustHaveLines("median style")
	styles := make([]model.Style, len(b.Lines))
	for i, l := range b.Lines {
		styles[i] = l.MedianStyle()
	}
	return mostCommon(styles)
}

// MedianCharWidth returns the mean width of the middle third of character
// widths.
func (b *Block) MedianCharWidth() float64 {
	return b.middleMean(model.Box.Width)
}

// MedianCharHeight returns the mean height of the middle third of character
// heights.
func (b *Block) MedianCharHeight() float64 {
	return b.middleMean(model.Box.Height)
}

func (b *Block) middleMean(measure func(model.Box) float64) float64 {
	var values []float64
	for _, l := range b.Lines {
		for _, box := range l.Boxes {
			values = append(values, measure(box))
		}
	}
	if len(values) == 0 {
		return 0
	}
	slices.Sort(values)
	mid := values[int(float64(len(values))*0.33):int(float64(len(values))*0.67)]
	if len(mid) == 0 {
		mid = values
	}
	var sum float64
	for _, v := range mid {
		sum += v
	}
	return sum / float64(len(mid))
}

// PageRegions returns, for every page the block touches, the union of its
// character boxes, ordered by page.
func (b *Block) PageRegions() []model.Box {
	byPage := make(map[int]model.Box)
	var pages []int
	for _, l := range b.Lines {
		for _, box := range l.Boxes {
			region, ok := byPage[box.Page]
			if !ok {
				byPage[box.Page] = box
				pages = append(pages, box.Page)
				continue
			}
			region.ExtendTo(box)
			byPage[box.Page] = region
		}
	}
	slices.Sort(pages)
	regions := make([]model.Box, len(pages))
	for i, p := range pages {
		regions[i] = byPage[p]
	}
	return regions
}

// AppendLine adds a line to the end of the block
func (b *Block) AppendLine(l *Line) {
	b.Lines = append(b.Lines, l)
}

// Absorb appends the lines of other. The block ends a page if either did, and
// keeps the higher-ranked alignment of the two.
func (b *Block) Absorb(other *Block) {
	b.Lines = append(b.Lines, other.Lines...)
	b.EndOfPage = b.EndOfPage || other.EndOfPage
	b.Alignment = model.MaxAlign(b.Alignment, other.Alignment)
}

// MergeLines collapses all lines into the first one.
func (b *Block) MergeLines() {
	if len(b.Lines) <= 1 {
		return
	}
	first := b.Lines[0]
	for _, l := range b.Lines[1:] {
		first.Merge(l)
	}
	b.Lines = b.Lines[:1]
}

// FillAlignment classifies the block from its consecutive line pairs. It
// must run before MergeLines, which destroys the line geometry it reads.
func (b *Block) FillAlignment() {
	b.Alignment = model.AlignUnknown
	if len(b.Lines) <= 1 {
		return
	}
	align := b.Lines[0].AlignWith(b.Lines[1])
	if len(b.Lines) == 2 || align == model.AlignUnknown {
		b.Alignment = align
		return
	}
	last := len(b.Lines) - 2
	for i := 1; i <= last; i++ {
		pair := b.Lines[i].AlignWith(b.Lines[i+1])
		if pair == model.AlignUnknown {
			b.Alignment = model.AlignUnknown
			return
		}
		align = nextAlignment(align, pair, i, last)
	}
	b.Alignment = align
}

// nextAlignment folds the verdict for pair i into the running alignment.
// last is the index of the final pair.
func nextAlignment(running, pair model.Align, i, last int) model.Align {
	switch running {
	case model.AlignRight:
		// A right-aligned label line followed by a justified body.
		if i == 1 && (pair == model.AlignFull || pair == model.AlignLeft && i == last) {
			return model.AlignFull
		}
		fallthrough
	case model.AlignLeft, model.AlignCenter:
		if pair == model.AlignFull || pair == running {
			return running
		}
		return model.AlignUnknown
	case model.AlignFull:
		// Justified paragraphs end with a short last line.
		if i == last && pair == model.AlignLeft {
			return running
		}
		return pair
	default:
		return running
	}
}

// LooksLikeFormula reports whether more lines look like formulas than not.
func (b *Block) LooksLikeFormula() bool {
	yes, no := 0, 0
	for _, l := range b.Lines {
		if l.LooksLikeFormula() {
			yes++
		} else {
			no++
		}
	}
	return yes > no
}
