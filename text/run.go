package text

import (
	"fmt"
	"unicode/utf8"

	"github.com/tsawler/outline/layout"
	"github.com/tsawler/outline/model"
)

// Run is a span of characters sharing one font and size, as reported by the
// page parser.
type Run struct {
	Text string
	Font string
	Size float64

	// Page is the 1-based page number. Zero means the page the builder is
	// currently on.
	Page int

	// Boxes holds one bounding box per rune of Text. When empty, Bounds is
	// split evenly between the runes.
	Boxes  []model.Box
	Bounds model.Box
}

// charBoxes returns one box per rune, all on page.
func (r Run) charBoxes(page int) ([]model.Box, error) {
	n := utf8.RuneCountInString(r.Text)
	if len(r.Boxes) == 0 {
		return splitBox(r.Bounds, n, page), nil
	}
	if len(r.Boxes) != n {
		return nil, fmt.Errorf("run %q: %d boxes for %d characters", r.Text, len(r.Boxes), n)
	}
	boxes := make([]model.Box, n)
	for i, b := range r.Boxes {
		b.Page = page
		boxes[i] = b
	}
	return boxes, nil
}

// splitBox divides b horizontally into n equal boxes.
func splitBox(b model.Box, n, page int) []model.Box {
	boxes := make([]model.Box, n)
	w := b.Width() / float64(max(n, 1))
	for i := range boxes {
		left := b.XMin + float64(i)*w
		boxes[i] = model.NewBox(page, left, left+w, b.YMin, b.YMax)
	}
	return boxes
}

// Builder accumulates runs into lines, lines into blocks and blocks into a
// document. A line break closes the current line and either appends it to the
// current block or starts a new block; a page end closes the current block.
type Builder struct {
	doc   *layout.Document
	block *layout.Block
	line  *layout.Line
	page  int
}

// NewBuilder creates a builder for a document with the given name
func NewBuilder(name string) *Builder {
	return &Builder{
		doc:  layout.NewDocument(name),
		page: 1,
	}
}

// Page returns the page the builder is currently on
func (b *Builder) Page() int {
	return b.page
}

// AddRun appends a run to the current line, separated from what is already
// there by a space. Runs with a zero font size carry no visible text and are
// dropped, as are runs that are blank once trimmed.
func (b *Builder) AddRun(r Run) error {
	if r.Size <= 0 {
		return nil
	}
	page := r.Page
	if page == 0 {
		page = b.page
	}
	boxes, err := r.charBoxes(page)
	if err != nil {
		return err
	}

	cur := layout.NewLine(r.Text, model.Style{Font: r.Font, Size: r.Size}, boxes)
	cur.Trim()
	if cur.IsEmpty() {
		return nil
	}
	if b.line == nil {
		b.line = cur
	} else {
		b.line.AppendWord(cur)
	}
	return nil
}

// LineBreak closes the current line. The line continues the current block
// when it shares its styles, is aligned with (or hyphen-joined to) and sits
// right below the block's last line.
func (b *Builder) LineBreak() {
	if b.line == nil {
		return
	}
	line := b.line
	b.line = nil
	line.Trim()
	if line.IsEmpty() {
		return
	}

	switch {
	case b.block == nil:
		b.block = layout.NewBlock(line)
	case layout.Continues(b.block.LastLine(), line):
		b.block.AppendLine(line)
	default:
		b.doc.Append(b.block)
		b.block = layout.NewBlock(line)
	}
}

// PageEnd closes the current line and block and moves to the next page.
func (b *Builder) PageEnd() {
	b.LineBreak()
	b.page++
	if b.block == nil {
		return
	}
	b.doc.EndPage(b.block)
	b.block = nil
}

// Document flushes any pending line and block and returns the document.
func (b *Builder) Document() *layout.Document {
	if b.line != nil || b.block != nil {
		b.PageEnd()
	}
	return b.doc
}
