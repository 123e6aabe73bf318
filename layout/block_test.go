package layout

import (
	"strings"
	"testing"

	"github.com/tsawler/outline/model"
)

// text of n characters
func nChars(n int) string {
	return strings.Repeat("a", n)
}

// makeParagraph creates a block with one body line per width, every line
// starting at x and spaced 12 units apart from y.
func makeParagraph(page int, x, y float64, widths ...int) *Block {
	b := NewBlock()
	for i, w := range widths {
		b.AppendLine(makeLine(nChars(w), page, x, y+float64(i)*12, 10, bodyStyle))
	}
	return b
}

func TestBlock_FillAlignment(t *testing.T) {
	tests := []struct {
		name     string
		block    *Block
		expected model.Align
	}{
		{"single line", makeParagraph(1, 72, 100, 40), model.AlignUnknown},
		{"left", makeParagraph(1, 72, 100, 40, 30, 35), model.AlignLeft},
		{"justified with short last line", makeParagraph(1, 72, 100, 40, 40, 40, 25), model.AlignFull},
		{"two justified lines", makeParagraph(1, 72, 100, 40, 40), model.AlignFull},
		{
			"center",
			NewBlock(
				makeBodyLine(nChars(20), 200, 100),
				makeBodyLine(nChars(10), 250, 112),
				makeBodyLine(nChars(16), 220, 124),
			),
			model.AlignCenter,
		},
		{
			"right",
			NewBlock(
				makeBodyLine(nChars(20), 272, 100),
				makeBodyLine(nChars(30), 172, 112),
				makeBodyLine(nChars(25), 222, 124),
			),
			model.AlignRight,
		},
		{
			"right-aligned label over a justified body",
			NewBlock(
				makeBodyLine(nChars(10), 372, 100),
				makeBodyLine(nChars(40), 72, 112),
				makeBodyLine(nChars(40), 72, 124),
				makeBodyLine(nChars(25), 72, 136),
			),
			model.AlignFull,
		},
		{
			"right-aligned label over a two-line body",
			NewBlock(
				makeBodyLine(nChars(10), 372, 100),
				makeBodyLine(nChars(40), 72, 112),
				makeBodyLine(nChars(25), 72, 124),
			),
			model.AlignFull,
		},
		{
			"broken run",
			NewBlock(
				makeBodyLine(nChars(40), 72, 100),
				makeBodyLine(nChars(40), 72, 112),
				makeBodyLine(nChars(10), 150, 124),
			),
			model.AlignUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.block.FillAlignment()
			if tt.block.Alignment != tt.expected {
				t.Errorf("Alignment = %v, want %v", tt.block.Alignment, tt.expected)
			}
		})
	}
}

func TestBlock_FillAlignment_Idempotent(t *testing.T) {
	b := makeParagraph(1, 72, 100, 40, 30, 35)
	b.FillAlignment()
	first := b.Alignment
	b.FillAlignment()
	if b.Alignment != first {
		t.Errorf("second run = %v, first run = %v", b.Alignment, first)
	}
}

func TestBlock_Text(t *testing.T) {
	b := NewBlock(makeBodyLine("one", 0, 0), makeBodyLine("two", 0, 12))
	if b.Text() != "one\ntwo" {
		t.Errorf("Text() = %q", b.Text())
	}
	if b.LineCount() != 2 {
		t.Errorf("LineCount() = %d", b.LineCount())
	}
	if NewBlock().FirstLine() != nil || NewBlock().LastLine() != nil {
		t.Error("empty block should have no first or last line")
	}
}

func TestBlock_EmptyGeometryPanics(t *testing.T) {
	expectInvariantPanic(t, func() { NewBlock().XMin() })
	expectInvariantPanic(t, func() { NewBlock().MedianStyle() })
}

func TestBlock_MergeLines(t *testing.T) {
	b := NewBlock(
		makeBodyLine("A hyphen-", 0, 0),
		makeBodyLine("ated word", 0, 12),
		makeBodyLine("ends here", 0, 24),
	)
	b.MergeLines()
	if b.LineCount() != 1 {
		t.Fatalf("LineCount() = %d, want 1", b.LineCount())
	}
	if got := b.Text(); got != "A hyphenated word ends here" {
		t.Errorf("Text() = %q", got)
	}
}

func TestBlock_Absorb(t *testing.T) {
	a := makeParagraph(1, 72, 100, 40, 30)
	a.Alignment = model.AlignLeft
	b := makeParagraph(2, 72, 100, 40)
	b.Alignment = model.AlignFull
	b.EndOfPage = true

	a.Absorb(b)
	if a.LineCount() != 3 {
		t.Errorf("LineCount() = %d, want 3", a.LineCount())
	}
	if !a.EndOfPage {
		t.Error("EndOfPage should carry over")
	}
	if a.Alignment != model.AlignFull {
		t.Errorf("Alignment = %v, want full", a.Alignment)
	}
	if a.FirstPage() != 1 || a.LastPage() != 2 {
		t.Errorf("pages = %d..%d", a.FirstPage(), a.LastPage())
	}
}

func TestBlock_PageRegions(t *testing.T) {
	b := NewBlock(
		makeLine("bottom", 1, 72, 700, 10, bodyStyle),
		makeLine("top of next", 2, 72, 80, 10, bodyStyle),
		makeLine("second", 2, 72, 92, 10, bodyStyle),
	)
	regions := b.PageRegions()
	if len(regions) != 2 {
		t.Fatalf("got %d regions, want 2", len(regions))
	}
	if regions[0] != model.NewBox(1, 72, 132, 700, 710) {
		t.Errorf("page 1 region = %+v", regions[0])
	}
	if regions[1] != model.NewBox(2, 72, 182, 80, 102) {
		t.Errorf("page 2 region = %+v", regions[1])
	}
}

func TestBlock_MedianMeasures(t *testing.T) {
	b := makeParagraph(1, 0, 0, 12, 9)
	if got := b.MedianCharWidth(); got != 10 {
		t.Errorf("MedianCharWidth() = %v, want 10", got)
	}
	if got := b.MedianCharHeight(); got != 10 {
		t.Errorf("MedianCharHeight() = %v, want 10", got)
	}
	if got := NewBlock().MedianCharWidth(); got != 0 {
		t.Errorf("empty MedianCharWidth() = %v, want 0", got)
	}
}

func TestBlock_IsLeftAligned(t *testing.T) {
	if !makeParagraph(1, 72, 0, 40, 20, 30).IsLeftAligned() {
		t.Error("lines starting at the same x should be left aligned")
	}
	b := NewBlock(makeBodyLine(nChars(40), 72, 0), makeBodyLine(nChars(40), 90, 12))
	if b.IsLeftAligned() {
		t.Error("indented line should break left alignment")
	}
}

func TestBlock_LooksLikeFormula(t *testing.T) {
	b := NewBlock(
		makeBodyLine("a+b=c-2", 0, 0),
		makeBodyLine("(x+1)/2", 0, 12),
		makeBodyLine("where a is", 0, 24),
	)
	if !b.LooksLikeFormula() {
		t.Error("two formula lines out of three should look like a formula")
	}
	if makeParagraph(1, 0, 0, 10, 10).LooksLikeFormula() {
		t.Error("plain text should not look like a formula")
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindPlainText, "plain"},
		{KindNumbered, "numbered"},
		{KindNumberedLabel, "numbered-label"},
		{KindFormula, "formula"},
		{KindTable, "table"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.expected)
		}
	}
}
