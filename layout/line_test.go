package layout

import (
	"errors"
	"testing"

	"github.com/tsawler/outline/model"
)

var (
	bodyStyle    = model.Style{Font: "Times-Roman", Size: 10}
	headingStyle = model.Style{Font: "Times-Bold", Size: 14}
)

// makeLine creates a line on page whose characters are charW wide and 10 high,
// starting at (x, y).
func makeLine(txt string, page int, x, y, charW float64, style model.Style) *Line {
	runes := []rune(txt)
	boxes := make([]model.Box, len(runes))
	for i := range runes {
		left := x + float64(i)*charW
		boxes[i] = model.NewBox(page, left, left+charW, y, y+10)
	}
	return NewLine(txt, style, boxes)
}

// makeBodyLine creates a body-style line with 10-unit characters on page 1
func makeBodyLine(txt string, x, y float64) *Line {
	return makeLine(txt, 1, x, y, 10, bodyStyle)
}

// expectInvariantPanic fails the test unless fn panics with *model.InvariantError
func expectInvariantPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		err, ok := r.(error)
		var ie *model.InvariantError
		if !ok || !errors.As(err, &ie) {
			t.Fatalf("expected *model.InvariantError, got %T", r)
		}
	}()
	fn()
}

func TestNewLine_BoxCountMismatch(t *testing.T) {
	expectInvariantPanic(t, func() {
		NewLine("abc", bodyStyle, []model.Box{model.NewBox(1, 0, 1, 0, 1)})
	})
}

func TestLine_EmptyGeometryPanics(t *testing.T) {
	empty := &Line{}
	for name, fn := range map[string]func(){
		"XMin":        func() { empty.XMin() },
		"YMax":        func() { empty.YMax() },
		"FirstPage":   func() { empty.FirstPage() },
		"MedianStyle": func() { empty.MedianStyle() },
	} {
		t.Run(name, func(t *testing.T) {
			expectInvariantPanic(t, fn)
		})
	}
}

func TestLine_Geometry(t *testing.T) {
	l := makeBodyLine("hello", 100, 50)
	if l.XMin() != 100 || l.XMax() != 150 {
		t.Errorf("x extent = %v..%v, want 100..150", l.XMin(), l.XMax())
	}
	if l.YMin() != 50 || l.YMax() != 60 {
		t.Errorf("y extent = %v..%v, want 50..60", l.YMin(), l.YMax())
	}
	if l.Width() != 50 || l.Height() != 10 {
		t.Errorf("Width/Height = %v/%v", l.Width(), l.Height())
	}
	if l.FirstPage() != 1 || l.LastPage() != 1 {
		t.Errorf("pages = %d..%d", l.FirstPage(), l.LastPage())
	}
	// min char width 10, capped at 50/80
	if got := l.Eps(); got != 50.0/80 {
		t.Errorf("Eps() = %v, want %v", got, 50.0/80)
	}
}

func TestLine_Trim(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"no whitespace", "abc", "abc"},
		{"both ends", "  abc d \t", "abc d"},
		{"only whitespace", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := makeBodyLine(tt.text, 0, 0)
			l.Trim()
			if l.Text() != tt.expected {
				t.Errorf("Trim() = %q, want %q", l.Text(), tt.expected)
			}
			if len(l.Boxes) != l.Len() || len(l.Styles) != l.Len() {
				t.Error("parallel slices out of sync")
			}
		})
	}
}

func TestLine_AppendWord(t *testing.T) {
	l := makeBodyLine("foo", 0, 0)
	l.AppendWord(makeBodyLine("bar", 45, 0))

	if l.Text() != "foo bar" {
		t.Fatalf("Text() = %q, want %q", l.Text(), "foo bar")
	}
	gap := l.Boxes[3]
	if gap.XMin != 30 || gap.XMax != 45 {
		t.Errorf("gap box = %v..%v, want 30..45", gap.XMin, gap.XMax)
	}
	if l.Styles[3] != bodyStyle {
		t.Errorf("gap style = %v", l.Styles[3])
	}

	empty := &Line{}
	empty.AppendWord(makeBodyLine("x", 0, 0))
	if empty.Text() != "x" {
		t.Errorf("AppendWord onto empty line = %q", empty.Text())
	}
}

func TestLine_EndsWithHyphen(t *testing.T) {
	tests := []struct {
		text     string
		expected bool
	}{
		{"exam-", true},
		{"exam‐", true},
		{"exam–", true},
		{"exam", false},
		{"-", false},
		{"a -", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := makeBodyLine(tt.text, 0, 0).EndsWithHyphen(); got != tt.expected {
			t.Errorf("EndsWithHyphen(%q) = %v, want %v", tt.text, got, tt.expected)
		}
	}
}

func TestLine_MergeHyphenated(t *testing.T) {
	l := makeBodyLine("recon-", 0, 0)
	l.Merge(makeBodyLine("struction", 0, 12))
	if l.Text() != "reconstruction" {
		t.Errorf("Merge() = %q, want %q", l.Text(), "reconstruction")
	}
}

func TestLine_MergeRoundTrip(t *testing.T) {
	first, second := "the first line", "and the second"
	l := makeBodyLine(first, 0, 0)
	l.Merge(makeBodyLine(second, 0, 12))

	n := len([]rune(first))
	if l.Chars[n] != ' ' {
		t.Fatalf("separator = %q, want space", l.Chars[n])
	}
	if sep := l.Boxes[n]; sep.Width() != 0 || sep.XMin != 140 {
		t.Errorf("separator box = %+v, want zero width at 140", sep)
	}
	if got := l.Slice(0, n).Text(); got != first {
		t.Errorf("left part = %q, want %q", got, first)
	}
	if got := l.Slice(n+1, l.Len()).Text(); got != second {
		t.Errorf("right part = %q, want %q", got, second)
	}
}

func TestLine_MedianStyle(t *testing.T) {
	l := makeBodyLine("ab", 0, 0)
	l.Append(makeLine("cde", 1, 20, 0, 10, headingStyle))
	if got := l.MedianStyle(); got != headingStyle {
		t.Errorf("MedianStyle() = %v, want %v", got, headingStyle)
	}

	tie := makeBodyLine("ab", 0, 0)
	tie.Append(makeLine("cd", 1, 20, 0, 10, headingStyle))
	if got := tie.MedianStyle(); got != bodyStyle {
		t.Errorf("MedianStyle() on tie = %v, want first seen %v", got, bodyStyle)
	}
}

func TestLine_AlignWith(t *testing.T) {
	// 40 characters, 400 units: eps is 5
	long := makeBodyLine("0123456789012345678901234567890123456789", 100, 0)

	tests := []struct {
		name     string
		other    *Line
		expected model.Align
	}{
		{"same extent", makeBodyLine("abcdefghijabcdefghijabcdefghijabcdefghij", 102, 12), model.AlignFull},
		{"same start", makeBodyLine("short line", 100, 12), model.AlignLeft},
		{"same end", makeBodyLine("short line", 400, 12), model.AlignRight},
		{"same center", makeBodyLine("short line", 250, 12), model.AlignCenter},
		{"unrelated", makeBodyLine("short line", 130, 12), model.AlignUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := long.AlignWith(tt.other); got != tt.expected {
				t.Errorf("AlignWith() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestLine_Near(t *testing.T) {
	a := makeBodyLine("first", 0, 100)
	tests := []struct {
		name     string
		other    *Line
		expected bool
	}{
		{"next line", makeBodyLine("second", 0, 112), true},
		{"previous line", makeBodyLine("zero", 0, 88), true},
		{"same row", makeBodyLine("same", 200, 100), true},
		{"far below", makeBodyLine("far", 0, 200), false},
		{"other page", makeLine("next", 2, 0, 112, 10, bodyStyle), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Near(tt.other); got != tt.expected {
				t.Errorf("Near() = %v, want %v", got, tt.expected)
			}
			if got := tt.other.Near(a); got != tt.expected {
				t.Errorf("Near() reversed = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestLine_HaveSameStyles(t *testing.T) {
	a := makeBodyLine("body", 0, 0)
	if !a.HaveSameStyles(makeBodyLine("more body", 0, 12)) {
		t.Error("same style lines should match")
	}
	if a.HaveSameStyles(makeLine("Title", 1, 0, 12, 10, headingStyle)) {
		t.Error("different styles should not match")
	}
}

func TestLine_AlmostEquals(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected bool
	}{
		{"identical", "Annual report", "Annual report", true},
		{"page number drift", "Page 3 of 10", "Page 4 of 10", true},
		{"roman numerals", "Chapter II", "Chapter III", true},
		{"lower roman", "Preface page iv", "Preface page vi", true},
		{"large number jump", "Page 3", "Page 30", false},
		{"different words", "Page 3", "Side 3", false},
		{"extra token", "Page 3", "Page 3 4", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := makeBodyLine(tt.a, 0, 0), makeBodyLine(tt.b, 0, 700)
			if got := a.AlmostEquals(b); got != tt.expected {
				t.Errorf("AlmostEquals() = %v, want %v", got, tt.expected)
			}
			if a.AlmostEquals(b) != b.AlmostEquals(a) {
				t.Error("AlmostEquals is not symmetric")
			}
		})
	}

	styled := makeLine("Annual report", 1, 0, 0, 10, headingStyle)
	if styled.AlmostEquals(makeBodyLine("Annual report", 0, 0)) {
		t.Error("lines with different styles should not be almost equal")
	}
}

func TestLine_LooksLikeFormula(t *testing.T) {
	tests := []struct {
		text     string
		expected bool
	}{
		{"a+b=c-2", true},
		{"(1, 2) ∈ ℝ²", true},
		{"Hello world", false},
		{"x = y", false},
	}

	for _, tt := range tests {
		if got := makeBodyLine(tt.text, 0, 0).LooksLikeFormula(); got != tt.expected {
			t.Errorf("LooksLikeFormula(%q) = %v, want %v", tt.text, got, tt.expected)
		}
	}
}
