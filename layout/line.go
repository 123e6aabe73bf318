package layout

import (
	"cmp"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/tsawler/outline/model"
)

// alignEpsDivisor scales a line width into the tolerance used by the
// alignment predicates.
const alignEpsDivisor = 80

// Line is a single rendered text line. Every character carries its own style
// and bounding box, so Chars, Styles and Boxes always have the same length.
type Line struct {
	Chars  []rune
	Styles []model.Style
	Boxes  []model.Box
}

// NewLine creates a line whose characters all share one style. boxes must
// hold one box per rune of text.
func NewLine(text string, style model.Style, boxes []model.Box) *Line {
	chars := []rune(text)
	if len(chars) != len(boxes) {
		model.Violatef("line %q has %d characters but %d boxes", text, len(chars), len(boxes))
	}
	styles := make([]model.Style, len(chars))
	for i := range styles {
		styles[i] = style
	}
	return &Line{
		Chars:  chars,
		Styles: styles,
		Boxes:  slices.Clone(boxes),
	}
}

// Text returns the line content
func (l *Line) Text() string {
	return string(l.Chars)
}

// String implements fmt.Stringer.
func (l *Line) String() string {
	return l.Text()
}

// Len returns the number of characters
func (l *Line) Len() int {
	return len(l.Chars)
}

// IsEmpty reports whether the line has no characters
func (l *Line) IsEmpty() bool {
	return len(l.Chars) == 0
}

// Slice returns a new line holding characters [from, to).
func (l *Line) Slice(from, to int) *Line {
	return &Line{
		Chars:  slices.Clone(l.Chars[from:to]),
		Styles: slices.Clone(l.Styles[from:to]),
		Boxes:  slices.Clone(l.Boxes[from:to]),
	}
}

func (l *Line) checkInvariant() {
	if len(l.Chars) != len(l.Styles) || len(l.Chars) != len(l.Boxes) {
		model.Violatef("line %q has %d chars, %d styles, %d boxes",
			l.Text(), len(l.Chars), len(l.Styles), len(l.Boxes))
	}
}

// Trim drops leading and trailing whitespace. A line holding only whitespace
// becomes empty.
func (l *Line) Trim() {
	start := 0
	for start < len(l.Chars) && unicode.IsSpace(l.Chars[start]) {
		start++
	}
	end := len(l.Chars)
	for end > start && unicode.IsSpace(l.Chars[end-1]) {
		end--
	}
	if start == end {
		l.Chars, l.Styles, l.Boxes = nil, nil, nil
		return
	}
	l.Chars = l.Chars[start:end]
	l.Styles = l.Styles[start:end]
	l.Boxes = l.Boxes[start:end]
	l.checkInvariant()
}

// AppendWord joins other onto l with a synthetic space. The space takes the
// style of l's last character and spans the horizontal gap between the two
// lines at the height of l's last character.
func (l *Line) AppendWord(other *Line) {
	if other.IsEmpty() {
		return
	}
	if l.IsEmpty() {
		l.Chars = slices.Clone(other.Chars)
		l.Styles = slices.Clone(other.Styles)
		l.Boxes = slices.Clone(other.Boxes)
		return
	}
	last := l.Boxes[len(l.Boxes)-1]
	gap := model.Box{
		Page: last.Page,
		XMin: last.XMax,
		XMax: math.Max(last.XMax, other.Boxes[0].XMin),
		YMin: last.YMin,
		YMax: last.YMax,
	}
	l.Chars = append(l.Chars, ' ')
	l.Styles = append(l.Styles, l.Styles[len(l.Styles)-1])
	l.Boxes = append(l.Boxes, gap)
	l.Append(other)
}

// Append concatenates other onto l without any separator.
func (l *Line) Append(other *Line) {
	l.Chars = append(l.Chars, other.Chars...)
	l.Styles = append(l.Styles, other.Styles...)
	l.Boxes = append(l.Boxes, other.Boxes...)
	l.checkInvariant()
}

func isHyphen(r rune) bool {
	return r == '-' || r == '‐' || r == '–'
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) || unicode.Is(unicode.Pc, r)
}

// EndsWithHyphen reports whether the line ends with a word character followed
// by a hyphen-like glyph, i.e. a word broken across lines.
func (l *Line) EndsWithHyphen() bool {
	n := len(l.Chars)
	return n >= 2 && isHyphen(l.Chars[n-1]) && isWordRune(l.Chars[n-2])
}

// Merge joins other onto l as one logical line. A trailing hyphen is dropped
// and the word rejoined; otherwise a zero-width space is inserted.
func (l *Line) Merge(other *Line) {
	switch {
	case l.EndsWithHyphen():
		n := len(l.Chars) - 1
		l.Chars = l.Chars[:n]
		l.Styles = l.Styles[:n]
		l.Boxes = l.Boxes[:n]
	case !l.IsEmpty():
		last := l.Boxes[len(l.Boxes)-1]
		last.XMin = last.XMax
		l.Chars = append(l.Chars, ' ')
		l.Styles = append(l.Styles, l.Styles[len(l.Styles)-1])
		l.Boxes = append(l.Boxes, last)
	}
	l.Append(other)
}

// MedianStyle returns the style covering the most characters. On a tie the
// style seen first wins.
func (l *Line) MedianStyle() model.Style {
	if l.IsEmpty() {
		model.Violatef("median style of an empty line")
	}
	return mostCommon(l.Styles)
}

// mostCommon returns the most frequent style, preferring the first seen on ties.
func mostCommon(styles []model.Style) model.Style {
	counts := make(map[model.Style]int, 4)
	var order []model.Style
	for _, s := range styles {
		if counts[s] == 0 {
			order = append(order, s)
		}
		counts[s]++
	}
	best := order[0]
	for _, s := range order[1:] {
		if counts[s] > counts[best] {
			best = s
		}
	}
	return best
}

func (l *Line) mustHaveChars(what string) {
	if l.IsEmpty() {
		model.Violatef("%s of an empty line", what)
	}
}

// XMin returns the leftmost character edge
func (l *Line) XMin() float64 {
	l.mustHaveChars("xMin")
	res := l.Boxes[0].XMin
	for _, b := range l.Boxes[1:] {
		res = math.Min(res, b.XMin)
	}
	return res
}

// XMax returns the rightmost character edge
func (l *Line) XMax() float64 {
	l.mustHaveChars("xMax")
	res := l.Boxes[0].XMax
	for _, b := range l.Boxes[1:] {
		res = math.Max(res, b.XMax)
	}
	return res
}

// YMin returns the topmost character edge
func (l *Line) YMin() float64 {
	l.mustHaveChars("yMin")
	res := l.Boxes[0].YMin
	for _, b := range l.Boxes[1:] {
		res = math.Min(res, b.YMin)
	}
	return res
}

// YMax returns the bottommost character edge
func (l *Line) YMax() float64 {
	l.mustHaveChars("yMax")
	res := l.Boxes[0].YMax
	for _, b := range l.Boxes[1:] {
		res = math.Max(res, b.YMax)
	}
	return res
}

// Width returns the horizontal extent of the line
func (l *Line) Width() float64 {
	return l.XMax() - l.XMin()
}

// Height returns the vertical extent of the line
func (l *Line) Height() float64 {
	return l.YMax() - l.YMin()
}

// FirstPage returns the page of the first character
func (l *Line) FirstPage() int {
	l.mustHaveChars("first page")
	return l.Boxes[0].Page
}

// LastPage returns the page of the last character
func (l *Line) LastPage() int {
	l.mustHaveChars("last page")
	return l.Boxes[len(l.Boxes)-1].Page
}

// Eps returns the narrowest character width, capped at width/80.
func (l *Line) Eps() float64 {
	eps := math.MaxFloat64
	for _, b := range l.Boxes {
		eps = math.Min(eps, b.Width())
	}
	return math.Min(eps, l.Width()/alignEpsDivisor)
}

func (l *Line) alignEps(other *Line) float64 {
	return math.Max(l.Width(), other.Width()) / alignEpsDivisor
}

// IsLeftAlignedWith reports whether both lines start at the same x position
func (l *Line) IsLeftAlignedWith(other *Line) bool {
	return math.Abs(l.XMin()-other.XMin()) < l.alignEps(other)
}

// IsRightAlignedWith reports whether both lines end at the same x position
func (l *Line) IsRightAlignedWith(other *Line) bool {
	return math.Abs(l.XMax()-other.XMax()) < l.alignEps(other)
}

// IsCenterAlignedWith reports whether the lines share a horizontal center
func (l *Line) IsCenterAlignedWith(other *Line) bool {
	left := other.XMin() - l.XMin()
	right := l.XMax() - other.XMax()
	return math.Abs(left-right) < l.alignEps(other)
}

// IsFullAlignedWith reports whether the lines are both left and right aligned
func (l *Line) IsFullAlignedWith(other *Line) bool {
	return l.IsRightAlignedWith(other) && l.IsLeftAlignedWith(other)
}

// AlignWith returns the strongest alignment shared by the two lines, in the
// priority Full, Center, Left, Right.
func (l *Line) AlignWith(other *Line) model.Align {
	switch {
	case l.IsFullAlignedWith(other):
		return model.AlignFull
	case l.IsCenterAlignedWith(other):
		return model.AlignCenter
	case l.IsLeftAlignedWith(other):
		return model.AlignLeft
	case l.IsRightAlignedWith(other):
		return model.AlignRight
	default:
		return model.AlignUnknown
	}
}

// Near reports whether the two lines sit next to each other vertically on the
// same page, in either order.
func (l *Line) Near(other *Line) bool {
	gap := 2 * math.Min(l.Height(), other.Height())
	if l.LastPage() == other.FirstPage() &&
		(other.YMin() <= l.YMin() && l.YMin() <= other.YMax() || math.Abs(l.YMax()-other.YMin()) < gap) {
		return true
	}
	return l.FirstPage() == other.LastPage() &&
		(l.YMin() <= other.YMin() && other.YMin() <= l.YMax() || math.Abs(l.YMin()-other.YMax()) < gap)
}

// HaveSameStyles reports whether the lines share at least one character style
// and have approximately equal median styles.
func (l *Line) HaveSameStyles(other *Line) bool {
	mine := make(map[model.Style]struct{}, 4)
	for _, s := range l.Styles {
		mine[s] = struct{}{}
	}
	shared := false
	for _, s := range other.Styles {
		if _, ok := mine[s]; ok {
			shared = true
			break
		}
	}
	if !shared {
		return false
	}
	return l.MedianStyle().AlmostEquals(other.MedianStyle())
}

// tokenClass splits text into tokens of one character class and knows how to
// order and fuzzily compare them.
type tokenClass struct {
	separators *regexp.Regexp
	compare    func(a, b string) int
	almost     func(a, b string) bool
}

var tokenClasses = []tokenClass{
	{regexp.MustCompile(`[^0-9]+`), compareNumeric, numbersAlmostEqual},
	{regexp.MustCompile(`[^IVX]+`), strings.Compare, romanAlmostEqual},
	{regexp.MustCompile(`[^ivx]+`), strings.Compare, romanAlmostEqual},
	{regexp.MustCompile(`[\pN\pP\pZxviXVI]+`), strings.Compare, func(a, b string) bool { return a == b }},
}

func numericValue(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func compareNumeric(a, b string) int {
	return cmp.Compare(numericValue(a), numericValue(b))
}

func numbersAlmostEqual(a, b string) bool {
	return math.Abs(numericValue(a)-numericValue(b)) < 10
}

func romanAlmostEqual(a, b string) bool {
	return fuzzy.LevenshteinDistance(a, b) <= 4
}

func (c tokenClass) tokens(s string) []string {
	var out []string
	for _, tok := range c.separators.Split(s, -1) {
		if tok != "" {
			out = append(out, tok)
		}
	}
	slices.SortStableFunc(out, c.compare)
	return out
}

// AlmostEquals is the fuzzy comparison used to recognise repeated page
// furniture. Numbers may drift ("Page 7" vs "Page 12") and Roman numerals may
// differ slightly, while the remaining words must match exactly.
func (l *Line) AlmostEquals(other *Line) bool {
	if !l.HaveSameStyles(other) {
		return false
	}
	a, b := l.Text(), other.Text()
	for _, class := range tokenClasses {
		at, bt := class.tokens(a), class.tokens(b)
		if len(at) != len(bt) {
			return false
		}
		for i := range at {
			if !class.almost(at[i], bt[i]) {
				return false
			}
		}
	}
	return true
}

func isFormulaRune(r rune) bool {
	return unicode.Is(unicode.Sm, r) || unicode.IsNumber(r) || unicode.IsPunct(r)
}

// LooksLikeFormula reports whether more than a third of the characters are
// math symbols, numbers or punctuation.
func (l *Line) LooksLikeFormula() bool {
	count := 0
	for _, r := range l.Chars {
		if isFormulaRune(r) {
			count++
		}
	}
	return count > len(l.Chars)/3
}
