package model

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/cases"
)

// Align is the horizontal alignment tag of a block. The declaration order is
// the rank used by the prominence ordering (later = more prominent).
type Align int

const (
	AlignUnknown Align = iota
	AlignMultiple
	AlignRight
	AlignLeft
	AlignFull
	AlignCenter
)

var alignNames = [...]string{"unknown", "multiple", "right", "left", "full", "center"}

// String returns a string representation of the alignment
func (a Align) String() string {
	if a < AlignUnknown || int(a) >= len(alignNames) {
		return "unknown"
	}
	return alignNames[a]
}

// MarshalText implements encoding.TextMarshaler.
func (a Align) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Align) UnmarshalText(b []byte) error {
	for i, name := range alignNames {
		if strings.EqualFold(name, string(b)) {
			*a = Align(i)
			return nil
		}
	}
	return fmt.Errorf("unknown alignment %q", string(b))
}

// MaxAlign returns the higher-ranked of two alignments.
func MaxAlign(a, b Align) Align {
	if a > b {
		return a
	}
	return b
}

// Style identifies how a character was set: font, size and, once a block has
// been classified, the alignment of the block it belongs to.
type Style struct {
	Font  string
	Size  float64
	Align Align
}

// Equal reports whether font, size and alignment are identical.
func (s Style) Equal(other Style) bool {
	return s == other
}

// EqualIgnoringAlign reports whether font and size are identical.
func (s Style) EqualIgnoringAlign(other Style) bool {
	return s.Font == other.Font && s.Size == other.Size
}

// WithAlign returns a copy of s carrying the given alignment.
func (s Style) WithAlign(a Align) Style {
	s.Align = a
	return s
}

// AlmostEquals tolerates small differences in the font name, such as subset
// prefixes or weight suffixes: sizes must match exactly and the edit distance
// between font names must stay below a third of the longer name.
func (s Style) AlmostEquals(other Style) bool {
	if s.Size != other.Size {
		return false
	}
	maxLen := max(utf8.RuneCountInString(s.Font), utf8.RuneCountInString(other.Font))
	return fuzzy.LevenshteinDistance(s.Font, other.Font) < maxLen/3
}

// IsBold reports whether the font name mentions a bold face.
func (s Style) IsBold() bool {
	return fontHas(s.Font, "bold")
}

// IsItalic reports whether the font name mentions an italic face.
func (s Style) IsItalic() bool {
	return fontHas(s.Font, "italic")
}

func fontHas(font, face string) bool {
	return strings.Contains(cases.Fold().String(font), face)
}

// String returns a compact description such as "Times-Bold 12 left".
func (s Style) String() string {
	return fmt.Sprintf("%s %g %s", s.Font, s.Size, s.Align)
}

// Compare orders styles by prominence. A negative result means a is more
// heading-like than b: larger size, then bold, then higher alignment rank,
// then italic, then reverse lexicographic font name.
func Compare(a, b Style) int {
	if c := compareFace(a, b); c != 0 {
		return c
	}
	if a.Align != b.Align {
		if a.Align > b.Align {
			return -1
		}
		return 1
	}
	return compareTail(a, b)
}

// CompareIgnoringAlign is Compare without the alignment term.
func CompareIgnoringAlign(a, b Style) int {
	if c := compareFace(a, b); c != 0 {
		return c
	}
	return compareTail(a, b)
}

func compareFace(a, b Style) int {
	if a.Size != b.Size {
		if a.Size > b.Size {
			return -1
		}
		return 1
	}
	if ab, bb := a.IsBold(), b.IsBold(); ab != bb {
		if ab {
			return -1
		}
		return 1
	}
	return 0
}

func compareTail(a, b Style) int {
	if ai, bi := a.IsItalic(), b.IsItalic(); ai != bi {
		if ai {
			return -1
		}
		return 1
	}
	return -strings.Compare(a.Font, b.Font)
}
