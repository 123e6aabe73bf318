package model

import "math"

// Box is a page-relative bounding box. Y grows downward, so a smaller YMin
// means higher on the page.
type Box struct {
	Page int // 1-based page number, 0 when the box spans a whole document

	XMin, XMax float64
	YMin, YMax float64
}

// NewBox creates a box on the given page, normalizing swapped edges.
func NewBox(page int, xMin, xMax, yMin, yMax float64) Box {
	if xMax < xMin {
		xMin, xMax = xMax, xMin
	}
	if yMax < yMin {
		yMin, yMax = yMax, yMin
	}
	return Box{Page: page, XMin: xMin, XMax: xMax, YMin: yMin, YMax: yMax}
}

// Width returns the horizontal extent of the box
func (b Box) Width() float64 {
	return b.XMax - b.XMin
}

// Height returns the vertical extent of the box
func (b Box) Height() float64 {
	return b.YMax - b.YMin
}

// IsValid reports whether the box edges are ordered.
func (b Box) IsValid() bool {
	return b.XMin <= b.XMax && b.YMin <= b.YMax
}

// PlacedBefore reports whether b comes before other in page reading order:
// lower page first, then higher on the page, then further left, then by top edge.
func (b Box) PlacedBefore(other Box) bool {
	if b.Page != other.Page {
		return b.Page < other.Page
	}
	if b.YMax <= other.YMin {
		return true
	}
	if other.YMax <= b.YMin {
		return false
	}
	if b.XMax <= other.XMin {
		return true
	}
	if other.XMax <= b.XMin {
		return false
	}
	return b.YMin < other.YMin
}

// Compare orders boxes by PlacedBefore. It returns 0 when neither box is
// placed before the other.
func (b Box) Compare(other Box) int {
	if b.PlacedBefore(other) {
		return -1
	}
	if other.PlacedBefore(b) {
		return 1
	}
	return 0
}

// ExtendTo grows b so that it covers other. Both boxes must be on the same page.
func (b *Box) ExtendTo(other Box) {
	if b.Page != other.Page {
		Violatef("cannot extend box on page %d to page %d", b.Page, other.Page)
	}
	b.XMin = math.Min(b.XMin, other.XMin)
	b.XMax = math.Max(b.XMax, other.XMax)
	b.YMin = math.Min(b.YMin, other.YMin)
	b.YMax = math.Max(b.YMax, other.YMax)
}

// Union returns the smallest box covering both boxes, ignoring pages.
// The page of b is kept.
func (b Box) Union(other Box) Box {
	return Box{
		Page: b.Page,
		XMin: math.Min(b.XMin, other.XMin),
		XMax: math.Max(b.XMax, other.XMax),
		YMin: math.Min(b.YMin, other.YMin),
		YMax: math.Max(b.YMax, other.YMax),
	}
}

// Expand returns the box grown by dx on the left and right and dy on the top
// and bottom.
func (b Box) Expand(dx, dy float64) Box {
	return Box{
		Page: b.Page,
		XMin: b.XMin - dx,
		XMax: b.XMax + dx,
		YMin: b.YMin - dy,
		YMax: b.YMax + dy,
	}
}

// EmptyBounds returns a box primed for accumulation with Union: its edges are
// infinite in the wrong direction so the first union replaces them.
func EmptyBounds() Box {
	return Box{
		XMin: math.Inf(1),
		XMax: math.Inf(-1),
		YMin: math.Inf(1),
		YMax: math.Inf(-1),
	}
}
