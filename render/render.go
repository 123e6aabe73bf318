// Package render materialises blocks as images.
//
// Rasterizing a PDF page is left to a [Rasterizer] supplied by the caller.
// [RegionRenderer] crops block regions out of the rasterized pages, so a
// formula or table that the text layer could not represent can be kept as a
// picture or passed to OCR.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/tsawler/outline/layout"
	"github.com/tsawler/outline/model"
)

// PointsPerInch is the PDF user space resolution.
const PointsPerInch = 72

// DefaultDPI is the resolution used for block crops.
const DefaultDPI = 288

// ErrEmptyRegion is returned when a region has no area.
var ErrEmptyRegion = errors.New("empty region")

// Rasterizer renders whole pages. pageIndex is zero-based and the returned
// image must be drawn at dpi dots per inch with its origin at the top-left
// corner of the page.
type Rasterizer interface {
	RenderPage(pageIndex int, dpi float64) (image.Image, error)
}

// RegionRenderer crops rectangles given in page units out of rasterized pages.
type RegionRenderer struct {
	src Rasterizer
	dpi float64
}

// NewRegionRenderer creates a renderer at DefaultDPI.
func NewRegionRenderer(src Rasterizer) *RegionRenderer {
	return NewRegionRendererWithDPI(src, DefaultDPI)
}

// NewRegionRendererWithDPI creates a renderer with a custom resolution.
func NewRegionRendererWithDPI(src Rasterizer, dpi float64) *RegionRenderer {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return &RegionRenderer{src: src, dpi: dpi}
}

// DPI returns the rendering resolution
func (r *RegionRenderer) DPI() float64 {
	return r.dpi
}

// RenderRegion renders region (in points, page 1-based) to an RGBA image.
// Parts of the region outside the page are white.
func (r *RegionRenderer) RenderRegion(region model.Box) (*image.RGBA, error) {
	if region.Width() <= 0 || region.Height() <= 0 {
		return nil, fmt.Errorf("page %d: %w", region.Page, ErrEmptyRegion)
	}
	page, err := r.src.RenderPage(region.Page-1, r.dpi)
	if err != nil {
		return nil, fmt.Errorf("failed to render page %d: %w", region.Page, err)
	}

	scale := r.dpi / PointsPerInch
	x0 := int(math.Round(region.XMin * scale))
	y0 := int(math.Round(region.YMin * scale))
	w := int(math.Round(region.Width() * scale))
	h := int(math.Round(region.Height() * scale))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	origin := page.Bounds().Min
	draw.Draw(dst, dst.Bounds(), page, image.Pt(origin.X+x0, origin.Y+y0), draw.Over)
	return dst, nil
}

// BlockRegions returns the area to crop for each page the block touches. The
// character boxes are padded by half a median character width horizontally
// and by a fraction of the median character height vertically, leaving more
// room below the text than above it for descenders.
func BlockRegions(b *layout.Block) []model.Box {
	xField := b.MedianCharWidth() / 2
	yField := b.MedianCharHeight() / 1.3

	regions := b.PageRegions()
	for i, reg := range regions {
		regions[i] = model.Box{
			Page: reg.Page,
			XMin: reg.XMin - xField,
			XMax: reg.XMax + xField,
			YMin: reg.YMin - yField,
			YMax: reg.YMax + 0.8*yField,
		}
	}
	return regions
}

// RenderBlock renders a block, one image per page it spans.
func (r *RegionRenderer) RenderBlock(b *layout.Block) ([]*image.RGBA, error) {
	var images []*image.RGBA
	for _, reg := range BlockRegions(b) {
		img, err := r.RenderRegion(reg)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}

// ImageRasterizer serves pre-rendered page images, rescaling them when a
// different resolution is requested.
type ImageRasterizer struct {
	Pages []image.Image
	DPI   float64
}

// RenderPage implements Rasterizer.
func (r *ImageRasterizer) RenderPage(pageIndex int, dpi float64) (image.Image, error) {
	if pageIndex < 0 || pageIndex >= len(r.Pages) {
		return nil, fmt.Errorf("page index %d out of range [0, %d)", pageIndex, len(r.Pages))
	}
	src := r.Pages[pageIndex]
	if dpi == r.DPI || r.DPI <= 0 {
		return src, nil
	}
	scale := dpi / r.DPI
	b := src.Bounds()
	w := int(math.Round(float64(b.Dx()) * scale))
	h := int(math.Round(float64(b.Dy()) * scale))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst, nil
}
