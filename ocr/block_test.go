package ocr

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/tiff"

	"github.com/tsawler/outline/layout"
	"github.com/tsawler/outline/model"
	"github.com/tsawler/outline/render"
)

// fakeRecognizer records the images it is given and answers with canned text.
type fakeRecognizer struct {
	answers []string
	err     error
	images  []image.Image
}

func (f *fakeRecognizer) RecognizeImage(data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	img, err := tiff.Decode(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	f.images = append(f.images, img)
	if len(f.answers) == 0 {
		return "", nil
	}
	ans := f.answers[0]
	f.answers = f.answers[1:]
	return ans, nil
}

func testBlock(txt string, pages ...int) *layout.Block {
	b := layout.NewBlock()
	for _, page := range pages {
		var boxes []model.Box
		for i := range []rune(txt) {
			left := 20 + float64(i)*10
			boxes = append(boxes, model.NewBox(page, left, left+10, 20, 30))
		}
		b.AppendLine(layout.NewLine(txt, model.Style{Font: "CMMI10", Size: 10}, boxes))
	}
	return b
}

func testRenderer(pages int) *render.RegionRenderer {
	var imgs []image.Image
	for i := 0; i < pages; i++ {
		img := image.NewGray(image.Rect(0, 0, 200, 100))
		for j := range img.Pix {
			img.Pix[j] = 0xff
		}
		img.Set(25, 25, color.Black)
		imgs = append(imgs, img)
	}
	return render.NewRegionRendererWithDPI(&render.ImageRasterizer{Pages: imgs, DPI: 72}, 72)
}

func TestRecognizeBlock(t *testing.T) {
	rec := &fakeRecognizer{answers: []string{"a + b", "= c"}}

	got, err := RecognizeBlock(rec, testRenderer(2), testBlock("a+b=c", 1, 2))
	if err != nil {
		t.Fatalf("RecognizeBlock() error = %v", err)
	}
	if got != "a + b\n= c" {
		t.Errorf("RecognizeBlock() = %q", got)
	}
	if len(rec.images) != 2 {
		t.Fatalf("recognizer saw %d images, want 2", len(rec.images))
	}
	if w := rec.images[0].Bounds().Dx(); w != 60 {
		t.Errorf("crop width = %d, want 60", w)
	}
}

func TestRecognizeBlock_Errors(t *testing.T) {
	boom := errors.New("boom")
	if _, err := RecognizeBlock(&fakeRecognizer{err: boom}, testRenderer(1), testBlock("x", 1)); !errors.Is(err, boom) {
		t.Errorf("error = %v, want boom", err)
	}
	if _, err := RecognizeBlock(&fakeRecognizer{}, testRenderer(1), testBlock("x", 4)); err == nil {
		t.Error("expected error for a page the rasterizer does not have")
	}
}

func TestRecognizeKinds(t *testing.T) {
	doc := layout.NewDocument("formulas")
	plain := testBlock("text", 1)
	formula := testBlock("x=1", 1)
	formula.Type.Kind = layout.KindFormula
	doc.Append(plain)
	doc.Append(formula)

	rec := &fakeRecognizer{answers: []string{"x = 1"}}
	got, err := RecognizeKinds(rec, testRenderer(1), doc, layout.KindFormula, layout.KindTable)
	if err != nil {
		t.Fatalf("RecognizeKinds() error = %v", err)
	}
	if len(got) != 1 || got[1] != "x = 1" {
		t.Errorf("RecognizeKinds() = %v", got)
	}
}

func TestDefaultClientConfig(t *testing.T) {
	cfg := DefaultClientConfig()
	if cfg.Language != "eng" {
		t.Errorf("Language = %q, want eng", cfg.Language)
	}
	if cfg.PageSegMode != PSMSingleBlock {
		t.Errorf("PageSegMode = %d, want %d", cfg.PageSegMode, PSMSingleBlock)
	}
}

func TestBlockSegMode(t *testing.T) {
	stacked := layout.NewBlock()
	for i := 0; i < 3; i++ {
		y := 20 + float64(i)*12
		stacked.AppendLine(layout.NewLine("abc", model.Style{Font: "Times-Roman", Size: 10}, []model.Box{
			model.NewBox(1, 20, 30, y, y+10),
			model.NewBox(1, 30, 40, y, y+10),
			model.NewBox(1, 40, 50, y, y+10),
		}))
	}

	tests := []struct {
		name     string
		block    *layout.Block
		expected PageSegMode
	}{
		{"one line", testBlock("x+y", 1), PSMSingleLine},
		{"split across pages", testBlock("x+y", 1, 2), PSMAuto},
		{"several lines", stacked, PSMAuto},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := blockSegMode(tt.block, PSMAuto); got != tt.expected {
				t.Errorf("blockSegMode() = %d, want %d", got, tt.expected)
			}
		})
	}
}
