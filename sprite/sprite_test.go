package sprite

import (
	"image"
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func solidImage(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestConvertTransparent(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	out := Convert(img, 6, 3)

	if out.Width != 6 || out.Height != 3 || len(out.Cells) != 18 {
		t.Fatalf("Unexpected size %dx%d (%d cells)", out.Width, out.Height, len(out.Cells))
	}
	for i, c := range out.Cells {
		if c.Rune != ' ' || c.Style != tcell.StyleDefault {
			t.Errorf("Cell %d should be blank, got %q", i, c.Rune)
		}
	}
}

func TestConvertSolidFillsBox(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	out := Convert(solidImage(8, 8, red), 4, 2)

	want := tcell.NewRGBColor(255, 0, 0)
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			c := out.At(x, y)
			_, bg, _ := c.Style.Decompose()
			if c.Rune != ' ' || bg != want {
				t.Errorf("Cell (%d,%d) expected red background, got %q %v", x, y, c.Rune, bg)
			}
		}
	}
}

// TestConvertKeepsAspect checks a square image is centred in a wide box
func TestConvertKeepsAspect(t *testing.T) {
	out := Convert(solidImage(8, 8, color.NRGBA{G: 200, A: 255}), 10, 2)

	// Grid 20x4: a square fits as 8x4 grid pixels, columns 3..6
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			_, bg, _ := out.At(x, y).Style.Decompose()
			filled := bg != tcell.ColorDefault
			inside := x >= 3 && x <= 6
			if filled != inside {
				t.Errorf("Cell (%d,%d) filled=%v, want %v", x, y, filled, inside)
			}
		}
	}
}

// TestConvertCropsTransparentBorder checks the opaque part is scaled to the box
func TestConvertCropsTransparentBorder(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	for y := 10; y < 14; y++ {
		for x := 10; x < 14; x++ {
			img.Set(x, y, color.NRGBA{B: 255, A: 255})
		}
	}

	out := Convert(img, 2, 1)
	for x := 0; x < out.Width; x++ {
		_, bg, _ := out.At(x, 0).Style.Decompose()
		if bg != tcell.NewRGBColor(0, 0, 255) {
			t.Errorf("Cell %d expected blue, got %v", x, bg)
		}
	}
}

func TestConvertEmptyBox(t *testing.T) {
	out := Convert(solidImage(2, 2, color.White), 0, 5)
	if out.Width != 0 || out.Height != 0 || len(out.Cells) != 0 {
		t.Errorf("Expected empty image, got %dx%d", out.Width, out.Height)
	}

	out = Convert(nil, 3, 2)
	if len(out.Cells) != 6 {
		t.Errorf("Nil image should still yield a blank box, got %d cells", len(out.Cells))
	}
}

func TestQuadrantCellPartial(t *testing.T) {
	red := pixel{r: 255, opaque: true}
	cell := quadrantCell([4]pixel{red, {}, {}, red})

	if cell.Rune != '▚' {
		t.Errorf("Expected diagonal quadrant, got %q", cell.Rune)
	}
	fg, bg, _ := cell.Style.Decompose()
	if fg != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("Expected red foreground, got %v", fg)
	}
	if bg != tcell.ColorDefault {
		t.Errorf("Expected default background, got %v", bg)
	}
}

func TestQuadrantCellSplit(t *testing.T) {
	white := pixel{r: 255, g: 255, b: 255, opaque: true}
	black := pixel{opaque: true}
	cell := quadrantCell([4]pixel{white, white, black, black})

	// Upper half white over black: either '▀' with white fg or '▄' with black fg
	fg, bg, _ := cell.Style.Decompose()
	switch cell.Rune {
	case '▀':
		if fg != tcell.NewRGBColor(255, 255, 255) || bg != tcell.NewRGBColor(0, 0, 0) {
			t.Errorf("Unexpected colors fg=%v bg=%v", fg, bg)
		}
	case '▄':
		if fg != tcell.NewRGBColor(0, 0, 0) || bg != tcell.NewRGBColor(255, 255, 255) {
			t.Errorf("Unexpected colors fg=%v bg=%v", fg, bg)
		}
	default:
		t.Errorf("Expected half block, got %q", cell.Rune)
	}
}
