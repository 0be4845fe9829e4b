// Package sprite converts raster images into terminal cells drawn with
// Unicode quadrant glyphs, two pixels wide and two pixels tall per cell.
package sprite

import (
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"
)

// QuadrantChars maps 4-bit patterns to Unicode quadrant characters
// Bit order: 0=UL, 1=UR, 2=LL, 3=LR (1 = foreground)
var QuadrantChars = [16]rune{
	' ', // 0000 - empty
	'▘', // 0001 - upper-left
	'▝', // 0010 - upper-right
	'▀', // 0011 - upper half
	'▖', // 0100 - lower-left
	'▌', // 0101 - left half
	'▞', // 0110 - anti-diagonal
	'▛', // 0111 - UL + UR + LL
	'▗', // 1000 - lower-right
	'▚', // 1001 - diagonal
	'▐', // 1010 - right half
	'▜', // 1011 - UL + UR + LR
	'▄', // 1100 - lower half
	'▙', // 1101 - UL + LL + LR
	'▟', // 1110 - UR + LL + LR
	'█', // 1111 - full block
}

// alphaThreshold is the minimum 8-bit alpha for a pixel to count as opaque
const alphaThreshold = 128

// Cell is one converted terminal cell
type Cell struct {
	Rune  rune
	Style tcell.Style
}

// Image is a converted sprite; Cells is row-major Width*Height
type Image struct {
	Width  int
	Height int
	Cells  []Cell
}

// At returns the cell at column x, row y
func (img *Image) At(x, y int) Cell {
	return img.Cells[y*img.Width+x]
}

type pixel struct {
	r, g, b uint8
	opaque  bool
}

// Convert renders img into a width x height cell box. The opaque part of the
// image is cropped, scaled with the terminal's 2:1 cell aspect preserved and
// centred in the box. Transparent areas keep the terminal default background.
func Convert(img image.Image, width, height int) *Image {
	out := &Image{Width: width, Height: height}
	if width <= 0 || height <= 0 {
		out.Width, out.Height = 0, 0
		return out
	}
	out.Cells = make([]Cell, width*height)
	for i := range out.Cells {
		out.Cells[i] = Cell{Rune: ' ', Style: tcell.StyleDefault}
	}

	if img == nil {
		return out
	}
	bounds := opaqueBounds(img)
	if bounds.Empty() {
		return out
	}

	// Effective pixel grid is 2x the cell box. Cells are twice as tall as
	// wide, so one grid row covers twice the height of one grid column.
	gridW, gridH := width*2, height*2
	srcW, srcH := bounds.Dx(), bounds.Dy()
	fitW, fitH := gridW, gridW*srcH/(2*srcW)
	if fitH > gridH {
		fitH = gridH
		fitW = gridH * 2 * srcW / srcH
	}
	if fitW < 1 {
		fitW = 1
	}
	if fitH < 1 {
		fitH = 1
	}
	offX := (gridW - fitW) / 2
	offY := (gridH - fitH) / 2

	sample := func(gx, gy int) pixel {
		fx, fy := gx-offX, gy-offY
		if fx < 0 || fy < 0 || fx >= fitW || fy >= fitH {
			return pixel{}
		}
		sx := bounds.Min.X + (fx*srcW+srcW/2)/fitW
		sy := bounds.Min.Y + (fy*srcH+srcH/2)/fitH
		return toPixel(img.At(sx, sy))
	}

	// Sample positions: [0]=UL, [1]=UR, [2]=LL, [3]=LR
	offsets := [4][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var block [4]pixel
			for i, off := range offsets {
				block[i] = sample(x*2+off[0], y*2+off[1])
			}
			out.Cells[y*width+x] = quadrantCell(block)
		}
	}
	return out
}

// quadrantCell picks the glyph and colors for a 2x2 pixel block
func quadrantCell(block [4]pixel) Cell {
	mask := 0
	for i, p := range block {
		if p.opaque {
			mask |= 1 << i
		}
	}

	switch mask {
	case 0:
		return Cell{Rune: ' ', Style: tcell.StyleDefault}
	case 0xF:
		char, fg, bg := findBestQuadrant(block)
		return Cell{Rune: char, Style: tcell.StyleDefault.Foreground(fg).Background(bg)}
	default:
		// Partially transparent: opaque pixels become the foreground shape
		fg, _, _ := computePatternColors(block, mask)
		return Cell{Rune: QuadrantChars[mask], Style: tcell.StyleDefault.Foreground(fg)}
	}
}

// findBestQuadrant finds the optimal quadrant character and fg/bg colors for 4 pixels
// Uses exhaustive search over all 16 patterns to minimize color error
func findBestQuadrant(block [4]pixel) (rune, tcell.Color, tcell.Color) {
	bestError := int(^uint(0) >> 1)
	bestPattern := 0
	var bestFg, bestBg tcell.Color

	for pattern := 0; pattern < 16; pattern++ {
		fg, bg, err := computePatternColors(block, pattern)
		if err < bestError {
			bestError = err
			bestPattern = pattern
			bestFg = fg
			bestBg = bg
		}
	}

	return QuadrantChars[bestPattern], bestFg, bestBg
}

// computePatternColors averages the foreground and background groups of a
// pattern and returns the total squared error against the block
func computePatternColors(block [4]pixel, pattern int) (fg, bg tcell.Color, totalError int) {
	var fgSum, bgSum [3]int
	var fgCount, bgCount int

	for i := 0; i < 4; i++ {
		p := block[i]
		if pattern&(1<<i) != 0 {
			fgSum[0] += int(p.r)
			fgSum[1] += int(p.g)
			fgSum[2] += int(p.b)
			fgCount++
		} else {
			bgSum[0] += int(p.r)
			bgSum[1] += int(p.g)
			bgSum[2] += int(p.b)
			bgCount++
		}
	}

	var fgAvg, bgAvg [3]int
	if fgCount > 0 {
		fgAvg = [3]int{fgSum[0] / fgCount, fgSum[1] / fgCount, fgSum[2] / fgCount}
	}
	if bgCount > 0 {
		bgAvg = [3]int{bgSum[0] / bgCount, bgSum[1] / bgCount, bgSum[2] / bgCount}
	}

	for i := 0; i < 4; i++ {
		target := bgAvg
		if pattern&(1<<i) != 0 {
			target = fgAvg
		}
		dr := int(block[i].r) - target[0]
		dg := int(block[i].g) - target[1]
		db := int(block[i].b) - target[2]
		totalError += dr*dr + dg*dg + db*db
	}

	fg = tcell.NewRGBColor(int32(fgAvg[0]), int32(fgAvg[1]), int32(fgAvg[2]))
	bg = tcell.NewRGBColor(int32(bgAvg[0]), int32(bgAvg[1]), int32(bgAvg[2]))
	return fg, bg, totalError
}

// opaqueBounds returns the bounding box of pixels above the alpha threshold
func opaqueBounds(img image.Image) image.Rectangle {
	b := img.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if !toPixel(img.At(x, y)).opaque {
				continue
			}
			minX = min(minX, x)
			minY = min(minY, y)
			maxX = max(maxX, x)
			maxY = max(maxY, y)
		}
	}
	if maxX < minX {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// toPixel converts any color.Color with alpha un-premultiplication
func toPixel(c color.Color) pixel {
	r, g, b, a := c.RGBA()
	if a>>8 < alphaThreshold {
		return pixel{}
	}
	return pixel{
		r:      uint8((r * 0xff) / a),
		g:      uint8((g * 0xff) / a),
		b:      uint8((b * 0xff) / a),
		opaque: true,
	}
}
