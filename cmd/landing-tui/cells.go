package main

import (
	"image"
	"image/color"
)

// Each terminal cell covers cellW x cellH virtual pixels and shows two of
// them stacked with '▀': the foreground is the top half, the background the
// bottom half.
const (
	cellW = 8
	cellH = 16
)

// HalfBlock is the averaged color of the top and bottom half of one cell.
type HalfBlock struct {
	Top, Bottom color.RGBA
}

// Downsample averages img into cols x rows half-block cells. Pixels outside
// img count as black.
func Downsample(img *image.RGBA, cols, rows int) []HalfBlock {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	cells := make([]HalfBlock, cols*rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			x0, y0 := x*cellW, y*cellH
			cells[y*cols+x] = HalfBlock{
				Top:    average(img, image.Rect(x0, y0, x0+cellW, y0+cellH/2)),
				Bottom: average(img, image.Rect(x0, y0+cellH/2, x0+cellW, y0+cellH)),
			}
		}
	}
	return cells
}

func average(img *image.RGBA, r image.Rectangle) color.RGBA {
	n := r.Dx() * r.Dy()
	if n == 0 {
		return color.RGBA{A: 0xff}
	}
	clipped := r.Intersect(img.Bounds())
	var sr, sg, sb int
	for y := clipped.Min.Y; y < clipped.Max.Y; y++ {
		off := img.PixOffset(clipped.Min.X, y)
		for x := clipped.Min.X; x < clipped.Max.X; x++ {
			sr += int(img.Pix[off])
			sg += int(img.Pix[off+1])
			sb += int(img.Pix[off+2])
			off += 4
		}
	}
	return color.RGBA{R: uint8(sr / n), G: uint8(sg / n), B: uint8(sb / n), A: 0xff}
}
