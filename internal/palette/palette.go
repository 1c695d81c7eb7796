// Package palette turns a captured frame into a short list of
// representative colors.
package palette

import (
	"image"

	"github.com/dokzlo13/glowd/internal/color"
)

// Extractor produces up to n representative colors from a frame.
// Implementations must tolerate any image size, including empty.
type Extractor interface {
	Extract(img image.Image, n int) []color.RGB
}

// maxSamplesPerAxis bounds the per-strip work: strips larger than
// 64x64 are sampled on a coarser grid instead of pixel by pixel.
const maxSamplesPerAxis = 64

// Strips splits the frame into n vertical strips and averages each
// strip's pixels, yielding a left-to-right palette. Strips narrower
// than one pixel are skipped, so the result may hold fewer than n
// colors for very small frames.
type Strips struct{}

func (Strips) Extract(img image.Image, n int) []color.RGB {
	if img == nil || n < 1 {
		return nil
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil
	}

	stepY := bounds.Dy() / maxSamplesPerAxis
	if stepY < 1 {
		stepY = 1
	}

	colors := make([]color.RGB, 0, n)
	for i := 0; i < n; i++ {
		x0 := bounds.Min.X + bounds.Dx()*i/n
		x1 := bounds.Min.X + bounds.Dx()*(i+1)/n
		if x0 == x1 {
			continue
		}
		stepX := (x1 - x0) / maxSamplesPerAxis
		if stepX < 1 {
			stepX = 1
		}

		var sumR, sumG, sumB, count uint64
		for y := bounds.Min.Y; y < bounds.Max.Y; y += stepY {
			for x := x0; x < x1; x += stepX {
				r, g, b, _ := img.At(x, y).RGBA()
				sumR += uint64(r >> 8)
				sumG += uint64(g >> 8)
				sumB += uint64(b >> 8)
				count++
			}
		}
		colors = append(colors, color.RGB{
			R: uint8(sumR / count),
			G: uint8(sumG / count),
			B: uint8(sumB / count),
		})
	}
	return colors
}
