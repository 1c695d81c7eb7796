// Package color holds the RGB triple passed between the palette extractor and
// the light vendors, plus the conversions each vendor encoding needs.
package color

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RGB is a color with 8-bit channels.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Hex returns the lowercase "#rrggbb" form.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String implements fmt.Stringer.
func (c RGB) String() string {
	return c.Hex()
}

// ParseHex parses "#rrggbb" or "rrggbb", case-insensitive.
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Packed returns the color as a single 0xRRGGBB integer.
func (c RGB) Packed() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// XY converts to CIE 1931 xy chromaticity using the Philips wide-gamut
// matrix, the encoding Hue bridges expect alongside a separate brightness.
func (c RGB) XY() (float32, float32) {
	r := gammaExpand(float64(c.R) / 255)
	g := gammaExpand(float64(c.G) / 255)
	b := gammaExpand(float64(c.B) / 255)

	x := r*0.664511 + g*0.154324 + b*0.162028
	y := r*0.283881 + g*0.668433 + b*0.047685
	z := r*0.000088 + g*0.072310 + b*0.986039

	sum := x + y + z
	if sum == 0 {
		return 0, 0
	}
	return float32(x / sum), float32(y / sum)
}

func gammaExpand(v float64) float64 {
	if v > 0.04045 {
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return v / 12.92
}

// HSV16 converts to hue, saturation and value scaled to the 16-bit ranges
// LIFX bulbs use for their HSBK fields.
func (c RGB) HSV16() (uint16, uint16, uint16) {
	h, s, v := c.hsv()
	return uint16(h * 65535), uint16(s * 65535), uint16(v * 65535)
}

// hsv returns hue, saturation and value in [0, 1].
func (c RGB) hsv() (float64, float64, float64) {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	v := max
	if max == min {
		return 0, 0, v
	}

	s := (max - min) / max
	rc := (max - r) / (max - min)
	gc := (max - g) / (max - min)
	bc := (max - b) / (max - min)

	var h float64
	switch max {
	case r:
		h = bc - gc
	case g:
		h = 2 + rc - bc
	default:
		h = 4 + gc - rc
	}
	h = math.Mod(h/6, 1)
	if h < 0 {
		h++
	}
	return h, s, v
}
