// Package region defines the screen rectangle selected for color sampling.
package region

import (
	"fmt"
	"image"
	"strconv"
	"strings"
)

// Region is a box in screen pixel coordinates, normalized so X1 <= X2 and
// Y1 <= Y2. The zero value means "full screen".
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// FromPoints builds a normalized Region from two drag endpoints, in any order.
func FromPoints(x1, y1, x2, y2 int) Region {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return Region{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Width returns the horizontal extent.
func (r Region) Width() int {
	return r.X2 - r.X1
}

// Height returns the vertical extent.
func (r Region) Height() int {
	return r.Y2 - r.Y1
}

// Empty reports whether the region covers no pixels.
func (r Region) Empty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// Rect converts to an image.Rectangle for cropping.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}

// String renders the "x1,y1,x2,y2" form.
func (r Region) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", r.X1, r.Y1, r.X2, r.Y2)
}

// Parse reads the "x1,y1,x2,y2" form, normalizing coordinate order.
func Parse(s string) (Region, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Region{}, fmt.Errorf("invalid region %q: want 4 comma-separated integers", s)
	}
	vals := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Region{}, fmt.Errorf("invalid region %q: %w", s, err)
		}
		vals[i] = v
	}
	return FromPoints(vals[0], vals[1], vals[2], vals[3]), nil
}
