// Package capture is a thin wrapper over the platform screenshot library. It
// grabs either the whole virtual screen (the selector background) or the
// configured sampling region.
package capture

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"

	"github.com/dokzlo13/glowd/internal/region"
)

// VirtualBounds returns the union of all active display bounds.
func VirtualBounds() (image.Rectangle, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return image.Rectangle{}, fmt.Errorf("no active displays found")
	}
	union := screenshot.GetDisplayBounds(0)
	for i := 1; i < n; i++ {
		union = union.Union(screenshot.GetDisplayBounds(i))
	}
	return union, nil
}

// Full captures the entire virtual screen across all active displays.
func Full() (*image.RGBA, error) {
	union, err := VirtualBounds()
	if err != nil {
		return nil, err
	}
	img, err := screenshot.CaptureRect(union)
	if err != nil {
		return nil, fmt.Errorf("failed to capture screen: %w", err)
	}
	return img, nil
}

// Grab captures the given region, clamped to the virtual screen. An empty
// region means the whole screen.
func Grab(r region.Region) (*image.RGBA, error) {
	if r.Empty() {
		return Full()
	}

	union, err := VirtualBounds()
	if err != nil {
		return nil, err
	}
	rect := r.Rect().Intersect(union)
	if rect.Empty() {
		return nil, fmt.Errorf("region %s is outside the virtual screen %v", r, union)
	}

	img, err := screenshot.CaptureRect(rect)
	if err != nil {
		return nil, fmt.Errorf("failed to capture region %s: %w", r, err)
	}
	return img, nil
}
