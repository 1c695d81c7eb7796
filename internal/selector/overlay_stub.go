//go:build !windows

package selector

import (
	"fmt"
	"image"

	"github.com/rs/zerolog"

	"github.com/dokzlo13/glowd/internal/region"
)

// Select is a stub for non-Windows platforms. The daemon still runs there
// with a persisted or full-screen region.
func Select(img *image.RGBA, log zerolog.Logger) (region.Region, bool, error) {
	return region.Region{}, false, fmt.Errorf("interactive region selection not implemented for this platform")
}
