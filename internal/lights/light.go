// Package lights abstracts heterogeneous smart bulbs behind a single
// color-setting interface. Vendor SDKs differ in color model (XY
// chromaticity, 16-bit HSV, packed RGB) and in how bulbs are found
// (bridge-mediated vs LAN discovery); everything past construction
// speaks plain RGB.
package lights

import (
	"context"
	"fmt"
	"strings"

	"github.com/dokzlo13/glowd/internal/color"
)

// Light is one controllable bulb.
type Light interface {
	Name() string
	SetColor(ctx context.Context, c color.RGB) error
}

// Vendor selects the bulb integration used by the controller.
type Vendor string

const (
	VendorHue      Vendor = "hue"
	VendorLifx     Vendor = "lifx"
	VendorYeelight Vendor = "yeelight"
	VendorDemo     Vendor = "demo"
)

// ParseVendor maps a configuration string to a Vendor.
func ParseVendor(s string) (Vendor, error) {
	switch Vendor(strings.ToLower(strings.TrimSpace(s))) {
	case VendorHue:
		return VendorHue, nil
	case VendorLifx:
		return VendorLifx, nil
	case VendorYeelight:
		return VendorYeelight, nil
	case VendorDemo:
		return VendorDemo, nil
	default:
		return "", fmt.Errorf("unknown light vendor %q (expected hue, lifx, yeelight or demo)", s)
	}
}
