package lights

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/dokzlo13/glowd/internal/color"
)

// Options configures the controller.
type Options struct {
	Vendor       Vendor
	Transition   time.Duration // fade time for every color change
	RateLimitRPS float64       // vendor calls per second across all lights, <= 0 disables throttling

	HueBridgeIP string
	HueUsername string

	LifxDiscoveryWindow     time.Duration
	YeelightDiscoveryWindow time.Duration
}

// Controller owns the discovered lights and fans palette colors out to
// them. Construction never yields a controller with zero lights: any
// discovery failure or empty result degrades to the demo set, so
// applying colors always has an observable effect.
type Controller struct {
	lights  []Light
	limiter *rate.Limiter
	closer  io.Closer
	demo    bool
	log     zerolog.Logger
}

// New builds a controller for the configured vendor. Discovery and
// connection errors are logged, not returned.
func New(ctx context.Context, opts Options, logger zerolog.Logger) *Controller {
	log := logger.With().Str("component", "lights").Logger()

	var (
		found  []Light
		closer io.Closer
		err    error
	)
	switch opts.Vendor {
	case VendorDemo:
		log.Info().Msg("Running in demo mode, no real lights will be controlled")
		found = newDemoLights(log)
	case VendorHue:
		found, err = discoverHue(ctx, opts.HueBridgeIP, opts.HueUsername, opts.Transition, log)
	case VendorLifx:
		found, closer, err = discoverLifx(ctx, opts.LifxDiscoveryWindow, opts.Transition, log)
	case VendorYeelight:
		found, err = discoverYeelight(ctx, opts.YeelightDiscoveryWindow, opts.Transition, log)
	default:
		log.Warn().Str("vendor", string(opts.Vendor)).Msg("Unsupported light vendor")
	}

	demo := opts.Vendor == VendorDemo
	if err != nil {
		log.Error().Err(err).Str("vendor", string(opts.Vendor)).Msg("Failed to initialize lights")
		log.Warn().Msg("Falling back to demo mode")
		found = newDemoLights(log)
		demo = true
	} else if len(found) == 0 && !demo {
		log.Warn().Msg("No lights found, falling back to demo mode")
		found = newDemoLights(log)
		demo = true
	}

	limit := rate.Inf
	burst := 1
	if opts.RateLimitRPS > 0 {
		limit = rate.Limit(opts.RateLimitRPS)
		if burst = int(opts.RateLimitRPS); burst < 1 {
			burst = 1
		}
	}

	return &Controller{
		lights:  found,
		limiter: rate.NewLimiter(limit, burst),
		closer:  closer,
		demo:    demo,
		log:     log,
	}
}

// Apply fans colors out to the lights, light i receiving
// colors[i mod len(colors)]. Per-light failures are logged and do not
// abort the rest of the batch. Returns the number of lights set.
func (c *Controller) Apply(ctx context.Context, colors []color.RGB) int {
	if len(c.lights) == 0 {
		c.log.Warn().Msg("No lights available to control")
		return 0
	}
	if len(colors) == 0 {
		c.log.Warn().Msg("No colors to apply")
		return 0
	}

	applied := 0
	for i, light := range c.lights {
		if err := c.limiter.Wait(ctx); err != nil {
			c.log.Debug().Err(err).Msg("Color application interrupted")
			return applied
		}
		col := colors[i%len(colors)]
		if err := light.SetColor(ctx, col); err != nil {
			c.log.Error().Err(err).Str("light", light.Name()).Str("color", col.Hex()).Msg("Failed to set light color")
			continue
		}
		c.log.Debug().Str("light", light.Name()).Str("color", col.Hex()).Msg("Set light color")
		applied++
	}
	return applied
}

// Demo reports whether the controller is driving placeholder lights.
func (c *Controller) Demo() bool { return c.demo }

// Names lists the controlled lights in application order.
func (c *Controller) Names() []string {
	names := make([]string, len(c.lights))
	for i, l := range c.lights {
		names[i] = l.Name()
	}
	return names
}

// Close releases vendor connections held by the controller.
func (c *Controller) Close() error {
	if c.closer != nil {
		return c.closer.Close()
	}
	return nil
}
