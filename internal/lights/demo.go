package lights

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dokzlo13/glowd/internal/color"
)

// demoLight logs color changes instead of talking to hardware. The
// controller falls back to a fixed set of these whenever no real bulbs
// are reachable, so applying colors always has a visible effect.
type demoLight struct {
	name string
	log  zerolog.Logger
}

func newDemoLights(log zerolog.Logger) []Light {
	lights := make([]Light, 0, 3)
	for i := 1; i <= 3; i++ {
		lights = append(lights, &demoLight{
			name: fmt.Sprintf("Demo Light %d", i),
			log:  log,
		})
	}
	return lights
}

func (d *demoLight) Name() string { return d.name }

func (d *demoLight) SetColor(ctx context.Context, c color.RGB) error {
	d.log.Info().Str("light", d.name).Str("color", c.Hex()).Msg("Demo mode: set light color")
	return nil
}
