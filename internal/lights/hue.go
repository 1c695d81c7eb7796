package lights

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amimof/huego"
	"github.com/rs/zerolog"

	"github.com/dokzlo13/glowd/internal/color"
)

// hueLight drives one bulb through a Hue bridge. Color goes out as an
// XY chromaticity pair with brightness pinned to maximum; the bridge
// counts transition time in 100ms steps.
type hueLight struct {
	light      huego.Light
	transition uint16
}

func discoverHue(ctx context.Context, bridgeIP, username string, transition time.Duration, log zerolog.Logger) ([]Light, error) {
	if bridgeIP == "" {
		return nil, errors.New("hue bridge IP is not configured")
	}

	bridge := huego.New(bridgeIP, username)
	found, err := bridge.GetLightsContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing lights on bridge %s: %w", bridgeIP, err)
	}
	log.Info().Str("bridge", bridgeIP).Int("lights", len(found)).Msg("Connected to Hue bridge")

	tt := uint16(transition / (100 * time.Millisecond))
	lights := make([]Light, 0, len(found))
	for _, l := range found {
		lights = append(lights, &hueLight{light: l, transition: tt})
	}
	return lights, nil
}

func (h *hueLight) Name() string { return h.light.Name }

func (h *hueLight) SetColor(ctx context.Context, c color.RGB) error {
	x, y := c.XY()
	return h.light.SetStateContext(ctx, huego.State{
		On:             true,
		Bri:            254,
		Xy:             []float32{x, y},
		TransitionTime: h.transition,
	})
}
