package lights

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oherych/yeelight"
	"github.com/rs/zerolog"

	"github.com/dokzlo13/glowd/internal/color"
)

// yeelightMinEffect is the shortest fade the bulb firmware accepts.
const yeelightMinEffect = 30 * time.Millisecond

// yeelightBulb drives one LAN-discovered Yeelight bulb over its TCP
// control protocol using packed 24-bit RGB values.
type yeelightBulb struct {
	client     yeelight.Client
	name       string
	transition time.Duration
}

func discoverYeelight(ctx context.Context, window, transition time.Duration, log zerolog.Logger) ([]Light, error) {
	dctx, cancel := context.WithTimeout(ctx, window)
	defer cancel()

	found, err := yeelight.Discovery(dctx)
	if err != nil {
		return nil, fmt.Errorf("yeelight discovery: %w", err)
	}
	log.Info().Int("lights", len(found)).Msg("Discovered Yeelight bulbs")

	lights := make([]Light, 0, len(found))
	for _, item := range found {
		addr := strings.TrimPrefix(item.Location, "yeelight://")
		client := yeelight.New(addr)
		name := item.Name
		if name == "" {
			name = addr
		}
		lights = append(lights, &yeelightBulb{client: client, name: name, transition: transition})
	}
	return lights, nil
}

func (y *yeelightBulb) Name() string { return y.name }

func (y *yeelightBulb) SetColor(ctx context.Context, c color.RGB) error {
	effect := yeelight.EffectSmooth
	duration := y.transition
	if duration < yeelightMinEffect {
		effect = yeelight.EffectSudden
		duration = yeelightMinEffect
	}
	return y.client.SetRGB(ctx, int(c.Packed()), effect, duration)
}
