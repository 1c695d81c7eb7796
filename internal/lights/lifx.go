package lights

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pdf/golifx"
	"github.com/pdf/golifx/common"
	"github.com/pdf/golifx/protocol"
	"github.com/rs/zerolog"

	"github.com/dokzlo13/glowd/internal/color"
)

// lifxKelvin is the color temperature sent with every HSBK command.
// The protocol requires one even for saturated colors.
const lifxKelvin = 3500

// lifxLight drives one LAN-discovered LIFX bulb. Colors go out in the
// protocol's 16-bit HSBK encoding.
type lifxLight struct {
	light      common.Light
	name       string
	transition time.Duration
}

func discoverLifx(ctx context.Context, window, transition time.Duration, log zerolog.Logger) ([]Light, io.Closer, error) {
	client, err := golifx.NewClient(&protocol.V2{Reliable: true})
	if err != nil {
		return nil, nil, fmt.Errorf("starting LIFX discovery: %w", err)
	}

	// Discovery runs in the background; give bulbs one window to answer.
	select {
	case <-ctx.Done():
		_ = client.Close()
		return nil, nil, ctx.Err()
	case <-time.After(window):
	}

	found, err := client.GetLights()
	if err != nil {
		_ = client.Close()
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("listing LIFX lights: %w", err)
	}
	log.Info().Int("lights", len(found)).Msg("Discovered LIFX lights")

	lights := make([]Light, 0, len(found))
	for _, l := range found {
		name, err := l.GetLabel()
		if err != nil || name == "" {
			name = fmt.Sprintf("lifx-%d", l.ID())
		}
		lights = append(lights, &lifxLight{light: l, name: name, transition: transition})
	}
	return lights, client, nil
}

func (l *lifxLight) Name() string { return l.name }

func (l *lifxLight) SetColor(ctx context.Context, c color.RGB) error {
	h, s, v := c.HSV16()
	return l.light.SetColor(common.Color{
		Hue:        h,
		Saturation: s,
		Brightness: v,
		Kelvin:     lifxKelvin,
	}, l.transition)
}
