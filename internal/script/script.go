// Package script runs a user Lua hook that can rewrite the palette
// before it reaches the lights. The script defines
//
//	function transform(colors) ... return colors end
//
// where colors is an array of {r=, g=, b=} tables with 0-255 channels.
// A "log" module is preloaded for structured logging from Lua.
package script

import (
	"fmt"

	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"

	"github.com/dokzlo13/glowd/internal/color"
)

const transformFn = "transform"

// Transform wraps a loaded user script. The zero of *Transform (nil)
// is a valid no-op hook. All methods must be called from one
// goroutine; the Lua state is not synchronized.
type Transform struct {
	L   *lua.LState
	fn  *lua.LFunction
	log zerolog.Logger
}

// Load executes the script at path and captures its transform
// function.
func Load(path string, logger zerolog.Logger) (*Transform, error) {
	log := logger.With().Str("component", "script").Logger()

	L := lua.NewState()
	L.PreloadModule("log", (&logModule{log: log}).loader)

	if err := L.DoFile(path); err != nil {
		L.Close()
		return nil, fmt.Errorf("failed to execute Lua script: %w", err)
	}

	fn, ok := L.GetGlobal(transformFn).(*lua.LFunction)
	if !ok {
		L.Close()
		return nil, fmt.Errorf("script %s does not define a %s function", path, transformFn)
	}

	log.Info().Str("path", path).Msg("Loaded palette transform script")
	return &Transform{L: L, fn: fn, log: log}, nil
}

// Apply runs the transform over the palette. Any script failure or
// malformed result is logged and leaves the palette unchanged.
func (t *Transform) Apply(colors []color.RGB) []color.RGB {
	if t == nil {
		return colors
	}

	t.L.Push(t.fn)
	t.L.Push(colorsToTable(t.L, colors))
	if err := t.L.PCall(1, 1, nil); err != nil {
		t.log.Error().Err(err).Msg("Palette transform failed")
		return colors
	}

	result := t.L.Get(-1)
	t.L.Pop(1)

	tbl, ok := result.(*lua.LTable)
	if !ok {
		t.log.Error().Str("got", result.Type().String()).Msg("Palette transform returned a non-table value")
		return colors
	}
	out, err := tableToColors(tbl)
	if err != nil {
		t.log.Error().Err(err).Msg("Palette transform returned a malformed palette")
		return colors
	}
	return out
}

// Close releases the Lua state.
func (t *Transform) Close() {
	if t != nil {
		t.L.Close()
	}
}

func colorsToTable(L *lua.LState, colors []color.RGB) *lua.LTable {
	tbl := L.NewTable()
	for i, c := range colors {
		ct := L.NewTable()
		ct.RawSetString("r", lua.LNumber(c.R))
		ct.RawSetString("g", lua.LNumber(c.G))
		ct.RawSetString("b", lua.LNumber(c.B))
		tbl.RawSetInt(i+1, ct)
	}
	return tbl
}

func tableToColors(tbl *lua.LTable) ([]color.RGB, error) {
	n := tbl.MaxN()
	colors := make([]color.RGB, 0, n)
	for i := 1; i <= n; i++ {
		ct, ok := tbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			return nil, fmt.Errorf("element %d is not a color table", i)
		}
		r, err := channelValue(ct, "r")
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		g, err := channelValue(ct, "g")
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		b, err := channelValue(ct, "b")
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		colors = append(colors, color.RGB{R: r, G: g, B: b})
	}
	return colors, nil
}

// channelValue reads one color channel, clamping to 0-255.
func channelValue(ct *lua.LTable, name string) (uint8, error) {
	n, ok := ct.RawGetString(name).(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("missing %s channel", name)
	}
	f := float64(n)
	if f < 0 {
		f = 0
	}
	if f > 255 {
		f = 255
	}
	return uint8(f), nil
}
