package script

import (
	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"
)

// logModule exposes debug/info/warn/error to Lua as
// log.<level>(msg, {field = value, ...}).
type logModule struct {
	log zerolog.Logger
}

func (m *logModule) loader(L *lua.LState) int {
	mod := L.NewTable()

	L.SetField(mod, "debug", L.NewFunction(m.logFn(zerolog.DebugLevel)))
	L.SetField(mod, "info", L.NewFunction(m.logFn(zerolog.InfoLevel)))
	L.SetField(mod, "warn", L.NewFunction(m.logFn(zerolog.WarnLevel)))
	L.SetField(mod, "error", L.NewFunction(m.logFn(zerolog.ErrorLevel)))

	L.Push(mod)
	return 1
}

func (m *logModule) logFn(level zerolog.Level) lua.LGFunction {
	return func(L *lua.LState) int {
		msg := L.CheckString(1)

		event := m.log.WithLevel(level).Str("source", "lua")
		for k, v := range parseFields(L, 2) {
			event = event.Interface(k, v)
		}
		event.Msg(msg)

		return 0
	}
}

func parseFields(L *lua.LState, argIndex int) map[string]any {
	fields := make(map[string]any)

	tbl, ok := L.Get(argIndex).(*lua.LTable)
	if !ok {
		return fields
	}
	tbl.ForEach(func(key, value lua.LValue) {
		fields[lua.LVAsString(key)] = luaToGo(value)
	})
	return fields
}

// luaToGo converts a Lua value to something zerolog can serialize.
func luaToGo(v lua.LValue) any {
	switch val := v.(type) {
	case lua.LString:
		return string(val)
	case lua.LNumber:
		return float64(val)
	case lua.LBool:
		return bool(val)
	case *lua.LTable:
		m := make(map[string]any)
		val.ForEach(func(k, item lua.LValue) {
			m[lua.LVAsString(k)] = luaToGo(item)
		})
		return m
	case *lua.LNilType:
		return nil
	default:
		return v.String()
	}
}
