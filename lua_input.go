// lua_input.go - optional Lua-scripted per-frame joystick input, the
// "--lua-script" flag's TAS-string input source.

package main

import (
	lua "github.com/yuin/gopher-lua"
)

// LuaInputSource runs a Lua script once per video frame and decodes its
// return value into a joystick/switches bit pair. The script returns one
// character per call, drawn from the 9-symbol TAS alphabet U/D/L/R/a/b/
// O/o/P (or "." for no input this frame) — a single-frame input source,
// not a recorder: nothing here persists or replays a movie file.
type LuaInputSource struct {
	L *lua.LState
}

// NewLuaInputSource loads and runs the top level of path once (defining
// its globals/functions), ready for repeated Frame() calls.
func NewLuaInputSource(path string) (*LuaInputSource, error) {
	L := lua.NewState()
	if err := L.DoFile(path); err != nil {
		L.Close()
		return nil, err
	}
	return &LuaInputSource{L: L}, nil
}

func (s *LuaInputSource) Close() { s.L.Close() }

// Frame calls the script's global "frame" function and decodes its
// single-character return value into Suzy's joystick/switches bits.
func (s *LuaInputSource) Frame() (joystick, switches byte) {
	fn := s.L.GetGlobal("frame")
	if fn.Type() != lua.LTFunction {
		return 0, 0
	}
	if err := s.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}); err != nil {
		return 0, 0
	}
	ret := s.L.Get(-1)
	s.L.Pop(1)

	str, ok := ret.(lua.LString)
	if !ok {
		return 0, 0
	}
	return decodeTASChar(string(str))
}

// decodeTASChar maps one TAS-string character to joystick/switches bits.
// Upper-case directions, lower-case face buttons, O/o the two option
// switches, P pause, "." no input.
func decodeTASChar(s string) (joystick, switches byte) {
	for _, c := range s {
		switch c {
		case 'U':
			joystick |= JoyUp
		case 'D':
			joystick |= JoyDown
		case 'L':
			joystick |= JoyLeft
		case 'R':
			joystick |= JoyRight
		case 'a':
			joystick |= JoyA
		case 'b':
			joystick |= JoyB
		case 'O':
			joystick |= JoyOption1
		case 'o':
			joystick |= JoyOption2
		case 'P':
			switches |= SwitchPause
		case '.':
			// no input
		}
	}
	return joystick, switches
}
