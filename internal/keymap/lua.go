package keymap

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// LoadLuaFile builds a translation table from a Lua script. The script runs
// in a state with only the base, table, and string libraries opened and must
// return a table in the same shape as the JSON format:
//
//	return {
//	  name = "custom",
//	  inherit = "default",
//	  keys = {
//	    { scancode = 0x1c, base = "a", shift = "A", letter = true },
//	    { scancode = 0x75, extended = true, escaped = "A" },
//	    { scancode = 0x12, modifier = "lshift" },
//	  },
//	}
func LoadLuaFile(path string) (*Table, error) {
	L := newLuaState()
	defer L.Close()

	if err := L.DoFile(path); err != nil {
		return nil, fmt.Errorf("keymap script %s: %w", path, err)
	}
	return tableFromLua(L, path)
}

// LoadLuaString is LoadLuaFile for in-memory scripts; used by tests.
func LoadLuaString(script string) (*Table, error) {
	L := newLuaState()
	defer L.Close()

	if err := L.DoString(script); err != nil {
		return nil, fmt.Errorf("keymap script: %w", err)
	}
	return tableFromLua(L, "<string>")
}

// newLuaState opens a state with only the libraries a keymap script needs.
// gopher-lua's LState is not goroutine-safe; each load uses a fresh state.
func newLuaState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, open := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
	} {
		L.Push(L.NewFunction(open.fn))
		L.Push(lua.LString(open.name))
		L.Call(1, 0)
	}
	return L
}

func tableFromLua(L *lua.LState, source string) (*Table, error) {
	ret := L.Get(-1)
	top, ok := ret.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("keymap script %s: must return a table, got %s", source, ret.Type())
	}

	config := tableConfig{
		Name:    lua.LVAsString(top.RawGetString("name")),
		Inherit: lua.LVAsString(top.RawGetString("inherit")),
	}

	keys, ok := top.RawGetString("keys").(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("keymap script %s: missing keys table", source)
	}

	var convErr error
	keys.ForEach(func(_, v lua.LValue) {
		if convErr != nil {
			return
		}
		entry, ok := v.(*lua.LTable)
		if !ok {
			convErr = fmt.Errorf("keymap script %s: key entries must be tables", source)
			return
		}
		config.Keys = append(config.Keys, keyConfigFromLua(entry))
	})
	if convErr != nil {
		return nil, convErr
	}

	return buildTable(&config)
}

func keyConfigFromLua(t *lua.LTable) keyConfig {
	kc := keyConfig{
		Extended: lua.LVAsBool(t.RawGetString("extended")),
		Base:     lua.LVAsString(t.RawGetString("base")),
		Shift:    lua.LVAsString(t.RawGetString("shift")),
		Letter:   lua.LVAsBool(t.RawGetString("letter")),
		Modifier: lua.LVAsString(t.RawGetString("modifier")),
		Escaped:  lua.LVAsString(t.RawGetString("escaped")),
	}
	if n, ok := t.RawGetString("scancode").(lua.LNumber); ok {
		kc.Scancode = fmt.Sprintf("%d", int(n))
	} else {
		kc.Scancode = lua.LVAsString(t.RawGetString("scancode"))
	}
	if n, ok := t.RawGetString("code").(lua.LNumber); ok {
		kc.Code = int(n)
	}
	return kc
}
