package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/graphview/internal/input/key"
	"github.com/dshills/graphview/internal/input/mouse"
)

// eventTable converts an input event into the table predicates see.
func eventTable(L *lua.LState, ev any) *lua.LTable {
	t := L.NewTable()

	switch e := ev.(type) {
	case key.Event:
		t.RawSetString("type", lua.LString("key"))
		t.RawSetString("key", lua.LString(e.Name()))
		t.RawSetString("action", lua.LString(e.Action.String()))
		setModifiers(t, e.Modifiers)
	case *mouse.WheelEvent:
		if e == nil {
			t.RawSetString("type", lua.LString("unknown"))
			return t
		}
		t.RawSetString("type", lua.LString("wheel"))
		t.RawSetString("delta_x", lua.LNumber(e.DeltaX))
		t.RawSetString("delta_y", lua.LNumber(e.DeltaY))
		setPosition(t, e.Position)
		setModifiers(t, e.Modifiers)
	case mouse.PointerEvent:
		typ := "pointer"
		if e.Action == mouse.ActionDrag {
			typ = "drag"
			t.RawSetString("delta_x", lua.LNumber(e.Delta.X))
			t.RawSetString("delta_y", lua.LNumber(e.Delta.Y))
		}
		t.RawSetString("type", lua.LString(typ))
		t.RawSetString("button", lua.LString(e.Button.String()))
		t.RawSetString("action", lua.LString(e.Action.String()))
		setPosition(t, e.Position)
		setModifiers(t, e.Modifiers)
	default:
		t.RawSetString("type", lua.LString("unknown"))
	}
	return t
}

func setModifiers(t *lua.LTable, m key.Modifier) {
	t.RawSetString("ctrl", lua.LBool(m.HasCtrl()))
	t.RawSetString("alt", lua.LBool(m.HasAlt()))
	t.RawSetString("shift", lua.LBool(m.HasShift()))
	t.RawSetString("meta", lua.LBool(m.HasMeta()))
}

func setPosition(t *lua.LTable, p mouse.Position) {
	t.RawSetString("x", lua.LNumber(p.X))
	t.RawSetString("y", lua.LNumber(p.Y))
}
