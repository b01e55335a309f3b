package script

import (
	"github.com/plus3/kiln/ecs"
	lua "github.com/yuin/gopher-lua"
)

// ToData converts a Lua value into component data. Tables convert to lists using their
// array part. Functions, userdata and threads are rejected.
func ToData(v lua.LValue) (ecs.Data, bool) {
	switch v := v.(type) {
	case lua.LNumber:
		return ecs.Number(float64(v)), true
	case lua.LString:
		return ecs.String(string(v)), true
	case lua.LBool:
		return ecs.Boolean(bool(v)), true
	case *lua.LNilType:
		return ecs.Empty(), true
	case *lua.LTable:
		items := make([]ecs.Data, 0, v.Len())
		for i := 1; i <= v.Len(); i++ {
			item, ok := ToData(v.RawGetInt(i))
			if !ok {
				return ecs.Data{}, false
			}
			items = append(items, item)
		}
		return ecs.List(items...), true
	}
	return ecs.Data{}, false
}

// FromData converts component data into a Lua value. Entity references become numbers,
// deferred values their source text.
func FromData(L *lua.LState, d ecs.Data) lua.LValue {
	switch d.Kind() {
	case ecs.KindNumber:
		v, _ := d.AsNumber()
		return lua.LNumber(v)
	case ecs.KindString:
		v, _ := d.AsString()
		return lua.LString(v)
	case ecs.KindBoolean:
		v, _ := d.AsBoolean()
		return lua.LBool(v)
	case ecs.KindEntity:
		v, _ := d.AsEntity()
		return lua.LNumber(v)
	case ecs.KindFromProperty:
		v, _ := d.AsFromProperty()
		return lua.LString(v)
	case ecs.KindScript:
		v, _ := d.AsScript()
		return lua.LString(v)
	case ecs.KindList:
		items, _ := d.AsList()
		tbl := L.NewTable()
		for _, item := range items {
			tbl.Append(FromData(L, item))
		}
		return tbl
	}
	return lua.LNil
}
