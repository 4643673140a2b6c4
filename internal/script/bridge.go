package script

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/hookbus/internal/event"
)

// toGo converts a Lua value to a Go value. Integral numbers become int64,
// other numbers float64. Tables with keys 1..n become []any, other tables
// map[string]any. Functions and cyclic references convert to nil.
func toGo(lv lua.LValue) any {
	return toGoVisited(lv, make(map[*lua.LTable]bool))
}

func toGoVisited(lv lua.LValue, visited map[*lua.LTable]bool) any {
	switch v := lv.(type) {
	case nil, *lua.LNilType:
		return nil
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if visited[v] {
			return nil
		}
		visited[v] = true
		defer delete(visited, v)
		return tableToGo(v, visited)
	case *lua.LUserData:
		return v.Value
	default:
		return nil
	}
}

func tableToGo(t *lua.LTable, visited map[*lua.LTable]bool) any {
	n := t.Len()
	count := 0
	t.ForEach(func(_, _ lua.LValue) { count++ })

	if n > 0 && count == n {
		arr := make([]any, n)
		for i := 1; i <= n; i++ {
			arr[i-1] = toGoVisited(t.RawGetInt(i), visited)
		}
		return arr
	}

	m := make(map[string]any, count)
	t.ForEach(func(k, v lua.LValue) {
		var key string
		switch kv := k.(type) {
		case lua.LString:
			key = string(kv)
		case lua.LNumber:
			key = strconv.FormatFloat(float64(kv), 'f', -1, 64)
		default:
			key = k.String()
		}
		m[key] = toGoVisited(v, visited)
	})
	return m
}

// toLua converts a Go value to a Lua value.
func toLua(L *lua.LState, v any) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case lua.LValue:
		return val
	case bool:
		return lua.LBool(val)
	case int:
		return lua.LNumber(val)
	case int8:
		return lua.LNumber(val)
	case int16:
		return lua.LNumber(val)
	case int32:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case uint:
		return lua.LNumber(val)
	case uint8:
		return lua.LNumber(val)
	case uint16:
		return lua.LNumber(val)
	case uint32:
		return lua.LNumber(val)
	case uint64:
		return lua.LNumber(val)
	case float32:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case string:
		return lua.LString(val)
	case []byte:
		return lua.LString(val)
	case error:
		return lua.LString(val.Error())
	case fmt.Stringer:
		return lua.LString(val.String())
	case []any:
		return sliceToTable(L, val)
	case map[string]any:
		t := L.NewTable()
		for k, item := range val {
			t.RawSetString(k, toLua(L, item))
		}
		return t
	case *event.Result:
		return resultToTable(L, val)
	default:
		return reflectToLua(L, v)
	}
}

func sliceToTable(L *lua.LState, s []any) *lua.LTable {
	t := L.CreateTable(len(s), 0)
	for i, v := range s {
		t.RawSetInt(i+1, toLua(L, v))
	}
	return t
}

// resultToTable converts a dispatch result to {before=..., event=..., after=...}.
func resultToTable(L *lua.LState, r *event.Result) *lua.LTable {
	t := L.NewTable()
	if r == nil {
		return t
	}
	t.RawSetString("before", sliceToTable(L, r.Before))
	t.RawSetString("event", sliceToTable(L, r.Event))
	t.RawSetString("after", sliceToTable(L, r.After))
	return t
}

// reflectToLua converts slices, maps, structs and pointers by reflection.
// Anything else is passed to Lua as userdata.
func reflectToLua(L *lua.LState, v any) lua.LValue {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return lua.LNil
	}

	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return lua.LNil
		}
		return toLua(L, rv.Elem().Interface())

	case reflect.Slice, reflect.Array:
		t := L.CreateTable(rv.Len(), 0)
		for i := 0; i < rv.Len(); i++ {
			t.RawSetInt(i+1, toLua(L, rv.Index(i).Interface()))
		}
		return t

	case reflect.Map:
		t := L.NewTable()
		iter := rv.MapRange()
		for iter.Next() {
			t.RawSet(toLua(L, iter.Key().Interface()), toLua(L, iter.Value().Interface()))
		}
		return t

	case reflect.Struct:
		return structToTable(L, rv)

	default:
		ud := L.NewUserData()
		ud.Value = v
		return ud
	}
}

// structToTable converts exported struct fields, honoring json tag names.
func structToTable(L *lua.LState, rv reflect.Value) *lua.LTable {
	t := L.NewTable()
	rt := rv.Type()

	for i := 0; i < rv.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		name := field.Name
		if tag, _, _ := strings.Cut(field.Tag.Get("json"), ","); tag == "-" {
			continue
		} else if tag != "" {
			name = tag
		}

		t.RawSetString(name, toLua(L, rv.Field(i).Interface()))
	}
	return t
}
