package script

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/hookbus/internal/event"
)

func TestToGo(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	arr := L.NewTable()
	arr.Append(lua.LString("a"))
	arr.Append(lua.LNumber(2))

	obj := L.NewTable()
	obj.RawSetString("name", lua.LString("x"))
	obj.RawSetString("ok", lua.LTrue)

	tests := []struct {
		name string
		in   lua.LValue
		want any
	}{
		{"nil", lua.LNil, nil},
		{"bool", lua.LTrue, true},
		{"integer", lua.LNumber(42), int64(42)},
		{"float", lua.LNumber(1.5), 1.5},
		{"string", lua.LString("s"), "s"},
		{"array", arr, []any{"a", int64(2)}},
		{"map", obj, map[string]any{"name": "x", "ok": true}},
		{"empty table", L.NewTable(), map[string]any{}},
		{"function", L.NewFunction(func(*lua.LState) int { return 0 }), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, toGo(tt.in))
		})
	}
}

func TestToGo_Cycle(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	tbl := L.NewTable()
	tbl.RawSetString("self", tbl)

	assert.Equal(t, map[string]any{"self": nil}, toGo(tbl))
}

func TestToLua(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	type payload struct {
		ID      string `json:"id"`
		Count   int
		Skipped string `json:"-"`
		hidden  string
	}

	tests := []struct {
		name string
		in   any
		want any // expected value after converting back with toGo
	}{
		{"nil", nil, nil},
		{"int", 7, int64(7)},
		{"uint8", uint8(3), int64(3)},
		{"float", 2.5, 2.5},
		{"string", "s", "s"},
		{"bytes", []byte("raw"), "raw"},
		{"error", errors.New("boom"), "boom"},
		{"slice", []any{"a", 1}, []any{"a", int64(1)}},
		{"typed slice", []string{"x", "y"}, []any{"x", "y"}},
		{"map", map[string]any{"k": "v"}, map[string]any{"k": "v"}},
		{"typed map", map[string]int{"k": 1}, map[string]any{"k": int64(1)}},
		{"struct", payload{ID: "p", Count: 2, Skipped: "no", hidden: "no"}, map[string]any{"id": "p", "Count": int64(2)}},
		{"struct pointer", &payload{ID: "q"}, map[string]any{"id": "q", "Count": int64(0)}},
		{"nil pointer", (*payload)(nil), nil},
		{"priority", event.PriorityHigh, "high"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, toGo(toLua(L, tt.in)))
		})
	}
}

func TestToLua_Result(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	res := &event.Result{
		Before: []any{"pre"},
		Event:  []any{1, 2},
		After:  []any{},
	}

	tbl, ok := toLua(L, res).(*lua.LTable)
	require.True(t, ok)
	assert.Equal(t, []any{"pre"}, toGo(tbl.RawGetString("before")))
	assert.Equal(t, []any{int64(1), int64(2)}, toGo(tbl.RawGetString("event")))
	assert.Equal(t, map[string]any{}, toGo(tbl.RawGetString("after")))
}

func TestToLua_Userdata(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	ch := make(chan int)
	lv := toLua(L, ch)

	ud, ok := lv.(*lua.LUserData)
	require.True(t, ok)
	assert.Equal(t, ch, ud.Value)
	assert.Equal(t, ch, toGo(lv))
}
