package script

import (
	"context"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/hookbus/internal/event"
	"github.com/dshills/hookbus/internal/event/pattern"
)

// installModule registers the events table into the Lua state.
func (s *State) installModule() {
	mod := s.L.SetFuncs(s.L.NewTable(), map[string]lua.LGFunction{
		"register":  s.register,
		"remove":    s.remove,
		"on":        s.on,
		"once":      s.once,
		"off":       s.off,
		"before":    s.before,
		"after":     s.after,
		"use":       s.use,
		"list":      s.list,
		"listeners": s.listeners,
	})
	s.L.SetGlobal(ModuleName, mod)
}

// luaHandler adapts a Lua function to event.Handler.
type luaHandler struct {
	state *State
	fn    *lua.LFunction
}

// Handle implements event.Handler.
func (h *luaHandler) Handle(ctx context.Context, args ...any) (any, error) {
	return h.state.call(h.fn, args...)
}

// luaHook adapts a Lua function to event.Hook. The function receives the
// event name followed by the dispatch arguments.
type luaHook struct {
	state *State
	fn    *lua.LFunction
}

// Handle implements event.Hook.
func (h *luaHook) Handle(ctx context.Context, name string, args ...any) (any, error) {
	return h.state.call(h.fn, append([]any{name}, args...)...)
}

func checkEventName(L *lua.LState, n int) string {
	name := L.CheckString(n)
	if name == "" {
		L.ArgError(n, "event name cannot be empty")
	}
	return name
}

// register(name)
func (s *State) register(L *lua.LState) int {
	s.dispatcher.Register(checkEventName(L, 1))
	return 0
}

// remove(name)
func (s *State) remove(L *lua.LState) int {
	s.dispatcher.Remove(checkEventName(L, 1))
	return 0
}

// on(name, fn [, priority]) -> id
func (s *State) on(L *lua.LState) int {
	name := checkEventName(L, 1)
	fn := L.CheckFunction(2)
	priority := event.Priority(L.OptInt(3, int(event.PriorityDefault)))

	id, err := s.dispatcher.Listen(name, &luaHandler{state: s, fn: fn}, event.WithPriority(priority))
	if err != nil {
		L.RaiseError("on: %s", err.Error())
		return 0
	}
	L.Push(lua.LString(id))
	return 1
}

// once(name, fn [, priority]) -> id
func (s *State) once(L *lua.LState) int {
	name := checkEventName(L, 1)
	fn := L.CheckFunction(2)
	priority := event.Priority(L.OptInt(3, int(event.PriorityDefault)))

	id, err := s.dispatcher.Once(name, &luaHandler{state: s, fn: fn}, event.WithPriority(priority))
	if err != nil {
		L.RaiseError("once: %s", err.Error())
		return 0
	}
	L.Push(lua.LString(id))
	return 1
}

// off(name, id) -> bool
func (s *State) off(L *lua.LState) int {
	name := checkEventName(L, 1)
	id := L.CheckString(2)

	L.Push(lua.LBool(s.dispatcher.RemoveListener(name, event.ListenerID(id))))
	return 1
}

// before(fn)
func (s *State) before(L *lua.LState) int {
	fn := L.CheckFunction(1)
	s.dispatcher.ListenGlobalBefore(&luaHook{state: s, fn: fn})
	return 0
}

// after(fn)
func (s *State) after(L *lua.LState) int {
	fn := L.CheckFunction(1)
	s.dispatcher.ListenGlobalAfter(&luaHook{state: s, fn: fn})
	return 0
}

// use(name, ...) -> {before=..., event=..., after=...}
// A failed dispatch raises an error.
func (s *State) use(L *lua.LState) int {
	name := checkEventName(L, 1)

	n := L.GetTop()
	args := make([]any, 0, n-1)
	for i := 2; i <= n; i++ {
		args = append(args, toGo(L.Get(i)))
	}

	res, err := s.dispatcher.Use(s.ctx, name, args...)
	if err != nil {
		L.RaiseError("use: %s", err.Error())
		return 0
	}
	L.Push(resultToTable(L, res))
	return 1
}

// list([pattern]) -> {name, ...}
func (s *State) list(L *lua.LState) int {
	names := s.dispatcher.RegisteredEvents()
	if p := L.OptString(1, ""); p != "" {
		if err := pattern.Validate(p); err != nil {
			L.ArgError(1, err.Error())
			return 0
		}
		names = pattern.Filter(p, names)
	}
	t := L.CreateTable(len(names), 0)
	for i, name := range names {
		t.RawSetInt(i+1, lua.LString(name))
	}
	L.Push(t)
	return 1
}

// listeners(name) -> {{id=..., priority=...}, ...}
func (s *State) listeners(L *lua.LState) int {
	name := checkEventName(L, 1)

	listeners, err := s.dispatcher.Listeners(name)
	if err != nil {
		L.RaiseError("listeners: %s", err.Error())
		return 0
	}

	t := L.CreateTable(len(listeners), 0)
	for i, l := range listeners {
		entry := L.NewTable()
		entry.RawSetString("id", lua.LString(l.ID))
		entry.RawSetString("priority", lua.LNumber(l.Priority))
		t.RawSetInt(i+1, entry)
	}
	L.Push(t)
	return 1
}
