package script

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/hookbus/internal/event"
)

// ModuleName is the name of the global table installed into every State.
const ModuleName = "events"

// State wraps a Lua runtime bound to an event Dispatcher.
//
// IMPORTANT: gopher-lua's LState is not goroutine-safe. The mutex serializes
// script execution started from Go, but Lua handlers invoked by a dispatch
// run on the dispatching goroutine without taking it, since a dispatch may
// itself be running inside a script. Dispatch events with Lua handlers from
// one goroutine only.
type State struct {
	L *lua.LState

	mu sync.Mutex

	dispatcher *event.Dispatcher
	ctx        context.Context
	logger     *slog.Logger

	closed atomic.Bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithContext sets the context used for dispatches started from Lua and
// for cancelling running scripts.
func WithContext(ctx context.Context) StateOption {
	return func(s *State) {
		if ctx != nil {
			s.ctx = ctx
		}
	}
}

// WithLogger sets the logger that receives output of the Lua print function
// and debug records for script execution.
func WithLogger(l *slog.Logger) StateOption {
	return func(s *State) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewState creates a sandboxed Lua state with the events module bound to d.
func NewState(d *event.Dispatcher, opts ...StateOption) (*State, error) {
	if d == nil {
		return nil, ErrNoDispatcher
	}

	state := &State{
		dispatcher: d,
		ctx:        context.Background(),
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(state)
	}

	L := lua.NewState(lua.Options{
		SkipOpenLibs: true,
	})
	openSafeLibraries(L)
	L.SetContext(state.ctx)
	state.L = L

	L.SetGlobal("print", L.NewFunction(state.print))
	state.installModule()

	return state, nil
}

// openSafeLibraries opens only the Lua standard libraries without access
// to the file system or the process.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// Base functions that read files.
	for _, name := range []string{"dofile", "loadfile"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// print routes Lua's print to the logger.
func (s *State) print(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	s.logger.Info(strings.Join(parts, "\t"), "source", "lua")
	return 0
}

// DoFile executes a Lua file.
// Execution is synchronous - the call blocks until completion or error.
func (s *State) DoFile(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return ErrStateClosed
	}

	s.logger.Debug("running script", "path", path)
	return s.doWithRecovery(func() error {
		return s.L.DoFile(path)
	})
}

// DoString executes a Lua chunk.
// Execution is synchronous - the call blocks until completion or error.
func (s *State) DoString(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return ErrStateClosed
	}

	return s.doWithRecovery(func() error {
		return s.L.DoString(code)
	})
}

// doWithRecovery executes a function with panic recovery. Go handlers
// that panic during a dispatch started from Lua surface here as errors.
func (s *State) doWithRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// call invokes a Lua function with converted arguments and returns its
// first result converted to Go.
func (s *State) call(fn *lua.LFunction, args ...any) (any, error) {
	if s.closed.Load() {
		return nil, ErrStateClosed
	}

	largs := make([]lua.LValue, len(args))
	for i, a := range args {
		largs[i] = toLua(s.L, a)
	}

	if err := s.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, largs...); err != nil {
		return nil, err
	}
	ret := s.L.Get(-1)
	s.L.Pop(1)
	return toGo(ret), nil
}

// GetGlobal returns a global variable converted to Go.
func (s *State) GetGlobal(name string) any {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return nil
	}
	return toGo(s.L.GetGlobal(name))
}

// Dispatcher returns the dispatcher the state is bound to.
func (s *State) Dispatcher() *event.Dispatcher {
	return s.dispatcher
}

// IsClosed returns true if the state has been closed.
func (s *State) IsClosed() bool {
	return s.closed.Load()
}

// Close releases the Lua runtime. Lua handlers that remain attached to
// the dispatcher return ErrStateClosed when invoked afterwards.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Swap(true) {
		return nil
	}
	s.L.Close()
	return nil
}
