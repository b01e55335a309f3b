// Package script runs component scripts on an embedded Lua VM.
package script

import (
	"fmt"

	"github.com/plus3/kiln/ecs"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Runner evaluates script code in the context of a component and returns its result.
type Runner interface {
	Execute(state *ecs.State, component ecs.ComponentId, code string) (lua.LValue, error)
}

// Engine wraps a single gopher-lua VM.
// Single-goroutine access only (game loop).
//
// Scripts see the globals `component` and `owner`, and the functions
//
//	get(field [, component])
//	set(field, value [, component])
//	entity_name(entity)
//
// bound to the State passed to Execute.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger

	chunks map[string]*lua.LFunction

	// valid only during Execute
	state     *ecs.State
	component ecs.ComponentId
}

// NewEngine creates a Lua engine with the standard libraries opened.
func NewEngine(log *zap.Logger) *Engine {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	e := &Engine{
		vm:     vm,
		log:    log,
		chunks: make(map[string]*lua.LFunction),
	}

	vm.SetGlobal("get", vm.NewFunction(e.luaGet))
	vm.SetGlobal("set", vm.NewFunction(e.luaSet))
	vm.SetGlobal("entity_name", vm.NewFunction(e.luaEntityName))
	return e
}

// Close releases the VM.
func (e *Engine) Close() {
	e.vm.Close()
}

// Execute runs code against component. Expressions ("x * 2") and chunks with an explicit
// return are both accepted; a chunk without return yields nil.
func (e *Engine) Execute(state *ecs.State, component ecs.ComponentId, code string) (lua.LValue, error) {
	owner, err := state.Owner(component)
	if err != nil {
		return lua.LNil, err
	}

	fn, err := e.compile(code)
	if err != nil {
		return lua.LNil, err
	}

	e.state, e.component = state, component
	defer func() { e.state, e.component = nil, 0 }()

	e.vm.SetGlobal("component", lua.LNumber(component))
	e.vm.SetGlobal("owner", lua.LNumber(owner))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}); err != nil {
		e.log.Debug("lua script failed", zap.Uint64("component", uint64(component)), zap.Error(err))
		return lua.LNil, fmt.Errorf("script on component %d: %w", component, err)
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	return result, nil
}

func (e *Engine) compile(code string) (*lua.LFunction, error) {
	if fn, ok := e.chunks[code]; ok {
		return fn, nil
	}

	fn, err := e.vm.LoadString("return " + code)
	if err != nil {
		fn, err = e.vm.LoadString(code)
		if err != nil {
			return nil, fmt.Errorf("compile script: %w", err)
		}
	}
	e.chunks[code] = fn
	return fn, nil
}

func (e *Engine) target(L *lua.LState, arg int) ecs.ComponentId {
	if L.GetTop() >= arg {
		return ecs.ComponentId(L.CheckNumber(arg))
	}
	return e.component
}

func (e *Engine) luaGet(L *lua.LState) int {
	field := L.CheckString(1)
	value, err := e.state.Get(e.target(L, 2), field)
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(FromData(L, value))
	return 1
}

func (e *Engine) luaSet(L *lua.LState) int {
	field := L.CheckString(1)
	value, ok := ToData(L.Get(2))
	if !ok {
		L.ArgError(2, "unsupported value type "+L.Get(2).Type().String())
		return 0
	}
	if err := e.state.Set(e.target(L, 3), field, value); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

func (e *Engine) luaEntityName(L *lua.LState) int {
	name, err := e.state.EntityName(ecs.EntityId(L.CheckNumber(1)))
	if err != nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(name))
	return 1
}
