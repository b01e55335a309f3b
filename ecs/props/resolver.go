// Package props resolves component fields that defer to entity properties or scripts.
//
// An entity declares properties with `property` components ({property, value, priority})
// and computed properties with `propertyView` components ({property, script, priority}).
// When several match, the highest priority wins; priority defaults to 1000.
package props

import (
	"errors"
	"fmt"

	"github.com/plus3/kiln/ecs"
	"github.com/plus3/kiln/script"
	lua "github.com/yuin/gopher-lua"
)

const (
	PropertyType     = "property"
	PropertyViewType = "propertyView"

	DefaultPriority = 1000
)

// ErrUnsupportedScriptValue is returned when a script yields something other than a
// number, string or boolean.
var ErrUnsupportedScriptValue = errors.New("unsupported script value")

// Resolver reads component fields through the property and script indirections.
type Resolver struct {
	state   *ecs.State
	scripts script.Runner
}

// New creates a Resolver. scripts may be nil when no propertyView or script fields are used.
func New(state *ecs.State, scripts script.Runner) *Resolver {
	return &Resolver{state: state, scripts: scripts}
}

// State returns the State the resolver reads from.
func (r *Resolver) State() *ecs.State {
	return r.state
}

// GetAndResolve reads a field. A FromProperty value is replaced by the named property of
// the component's owner, and a Script value by the result of running it on the component.
func (r *Resolver) GetAndResolve(component ecs.ComponentId, field string) (ecs.Data, error) {
	raw, err := r.state.Get(component, field)
	if err != nil {
		return ecs.Data{}, err
	}

	switch raw.Kind() {
	case ecs.KindFromProperty:
		name, _ := raw.AsFromProperty()
		owner, err := r.state.Owner(component)
		if err != nil {
			return ecs.Data{}, err
		}
		return r.PropertyValue(owner, name)
	case ecs.KindScript:
		code, _ := raw.AsScript()
		return r.evaluate(component, code)
	}
	return raw, nil
}

// PropertyValue returns the value of the highest priority property or propertyView named
// name on entity. A missing property yields Empty.
func (r *Resolver) PropertyValue(entity ecs.EntityId, name string) (ecs.Data, error) {
	visible, err := r.state.IsEntityVisible(entity)
	if err != nil || !visible {
		return ecs.Empty(), err
	}

	components, err := r.state.EntityComponents(entity)
	if err != nil {
		return ecs.Empty(), err
	}

	var (
		best         ecs.ComponentId
		bestView     bool
		bestPriority float64
	)
	for _, c := range components {
		typ, err := r.state.Type(c)
		if err != nil {
			continue
		}
		typename, native := typ.Native()
		if !native || (typename != PropertyType && typename != PropertyViewType) {
			continue
		}

		prop, err := r.state.Get(c, "property")
		if err != nil {
			continue
		}
		if s, ok := prop.AsString(); !ok || s != name {
			continue
		}

		priority := float64(DefaultPriority)
		if p, err := r.state.Get(c, "priority"); err == nil {
			if v, ok := p.AsNumber(); ok {
				priority = v
			}
		}

		if best == 0 || priority > bestPriority {
			best, bestView, bestPriority = c, typename == PropertyViewType, priority
		}
	}

	if best == 0 {
		return ecs.Empty(), nil
	}

	if !bestView {
		value, err := r.state.Get(best, "value")
		if errors.Is(err, ecs.ErrFieldDoesNotExist) {
			return ecs.Empty(), nil
		}
		if err != nil {
			return ecs.Empty(), err
		}
		if value.Kind() == ecs.KindFromProperty {
			return ecs.Empty(), nil
		}
		return value, nil
	}

	code, err := r.state.Get(best, "script")
	if err != nil {
		return ecs.Empty(), err
	}
	source, ok := code.AsString()
	if !ok {
		if source, ok = code.AsScript(); !ok {
			return ecs.Empty(), fmt.Errorf("propertyView %d: script is %s", best, code.Kind())
		}
	}
	return r.evaluate(best, source)
}

func (r *Resolver) evaluate(component ecs.ComponentId, code string) (ecs.Data, error) {
	if r.scripts == nil {
		return ecs.Empty(), fmt.Errorf("component %d: no script runner", component)
	}

	result, err := r.scripts.Execute(r.state, component, code)
	if err != nil {
		return ecs.Empty(), err
	}
	if result == nil {
		result = lua.LNil
	}

	switch v := result.(type) {
	case lua.LNumber:
		return ecs.Number(float64(v)), nil
	case lua.LString:
		return ecs.String(string(v)), nil
	case lua.LBool:
		return ecs.Boolean(bool(v)), nil
	}
	return ecs.Empty(), fmt.Errorf("%w: %s", ErrUnsupportedScriptValue, result.Type())
}

// Number resolves a numeric field. It reports false on any error or kind mismatch.
func (r *Resolver) Number(component ecs.ComponentId, field string) (float64, bool) {
	d, err := r.GetAndResolve(component, field)
	if err != nil {
		return 0, false
	}
	return d.AsNumber()
}

// String resolves a string field.
func (r *Resolver) String(component ecs.ComponentId, field string) (string, bool) {
	d, err := r.GetAndResolve(component, field)
	if err != nil {
		return "", false
	}
	return d.AsString()
}

// Boolean resolves a boolean field.
func (r *Resolver) Boolean(component ecs.ComponentId, field string) (bool, bool) {
	d, err := r.GetAndResolve(component, field)
	if err != nil {
		return false, false
	}
	return d.AsBoolean()
}

// Entity resolves an entity reference field.
func (r *Resolver) Entity(component ecs.ComponentId, field string) (ecs.EntityId, bool) {
	d, err := r.GetAndResolve(component, field)
	if err != nil {
		return 0, false
	}
	return d.AsEntity()
}

// NumberOr resolves a numeric field, falling back to def.
func (r *Resolver) NumberOr(component ecs.ComponentId, field string, def float64) float64 {
	if v, ok := r.Number(component, field); ok {
		return v
	}
	return def
}
