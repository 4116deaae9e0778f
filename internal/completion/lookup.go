package completion

import (
	"fmt"
	"reflect"

	"github.com/NikitaCOEUR/tabctx/internal/derrors"
)

// Value resolves the first declared parameter whose type satisfies T.
func Value[T any](c *Context) (T, error) {
	var zero T
	v, err := c.LookupValue(reflect.TypeFor[T](), nil)
	if err != nil {
		return zero, err
	}
	// nil (an unset optional parameter) stays the zero value; any other value
	// was checked against T by LookupValue
	typed, _ := v.(T)
	return typed, nil
}

// ValueAt resolves the parameter declared at index idx as a T.
func ValueAt[T any](c *Context, idx int) (T, error) {
	var zero T
	v, err := c.LookupValue(reflect.TypeFor[T](), &idx)
	if err != nil {
		return zero, err
	}
	typed, _ := v.(T)
	return typed, nil
}

// LookupValue locates the parameter that should supply a value of type want,
// resolves the current args through the command and returns that value.
// With idx nil the first satisfying parameter in declaration order is used.
//
// Asking for an index out of range, or for a type the parameter at idx can not
// satisfy, returns a PreconditionError. Asking by type when nothing satisfies
// it returns an InvalidStateError. If the command resolves nothing usable for
// the located parameter, or resolves a non-nil value that is not a want, a
// LookupError is logged and returned.
func (c *Context) LookupValue(want reflect.Type, idx *int) (any, error) {
	params := c.command.Parameters()

	var name string
	paramIdx := -1
	if idx != nil {
		if *idx < 0 || *idx >= len(params) {
			return nil, derrors.NewPreconditionError(*idx, "param index is higher than number of parameters")
		}
		param := params[*idx]
		if !param.SatisfiedBy(want) {
			return nil, derrors.NewPreconditionError(*idx,
				fmt.Sprintf("%s:%s can not satisfy %s", param.Name, param.Type, want))
		}
		paramIdx = *idx
		name = param.Name
	} else {
		for i, param := range params {
			if param.SatisfiedBy(want) {
				paramIdx = i
				name = param.Name
				break
			}
		}
		if paramIdx < 0 {
			return nil, derrors.NewInvalidStateError(fmt.Sprint(want),
				fmt.Sprintf("can not find any parameter that can satisfy %s", want))
		}
	}

	resolved, err := c.command.ResolveContexts(c.issuer, c.args, len(c.args))
	if err != nil || len(resolved) == 0 || paramIdx > len(resolved) {
		c.log.Error().
			Str("command", c.command.Name()).
			Any("resolved", resolved).
			Int("param_idx", paramIdx).
			Int("size", len(resolved)).
			Err(err).
			Msg("Completion context lookup failed")
		return nil, derrors.NewLookupError(name, paramIdx, "failed to look up completion value", err)
	}

	value := resolved[name]
	if value != nil && !reflect.TypeOf(value).AssignableTo(want) {
		c.log.Error().
			Str("command", c.command.Name()).
			Str("param", name).
			Str("got", fmt.Sprintf("%T", value)).
			Str("want", want.String()).
			Msg("Resolved value has the wrong type")
		return nil, derrors.NewLookupError(name, paramIdx,
			fmt.Sprintf("resolved %T can not satisfy %s", value, want), nil)
	}
	return value, nil
}
