// Package command describes the surface a registered command exposes to the
// completion layer: an ordered parameter table and a resolution pipeline that
// turns raw argument tokens into typed values keyed by parameter name.
package command

import (
	"reflect"
)

// Issuer is the identity that triggered a command or completion request.
// The completion layer passes it through without inspecting it.
type Issuer interface {
	Name() string
	HasPermission(permission string) bool
}

// Parameter is one declared parameter of a command.
type Parameter struct {
	Name string
	// Type is the Go type values of this parameter resolve to.
	Type reflect.Type
	// Optional parameters bind nil when no token is left.
	Optional bool
	// Default is resolved in place of a missing token when non-empty.
	Default string
	// Completion is the completion spec used for this parameter, e.g. "@range:1-10".
	Completion string
}

// Command is the descriptor the completion layer borrows from the framework.
type Command interface {
	Name() string
	Parameters() []Parameter
	// ResolveContexts resolves up to limit tokens of args into parameter values.
	ResolveContexts(issuer Issuer, args []string, limit int) (map[string]any, error)
}

// Param builds a Parameter whose declared type is T.
func Param[T any](name string) Parameter {
	return Parameter{Name: name, Type: reflect.TypeFor[T]()}
}

// WithCompletion returns a copy of p carrying the given completion spec.
func (p Parameter) WithCompletion(spec string) Parameter {
	p.Completion = spec
	return p
}

// AsOptional returns a copy of p that binds nil, or def when given, if no token is left.
func (p Parameter) AsOptional(def string) Parameter {
	p.Optional = true
	p.Default = def
	return p
}

// SatisfiedBy reports whether values of the declared type can be handed out as want.
func (p Parameter) SatisfiedBy(want reflect.Type) bool {
	return p.Type != nil && want != nil && p.Type.AssignableTo(want)
}

// consumesToken reports whether the parameter is fed from the token stream.
func (p Parameter) consumesToken() bool {
	return p.Type == nil || !p.Type.Implements(issuerType)
}
