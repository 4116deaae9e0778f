package command

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/NikitaCOEUR/tabctx/internal/derrors"
)

// Registered is a command descriptor built at registration time from an
// explicit parameter table.
type Registered struct {
	name        string
	description string
	params      []Parameter
	resolvers   Resolvers
}

// NewRegistered creates a command descriptor. A nil resolver table falls back
// to DefaultResolvers.
func NewRegistered(name, description string, resolvers Resolvers, params ...Parameter) *Registered {
	if resolvers == nil {
		resolvers = DefaultResolvers()
	}
	return &Registered{
		name:        name,
		description: description,
		params:      append([]Parameter(nil), params...),
		resolvers:   resolvers,
	}
}

// Name returns the command name
func (c *Registered) Name() string {
	return c.name
}

// Description returns the command description
func (c *Registered) Description() string {
	return c.description
}

// Parameters returns the declared parameters in declaration order
func (c *Registered) Parameters() []Parameter {
	return c.params
}

// ResolveContexts walks the parameter table and converts tokens in order.
// Issuer parameters bind the issuer without consuming a token. A trailing
// []string parameter takes every remaining token. When tokens run out, a
// parameter falls back to its Default, binds nil if Optional, and otherwise
// stops resolution, returning what was resolved so far.
func (c *Registered) ResolveContexts(issuer Issuer, args []string, limit int) (map[string]any, error) {
	if limit > len(args) {
		limit = len(args)
	}
	if limit < 0 {
		limit = 0
	}
	tokens := args[:limit]

	resolved := make(map[string]any, len(c.params))
	pos := 0
	for i, param := range c.params {
		if param.Type == nil {
			return resolved, derrors.NewResolutionError(param.Name, "", "parameter has no declared type", nil)
		}
		if !param.consumesToken() {
			if issuer != nil && !reflect.TypeOf(issuer).AssignableTo(param.Type) {
				return resolved, derrors.NewResolutionError(param.Name, "",
					fmt.Sprintf("issuer %T can not satisfy %s", issuer, param.Type), nil)
			}
			resolved[param.Name] = issuer
			continue
		}

		fn, err := c.resolvers.lookup(param.Type)
		if err != nil {
			return resolved, derrors.NewResolutionError(param.Name, "", "failed to resolve parameter", err)
		}

		var token string
		switch {
		case pos < len(tokens) && param.Type == stringsType && i == len(c.params)-1:
			token = strings.Join(tokens[pos:], " ")
			pos = len(tokens)
		case pos < len(tokens):
			token = tokens[pos]
			pos++
		case param.Default != "":
			token = param.Default
		case param.Optional:
			resolved[param.Name] = nil
			continue
		default:
			return resolved, nil
		}

		value, err := fn(issuer, token)
		if err != nil {
			return resolved, derrors.NewResolutionError(param.Name, token,
				fmt.Sprintf("failed to resolve %s", param.Name), err)
		}
		resolved[param.Name] = value
	}

	return resolved, nil
}
