package command

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// ResolverFunc converts a single token into a value for a parameter.
type ResolverFunc func(issuer Issuer, token string) (any, error)

var (
	issuerType  = reflect.TypeFor[Issuer]()
	stringsType = reflect.TypeFor[[]string]()
)

// Resolvers maps declared parameter types to their token converters.
type Resolvers map[reflect.Type]ResolverFunc

// DefaultResolvers returns converters for the scalar types the framework
// understands out of the box.
func DefaultResolvers() Resolvers {
	return Resolvers{
		reflect.TypeFor[string](): func(_ Issuer, token string) (any, error) {
			return token, nil
		},
		reflect.TypeFor[int](): func(_ Issuer, token string) (any, error) {
			return strconv.Atoi(token)
		},
		reflect.TypeFor[float64](): func(_ Issuer, token string) (any, error) {
			return strconv.ParseFloat(token, 64)
		},
		reflect.TypeFor[bool](): func(_ Issuer, token string) (any, error) {
			return strconv.ParseBool(token)
		},
		reflect.TypeFor[time.Duration](): func(_ Issuer, token string) (any, error) {
			return time.ParseDuration(token)
		},
		stringsType: func(_ Issuer, token string) (any, error) {
			return strings.Fields(token), nil
		},
	}
}

// Register adds or replaces the converter for T.
func Register[T any](r Resolvers, fn func(issuer Issuer, token string) (T, error)) {
	r[reflect.TypeFor[T]()] = func(issuer Issuer, token string) (any, error) {
		return fn(issuer, token)
	}
}

// lookup finds the converter for t.
func (r Resolvers) lookup(t reflect.Type) (ResolverFunc, error) {
	fn, ok := r[t]
	if !ok {
		return nil, fmt.Errorf("no resolver for type %s", t)
	}
	return fn, nil
}
