//go:build !dev

// Package trace records runtime/trace regions in dev builds; release builds
// get the no-op stubs below.
package trace

import "context"

func Init() func() { return func() {} }

func Region(_ context.Context, _ string) func() { return func() {} }

func WithRegion(_ context.Context, _ string, f func()) { f() }

func IsEnabled() bool { return false }
