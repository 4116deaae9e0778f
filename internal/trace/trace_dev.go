//go:build dev

// Package trace records runtime/trace regions in dev builds.
//
// Usage:
//
//	TABCTX_TRACE=trace.out tabctx complete -- give ''
//	go tool trace trace.out
package trace

import (
	"context"
	"fmt"
	"os"
	"runtime/trace"
	"sync"
)

const envVar = "TABCTX_TRACE"

// session is an open trace output
type session struct {
	file *os.File
}

var (
	mu     sync.Mutex
	active *session
)

// Init starts tracing when TABCTX_TRACE names an output file.
// The returned function stops it and must be deferred.
func Init() func() {
	path := os.Getenv(envVar)
	if path == "" {
		return func() {}
	}

	s, err := start(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tabctx: %v\n", err)
		return func() {}
	}

	mu.Lock()
	active = s
	mu.Unlock()

	return func() {
		mu.Lock()
		defer mu.Unlock()
		if active != nil {
			active.stop()
			active = nil
		}
	}
}

func start(path string) (*session, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace file %s: %w", path, err)
	}
	if err := trace.Start(f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to start trace: %w", err)
	}
	return &session{file: f}, nil
}

func (s *session) stop() {
	trace.Stop()
	_ = s.file.Close()
}

// Region opens a trace region and returns the function that closes it.
func Region(ctx context.Context, regionType string) func() {
	if !IsEnabled() {
		return func() {}
	}
	return trace.StartRegion(ctx, regionType).End
}

// WithRegion runs f inside a trace region.
func WithRegion(ctx context.Context, regionType string, f func()) {
	if !IsEnabled() {
		f()
		return
	}
	trace.WithRegion(ctx, regionType, f)
}

// IsEnabled reports whether a trace is being recorded.
func IsEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return active != nil
}
