package completion

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/NikitaCOEUR/tabctx/internal/cache"
	"github.com/NikitaCOEUR/tabctx/internal/derrors"
	"github.com/NikitaCOEUR/tabctx/pkg/version"
)

const (
	// DefaultCommandTimeout bounds an @exec command unless its timeout option says otherwise
	DefaultCommandTimeout = 3 * time.Second
	// MaxOutputSize is the maximum size of command output read (1MB)
	MaxOutputSize = 1024 * 1024
)

// ExecHandler runs a named external command and suggests one value per output
// line. Lines may carry a tab-separated description. The primary config names
// the command, e.g. "@exec:branches,timeout=1s".
//
// The command sees the request through TABCTX_INPUT, TABCTX_ARGS (tab-joined)
// and TABCTX_ISSUER. With a store, the cache option keeps output for the given
// duration: "@exec:branches,cache=30s".
func ExecHandler(commands map[string][]string, store *cache.Cache) Handler {
	return func(ctx *Context) ([]Suggestion, error) {
		name, _ := ctx.PrimaryConfig()
		argv, ok := commands[name]
		if !ok || len(argv) == 0 {
			return nil, derrors.NewNotFoundError(name, "completion command not found")
		}

		timeout := DefaultCommandTimeout
		if raw, ok := ctx.Config("timeout"); ok {
			d, err := time.ParseDuration(raw)
			if err != nil || d <= 0 {
				return nil, derrors.NewValidationError("@exec", fmt.Sprintf("invalid timeout %q", raw), err)
			}
			timeout = d
		}

		var ttl time.Duration
		if raw, ok := ctx.Config("cache"); ok && store != nil {
			d, err := time.ParseDuration(raw)
			if err != nil || d <= 0 {
				return nil, derrors.NewValidationError("@exec", fmt.Sprintf("invalid cache duration %q", raw), err)
			}
			ttl = d
		}

		var issuer string
		if ctx.Issuer() != nil {
			issuer = ctx.Issuer().Name()
		}
		key := cache.Key(append([]string{name, issuer, ctx.Input()}, ctx.Args()...)...)
		if ttl > 0 {
			if entry, ok := store.Fresh(key, ttl, version.Version); ok {
				return fromCache(entry.Items), nil
			}
		}

		env := append(os.Environ(),
			"TABCTX_INPUT="+ctx.Input(),
			"TABCTX_ARGS="+strings.Join(ctx.Args(), "\t"),
		)
		if ctx.Issuer() != nil {
			env = append(env, "TABCTX_ISSUER="+issuer)
		}

		runCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		output, err := execWithEnv(runCtx, env, argv[0], argv[1:]...)
		if err != nil {
			return nil, fmt.Errorf("failed to run completion command %s: %w", name, err)
		}
		suggestions := parseCompletionOutput(output)

		if ttl > 0 {
			err := store.Set(&cache.Entry{
				Key:       key,
				Items:     toCache(suggestions),
				Timestamp: time.Now(),
				Version:   version.Version,
			})
			if err != nil {
				ctx.log.Warn().Str("command", name).Err(err).Msg("Failed to cache completion output")
			}
		}
		return suggestions, nil
	}
}

func toCache(suggestions []Suggestion) []cache.Item {
	items := make([]cache.Item, 0, len(suggestions))
	for _, s := range suggestions {
		items = append(items, cache.Item{Value: s.Value, Description: s.Description})
	}
	return items
}

func fromCache(items []cache.Item) []Suggestion {
	suggestions := make([]Suggestion, 0, len(items))
	for _, item := range items {
		suggestions = append(suggestions, Suggestion{Value: item.Value, Description: item.Description})
	}
	return suggestions
}

// execWithEnv executes a command under ctx and returns its standard output.
// With a nil env the command inherits the current process environment.
func execWithEnv(ctx context.Context, env []string, tool string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, tool, args...)
	if env != nil {
		cmd.Env = env
	}

	output, err := cmd.Output()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("command timeout: %w", err)
		}
		return nil, err
	}

	if len(output) > MaxOutputSize {
		return output[:MaxOutputSize], nil
	}
	return output, nil
}

// parseCompletionOutput turns "value[\tdescription]" lines into suggestions
func parseCompletionOutput(output []byte) []Suggestion {
	suggestions := []Suggestion{}

	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		value, description, _ := strings.Cut(line, "\t")
		suggestions = append(suggestions, Suggestion{
			Value:       value,
			Description: description,
		})
	}

	return suggestions
}
