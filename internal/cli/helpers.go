package cli

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"sort"

	"github.com/NikitaCOEUR/tabctx/internal/cache"
	"github.com/NikitaCOEUR/tabctx/internal/command"
	"github.com/NikitaCOEUR/tabctx/internal/completion"
	"github.com/NikitaCOEUR/tabctx/internal/config"
	"github.com/NikitaCOEUR/tabctx/internal/logger"
)

// components holds everything built from a definitions file
type components struct {
	defs     *config.Definitions
	commands map[string]*command.Registered
	engine   *completion.Engine
	log      *logger.Logger
}

// DefaultCachePath returns where @exec output is cached
func DefaultCachePath() string {
	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		home, _ := os.UserHomeDir()
		cacheHome = filepath.Join(home, ".cache")
	}
	return filepath.Join(cacheHome, "tabctx", "cache.json")
}

// resolveDefinitionsPath falls back to the default definitions path
func resolveDefinitionsPath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	return config.GetDefaultPath()
}

// initializeComponents loads the definitions file and wires the completion
// engine. An empty cachePath disables the @exec cache.
func initializeComponents(path, logLevel, cachePath string) (*components, error) {
	path, err := resolveDefinitionsPath(path)
	if err != nil {
		return nil, err
	}

	defs, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if logLevel == "" {
		logLevel = defs.LogLevel
	}
	if logLevel == "" {
		logLevel = "warn"
	}
	log := logger.New(logLevel, os.Stderr)

	commands, err := defs.Build(nil)
	if err != nil {
		return nil, err
	}

	var store *cache.Cache
	if cachePath != "" {
		store, err = cache.New(cachePath)
		if err != nil {
			log.Warn().Str("path", cachePath).Err(err).Msg("Completion cache unavailable")
		}
	}

	engine, err := newEngine(defs, log, store)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("path", path).
		Int("commands", len(commands)).
		Msg("Loaded definitions")

	return &components{
		defs:     defs,
		commands: commands,
		engine:   engine,
		log:      log,
	}, nil
}

// newEngine creates an engine with the definition-backed handlers registered
func newEngine(defs *config.Definitions, log *logger.Logger, store *cache.Cache) (*completion.Engine, error) {
	engine := completion.NewEngine(log)

	templates, err := completion.TemplateHandler(defs.Templates)
	if err != nil {
		return nil, err
	}
	if err := engine.Register("@template", templates); err != nil {
		return nil, err
	}
	if err := engine.Register("@values", completion.ValuesHandler(defs.Values)); err != nil {
		return nil, err
	}
	if err := engine.Register("@exec", completion.ExecHandler(defs.Exec, store)); err != nil {
		return nil, err
	}

	return engine, nil
}

// shellIssuer is the local user running the CLI
type shellIssuer struct {
	name string
}

func (i *shellIssuer) Name() string { return i.name }

// HasPermission always grants: the local user owns the session
func (i *shellIssuer) HasPermission(_ string) bool { return true }

// currentIssuer identifies the user invoking the CLI
func currentIssuer() command.Issuer {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return &shellIssuer{name: u.Username}
	}
	if name := os.Getenv("USER"); name != "" {
		return &shellIssuer{name: name}
	}
	return &shellIssuer{name: "unknown"}
}

// sortedCommandNames returns command names in alphabetical order
func sortedCommandNames(commands map[string]*command.Registered) []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// output returns w, or stdout when w is nil
func output(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}

// writeSuggestions prints one suggestion per line, with a tab-separated description
func writeSuggestions(w io.Writer, suggestions []completion.Suggestion) error {
	for _, s := range suggestions {
		var err error
		if s.Description != "" {
			_, err = fmt.Fprintf(w, "%s\t%s\n", s.Value, s.Description)
		} else {
			_, err = fmt.Fprintln(w, s.Value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
