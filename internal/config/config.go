// Package config loads command definition files for tabctx.
// A definitions file declares commands with their parameter tables, plus the
// templates, value lists and external commands used by the @template, @values
// and @exec handlers.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/NikitaCOEUR/tabctx/internal/command"
	"github.com/NikitaCOEUR/tabctx/internal/derrors"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	// DefaultFileName is the name of the definitions file in the config dir
	DefaultFileName = "commands.yml"
)

// SupportedExtensions lists definition file formats
var SupportedExtensions = []string{".yml", ".yaml", ".toml", ".json"}

// ParameterTypes maps the type names usable in definition files to Go types
var ParameterTypes = map[string]reflect.Type{
	"string":   reflect.TypeFor[string](),
	"int":      reflect.TypeFor[int](),
	"float":    reflect.TypeFor[float64](),
	"bool":     reflect.TypeFor[bool](),
	"duration": reflect.TypeFor[time.Duration](),
	"strings":  reflect.TypeFor[[]string](),
	"issuer":   reflect.TypeFor[command.Issuer](),
}

// ParameterDef declares one command parameter
type ParameterDef struct {
	Name       string `koanf:"name"`
	Type       string `koanf:"type"`
	Optional   bool   `koanf:"optional"`
	Default    string `koanf:"default"`
	Completion string `koanf:"completion"`
}

// CommandDef declares one command
type CommandDef struct {
	Description string         `koanf:"description"`
	Parameters  []ParameterDef `koanf:"parameters"`
}

// Definitions is the content of a definitions file
type Definitions struct {
	LogLevel  string                `koanf:"log_level"`
	Commands  map[string]CommandDef `koanf:"commands"`
	Templates map[string]string     `koanf:"templates"`
	Values    map[string][]string   `koanf:"values"`
	Exec      map[string][]string   `koanf:"exec"` // name -> argv
}

// parserFor picks the koanf parser for a file extension
func parserFor(ext string) (koanf.Parser, error) {
	switch strings.ToLower(ext) {
	case ".yml", ".yaml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported definitions format: %s", ext)
	}
}

// Load reads and parses a definitions file
func Load(path string) (*Definitions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to read definitions", err)
	}

	defs, err := LoadBytes(data, filepath.Ext(path))
	if err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to load definitions", err)
	}
	return defs, nil
}

// LoadBytes parses definitions held in memory; ext selects the format (".yml", ".toml", ".json").
func LoadBytes(data []byte, ext string) (*Definitions, error) {
	k, err := loadKoanf(data, ext)
	if err != nil {
		return nil, err
	}

	defs := &Definitions{
		Commands:  make(map[string]CommandDef),
		Templates: make(map[string]string),
		Values:    make(map[string][]string),
		Exec:      make(map[string][]string),
	}
	if err := k.Unmarshal("", defs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal definitions: %w", err)
	}

	return defs, nil
}

// loadKoanf parses data into an isolated koanf instance
func loadKoanf(data []byte, ext string) (*koanf.Koanf, error) {
	parser, err := parserFor(ext)
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return nil, fmt.Errorf("failed to parse definitions: %w", err)
	}
	return k, nil
}

// loadRaw parses data into nested maps
func loadRaw(data []byte, ext string) (map[string]interface{}, error) {
	k, err := loadKoanf(data, ext)
	if err != nil {
		return nil, err
	}
	return k.Raw(), nil
}

// Build turns the declared commands into descriptors the completion layer can use.
func (d *Definitions) Build(resolvers command.Resolvers) (map[string]*command.Registered, error) {
	commands := make(map[string]*command.Registered, len(d.Commands))
	for name, def := range d.Commands {
		params := make([]command.Parameter, 0, len(def.Parameters))
		for _, p := range def.Parameters {
			typ, ok := ParameterTypes[strings.ToLower(p.Type)]
			if !ok {
				return nil, derrors.NewValidationError(
					fmt.Sprintf("commands/%s/%s", name, p.Name),
					fmt.Sprintf("unknown parameter type %q", p.Type), nil)
			}
			params = append(params, command.Parameter{
				Name:       p.Name,
				Type:       typ,
				Optional:   p.Optional,
				Default:    p.Default,
				Completion: p.Completion,
			})
		}
		commands[name] = command.NewRegistered(name, def.Description, resolvers, params...)
	}
	return commands, nil
}

// GetDefaultPath returns the path of the user's definitions file
func GetDefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}

	return filepath.Join(configHome, "tabctx", DefaultFileName), nil
}
