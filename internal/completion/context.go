package completion

import (
	"strings"

	"github.com/NikitaCOEUR/tabctx/internal/command"
	"github.com/NikitaCOEUR/tabctx/internal/logger"
	"github.com/NikitaCOEUR/tabctx/internal/patterns"
)

// ContextParams contains everything a completion request knows up front
type ContextParams struct {
	Command command.Command
	Issuer  command.Issuer
	Input   string   // The argument currently being typed
	Config  *string  // Handler configuration, nil when none was given
	Args    []string // Tokens already on the command line
	Logger  *logger.Logger
}

// Context is created once per completion request. Everything except Args is
// fixed at construction.
type Context struct {
	command   command.Command
	issuer    command.Issuer
	input     string
	rawConfig *string
	primary   *string
	options   map[string]*string
	args      []string
	log       *logger.Logger
}

// NewContext builds a completion context, parsing the configuration eagerly.
func NewContext(params ContextParams) *Context {
	log := params.Logger
	if log == nil {
		log = logger.Discard()
	}

	ctx := &Context{
		command:   params.Command,
		issuer:    params.Issuer,
		input:     params.Input,
		rawConfig: params.Config,
		options:   make(map[string]*string),
		args:      append([]string{}, params.Args...),
		log:       log,
	}

	if params.Config != nil {
		segments := patterns.Split(patterns.Comma, *params.Config)
		for _, segment := range segments {
			kv := patterns.SplitN(patterns.Equals, segment, 2)
			var value *string
			if len(kv) > 1 {
				value = &kv[1]
			}
			ctx.options[strings.ToLower(kv[0])] = value
		}
		// Only the first segment is kept, not the whole string.
		primary := segments[0]
		ctx.primary = &primary
	}

	return ctx
}

// Configs returns a copy of the parsed options. A nil value means the key was
// given without "=". The values are copies too, so writes through them do not
// reach the context.
func (c *Context) Configs() map[string]*string {
	out := make(map[string]*string, len(c.options))
	for k, v := range c.options {
		if v != nil {
			value := *v
			v = &value
		}
		out[k] = v
	}
	return out
}

// Config looks up an option case-insensitively. ok is false when the key is
// missing or was given without a value.
func (c *Context) Config(key string) (value string, ok bool) {
	v := c.options[strings.ToLower(key)]
	if v == nil {
		return "", false
	}
	return *v, true
}

// ConfigDefault is like Config but returns def when the key is missing
// entirely. A key given without a value still reports ok == false.
func (c *Context) ConfigDefault(key, def string) (value string, ok bool) {
	v, present := c.options[strings.ToLower(key)]
	if !present {
		return def, true
	}
	if v == nil {
		return "", false
	}
	return *v, true
}

// HasConfig reports whether the key was given, with or without a value.
func (c *Context) HasConfig(key string) bool {
	_, ok := c.options[strings.ToLower(key)]
	return ok
}

// PrimaryConfig returns the first comma-separated segment of the configuration, verbatim.
func (c *Context) PrimaryConfig() (string, bool) {
	if c.primary == nil {
		return "", false
	}
	return *c.primary, true
}

// RawConfig returns the configuration string as given.
func (c *Context) RawConfig() (string, bool) {
	if c.rawConfig == nil {
		return "", false
	}
	return *c.rawConfig, true
}

// Input returns the raw text of the argument being completed.
func (c *Context) Input() string {
	return c.input
}

// Issuer returns who asked for completions.
func (c *Context) Issuer() command.Issuer {
	return c.issuer
}

// Command returns the command being completed.
func (c *Context) Command() command.Command {
	return c.command
}

// Args returns a copy of the current argument tokens.
func (c *Context) Args() []string {
	return append([]string{}, c.args...)
}

// SetArgs replaces the argument tokens used by subsequent lookups.
func (c *Context) SetArgs(args []string) {
	c.args = append([]string{}, args...)
}

// ShiftArg drops and returns the first argument token.
func (c *Context) ShiftArg() (string, bool) {
	if len(c.args) == 0 {
		return "", false
	}
	first := c.args[0]
	c.args = c.args[1:]
	return first, true
}
