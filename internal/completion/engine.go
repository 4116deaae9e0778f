package completion

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/NikitaCOEUR/tabctx/internal/command"
	"github.com/NikitaCOEUR/tabctx/internal/derrors"
	"github.com/NikitaCOEUR/tabctx/internal/logger"
	"github.com/NikitaCOEUR/tabctx/internal/patterns"
)

const (
	// SourceLiteral marks results produced from a literal "a|b|c" list
	SourceLiteral = "literal"
	// SourceDegraded marks results replaced by an empty list after a lookup failure
	SourceDegraded = "degraded"
	// SourceNone marks requests with no completion spec
	SourceNone = "none"
)

var (
	issuerType  = reflect.TypeFor[command.Issuer]()
	stringsType = reflect.TypeFor[[]string]()
)

// Engine maps completion handler ids to handlers and runs requests
type Engine struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	log      *logger.Logger
}

// Request describes one completion request
type Request struct {
	Command command.Command
	Issuer  command.Issuer
	Spec    string   // "@id[:config]" or "a|b|c"
	Input   string   // The argument being completed
	Args    []string // Tokens before the argument being completed
}

// NewEngine creates an engine with the built-in handlers registered
func NewEngine(log *logger.Logger) *Engine {
	if log == nil {
		log = logger.Discard()
	}
	e := &Engine{
		handlers: make(map[string]Handler),
		log:      log.With("completion"),
	}

	builtins := map[string]Handler{
		"@range":   RangeHandler,
		"@boolean": BooleanHandler,
		"@nothing": NothingHandler,
		"@above":   AboveHandler,
	}
	for id, h := range builtins {
		_ = e.Register(id, h)
	}

	return e
}

// Register adds a handler under id. Ids are case-insensitive and must start with "@".
func (e *Engine) Register(id string, h Handler) error {
	key := strings.ToLower(id)
	if !strings.HasPrefix(key, "@") {
		return derrors.NewValidationError("id", fmt.Sprintf("completion id %q must start with @", id), nil)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.handlers[key]; exists {
		return derrors.NewAlreadyExistsError(key, "completion handler already registered")
	}
	e.handlers[key] = h
	return nil
}

// Has reports whether a handler is registered under id
func (e *Engine) Has(id string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.handlers[strings.ToLower(id)]
	return ok
}

// IDs returns the registered handler ids, sorted
func (e *Engine) IDs() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	ids := make([]string, 0, len(e.handlers))
	for id := range e.handlers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ParseSpec splits a completion spec into its handler id and configuration.
// Literal lists return an empty id. config is nil when no ":" was given.
func ParseSpec(spec string) (id string, config *string) {
	if !strings.HasPrefix(spec, "@") {
		return "", nil
	}
	parts := patterns.SplitN(patterns.Colon, spec, 2)
	if len(parts) > 1 {
		config = &parts[1]
	}
	return strings.ToLower(parts[0]), config
}

// Complete runs the handler named by req.Spec and filters its suggestions by req.Input.
//
// Precondition and invalid state errors from the handler are returned as is:
// they mean the handler does not match the command's declarations. Lookup and
// resolution failures degrade into an empty result.
func (e *Engine) Complete(req Request) (*Result, error) {
	if req.Spec == "" {
		return &Result{Suggestions: []Suggestion{}, Source: SourceNone}, nil
	}

	id, config := ParseSpec(req.Spec)
	if id == "" {
		literal := suggestionsOf(patterns.Split(patterns.Pipe, req.Spec)...)
		return &Result{Suggestions: e.Filter(literal, req.Input), Source: SourceLiteral}, nil
	}

	e.mu.RLock()
	handler, ok := e.handlers[id]
	e.mu.RUnlock()
	if !ok {
		return nil, derrors.NewNotFoundError(id, "completion handler not found")
	}

	ctx := NewContext(ContextParams{
		Command: req.Command,
		Issuer:  req.Issuer,
		Input:   req.Input,
		Config:  config,
		Args:    req.Args,
		Logger:  e.log,
	})

	e.log.Debug().
		Str("handler", id).
		Str("input", req.Input).
		Strs("args", req.Args).
		Msg("Running completion handler")

	suggestions, err := handler(ctx)
	if err != nil {
		if derrors.IsLookup(err) || derrors.IsResolution(err) {
			e.log.Warn().Str("handler", id).Err(err).Msg("Completion degraded to empty result")
			return &Result{Suggestions: []Suggestion{}, Source: SourceDegraded}, nil
		}
		return nil, fmt.Errorf("completion handler %s failed: %w", id, err)
	}

	return &Result{Suggestions: e.Filter(suggestions, req.Input), Source: id}, nil
}

// CompleteCommand completes the last of words against cmd's parameter table.
// words holds every token after the command name, the last one being the
// argument currently typed (possibly empty).
func (e *Engine) CompleteCommand(cmd command.Command, issuer command.Issuer, words []string) (*Result, error) {
	if len(words) == 0 {
		words = []string{""}
	}
	args := words[:len(words)-1]
	input := words[len(words)-1]

	param, ok := ParameterFor(cmd, len(args))
	if !ok {
		return &Result{Suggestions: []Suggestion{}, Source: SourceNone}, nil
	}

	return e.Complete(Request{
		Command: cmd,
		Issuer:  issuer,
		Spec:    param.Completion,
		Input:   input,
		Args:    args,
	})
}

// ParameterFor returns the parameter that receives the token at position pos,
// skipping issuer parameters. A trailing []string parameter receives every
// position past its own.
func ParameterFor(cmd command.Command, pos int) (command.Parameter, bool) {
	var last command.Parameter
	seen := 0
	for _, param := range cmd.Parameters() {
		if param.Type != nil && param.Type.Implements(issuerType) {
			continue
		}
		if seen == pos {
			return param, true
		}
		last = param
		seen++
	}
	if seen > 0 && last.Type == stringsType {
		return last, true
	}
	return command.Parameter{}, false
}

// Filter applies prefix filtering to suggestions
func (e *Engine) Filter(suggestions []Suggestion, prefix string) []Suggestion {
	if prefix == "" {
		return suggestions
	}

	filtered := []Suggestion{}
	for _, s := range suggestions {
		if strings.HasPrefix(strings.ToLower(s.Value), strings.ToLower(prefix)) {
			filtered = append(filtered, s)
		}
	}

	return filtered
}
