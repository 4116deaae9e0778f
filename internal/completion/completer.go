// Package completion resolves tab-completion requests against registered
// commands: it parses per-handler configuration, looks up already typed
// parameter values and runs completion handlers.
package completion

// Suggestion represents a single completion suggestion
type Suggestion struct {
	Value       string // The actual value to complete
	Description string // Optional description/help text
}

// Handler produces suggestions for the argument described by ctx.
// Handlers may call Value/ValueAt on ctx to read earlier arguments.
type Handler func(ctx *Context) ([]Suggestion, error)

// Result represents the result of a completion attempt
type Result struct {
	Suggestions []Suggestion
	Source      string // Which handler provided these suggestions
}

// suggestionsOf wraps plain strings as suggestions.
func suggestionsOf(items ...string) []Suggestion {
	out := make([]Suggestion, 0, len(items))
	for _, item := range items {
		out = append(out, Suggestion{Value: item})
	}
	return out
}
