package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/NikitaCOEUR/tabctx/internal/completion"
)

// ValidationError represents a validation error with details
type ValidationError struct {
	Field   string
	Message string
}

// ValidationResult contains the results of definitions validation
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

func (r *ValidationResult) add(field, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message})
}

// Validate loads a definitions file and checks it. knownHandler reports
// whether a completion handler id is registered; nil skips that check.
func Validate(path string, knownHandler func(id string) bool) (*ValidationResult, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("definitions file not found: %s", path)
	}

	if !slices.Contains(SupportedExtensions, strings.ToLower(filepath.Ext(path))) {
		return nil, fmt.Errorf("unsupported definitions format: %s", filepath.Ext(path))
	}

	defs, err := Load(path)
	if err != nil {
		result := &ValidationResult{Valid: true, Errors: []ValidationError{}}
		result.add("syntax", fmt.Sprintf("Failed to parse definitions: %v", err))
		return result, nil
	}

	return ValidateDefinitions(defs, knownHandler), nil
}

// ValidateDefinitions checks parameter tables and completion references.
func ValidateDefinitions(defs *Definitions, knownHandler func(id string) bool) *ValidationResult {
	result := &ValidationResult{
		Valid:  true,
		Errors: []ValidationError{},
	}

	names := make([]string, 0, len(defs.Commands))
	for name := range defs.Commands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		def := defs.Commands[name]
		seen := make(map[string]bool)

		for i, p := range def.Parameters {
			field := fmt.Sprintf("commands/%s/parameters/%d", name, i)

			if strings.TrimSpace(p.Name) == "" {
				result.add(field, "Parameter name is empty")
			} else if seen[p.Name] {
				result.add(field, fmt.Sprintf("Duplicate parameter name '%s'", p.Name))
			}
			seen[p.Name] = true

			typ := strings.ToLower(p.Type)
			if _, ok := ParameterTypes[typ]; !ok {
				result.add(field, fmt.Sprintf("Unknown parameter type '%s'", p.Type))
			}
			if typ == "strings" && i != len(def.Parameters)-1 {
				result.add(field, "A 'strings' parameter must be the last one")
			}
			if typ == "issuer" && p.Completion != "" {
				result.add(field, "Issuer parameters take no completion")
			}

			validateCompletion(result, defs, field, p.Completion, knownHandler)
		}
	}

	return result
}

// validateCompletion checks that a completion spec points at something that exists
func validateCompletion(result *ValidationResult, defs *Definitions, field, spec string, knownHandler func(string) bool) {
	if spec == "" {
		return
	}

	id, config := completion.ParseSpec(spec)
	if id == "" {
		return
	}
	if knownHandler != nil && !knownHandler(id) {
		result.add(field, fmt.Sprintf("Unknown completion handler '%s'", id))
		return
	}

	ctx := completion.NewContext(completion.ContextParams{Config: config})
	name, _ := ctx.PrimaryConfig()
	switch id {
	case "@template":
		if _, ok := defs.Templates[name]; !ok {
			result.add(field, fmt.Sprintf("Undefined template '%s'", name))
		}
	case "@values":
		if _, ok := defs.Values[name]; !ok {
			result.add(field, fmt.Sprintf("Undefined value list '%s'", name))
		}
	case "@exec":
		if argv, ok := defs.Exec[name]; !ok || len(argv) == 0 {
			result.add(field, fmt.Sprintf("Undefined command '%s'", name))
		}
	}
}
