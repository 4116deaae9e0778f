package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/NikitaCOEUR/tabctx/internal/config"
	"github.com/NikitaCOEUR/tabctx/internal/logger"
)

// Validate checks a definitions file against the schema, then semantically
func Validate(definitionsPath string, out io.Writer) error {
	path, err := resolveDefinitionsPath(definitionsPath)
	if err != nil {
		return err
	}
	out = output(out)

	_, _ = fmt.Fprintf(out, "Validating: %s\n\n", path)

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read definitions file: %w", err)
	}

	result, err := config.ValidateWithSchema(path, content)
	if err != nil {
		return err
	}

	if result.Valid {
		semantic, err := validateSemantics(path)
		if err != nil {
			return err
		}
		if !semantic.Valid {
			result.Valid = false
			result.Errors = append(result.Errors, semantic.Errors...)
		}
	}

	if result.Valid {
		_, _ = fmt.Fprintln(out, "✅ Definitions are valid!")
		return nil
	}

	_, _ = fmt.Fprintln(out, "❌ Definitions have errors:")
	for i, validationErr := range result.Errors {
		_, _ = fmt.Fprintf(out, "%d. [%s] %s\n", i+1, validationErr.Field, validationErr.Message)
	}
	_, _ = fmt.Fprintf(out, "\nFound %d error(s)\n", len(result.Errors))

	return fmt.Errorf("validation failed")
}

// validateSemantics checks completion ids against an engine carrying the
// handlers the definitions themselves provide
func validateSemantics(path string) (*config.ValidationResult, error) {
	defs, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	engine, err := newEngine(defs, logger.Discard(), nil)
	if err != nil {
		return &config.ValidationResult{
			Valid:  false,
			Errors: []config.ValidationError{{Field: "templates", Message: err.Error()}},
		}, nil
	}

	return config.ValidateDefinitions(defs, engine.Has), nil
}
