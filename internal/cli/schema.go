package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/NikitaCOEUR/tabctx/internal/config"
)

// Schema prints the JSON Schema for definitions files, or writes it to outputPath
func Schema(outputPath string, out io.Writer) error {
	schemaJSON := config.GetSchemaJSON()
	out = output(out)

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(schemaJSON), 0644); err != nil {
			return fmt.Errorf("failed to write schema to %s: %w", outputPath, err)
		}
		_, err := fmt.Fprintf(out, "JSON Schema written to: %s\n", outputPath)
		return err
	}

	_, err := fmt.Fprintln(out, schemaJSON)
	return err
}
