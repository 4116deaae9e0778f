package cli

import (
	"fmt"
	"io"

	"github.com/NikitaCOEUR/tabctx/internal/describe"
)

// DescribeParams contains parameters for the Describe command
type DescribeParams struct {
	DefinitionsPath string
	LogLevel        string
	Out             io.Writer
}

// Describe prints the commands, parameters and completion sources of a definitions file
func Describe(params DescribeParams) error {
	path, err := resolveDefinitionsPath(params.DefinitionsPath)
	if err != nil {
		return err
	}

	c, err := initializeComponents(path, params.LogLevel, "")
	if err != nil {
		return err
	}

	data := describe.Collect(describe.CollectParams{
		DefinitionsPath: path,
		Definitions:     c.defs,
		Commands:        c.commands,
		Engine:          c.engine,
	})

	_, err = fmt.Fprintln(output(params.Out), describe.Render(data))
	return err
}
