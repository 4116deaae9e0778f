package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/NikitaCOEUR/tabctx/internal/shell"
)

// HookParams contains parameters for the Hook command
type HookParams struct {
	DefinitionsPath string
	LogLevel        string
	Shell           string
	Out             io.Writer
}

// DetectShell resolves "auto" from the environment, defaulting to bash
func DetectShell(flag string) string {
	if flag != "" && flag != "auto" {
		return flag
	}
	if os.Getenv("ZSH_VERSION") != "" {
		return "zsh"
	}
	if os.Getenv("BASH_VERSION") != "" {
		return "bash"
	}
	if strings.Contains(filepath.Base(os.Getenv("SHELL")), "zsh") {
		return "zsh"
	}
	return "bash"
}

// Hook prints the shell code that binds tab completion of every defined command to tabctx
func Hook(params HookParams) error {
	c, err := initializeComponents(params.DefinitionsPath, params.LogLevel, "")
	if err != nil {
		return err
	}

	names := sortedCommandNames(c.commands)
	if len(names) == 0 {
		c.log.Warn().Msg("No commands defined, nothing to hook")
		return nil
	}

	gen := shell.NewCompletionGenerator(params.Shell)
	c.log.Debug().
		Str("shell", gen.Name()).
		Strs("commands", names).
		Msg("Generating completion hook")

	out := output(params.Out)
	for _, line := range gen.GenerateCompletionFunction(names) {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}
