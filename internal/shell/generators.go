// Package shell generates the shell glue that routes tab completion for
// defined commands through "tabctx complete".
package shell

import (
	"strings"
)

const (
	shellBash = "bash"
	shellZsh  = "zsh"
)

// CodeGenerator generates shell-specific completion code
type CodeGenerator interface {
	// GenerateCompletionFunction generates completion code covering the given commands
	GenerateCompletionFunction(commands []string) []string
	// Name returns the shell name (bash, zsh, etc.)
	Name() string
}

// scriptGenerator fills one embedded script with the command list
type scriptGenerator struct {
	shell  string
	script string
}

func (g *scriptGenerator) Name() string {
	return g.shell
}

// GenerateCompletionFunction returns the script bound to every command, or
// nothing when there are no commands.
func (g *scriptGenerator) GenerateCompletionFunction(commands []string) []string {
	if len(commands) == 0 {
		return nil
	}
	filled := strings.ReplaceAll(g.script, commandsPlaceholder, strings.Join(commands, " "))
	return strings.Split(strings.TrimSuffix(filled, "\n"), "\n")
}

// multiGenerator concatenates the output of several generators
type multiGenerator []CodeGenerator

func (m multiGenerator) Name() string {
	return "multi"
}

func (m multiGenerator) GenerateCompletionFunction(commands []string) []string {
	var lines []string
	for _, gen := range m {
		lines = append(lines, gen.GenerateCompletionFunction(commands)...)
	}
	return lines
}

// NewCompletionGenerator creates the code generator for a shell type.
// Any other value yields code for both bash and zsh.
func NewCompletionGenerator(shell string) CodeGenerator {
	bash := &scriptGenerator{shell: shellBash, script: bashTemplate}
	zsh := &scriptGenerator{shell: shellZsh, script: zshTemplate}

	switch shell {
	case shellBash:
		return bash
	case shellZsh:
		return zsh
	default:
		return multiGenerator{bash, zsh}
	}
}
