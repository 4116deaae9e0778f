package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/NikitaCOEUR/tabctx/internal/completion"
	"github.com/NikitaCOEUR/tabctx/internal/timing"
	"github.com/NikitaCOEUR/tabctx/internal/trace"
)

// CompleteParams contains parameters for the Complete command
type CompleteParams struct {
	DefinitionsPath string
	LogLevel        string
	CachePath       string   // Empty disables the @exec cache
	Words           []string // Command name followed by its arguments, the last one being completed
	Out             io.Writer
}

// Complete prints suggestions for the last word of a command line
func Complete(params CompleteParams) error {
	ctx := context.Background()
	defer trace.Region(ctx, "cli.Complete")()

	if len(params.Words) == 0 {
		return nil
	}

	timer := timing.NewTimer()

	c, err := initializeComponents(params.DefinitionsPath, params.LogLevel, params.CachePath)
	if err != nil {
		return err
	}
	timer.Mark("load")

	name := params.Words[0]
	cmd, ok := c.commands[name]
	if !ok {
		c.log.Debug().Str("command", name).Msg("Not a defined command, no completion")
		return nil
	}

	c.log.Debug().
		Str("command", name).
		Strs("words", params.Words).
		Msg("Received completion request")

	var result *completion.Result
	trace.WithRegion(ctx, "engine.CompleteCommand", func() {
		result, err = c.engine.CompleteCommand(cmd, currentIssuer(), params.Words[1:])
	})
	if err != nil {
		return fmt.Errorf("completion for %s failed: %w", name, err)
	}
	timer.Mark("complete")

	c.log.Debug().
		Int("suggestions_count", len(result.Suggestions)).
		Str("source", result.Source).
		Str("timing", timer.Summary()).
		Msg("Got completions")

	return writeSuggestions(output(params.Out), result.Suggestions)
}
