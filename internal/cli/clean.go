package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/NikitaCOEUR/tabctx/internal/cache"
	"github.com/NikitaCOEUR/tabctx/internal/logger"
)

// CleanParams holds parameters for the Clean function
type CleanParams struct {
	CachePath string
	LogLevel  string
	All       bool
	MaxAge    time.Duration // Entries older than this are removed unless All is set
	Out       io.Writer
}

// Clean removes cached @exec output
func Clean(params CleanParams) error {
	level := params.LogLevel
	if level == "" {
		level = "warn"
	}
	log := logger.New(level, os.Stderr)
	out := output(params.Out)

	c, err := cache.New(params.CachePath)
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	if params.All {
		cleared := c.Len()
		if err := c.Clear(); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		log.Info().Str("path", params.CachePath).Int("cleared", cleared).Msg("All cache entries cleared")
		_, err = fmt.Fprintf(out, "✓ All cache entries cleared (%d)\n", cleared)
		return err
	}

	removed, err := c.Prune(params.MaxAge)
	if err != nil {
		return fmt.Errorf("failed to prune cache: %w", err)
	}
	log.Info().
		Int("removed", removed).
		Int("remaining", c.Len()).
		Dur("max_age", params.MaxAge).
		Msg("Cache pruned")
	_, err = fmt.Fprintf(out, "✓ Removed %d cache entries older than %s, %d left\n", removed, params.MaxAge, c.Len())
	return err
}
