// Package main is the entry point for the tabctx CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tabcli "github.com/NikitaCOEUR/tabctx/internal/cli"
	"github.com/NikitaCOEUR/tabctx/internal/trace"
	"github.com/NikitaCOEUR/tabctx/pkg/version"
	"github.com/urfave/cli/v3"
)

func main() {
	stopTrace := trace.Init()

	err := newApp().Run(context.Background(), os.Args)
	stopTrace()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newApp builds the command tree
func newApp() *cli.Command {
	cachePath := tabcli.DefaultCachePath()

	return &cli.Command{
		Name:    "tabctx",
		Usage:   "Typed tab completion driven by command definitions",
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error); defaults to the definitions file, then warn",
				Sources: cli.EnvVars("TABCTX_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Definitions file (defaults to $XDG_CONFIG_HOME/tabctx/commands.yml)",
				Sources: cli.EnvVars("TABCTX_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:            "complete",
				Usage:           "Print suggestions for the last word of a command line",
				ArgsUsage:       "-- <command> [args...] <word>",
				SkipFlagParsing: true, // Words are passed through untouched
				Action: func(_ context.Context, cmd *cli.Command) error {
					return tabcli.Complete(tabcli.CompleteParams{
						DefinitionsPath: cmd.String("file"),
						LogLevel:        cmd.String("log-level"),
						CachePath:       cachePath,
						Words:           completionWords(cmd.Args().Slice()),
						Out:             os.Stdout,
					})
				},
			},
			{
				Name:  "describe",
				Usage: "Show defined commands, parameters and completion sources",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return tabcli.Describe(tabcli.DescribeParams{
						DefinitionsPath: cmd.String("file"),
						LogLevel:        cmd.String("log-level"),
						Out:             os.Stdout,
					})
				},
			},
			{
				Name:      "validate",
				Usage:     "Validate a definitions file",
				ArgsUsage: "[definitions-file]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					path := cmd.String("file")
					if cmd.Args().Len() > 0 {
						path = cmd.Args().Get(0)
					}
					return tabcli.Validate(path, os.Stdout)
				},
			},
			{
				Name:      "schema",
				Usage:     "Display or export the JSON Schema for definitions files",
				ArgsUsage: "[output-file]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (prints to stdout if not specified)",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					outputPath := cmd.String("output")
					if outputPath == "" && cmd.Args().Len() > 0 {
						outputPath = cmd.Args().Get(0)
					}
					return tabcli.Schema(outputPath, os.Stdout)
				},
			},
			{
				Name:  "hook",
				Usage: "Print shell code routing completion of defined commands through tabctx",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "shell",
						Value:   "auto",
						Usage:   "Shell type: bash, zsh, all or auto",
						Sources: cli.EnvVars("TABCTX_SHELL"),
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return tabcli.Hook(tabcli.HookParams{
						DefinitionsPath: cmd.String("file"),
						LogLevel:        cmd.String("log-level"),
						Shell:           tabcli.DetectShell(cmd.String("shell")),
						Out:             os.Stdout,
					})
				},
			},
			{
				Name:  "clean",
				Usage: "Remove cached @exec output",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "all",
						Aliases: []string{"a"},
						Usage:   "Clear every entry instead of only expired ones",
					},
					&cli.DurationFlag{
						Name:  "max-age",
						Value: 24 * time.Hour,
						Usage: "Remove entries older than this",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return tabcli.Clean(tabcli.CleanParams{
						CachePath: cachePath,
						LogLevel:  cmd.String("log-level"),
						All:       cmd.Bool("all"),
						MaxAge:    cmd.Duration("max-age"),
						Out:       os.Stdout,
					})
				},
			},
		},
	}
}

// completionWords drops the "--" separating tabctx's own arguments from the
// completed command line
func completionWords(args []string) []string {
	if len(args) > 0 && args[0] == "--" {
		return args[1:]
	}
	return args
}
