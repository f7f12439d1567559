/*
Package commands implements the CLI command structure for codetext. The
root command performs the conversion; a version subcommand prints build
information.
*/
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sonemaro/codetext/cmd/codetext/app"
	"github.com/sonemaro/codetext/internal/config"
	"github.com/sonemaro/codetext/internal/version"
)

// flags holds the raw command-line values before they are overlaid onto the
// loaded configuration.
type flags struct {
	input         string
	output        string
	outputType    string
	exclude       []string
	excludeHidden bool
	verbosity     int
	workers       int
	rateLimit     int
	bufferSize    int
	noProgress    bool
	noColor       bool
}

// NewRootCommand creates the root command for the application
func NewRootCommand() *cobra.Command {
	f := &flags{}

	rootCmd := &cobra.Command{
		Use:   "codetext --input <path-or-url> --output <path> [flags]",
		Short: "Flatten a codebase into a single text or Word document",
		Long: `codetext v` + version.Version + `
========================================

Walks a directory tree (local path or GitHub repository URL) and serializes
it into one flat artifact: a textual tree listing followed by the content of
every non-excluded file. Binary files get marker records; images can be
embedded when the output is a Word document.`,
		// main prints the returned error; cobra must not print it too.
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, f)
		},
	}

	rootCmd.Flags().StringVar(&f.input, "input", "",
		"input path (local directory or GitHub repository URL)")
	rootCmd.Flags().StringVar(&f.output, "output", "",
		"output file path")
	rootCmd.Flags().StringVar(&f.outputType, "output_type", config.OutputTypeTxt,
		"output file type (txt or docx)")
	rootCmd.Flags().StringArrayVar(&f.exclude, "exclude", nil,
		"exclusion patterns, comma-separated within one occurrence (repeatable)")
	rootCmd.Flags().BoolVar(&f.excludeHidden, "exclude_hidden", false,
		"exclude hidden files and directories")
	rootCmd.Flags().CountVarP(&f.verbosity, "verbose", "v",
		"verbose output (can be used multiple times)")
	rootCmd.Flags().IntVarP(&f.workers, "workers", "w", 1,
		"number of concurrent content readers")
	rootCmd.Flags().IntVarP(&f.rateLimit, "rate-limit", "r", 0,
		"rate limit for file reads (ops/sec, 0 = unlimited)")
	rootCmd.Flags().IntVarP(&f.bufferSize, "buffer-size", "b", config.DefaultBufferSize,
		"buffer size for file reading in bytes")
	rootCmd.Flags().BoolVar(&f.noProgress, "no-progress", false,
		"disable progress reporting")
	rootCmd.Flags().BoolVar(&f.noColor, "no-color", false,
		"disable colored output")

	rootCmd.MarkFlagRequired("input")
	rootCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// runConvert loads the environment configuration, overlays the flags that
// were set on the command line, and runs the conversion.
func runConvert(cmd *cobra.Command, f *flags) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	cfg.Input = f.input
	cfg.Output = f.output
	cfg.Exclude = append(cfg.Exclude, f.exclude...)

	if cmd.Flags().Changed("output_type") {
		cfg.OutputType = f.outputType
		cfg.MarkExplicit("output_type")
	}
	if cmd.Flags().Changed("exclude_hidden") {
		cfg.ExcludeHidden = f.excludeHidden
		cfg.MarkExplicit("exclude_hidden")
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = f.verbosity
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = f.workers
	}
	if cmd.Flags().Changed("rate-limit") {
		cfg.RateLimit = f.rateLimit
	}
	if cmd.Flags().Changed("buffer-size") {
		cfg.BufferSize = f.bufferSize
	}
	if cmd.Flags().Changed("no-progress") {
		cfg.NoProgress = f.noProgress
	}
	if cmd.Flags().Changed("no-color") {
		cfg.NoColor = f.noColor
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	application := app.New(&cfg)
	defer application.Shutdown()

	return application.Run()
}
