package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// CommonOptions contains flags shared by commands that render reports.
type CommonOptions struct {
	// Output
	Format  string
	OutFile string

	// Execution
	Timeout time.Duration
	Jobs    int

	NoColor bool
}

// DefaultCommonOptions returns sensible defaults.
func DefaultCommonOptions() CommonOptions {
	return CommonOptions{
		Format: "table",
		Jobs:   1,
	}
}

// RegisterFlags adds common flags to a cobra command.
func (opts *CommonOptions) RegisterFlags(cmd *cobra.Command) {
	// Execution
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", opts.Timeout,
		"Timeout for the whole run (0 to disable, default from shaderbuild.yaml)")
	cmd.Flags().IntVarP(&opts.Jobs, "jobs", "j", opts.Jobs,
		"Modules to compile concurrently with --all")

	// Output
	cmd.Flags().StringVar(&opts.Format, "format", opts.Format,
		"Output format: table, json, yaml, junit, sarif")
	cmd.Flags().StringVarP(&opts.OutFile, "output", "o", opts.OutFile,
		"Output file path (default: stdout)")
	cmd.Flags().BoolVar(&opts.NoColor, "no-color", opts.NoColor,
		"Disable colored table output")
}

// ApplyToContext applies timeout to context.
// Returns new context and cancel function.
func (opts *CommonOptions) ApplyToContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if opts.Timeout > 0 {
		return context.WithTimeout(ctx, opts.Timeout)
	}
	// No timeout - return no-op cancel
	return ctx, func() {}
}

// ValidateFlags validates common options.
func (opts *CommonOptions) ValidateFlags() error {
	validFormats := map[string]bool{
		"table": true, "json": true, "yaml": true,
		"junit": true, "sarif": true,
	}
	if !validFormats[opts.Format] {
		return fmt.Errorf("invalid format: %s (valid: table, json, yaml, junit, sarif)", opts.Format)
	}

	if opts.Jobs < 1 {
		return fmt.Errorf("--jobs must be at least 1, got %d", opts.Jobs)
	}

	if opts.Timeout < 0 {
		return fmt.Errorf("--timeout must not be negative")
	}

	return nil
}

// writesReportToStdout reports whether the rendered report shares stdout
// with other output.
func (opts *CommonOptions) writesReportToStdout() bool {
	return opts.OutFile == ""
}
