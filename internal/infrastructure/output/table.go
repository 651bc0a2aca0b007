package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/reglet-dev/shaderbuild/internal/domain/execution"
	"github.com/reglet-dev/shaderbuild/internal/domain/values"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

// TableFormatter formats compile reports as human-readable text.
type TableFormatter struct {
	writer      io.Writer
	EnableColor bool
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{
		writer:      w,
		EnableColor: true, // Default to true, caller can disable
	}
}

// colorize returns the string wrapped in ANSI color codes if enabled.
func (f *TableFormatter) colorize(text, code string) string {
	if !f.EnableColor {
		return text
	}
	return code + text + colorReset
}

// Format writes the report as a table.
//
//nolint:errcheck // Table formatting errors are non-critical (best-effort terminal output)
func (f *TableFormatter) Format(report *execution.CompileReport) error {
	rule := f.colorize(strings.Repeat("─", 80), colorGray)

	fmt.Fprintln(f.writer, rule)
	fmt.Fprintf(f.writer, "Run: %s\n", report.RunID)
	fmt.Fprintf(f.writer, "Started: %s\n", report.StartTime.Format(time.RFC3339))
	fmt.Fprintf(f.writer, "Duration: %s\n", report.Duration.Round(time.Millisecond))
	if report.DryRun {
		fmt.Fprintln(f.writer, f.colorize("Dry run: compiler not called", colorYellow))
	}
	fmt.Fprintln(f.writer)

	if len(report.Modules) == 0 {
		fmt.Fprintln(f.writer, "No shader modules compiled.")
		return nil
	}

	fmt.Fprintln(f.writer, f.colorize("Modules:", colorBold))
	fmt.Fprintln(f.writer, rule)

	for _, mod := range report.Modules {
		f.formatModule(mod)
	}

	fmt.Fprintln(f.writer, rule)
	fmt.Fprintln(f.writer)

	f.formatSummary(report.Summary)

	return nil
}

// formatModule formats a single module.
//
//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) formatModule(mod execution.ModuleResult) {
	symbol, color := f.getStatusInfo(mod.Status)
	fmt.Fprintf(f.writer, "%s %s\n", f.colorize(symbol, color), f.colorize(mod.Module, color))

	if mod.Platform != "" {
		fmt.Fprintf(f.writer, "  Platform: %s (profile %s)\n", mod.Platform, mod.Profile)
	}
	if mod.Compiler != "" {
		fmt.Fprintf(f.writer, "  Compiler: %s\n", mod.Compiler)
	}
	if mod.Sources.VaryingDef != "" {
		fmt.Fprintf(f.writer, "  Varying: %s\n", mod.Sources.VaryingDef)
	}

	fmt.Fprintf(f.writer, "  Status: %s\n", f.colorize(strings.ToUpper(string(mod.Status)), color))
	if mod.Message != "" {
		fmt.Fprintf(f.writer, "  Message: %s\n", mod.Message)
	}
	fmt.Fprintf(f.writer, "  Duration: %s\n", mod.Duration.Round(time.Millisecond))

	if len(mod.Stages) > 0 {
		fmt.Fprintln(f.writer, "  Stages:")
		for _, st := range mod.Stages {
			f.formatStage(st)
		}
	}

	fmt.Fprintln(f.writer)
}

// formatStage formats a single compiler invocation.
//
//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) formatStage(st execution.StageResult) {
	symbol, color := f.getStatusInfo(st.Status)
	stage := f.colorize(string(st.Stage), colorCyan)

	fmt.Fprintf(f.writer, "    %s %s: %s -> %s\n", f.colorize(symbol, color), stage, st.Source, st.Output)

	if st.Status == values.StatusFail || st.Status == values.StatusError {
		fmt.Fprintf(f.writer, "       %s: %d\n", f.colorize("Exit code", colorRed), st.ExitCode)
		if st.Diagnostics != "" {
			for _, line := range strings.Split(strings.TrimRight(st.Diagnostics, "\n"), "\n") {
				fmt.Fprintf(f.writer, "       %s\n", line)
			}
		}
	}
}

// formatSummary formats the summary statistics.
//
//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) formatSummary(summary execution.ReportSummary) {
	fmt.Fprintln(f.writer, f.colorize("Summary:", colorBold))
	fmt.Fprintln(f.writer, f.colorize(strings.Repeat("─", 80), colorGray))

	fmt.Fprintf(f.writer, "Modules: %d total\n", summary.TotalModules)
	fmt.Fprintf(f.writer, "  %s Passed:   %d\n", f.colorize("✓", colorGreen), summary.PassedModules)
	fmt.Fprintf(f.writer, "  %s Failed:   %d\n", f.colorize("✗", colorRed), summary.FailedModules)
	fmt.Fprintf(f.writer, "  %s Errors:   %d\n", f.colorize("⚠", colorYellow), summary.ErrorModules)
	fmt.Fprintf(f.writer, "  %s Skipped:  %d\n", f.colorize("⊘", colorGray), summary.SkippedModules)
	fmt.Fprintln(f.writer)

	fmt.Fprintf(f.writer, "Stages:  %d total\n", summary.TotalStages)
	fmt.Fprintf(f.writer, "  %s Passed:   %d\n", f.colorize("✓", colorGreen), summary.PassedStages)
	fmt.Fprintf(f.writer, "  %s Failed:   %d\n", f.colorize("✗", colorRed), summary.FailedStages)

	fmt.Fprintln(f.writer, f.colorize(strings.Repeat("─", 80), colorGray))
}

// getStatusInfo returns a symbol and color for the given status.
func (f *TableFormatter) getStatusInfo(status values.Status) (string, string) {
	switch status {
	case values.StatusPass:
		return "✓", colorGreen
	case values.StatusFail:
		return "✗", colorRed
	case values.StatusError:
		return "⚠", colorYellow
	case values.StatusSkipped:
		return "⊘", colorGray
	default:
		return "?", colorReset
	}
}
