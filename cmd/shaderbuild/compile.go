package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/reglet-dev/shaderbuild/internal/application/dto"
	"github.com/reglet-dev/shaderbuild/internal/application/ports"
	"github.com/reglet-dev/shaderbuild/internal/domain/execution"
	"github.com/reglet-dev/shaderbuild/internal/infrastructure/container"
	"github.com/reglet-dev/shaderbuild/internal/version"
)

// successMessage is printed after a run without errors.
const successMessage = "Compilation completed without any errors"

type compileOptions struct {
	CommonOptions
	all             bool
	dryRun          bool
	checkExitStatus bool
}

func newCompileCmd(g *globalOptions) *cobra.Command {
	opts := &compileOptions{CommonOptions: DefaultCommonOptions()}

	cmd := &cobra.Command{
		Use:   "compile [shader_module]",
		Short: "Compile the vertex and fragment shaders of a module",
		Long: `Compile a shader module: resources/shaders/<module>/<module>.vs.sc and
<module>.fs.sc, using the varying.def.sc next to them.

The module name is case-insensitive and defaults to "core". It must name a
directory under resources/shaders. The compiler, the varying definitions
and both sources must exist before anything is compiled; both outputs must
exist afterwards.`,
		Example: `  shaderbuild compile
  shaderbuild compile sprite
  shaderbuild compile --all --jobs 4
  shaderbuild compile --dry-run --platform osx
  shaderbuild compile --all --format sarif -o shaders.sarif`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(_ *cobra.Command, args []string) error {
			if opts.all && len(args) > 0 {
				return fmt.Errorf("--all cannot be combined with a shader module argument")
			}
			return opts.ValidateFlags()
		},
		RunE: withContainer(g, func(ctx *CommandContext, cmd *cobra.Command, args []string) error {
			return runCompile(ctx, cmd, opts, args)
		}, opts.routeCompilerOutput),
	}

	opts.RegisterFlags(cmd)
	cmd.Flags().BoolVar(&opts.all, "all", false, "Compile every module under resources/shaders")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Resolve and check paths, log the compiler calls, run nothing")
	cmd.Flags().BoolVar(&opts.checkExitStatus, "check-exit-status", true,
		"Fail as soon as the compiler exits non-zero (false: rely on the output check only)")
	_ = g.v.BindPFlag("check_exit_status", cmd.Flags().Lookup("check-exit-status"))

	return cmd
}

// routeCompilerOutput keeps machine-readable reports on stdout clean by
// sending the compiler's own stdout to stderr.
func (opts *compileOptions) routeCompilerOutput(cmd *cobra.Command, o *container.Options) {
	if opts.Format != "table" && opts.writesReportToStdout() {
		o.Stdout = cmd.ErrOrStderr()
	}
}

func runCompile(cc *CommandContext, cmd *cobra.Command, opts *compileOptions, args []string) error {
	if !cmd.Flags().Changed("timeout") {
		opts.Timeout = cc.Container.Timeout()
	}
	ctx, cancel := opts.ApplyToContext(cc.Context)
	defer cancel()

	req := dto.CompileRequest{
		All:     opts.all,
		Options: cc.Container.CompileOptions(),
		Metadata: dto.RequestMetadata{
			ToolVersion: version.Get().Version,
		},
	}
	if len(args) > 0 {
		req.Module = args[0]
	}
	req.Options.Jobs = opts.Jobs
	req.Options.DryRun = opts.dryRun

	resp, runErr := cc.Container.CompileShadersUseCase().Execute(ctx, req)
	if resp == nil {
		return runErr
	}

	cc.Logger.Debug("compile run complete",
		"run_id", resp.Report.RunID.String(),
		"duration", resp.Metadata.Duration,
		"total_modules", resp.Report.Summary.TotalModules,
		"passed", resp.Report.Summary.PassedModules,
		"failed", resp.Report.Summary.FailedModules,
		"errors", resp.Report.Summary.ErrorModules)

	if err := writeReport(cc, cmd, opts, resp.Report); err != nil {
		return err
	}

	if runErr != nil {
		return runErr
	}

	if opts.Format == "table" || !opts.writesReportToStdout() {
		fmt.Fprintln(cmd.OutOrStdout(), successMessage) //nolint:errcheck // Best-effort terminal output
	}
	return nil
}

// writeReport renders the report. A single-module table run with nothing
// to report beyond success stays quiet, like the build scripts it replaces.
func writeReport(cc *CommandContext, cmd *cobra.Command, opts *compileOptions, report *execution.CompileReport) error {
	if opts.Format == "table" && opts.writesReportToStdout() && !opts.all && !opts.dryRun && !report.HasFailures() {
		return nil
	}

	var writer io.Writer = cmd.OutOrStdout()
	if opts.OutFile != "" {
		//nolint:gosec // G304: User-controlled output file path is intentional
		file, err := os.Create(opts.OutFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			_ = file.Close() // Best-effort cleanup
		}()
		writer = file
		cc.Logger.Info("writing output", "file", opts.OutFile, "format", opts.Format)
	}

	formatter, err := cc.Container.FormatterFactory().Create(opts.Format, writer, ports.FormatterOptions{
		Indent:   true,
		NoColor:  opts.NoColor || opts.OutFile != "",
		RootPath: cc.Container.Layout().RootDir,
	})
	if err != nil {
		return err
	}

	if err := formatter.Format(report); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	return nil
}
