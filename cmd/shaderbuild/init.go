package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/reglet-dev/shaderbuild/internal/infrastructure/system"
)

// InitOptions are the answers that end up in shaderbuild.yaml.
type InitOptions struct {
	CompilerPath    string
	Platform        string
	CheckExitStatus bool
	NoInteractive   bool
	Force           bool
}

func newInitCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a shaderbuild.yaml for the project",
		Long: `Create shaderbuild.yaml in the project root. Without --no-interactive you
are asked for a compiler override, a target platform and whether a
non-zero compiler exit should fail the run. An existing file is kept
unless --force is given.`,
		Example: `  shaderbuild init
  shaderbuild init --no-interactive --root ../game`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, g)
		},
	}

	cmd.Flags().Bool("no-interactive", false, "Disable interactive prompts and write defaults")
	cmd.Flags().Bool("force", false, "Overwrite an existing shaderbuild.yaml")

	return cmd
}

func runInit(cmd *cobra.Command, g *globalOptions) error {
	opts := InitOptions{
		CompilerPath:    g.v.GetString("compiler"),
		Platform:        g.v.GetString("platform"),
		CheckExitStatus: true,
	}
	opts.NoInteractive, _ = cmd.Flags().GetBool("no-interactive")
	opts.Force, _ = cmd.Flags().GetBool("force")

	if !opts.NoInteractive {
		if err := promptInitOptions(&opts); err != nil {
			return err
		}
	}

	loader, err := system.NewConfigLoader()
	if err != nil {
		return err
	}

	cfg := system.DefaultConfig()
	cfg.CompilerPath = opts.CompilerPath
	cfg.Platform = opts.Platform
	cfg.CheckExitStatus = &opts.CheckExitStatus

	path := filepath.Join(g.v.GetString("root"), system.ProjectFileName)
	if err := loader.Save(path, cfg, opts.Force); err != nil {
		if errors.Is(err, system.ErrConfigExists) {
			return fmt.Errorf("%w (use --force to overwrite)", err)
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Project config saved to %s\n", path) //nolint:errcheck // Best-effort terminal output
	return nil
}

func promptInitOptions(opts *InitOptions) error {
	err := huh.NewInput().
		Title("Compiler path (empty: build/third_party/bgfx/shaderc)").
		Value(&opts.CompilerPath).
		Run()
	if err != nil {
		return err
	}

	err = huh.NewSelect[string]().
		Title("Target platform").
		Options(
			huh.NewOption("Host platform", ""),
			huh.NewOption("Linux (GLSL 440)", "linux"),
			huh.NewOption("macOS (Metal)", "osx"),
			huh.NewOption("Windows (GLSL 440)", "windows"),
		).
		Value(&opts.Platform).
		Run()
	if err != nil {
		return err
	}

	return huh.NewConfirm().
		Title("Fail as soon as shaderc exits non-zero?").
		Value(&opts.CheckExitStatus).
		Run()
}
