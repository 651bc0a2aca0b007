package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// envPrefix namespaces environment overrides, e.g. SHADERBUILD_COMPILER.
const envPrefix = "SHADERBUILD"

// globalOptions holds the persistent flags and the user-level configuration
// they are merged with.
type globalOptions struct {
	v       *viper.Viper
	cfgFile string
	verbose bool
	quiet   bool
}

// newRootCmd builds the command tree. Output streams are injected so tests
// can capture them.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	g := &globalOptions{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "shaderbuild",
		Short: "Compile bgfx shader modules with shaderc",
		Long: `shaderbuild locates the bgfx shaderc compiler built by the project, resolves
the vertex, fragment and varying-definition sources of a shader module by
convention, and compiles both stages for the host platform.

Sources are read from resources/shaders/<module>/ and compiled shaders are
written next to them under glsl/ (Linux, Windows) or metal/ (macOS).`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if g.verbose && g.quiet {
				return fmt.Errorf("--verbose and --quiet are mutually exclusive")
			}
			setupLogging(cmd.ErrOrStderr(), g.verbose, g.quiet)
			return g.initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&g.cfgFile, "config", "", "user config file (default is $HOME/.shaderbuild.yaml)")
	pf.String("root", ".", "project root directory")
	pf.String("compiler", "", "shaderc executable (default: <build>/third_party/bgfx/shaderc)")
	pf.String("platform", "", "target platform: linux, osx, windows (default: host)")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "enable verbose output")
	pf.BoolVarP(&g.quiet, "quiet", "q", false, "only log warnings and errors")

	for _, name := range []string{"root", "compiler", "platform"} {
		_ = g.v.BindPFlag(name, pf.Lookup(name))
	}

	rootCmd.AddCommand(
		newCompileCmd(g),
		newModulesCmd(g),
		newInitCmd(g),
		newVersionCmd(),
	)

	return rootCmd
}

// initConfig loads the user config file and environment overrides.
func (g *globalOptions) initConfig() error {
	if g.cfgFile != "" {
		g.v.SetConfigFile(g.cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			slog.Debug("no home directory, skipping user config", "error", err)
		} else {
			g.v.AddConfigPath(home)
		}
		g.v.SetConfigType("yaml")
		g.v.SetConfigName(".shaderbuild")
	}

	g.v.SetEnvPrefix(envPrefix)
	g.v.AutomaticEnv()

	if err := g.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if g.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		return nil
	}

	slog.Debug("using config file", "file", g.v.ConfigFileUsed())
	return nil
}

// checkExitStatus returns the user-level override, nil when unset.
func (g *globalOptions) checkExitStatus() *bool {
	if !g.v.IsSet("check_exit_status") {
		return nil
	}
	check := g.v.GetBool("check_exit_status")
	return &check
}

func setupLogging(w io.Writer, verbose, quiet bool) {
	level := slog.LevelInfo
	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelWarn
	}

	// Using TextHandler for CLI friendliness
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
