// Package main provides the shaderbuild CLI, which compiles bgfx shader
// modules with the shaderc executable produced by the project build.
package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/reglet-dev/shaderbuild/internal/infrastructure/compiler"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the CLI with the given arguments and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	// Logs and parallel compiler processes write to the same streams.
	stdout = compiler.NewSyncWriter(stdout)
	stderr = compiler.NewSyncWriter(stderr)

	// Argument errors are reported before the root pre-run configures logging.
	setupLogging(stderr, false, false)

	rootCmd := newRootCmd(stdout, stderr)
	rootCmd.SetArgs(args)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("command failed", "error", err)
		return 1
	}
	return 0
}
