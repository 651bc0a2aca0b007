// Package compiler runs the external bgfx shaderc executable.
package compiler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/reglet-dev/shaderbuild/internal/application/ports"
	"github.com/reglet-dev/shaderbuild/internal/domain/entities"
)

// DefaultDiagnosticsLimit caps how much compiler stderr is kept for reports.
const DefaultDiagnosticsLimit = 64 * 1024

// waitDelay bounds how long a killed compiler may hold its output pipes open.
const waitDelay = 5 * time.Second

// Options configure the Shaderc adapter.
type Options struct {
	// Stdout and Stderr receive the compiler's output streams. Nil means
	// the process's own streams. Both are wrapped in a SyncWriter since
	// concurrent compiles share them.
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	// DiagnosticsLimit bounds the stderr captured into results (0 = default).
	DiagnosticsLimit int
}

// Shaderc implements ports.ShaderCompiler with os/exec.
type Shaderc struct {
	stdout           io.Writer
	stderr           io.Writer
	logger           *slog.Logger
	diagnosticsLimit int
}

// NewShaderc creates a new compiler adapter.
func NewShaderc(opts Options) *Shaderc {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.DiagnosticsLimit <= 0 {
		opts.DiagnosticsLimit = DefaultDiagnosticsLimit
	}

	return &Shaderc{
		stdout:           NewSyncWriter(opts.Stdout),
		stderr:           NewSyncWriter(opts.Stderr),
		logger:           opts.Logger,
		diagnosticsLimit: opts.DiagnosticsLimit,
	}
}

// Compile runs one invocation and waits for the process to exit.
// The process is killed if ctx is cancelled.
func (s *Shaderc) Compile(ctx context.Context, inv entities.Invocation) (*ports.InvocationResult, error) {
	s.logger.InfoContext(ctx, "calling shader compiler", "command", inv.CommandLine())

	//nolint:gosec // G204: the compiler path comes from the project layout or explicit config
	cmd := exec.CommandContext(ctx, inv.Compiler, inv.Args()...)
	cmd.WaitDelay = waitDelay

	diagnostics := NewBoundedBuffer(s.diagnosticsLimit)
	cmd.Stdout = s.stdout
	cmd.Stderr = io.MultiWriter(s.stderr, diagnostics)

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	if diagnostics.Truncated {
		s.logger.WarnContext(ctx, "compiler diagnostics truncated",
			"stage", inv.Stage,
			"limit_bytes", s.diagnosticsLimit)
	}

	s.logger.DebugContext(ctx, "shader compiler exited",
		"stage", inv.Stage,
		"source", inv.Source,
		"duration", duration,
		"error", err)

	result := &ports.InvocationResult{
		Diagnostics: diagnostics.String(),
		Duration:    duration,
	}
	if err == nil {
		return result, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("shader compiler interrupted: %w", ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}

	return nil, fmt.Errorf("failed to run shader compiler %s: %w", inv.Compiler, err)
}
