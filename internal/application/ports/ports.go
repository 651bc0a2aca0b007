// Package ports defines interfaces for infrastructure dependencies.
// These are the "ports" in hexagonal architecture - abstractions that
// the application layer depends on but doesn't implement.
package ports

import (
	"context"
	"io"
	"time"

	"github.com/reglet-dev/shaderbuild/internal/application/dto"
	"github.com/reglet-dev/shaderbuild/internal/domain/entities"
	"github.com/reglet-dev/shaderbuild/internal/domain/execution"
)

// InvocationResult is what the compiler adapter reports back about one run.
type InvocationResult struct {
	// Diagnostics holds the tail of the compiler's standard error
	Diagnostics string
	ExitCode    int
	Duration    time.Duration
}

// ShaderCompiler runs the external shader compiler.
type ShaderCompiler interface {
	// Compile runs one invocation and blocks until the process exits.
	// A non-zero exit is reported in the result, not as an error; an error
	// means the process could not be run at all.
	Compile(ctx context.Context, inv entities.Invocation) (*InvocationResult, error)
}

// ModuleCatalog discovers shader modules on disk.
type ModuleCatalog interface {
	// ListModules returns the names of the subdirectories of shadersDir, sorted.
	ListModules(ctx context.Context, shadersDir string) ([]string, error)

	// DescribeModule lists the shader sources of one module.
	DescribeModule(ctx context.Context, shadersDir, name string) (*dto.ModuleInfo, error)
}

// PathChecker performs the filesystem checks of a compile run.
type PathChecker interface {
	// Exists reports whether a path exists.
	Exists(path string) bool

	// EnsureDir creates a directory if absent, reporting whether it did.
	EnsureDir(path string) (bool, error)
}

// OutputFormatter formats compile reports.
type OutputFormatter interface {
	Format(report *execution.CompileReport) error
}

// FormatterOptions contains options for formatters.
type FormatterOptions struct {
	Indent   bool
	NoColor  bool
	RootPath string
}

// OutputFormatterFactory creates formatters by name.
type OutputFormatterFactory interface {
	Create(format string, writer io.Writer, options FormatterOptions) (OutputFormatter, error)
	SupportedFormats() []string
}
