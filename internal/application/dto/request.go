// Package dto contains data transfer objects for application layer use cases.
package dto

import "github.com/reglet-dev/shaderbuild/internal/domain/values"

// CompileRequest encapsulates all inputs needed for a compile run.
type CompileRequest struct {
	// Module is the raw shader module argument. Empty selects the default module.
	Module   string
	Options  CompileOptions
	Metadata RequestMetadata
	// All compiles every module found under the shaders directory; Module is ignored.
	All bool
}

// CompileOptions controls how modules are compiled.
type CompileOptions struct {
	// Platform overrides host detection when set.
	Platform values.PlatformID

	// CompilerPath overrides the conventional compiler location when set.
	CompilerPath string

	// Jobs limits how many modules compile at once in a batch (<= 1 is sequential).
	Jobs int

	// CheckExitStatus turns a non-zero compiler exit into an error
	// instead of relying on the output existence check.
	CheckExitStatus bool

	// DryRun resolves and validates everything but runs nothing.
	DryRun bool
}

// RequestMetadata contains metadata for request tracking.
type RequestMetadata struct {
	// ToolVersion is recorded in the report
	ToolVersion string
}
