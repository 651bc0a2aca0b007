package dto

import (
	"time"

	"github.com/reglet-dev/shaderbuild/internal/domain/execution"
)

// CompileResponse contains the result of a compile run.
type CompileResponse struct {
	// Report contains per-module and per-stage results
	Report *execution.CompileReport

	// Metadata contains response metadata
	Metadata ResponseMetadata
}

// ResponseMetadata contains metadata about the response.
type ResponseMetadata struct {
	// ProcessedAt is when the request was processed
	ProcessedAt time.Time

	// Duration is how long the request took
	Duration time.Duration
}

// ModuleInfo describes a shader module directory for listing.
type ModuleInfo struct {
	Name    string   `json:"name" yaml:"name"`
	Dir     string   `json:"dir" yaml:"dir"`
	Sources []string `json:"sources" yaml:"sources"`
	Missing []string `json:"missing,omitempty" yaml:"missing,omitempty"`
	// Ignored explains why the directory is not treated as a module.
	Ignored string `json:"ignored,omitempty" yaml:"ignored,omitempty"`
}

// Complete returns true if the module has every file a compile needs.
func (m ModuleInfo) Complete() bool {
	return m.Ignored == "" && len(m.Missing) == 0
}
