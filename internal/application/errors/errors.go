// Package apperrors defines application-level error types.
package apperrors

import (
	"fmt"
	"strings"

	"github.com/reglet-dev/shaderbuild/internal/domain/values"
)

// ValidationError indicates a module argument or shader path was rejected.
type ValidationError struct {
	Field   string   // Field that failed validation
	Message string   // Error message
	Details []string // Additional details
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s: %s (%s)", e.Field, e.Message, strings.Join(e.Details, "; "))
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string, details ...string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Details: details,
	}
}

// PathNotFoundError indicates a required input or output file is missing.
type PathNotFoundError struct {
	Path string // Missing path
	Role string // What the path was expected to be, e.g. "varying definitions"
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("path %s does not exist", e.Path)
}

// NewPathNotFoundError creates a new path-not-found error.
func NewPathNotFoundError(path, role string) *PathNotFoundError {
	return &PathNotFoundError{
		Path: path,
		Role: role,
	}
}

// CompilationFailedError indicates the shader compiler exited non-zero.
type CompilationFailedError struct {
	Cause       error
	Module      string
	Stage       values.Stage
	Diagnostics string
	ExitCode    int
}

func (e *CompilationFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("compilation failed for module %s (%s stage): %v", e.Module, e.Stage, e.Cause)
	}
	return fmt.Sprintf("compilation failed for module %s (%s stage): exit status %d", e.Module, e.Stage, e.ExitCode)
}

func (e *CompilationFailedError) Unwrap() error {
	return e.Cause
}

// NewCompilationFailedError creates a new compilation error.
func NewCompilationFailedError(module string, stage values.Stage, exitCode int, diagnostics string, cause error) *CompilationFailedError {
	return &CompilationFailedError{
		Module:      module,
		Stage:       stage,
		ExitCode:    exitCode,
		Diagnostics: diagnostics,
		Cause:       cause,
	}
}

// ConfigurationError indicates a config file or environment setup issue.
type ConfigurationError struct {
	Cause   error
	Aspect  string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error (%s): %s: %v", e.Aspect, e.Message, e.Cause)
	}
	return fmt.Sprintf("configuration error (%s): %s", e.Aspect, e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// NewConfigurationError creates a new configuration error.
func NewConfigurationError(aspect, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		Aspect:  aspect,
		Message: message,
		Cause:   cause,
	}
}
