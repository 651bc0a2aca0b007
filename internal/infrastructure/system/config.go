// Package system provides infrastructure for project-level configuration.
// This covers loading and writing the shaderbuild.yaml file at the root of
// a shader project.
package system

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/reglet-dev/shaderbuild/internal/domain/entities"
	"github.com/reglet-dev/shaderbuild/internal/domain/values"
)

// ProjectFileName is the name of the project configuration file.
const ProjectFileName = "shaderbuild.yaml"

// ErrConfigExists is returned by Save when it would overwrite a file.
var ErrConfigExists = errors.New("project config already exists")

//go:embed schema/shaderbuild.schema.json
var configSchema []byte

// Config represents the project configuration file (shaderbuild.yaml).
type Config struct {
	// CheckExitStatus is nil when the file leaves it unset
	CheckExitStatus *bool  `yaml:"check_exit_status,omitempty"`
	BuildDir        string `yaml:"build_dir,omitempty"`
	ResourcesDir    string `yaml:"resources_dir,omitempty"`
	CompilerPath    string `yaml:"compiler_path,omitempty"`
	Platform        string `yaml:"platform,omitempty"`
	TimeoutSeconds  int    `yaml:"timeout_seconds,omitempty"`
}

// DefaultConfig returns a Config with the conventional project layout.
// This is used when no project config file exists.
func DefaultConfig() *Config {
	check := true
	return &Config{
		BuildDir:        entities.DefaultBuildDir,
		ResourcesDir:    entities.DefaultResourcesDir,
		CheckExitStatus: &check,
		TimeoutSeconds:  0, // 0 means no timeout
	}
}

// ExitStatusChecked reports whether a non-zero compiler exit fails the run.
// Defaults to true.
func (c *Config) ExitStatusChecked() bool {
	return c.CheckExitStatus == nil || *c.CheckExitStatus
}

// Timeout returns the configured per-run timeout, zero when disabled.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// PlatformOverride returns the configured target platform, zero when unset.
func (c *Config) PlatformOverride() (values.PlatformID, error) {
	if c.Platform == "" {
		return "", nil
	}
	return values.ParsePlatformID(c.Platform)
}

// ConfigLoader loads and writes project configuration.
type ConfigLoader struct {
	schema *jsonschema.Schema
}

// NewConfigLoader creates a new project config loader.
func NewConfigLoader() (*ConfigLoader, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource("shaderbuild.schema.json", bytes.NewReader(configSchema)); err != nil {
		return nil, fmt.Errorf("failed to add config schema resource: %w", err)
	}

	schema, err := compiler.Compile("shaderbuild.schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile config schema: %w", err)
	}

	return &ConfigLoader{schema: schema}, nil
}

// Load loads the project configuration from the specified path.
// If the file does not exist, returns DefaultConfig().
// Fields left unset in the file keep their defaults.
func (l *ConfigLoader) Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}

	//nolint:gosec // G304: path is the project config file, validated to exist above
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project config: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return DefaultConfig(), nil
	}

	if err := l.validate(data); err != nil {
		return nil, fmt.Errorf("invalid project config %s: %w", path, err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse project config: %w", err)
	}

	return config, nil
}

// Save writes the configuration to path, refusing to replace an existing
// file unless overwrite is set.
func (l *ConfigLoader) Save(path string, config *Config, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s: %w", path, ErrConfigExists)
		}
	}

	data, err := yaml.MarshalWithOptions(config, yaml.Indent(2))
	if err != nil {
		return fmt.Errorf("failed to encode project config: %w", err)
	}

	if err := l.validate(data); err != nil {
		return fmt.Errorf("refusing to write invalid project config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write project config: %w", err)
	}
	return nil
}

func (l *ConfigLoader) validate(data []byte) error {
	raw, err := yaml.YAMLToJSON(data)
	if err != nil {
		return fmt.Errorf("failed to parse project config: %w", err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("failed to parse project config: %w", err)
	}

	if err := l.schema.Validate(doc); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return formatSchemaValidationError(validationErr)
		}
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// formatSchemaValidationError flattens a JSON Schema validation error into a readable message.
func formatSchemaValidationError(err *jsonschema.ValidationError) error {
	var messages []string

	var collect func(*jsonschema.ValidationError)
	collect = func(e *jsonschema.ValidationError) {
		if e.Message != "" && len(e.Causes) == 0 {
			location := e.InstanceLocation
			if location == "" {
				location = "(root)"
			}
			messages = append(messages, fmt.Sprintf("%s: %s", location, e.Message))
		}
		for _, cause := range e.Causes {
			collect(cause)
		}
	}
	collect(err)

	if len(messages) == 0 {
		return fmt.Errorf("validation failed")
	}

	return fmt.Errorf("config validation failed:\n    - %s", strings.Join(messages, "\n    - "))
}
