// Package container provides dependency injection for the application.
package container

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/reglet-dev/shaderbuild/internal/application/dto"
	apperrors "github.com/reglet-dev/shaderbuild/internal/application/errors"
	"github.com/reglet-dev/shaderbuild/internal/application/ports"
	"github.com/reglet-dev/shaderbuild/internal/application/services"
	"github.com/reglet-dev/shaderbuild/internal/domain/entities"
	"github.com/reglet-dev/shaderbuild/internal/domain/values"
	"github.com/reglet-dev/shaderbuild/internal/infrastructure/compiler"
	"github.com/reglet-dev/shaderbuild/internal/infrastructure/filesystem"
	"github.com/reglet-dev/shaderbuild/internal/infrastructure/output"
	"github.com/reglet-dev/shaderbuild/internal/infrastructure/system"
)

// Container holds all application dependencies.
type Container struct {
	layout           entities.ProjectLayout
	config           *system.Config
	configLoader     *system.ConfigLoader
	resolver         *services.ModuleResolver
	compileShaders   *services.CompileShadersUseCase
	formatterFactory ports.OutputFormatterFactory
	logger           *slog.Logger
	compileOptions   dto.CompileOptions
	configPath       string
}

// Options configure the container. Zero values fall back to the project
// config file, then to the conventional defaults.
type Options struct {
	Logger *slog.Logger
	// Stdout and Stderr receive the compiler's output streams.
	Stdout io.Writer
	Stderr io.Writer
	// CheckExitStatus overrides the project setting when non-nil.
	CheckExitStatus *bool
	// RootDir is the project root; empty means the working directory.
	RootDir string
	// ConfigPath is the project config file; empty means RootDir/shaderbuild.yaml.
	ConfigPath   string
	CompilerPath string
	Platform     string
	// HostOS is the GOOS used for platform detection; empty means runtime.GOOS.
	HostOS string
}

// New creates a new dependency injection container.
func New(opts Options) (*Container, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.RootDir == "" {
		opts.RootDir = "."
	}
	if opts.HostOS == "" {
		opts.HostOS = runtime.GOOS
	}

	configLoader, err := system.NewConfigLoader()
	if err != nil {
		return nil, apperrors.NewConfigurationError("config", "failed to initialise config loader", err)
	}

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = filepath.Join(opts.RootDir, system.ProjectFileName)
	}

	cfg, err := configLoader.Load(configPath)
	if err != nil {
		return nil, apperrors.NewConfigurationError("config", "failed to load project config", err)
	}

	layout, err := entities.NewProjectLayout(opts.RootDir, cfg.BuildDir, cfg.ResourcesDir)
	if err != nil {
		return nil, apperrors.NewConfigurationError("root", "invalid project root", err)
	}

	compileOptions, err := resolveCompileOptions(opts, cfg, layout)
	if err != nil {
		return nil, err
	}

	opts.Logger.Debug("project configuration",
		"root", layout.RootDir,
		"config", configPath,
		"build_dir", layout.BuildDir,
		"resources_dir", layout.ResourcesDir,
		"compiler_override", compileOptions.CompilerPath,
		"platform_override", compileOptions.Platform,
		"check_exit_status", compileOptions.CheckExitStatus)

	// Initialize adapters
	catalog := filesystem.NewModuleCatalog()
	paths := filesystem.NewPathChecker()
	shaderc := compiler.NewShaderc(compiler.Options{
		Stdout: opts.Stdout,
		Stderr: opts.Stderr,
		Logger: opts.Logger,
	})

	// Wire up use cases
	resolver := services.NewModuleResolver(catalog, layout.ShadersDir())
	compileModule := services.NewCompileModuleUseCase(layout, shaderc, paths, opts.HostOS, opts.Logger)
	compileShaders := services.NewCompileShadersUseCase(resolver, compileModule, opts.Logger)

	return &Container{
		layout:           layout,
		config:           cfg,
		configLoader:     configLoader,
		configPath:       configPath,
		resolver:         resolver,
		compileShaders:   compileShaders,
		formatterFactory: output.NewFormatterFactory(),
		compileOptions:   compileOptions,
		logger:           opts.Logger,
	}, nil
}

// resolveCompileOptions merges explicit options over the project config.
func resolveCompileOptions(opts Options, cfg *system.Config, layout entities.ProjectLayout) (dto.CompileOptions, error) {
	result := dto.CompileOptions{
		CheckExitStatus: cfg.ExitStatusChecked(),
	}
	if opts.CheckExitStatus != nil {
		result.CheckExitStatus = *opts.CheckExitStatus
	}

	compilerPath := opts.CompilerPath
	if compilerPath == "" {
		compilerPath = cfg.CompilerPath
	}
	if compilerPath != "" && !filepath.IsAbs(compilerPath) {
		compilerPath = filepath.Join(layout.RootDir, compilerPath)
	}
	result.CompilerPath = compilerPath

	var (
		platform values.PlatformID
		err      error
	)
	if opts.Platform != "" {
		platform, err = values.ParsePlatformID(opts.Platform)
	} else {
		platform, err = cfg.PlatformOverride()
	}
	if err != nil {
		return dto.CompileOptions{}, apperrors.NewConfigurationError("platform", "invalid platform override", err)
	}
	result.Platform = platform

	return result, nil
}

// CompileShadersUseCase returns the compile use case.
func (c *Container) CompileShadersUseCase() *services.CompileShadersUseCase {
	return c.compileShaders
}

// ModuleResolver returns the module resolver.
func (c *Container) ModuleResolver() *services.ModuleResolver {
	return c.resolver
}

// FormatterFactory returns the report formatter factory.
func (c *Container) FormatterFactory() ports.OutputFormatterFactory {
	return c.formatterFactory
}

// CompileOptions returns the compile options resolved from explicit
// options and the project config. Callers fill in per-run fields.
func (c *Container) CompileOptions() dto.CompileOptions {
	return c.compileOptions
}

// Timeout returns the project's configured run timeout, zero when disabled.
func (c *Container) Timeout() time.Duration {
	return c.config.Timeout()
}

// Layout returns the project layout.
func (c *Container) Layout() entities.ProjectLayout {
	return c.layout
}

// Config returns the project configuration.
func (c *Container) Config() *system.Config {
	return c.config
}

// ConfigLoader returns the project config loader.
func (c *Container) ConfigLoader() *system.ConfigLoader {
	return c.configLoader
}

// ConfigPath returns the project config file path, which may not exist.
func (c *Container) ConfigPath() string {
	return c.configPath
}

// Logger returns the configured logger.
func (c *Container) Logger() *slog.Logger {
	return c.logger
}

// ProjectConfigExists reports whether the project config file is on disk.
func (c *Container) ProjectConfigExists() bool {
	_, err := os.Stat(c.configPath)
	return err == nil
}
