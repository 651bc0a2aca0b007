package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/reglet-dev/shaderbuild/internal/application/dto"
	apperrors "github.com/reglet-dev/shaderbuild/internal/application/errors"
	"github.com/reglet-dev/shaderbuild/internal/application/ports"
	"github.com/reglet-dev/shaderbuild/internal/domain/entities"
	"github.com/reglet-dev/shaderbuild/internal/domain/execution"
	"github.com/reglet-dev/shaderbuild/internal/domain/values"
)

// CompileModuleUseCase compiles the vertex and fragment stages of one
// shader module.
type CompileModuleUseCase struct {
	layout   entities.ProjectLayout
	compiler ports.ShaderCompiler
	paths    ports.PathChecker
	logger   *slog.Logger
	hostOS   string
}

// NewCompileModuleUseCase creates a new compile module use case.
// hostOS is the GOOS value used when no platform override is given.
func NewCompileModuleUseCase(
	layout entities.ProjectLayout,
	compiler ports.ShaderCompiler,
	paths ports.PathChecker,
	hostOS string,
	logger *slog.Logger,
) *CompileModuleUseCase {
	if logger == nil {
		logger = slog.Default()
	}

	return &CompileModuleUseCase{
		layout:   layout,
		compiler: compiler,
		paths:    paths,
		hostOS:   hostOS,
		logger:   logger,
	}
}

// Compile runs the full pipeline for one module: resolve paths, check
// inputs, create the output directory, invoke the compiler for the vertex
// then the fragment stage, and check the outputs.
//
// The returned ModuleResult is populated as far as the run got, even when
// an error is returned. Nothing is rolled back on failure.
func (uc *CompileModuleUseCase) Compile(
	ctx context.Context,
	module values.ModuleName,
	opts dto.CompileOptions,
) (execution.ModuleResult, error) {
	start := time.Now()
	result := execution.ModuleResult{Module: module.String()}

	platform, err := uc.resolvePlatform(opts.Platform)
	if err != nil {
		return uc.finish(result, start, err)
	}
	profile := values.ProfileFor(platform)

	compiler := opts.CompilerPath
	if compiler == "" {
		compiler = uc.layout.CompilerPath(platform)
	}

	sources := entities.ResolveShaderPaths(uc.layout.ResourcesDir, module)
	outputs := entities.ResolveOutputPaths(sources, profile)

	result.Platform = platform
	result.Profile = profile
	result.Compiler = compiler
	result.Sources = sources
	result.Outputs = outputs

	if err := uc.checkInputs(compiler, sources); err != nil {
		return uc.finish(result, start, err)
	}

	invocations, err := uc.buildInvocations(compiler, sources, outputs, platform, profile)
	if err != nil {
		return uc.finish(result, start, err)
	}

	uc.logger.Info("resolved shader module",
		"os", platform,
		"module", module,
		"profile", profile,
		"compiler", compiler,
		"varyingdef", sources.VaryingDef,
		"vertex", sources.Vertex,
		"fragment", sources.Fragment,
		"vertex_output", outputs.Vertex,
		"fragment_output", outputs.Fragment)

	if opts.DryRun {
		for _, inv := range invocations {
			uc.logger.Info("dry run, not calling compiler", "command", inv.CommandLine())
			result.Stages = append(result.Stages, skippedStage(inv))
		}
		return uc.finish(result, start, nil)
	}

	uc.logger.Info("beginning shader compilation", "module", module)

	created, err := uc.paths.EnsureDir(outputs.Dir())
	if err != nil {
		return uc.finish(result, start, apperrors.NewConfigurationError("output", "failed to create output directory", err))
	}
	if created {
		uc.logger.Info("created output directory", "path", outputs.Dir())
	}
	result.CreatedDir = created

	// Vertex strictly before fragment.
	for i, inv := range invocations {
		stage, err := uc.runStage(ctx, module, inv, opts.CheckExitStatus)
		result.Stages = append(result.Stages, stage)
		if err != nil {
			for _, rest := range invocations[i+1:] {
				result.Stages = append(result.Stages, skippedStage(rest))
			}
			return uc.finish(result, start, err)
		}
	}

	if err := uc.checkOutputs(&result); err != nil {
		return uc.finish(result, start, err)
	}

	return uc.finish(result, start, nil)
}

func (uc *CompileModuleUseCase) resolvePlatform(override values.PlatformID) (values.PlatformID, error) {
	if !override.IsZero() {
		return override, nil
	}

	platform, err := values.DetectPlatform(uc.hostOS)
	if err != nil {
		return "", apperrors.NewConfigurationError("platform", "cannot classify host operating system", err)
	}
	return platform, nil
}

// checkInputs verifies, in order, the compiler, the varying definitions and
// both sources, failing on the first missing path.
func (uc *CompileModuleUseCase) checkInputs(compiler string, sources entities.ShaderPaths) error {
	required := []struct {
		path string
		role string
	}{
		{compiler, "shader compiler"},
		{sources.VaryingDef, "varying definitions"},
		{sources.Vertex, "vertex shader"},
		{sources.Fragment, "fragment shader"},
	}

	for _, r := range required {
		if !uc.paths.Exists(r.path) {
			return apperrors.NewPathNotFoundError(r.path, r.role)
		}
	}
	return nil
}

func (uc *CompileModuleUseCase) buildInvocations(
	compiler string,
	sources entities.ShaderPaths,
	outputs entities.OutputPaths,
	platform values.PlatformID,
	profile values.ShaderProfile,
) ([]entities.Invocation, error) {
	pairs := [][2]string{
		{sources.Vertex, outputs.Vertex},
		{sources.Fragment, outputs.Fragment},
	}

	invocations := make([]entities.Invocation, 0, len(pairs))
	for _, p := range pairs {
		inv, err := entities.NewInvocation(compiler, p[0], p[1], sources.VaryingDef, platform, profile)
		if err != nil {
			if errors.Is(err, values.ErrInvalidShader) {
				return nil, apperrors.NewValidationError("shader", err.Error())
			}
			return nil, err
		}
		invocations = append(invocations, inv)
	}
	return invocations, nil
}

func (uc *CompileModuleUseCase) runStage(
	ctx context.Context,
	module values.ModuleName,
	inv entities.Invocation,
	checkExitStatus bool,
) (execution.StageResult, error) {
	stage := execution.StageResult{
		Stage:       inv.Stage,
		Source:      inv.Source,
		Output:      inv.Output,
		CommandLine: inv.CommandLine(),
	}

	uc.logger.Info("compiling", "module", module, "stage", inv.Stage, "source", inv.Source)

	res, err := uc.compiler.Compile(ctx, inv)
	if err != nil {
		stage.Status = values.StatusError
		stage.ExitCode = -1
		return stage, apperrors.NewCompilationFailedError(module.String(), inv.Stage, -1, "", err)
	}

	stage.ExitCode = res.ExitCode
	stage.Diagnostics = res.Diagnostics
	stage.Duration = res.Duration

	if res.ExitCode == 0 {
		stage.Status = values.StatusPass
		return stage, nil
	}

	stage.Status = values.StatusFail
	if checkExitStatus {
		return stage, apperrors.NewCompilationFailedError(module.String(), inv.Stage, res.ExitCode, res.Diagnostics, nil)
	}

	uc.logger.Warn("shader compiler exited with non-zero status",
		"module", module,
		"stage", inv.Stage,
		"exit_code", res.ExitCode)
	return stage, nil
}

// checkOutputs verifies both compiled files now exist. A stage whose
// output is missing is downgraded to fail.
func (uc *CompileModuleUseCase) checkOutputs(result *execution.ModuleResult) error {
	var missing error
	for i := range result.Stages {
		st := &result.Stages[i]
		if uc.paths.Exists(st.Output) {
			continue
		}
		st.Status = st.Status.Worst(values.StatusFail)
		if missing == nil {
			missing = apperrors.NewPathNotFoundError(st.Output, string(st.Stage)+" output")
		}
	}
	return missing
}

func (uc *CompileModuleUseCase) finish(result execution.ModuleResult, start time.Time, err error) (execution.ModuleResult, error) {
	result.Duration = time.Since(start)
	result.Status = result.AggregateStatus()
	if err != nil {
		result.Message = err.Error()
		if result.Status == values.StatusPass || result.Status == values.StatusSkipped {
			result.Status = values.StatusError
		}
	}
	return result, err
}

func skippedStage(inv entities.Invocation) execution.StageResult {
	return execution.StageResult{
		Stage:       inv.Stage,
		Source:      inv.Source,
		Output:      inv.Output,
		CommandLine: inv.CommandLine(),
		Status:      values.StatusSkipped,
	}
}
