// Package services contains application use cases.
package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/reglet-dev/shaderbuild/internal/application/dto"
	apperrors "github.com/reglet-dev/shaderbuild/internal/application/errors"
	"github.com/reglet-dev/shaderbuild/internal/domain/execution"
	"github.com/reglet-dev/shaderbuild/internal/domain/values"
	"golang.org/x/sync/errgroup"
)

// CompileShadersUseCase orchestrates a compile run over one module or,
// in batch mode, every module on disk.
// This is a pure application layer component that depends only on ports.
type CompileShadersUseCase struct {
	resolver *ModuleResolver
	modules  *CompileModuleUseCase
	logger   *slog.Logger
}

// NewCompileShadersUseCase creates a new compile shaders use case.
func NewCompileShadersUseCase(
	resolver *ModuleResolver,
	modules *CompileModuleUseCase,
	logger *slog.Logger,
) *CompileShadersUseCase {
	if logger == nil {
		logger = slog.Default()
	}

	return &CompileShadersUseCase{
		resolver: resolver,
		modules:  modules,
		logger:   logger,
	}
}

// Execute runs the compile workflow.
//
// When modules were attempted, the response is returned alongside any
// error so callers can still render the report.
func (uc *CompileShadersUseCase) Execute(ctx context.Context, req dto.CompileRequest) (*dto.CompileResponse, error) {
	startTime := time.Now()

	modules, err := uc.selectModules(ctx, req)
	if err != nil {
		return nil, err
	}

	report := execution.NewCompileReport(req.Metadata.ToolVersion)
	report.DryRun = req.Options.DryRun

	uc.logger.Debug("compile run started",
		"run_id", report.RunID.String(),
		"modules", len(modules),
		"jobs", req.Options.Jobs,
		"dry_run", req.Options.DryRun)

	runErr := uc.compileModules(ctx, modules, req.Options, report)
	report.Finalize()

	uc.logger.Debug("compile run finished",
		"run_id", report.RunID.String(),
		"duration", report.Duration,
		"passed", report.Summary.PassedModules,
		"failed", report.Summary.FailedModules,
		"errors", report.Summary.ErrorModules)

	return &dto.CompileResponse{
		Report: report,
		Metadata: dto.ResponseMetadata{
			ProcessedAt: time.Now(),
			Duration:    time.Since(startTime),
		},
	}, runErr
}

func (uc *CompileShadersUseCase) selectModules(ctx context.Context, req dto.CompileRequest) ([]values.ModuleName, error) {
	if !req.All {
		module, err := uc.resolver.Resolve(ctx, req.Module)
		if err != nil {
			return nil, err
		}
		return []values.ModuleName{module}, nil
	}

	modules, err := uc.resolver.All(ctx)
	if err != nil {
		return nil, err
	}
	if len(modules) == 0 {
		return nil, apperrors.NewValidationError("shader_module", "no shader modules found")
	}
	return modules, nil
}

// compileModules runs the modules with at most opts.Jobs in flight. Each
// module is an independent run; errors are collected per module and
// joined in module order.
func (uc *CompileShadersUseCase) compileModules(
	ctx context.Context,
	modules []values.ModuleName,
	opts dto.CompileOptions,
	report *execution.CompileReport,
) error {
	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}

	var g errgroup.Group
	g.SetLimit(jobs)

	errs := make([]error, len(modules))
	for i, module := range modules {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}

			result, err := uc.modules.Compile(ctx, module, opts)
			result.Index = i
			report.AddModuleResult(result)
			errs[i] = err
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}
