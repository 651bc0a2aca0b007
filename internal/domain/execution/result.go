// Package execution provides domain models for compile results.
package execution

import (
	"sort"
	"sync"
	"time"

	"github.com/reglet-dev/shaderbuild/internal/domain/entities"
	"github.com/reglet-dev/shaderbuild/internal/domain/values"
)

// CompileReport is the complete record of one tool run, covering one or
// more shader modules.
type CompileReport struct {
	StartTime    time.Time      `json:"start_time" yaml:"start_time"`
	EndTime      time.Time      `json:"end_time" yaml:"end_time"`
	ToolVersion  string         `json:"tool_version,omitempty" yaml:"tool_version,omitempty"`
	Modules      []ModuleResult `json:"modules" yaml:"modules"`
	Summary      ReportSummary  `json:"summary" yaml:"summary"`
	Duration     time.Duration  `json:"duration_ms" yaml:"duration_ms"`
	DryRun       bool           `json:"dry_run" yaml:"dry_run"`
	mu           sync.Mutex
	RunID        values.RunID `json:"run_id" yaml:"run_id"`
}

// ModuleResult is the outcome of compiling one shader module.
type ModuleResult struct {
	Module     string               `json:"module" yaml:"module"`
	Platform   values.PlatformID    `json:"platform" yaml:"platform"`
	Profile    values.ShaderProfile `json:"profile" yaml:"profile"`
	Compiler   string               `json:"compiler" yaml:"compiler"`
	Sources    entities.ShaderPaths `json:"sources" yaml:"sources"`
	Outputs    entities.OutputPaths `json:"outputs" yaml:"outputs"`
	Status     values.Status        `json:"status" yaml:"status"`
	Message    string               `json:"message,omitempty" yaml:"message,omitempty"`
	Stages     []StageResult        `json:"stages" yaml:"stages"`
	Index      int                  `json:"index" yaml:"index"`
	Duration   time.Duration        `json:"duration_ms" yaml:"duration_ms"`
	CreatedDir bool                 `json:"created_output_dir" yaml:"created_output_dir"`
}

// StageResult is the outcome of one compiler invocation.
type StageResult struct {
	Stage       values.Stage  `json:"stage" yaml:"stage"`
	Source      string        `json:"source" yaml:"source"`
	Output      string        `json:"output" yaml:"output"`
	CommandLine string        `json:"command_line" yaml:"command_line"`
	Status      values.Status `json:"status" yaml:"status"`
	Diagnostics string        `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	ExitCode    int           `json:"exit_code" yaml:"exit_code"`
	Duration    time.Duration `json:"duration_ms" yaml:"duration_ms"`
}

// ReportSummary provides aggregate statistics about the run.
type ReportSummary struct {
	TotalModules   int `json:"total_modules" yaml:"total_modules"`
	PassedModules  int `json:"passed_modules" yaml:"passed_modules"`
	FailedModules  int `json:"failed_modules" yaml:"failed_modules"`
	ErrorModules   int `json:"error_modules" yaml:"error_modules"`
	SkippedModules int `json:"skipped_modules" yaml:"skipped_modules"`
	TotalStages    int `json:"total_stages" yaml:"total_stages"`
	PassedStages   int `json:"passed_stages" yaml:"passed_stages"`
	FailedStages   int `json:"failed_stages" yaml:"failed_stages"`
}

// NewCompileReport creates a new report with a fresh run ID.
func NewCompileReport(toolVersion string) *CompileReport {
	return NewCompileReportWithID(values.NewRunID(), toolVersion)
}

// NewCompileReportWithID creates a new report with a specific run ID.
func NewCompileReportWithID(id values.RunID, toolVersion string) *CompileReport {
	return &CompileReport{
		RunID:       id,
		ToolVersion: toolVersion,
		StartTime:   time.Now(),
		Modules:     make([]ModuleResult, 0),
	}
}

// AddModuleResult adds a module result to the report.
// Thread-safe for concurrent calls during batch compilation.
func (r *CompileReport) AddModuleResult(mr ModuleResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Modules = append(r.Modules, mr)
}

// Finalize completes the report and calculates the summary.
// Modules are sorted by their catalog order for deterministic output.
func (r *CompileReport) Finalize() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)

	sort.SliceStable(r.Modules, func(i, j int) bool {
		return r.Modules[i].Index < r.Modules[j].Index
	})

	r.calculateSummary()
}

// HasFailures returns true if any module failed or errored.
func (r *CompileReport) HasFailures() bool {
	return r.Summary.FailedModules > 0 || r.Summary.ErrorModules > 0
}

func (r *CompileReport) calculateSummary() {
	r.Summary = ReportSummary{
		TotalModules: len(r.Modules),
	}

	for _, mod := range r.Modules {
		switch mod.Status {
		case values.StatusPass:
			r.Summary.PassedModules++
		case values.StatusFail:
			r.Summary.FailedModules++
		case values.StatusError:
			r.Summary.ErrorModules++
		case values.StatusSkipped:
			r.Summary.SkippedModules++
		}

		r.Summary.TotalStages += len(mod.Stages)
		for _, st := range mod.Stages {
			switch st.Status {
			case values.StatusPass:
				r.Summary.PassedStages++
			case values.StatusFail, values.StatusError:
				r.Summary.FailedStages++
			}
		}
	}
}

// AggregateStatus folds the stage statuses into a module status.
// A module with no stages is an error: it never reached the compiler.
func (m *ModuleResult) AggregateStatus() values.Status {
	if len(m.Stages) == 0 {
		return values.StatusError
	}
	status := values.StatusPass
	for _, st := range m.Stages {
		status = status.Worst(st.Status)
	}
	return status
}
