package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"

	"github.com/reglet-dev/shaderbuild/internal/domain/execution"
	"github.com/reglet-dev/shaderbuild/internal/domain/values"
)

// Rule IDs. Modules that fail before reaching the compiler report under ruleResolve.
const (
	ruleResolve = "shaderbuild/resolve"
	ruleStage   = "shaderc/"
)

// maxArtifactContent bounds the shader source embedded per artifact.
const maxArtifactContent = 512 * 1024

type sarifMapper struct {
	report    *execution.CompileReport
	baseDir   string
	artifacts map[string]*sarif.Artifact
	order     []string
}

func newSARIFMapper(report *execution.CompileReport, rootPath string) *sarifMapper {
	baseDir := rootPath
	if baseDir == "" {
		baseDir, _ = os.Getwd() // Best effort, ignore error
	}
	return &sarifMapper{
		report:    report,
		baseDir:   baseDir,
		artifacts: make(map[string]*sarif.Artifact),
	}
}

// mapToRun populates the SARIF run with rules, results, artifacts, and invocations.
func (m *sarifMapper) mapToRun(run *sarif.Run) {
	m.addRules(run)
	m.addResults(run)
	m.addArtifacts(run)
	m.addInvocation(run)
	m.addProperties(run)
}

func (m *sarifMapper) addRules(run *sarif.Run) {
	rules := []struct{ id, name, desc string }{
		{ruleResolve, "Resolve", "Shader module paths, compiler and output directory are available"},
		{ruleStage + string(values.StageVertex), "VertexStage", "Vertex shader compiles"},
		{ruleStage + string(values.StageFragment), "FragmentStage", "Fragment shader compiles"},
	}

	for _, r := range rules {
		rule := sarif.NewReportingDescriptor().WithID(r.id)
		rule.WithName(r.name)
		rule.WithShortDescription(&sarif.MultiformatMessageString{Text: ptrString(r.desc)})
		rule.WithDefaultConfiguration(&sarif.ReportingConfiguration{Level: "error"})
		run.Tool.Driver.AddRule(rule)
	}
}

func (m *sarifMapper) addResults(run *sarif.Run) {
	for _, mod := range m.report.Modules {
		if len(mod.Stages) == 0 {
			run.AddResult(m.mapModuleResult(mod))
			continue
		}
		for _, st := range mod.Stages {
			run.AddResult(m.mapStageResult(mod, st))
		}
	}
}

// mapModuleResult reports a module that never reached the compiler.
func (m *sarifMapper) mapModuleResult(mod execution.ModuleResult) *sarif.Result {
	result := sarif.NewRuleResult(ruleResolve)
	result.Level = m.mapStatusToLevel(mod.Status)
	result.Kind = m.mapStatusToKind(mod.Status)

	msg := mod.Message
	if msg == "" {
		msg = fmt.Sprintf("Module %s: %s", mod.Module, mod.Status)
	}
	result.Message = sarif.NewTextMessage(msg)

	props := sarif.NewPropertyBag()
	props.Add("module", mod.Module)
	props.Add("duration_ms", mod.Duration.Milliseconds())
	result.WithProperties(props)

	return result
}

func (m *sarifMapper) mapStageResult(mod execution.ModuleResult, st execution.StageResult) *sarif.Result {
	result := sarif.NewRuleResult(ruleStage + string(st.Stage))
	result.Level = m.mapStatusToLevel(st.Status)
	result.Kind = m.mapStatusToKind(st.Status)
	result.Message = sarif.NewTextMessage(m.stageMessage(mod, st))

	if st.Source != "" {
		result.Locations = []*sarif.Location{m.createLocation(st.Source)}
	}

	props := sarif.NewPropertyBag()
	props.Add("module", mod.Module)
	props.Add("output", st.Output)
	props.Add("command_line", st.CommandLine)
	props.Add("exit_code", st.ExitCode)
	props.Add("duration_ms", st.Duration.Milliseconds())
	if st.Diagnostics != "" {
		props.Add("diagnostics", st.Diagnostics)
	}
	result.WithProperties(props)

	return result
}

func (m *sarifMapper) stageMessage(mod execution.ModuleResult, st execution.StageResult) string {
	switch st.Status {
	case values.StatusPass:
		return fmt.Sprintf("Compiled %s %s shader", mod.Module, st.Stage)
	case values.StatusSkipped:
		return fmt.Sprintf("Skipped %s %s shader", mod.Module, st.Stage)
	default:
		if mod.Message != "" {
			return mod.Message
		}
		return fmt.Sprintf("Compiling %s %s shader failed with exit code %d", mod.Module, st.Stage, st.ExitCode)
	}
}

// mapStatusToLevel converts a status to a SARIF level.
func (m *sarifMapper) mapStatusToLevel(status values.Status) string {
	switch status {
	case values.StatusPass:
		return "note"
	case values.StatusFail, values.StatusError:
		return "error"
	case values.StatusSkipped:
		return "none"
	default:
		return "warning"
	}
}

// mapStatusToKind converts a status to a SARIF kind.
func (m *sarifMapper) mapStatusToKind(status values.Status) string {
	switch status {
	case values.StatusPass:
		return "pass"
	case values.StatusSkipped:
		return "notApplicable"
	default:
		return "fail"
	}
}

func (m *sarifMapper) createLocation(path string) *sarif.Location {
	uri := m.normalizeURI(path)
	m.registerArtifact(path, uri)

	pLoc := sarif.NewPhysicalLocation().
		WithArtifactLocation(sarif.NewArtifactLocation().WithURI(uri))

	return sarif.NewLocation().WithPhysicalLocation(pLoc)
}

// normalizeURI converts a file path to a SARIF-compliant URI, relative to
// the base directory when the file lives under it.
func (m *sarifMapper) normalizeURI(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(path)
	}

	if m.baseDir != "" {
		if rel, err := filepath.Rel(m.baseDir, abs); err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.ToSlash(rel)
		}
	}

	return "file://" + filepath.ToSlash(abs)
}

// registerArtifact adds a shader source to the artifacts (deduplicated),
// embedding its text when small enough.
func (m *sarifMapper) registerArtifact(path, uri string) {
	if _, exists := m.artifacts[uri]; exists {
		return
	}

	artifact := sarif.NewArtifact().
		WithLocation(sarif.NewArtifactLocation().WithURI(uri))

	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		artifact.WithLength(int(info.Size()))
		if info.Size() < maxArtifactContent {
			//nolint:gosec // G304: path is a resolved shader source, bounded by size check above
			if content, err := os.ReadFile(path); err == nil {
				artifact.WithContents(sarif.NewArtifactContent().WithText(string(content)))
			}
		}
	}

	m.artifacts[uri] = artifact
	m.order = append(m.order, uri)
}

func (m *sarifMapper) addArtifacts(run *sarif.Run) {
	for _, uri := range m.order {
		run.AddArtifact(m.artifacts[uri])
	}
}

// addInvocation adds run metadata.
func (m *sarifMapper) addInvocation(run *sarif.Run) {
	invocation := sarif.NewInvocation()

	invocation.ExecutionSuccessful = ptrBool(!m.report.HasFailures())

	startTime := m.report.StartTime.UTC().Format("2006-01-02T15:04:05.000Z")
	endTime := m.report.EndTime.UTC().Format("2006-01-02T15:04:05.000Z")
	invocation.StartTimeUtc = &startTime
	invocation.EndTimeUtc = &endTime

	if hostname, err := os.Hostname(); err == nil {
		invocation.Machine = &hostname
	}

	if m.baseDir != "" {
		if abs, err := filepath.Abs(m.baseDir); err == nil {
			invocation.WorkingDirectory = sarif.NewArtifactLocation().WithURI("file://" + filepath.ToSlash(abs))
		}
	}

	props := sarif.NewPropertyBag()
	props.Add("runId", m.report.RunID.String())
	props.Add("dryRun", m.report.DryRun)
	invocation.WithProperties(props)

	run.AddInvocation(invocation)
}

// addProperties adds summary statistics to run properties.
func (m *sarifMapper) addProperties(run *sarif.Run) {
	props := sarif.NewPropertyBag()
	props.Add("summary", m.report.Summary)
	run.WithProperties(props)
}

func ptrBool(b bool) *bool {
	return &b
}
