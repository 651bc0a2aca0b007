// Package output provides formatters for shaderbuild compile reports.
package output

import (
	"fmt"
	"io"

	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"

	"github.com/reglet-dev/shaderbuild/internal/domain/execution"
)

// SARIFFormatter formats compile reports as SARIF 2.1.0 JSON.
// Each shader stage becomes a rule and each compiler invocation a result
// located at the stage's source file.
//
// Usage:
//
//	formatter := output.NewSARIFFormatter(os.Stdout, projectRoot)
//	if err := formatter.Format(report); err != nil {
//	    log.Fatal(err)
//	}
type SARIFFormatter struct {
	writer   io.Writer
	rootPath string
}

// NewSARIFFormatter creates a new SARIF formatter.
// rootPath is used to resolve relative paths for file locations; empty
// means the working directory.
func NewSARIFFormatter(writer io.Writer, rootPath string) *SARIFFormatter {
	return &SARIFFormatter{
		writer:   writer,
		rootPath: rootPath,
	}
}

// Format writes the report as SARIF 2.1.0 JSON.
func (f *SARIFFormatter) Format(report *execution.CompileReport) error {
	doc := sarif.NewReport()

	run := sarif.NewRunWithInformationURI("shaderbuild", "https://github.com/reglet-dev/shaderbuild")
	if report.ToolVersion != "" {
		run.Tool.Driver.Version = ptrString(report.ToolVersion)
	}
	run.Tool.Driver.Organization = ptrString("Reglet")

	mapper := newSARIFMapper(report, f.rootPath)
	mapper.mapToRun(run)

	doc.AddRun(run)

	if err := doc.Write(f.writer); err != nil {
		return fmt.Errorf("failed to write SARIF output: %w", err)
	}

	_, err := f.writer.Write([]byte("\n"))
	return err
}

func ptrString(s string) *string {
	return &s
}
