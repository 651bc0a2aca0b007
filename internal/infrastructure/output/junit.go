package output

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/reglet-dev/shaderbuild/internal/domain/execution"
	"github.com/reglet-dev/shaderbuild/internal/domain/values"
)

// JUnitFormatter formats compile reports as JUnit XML: one test suite per
// shader module, one test case per stage.
type JUnitFormatter struct {
	writer io.Writer
}

// NewJUnitFormatter creates a new JUnit formatter.
func NewJUnitFormatter(w io.Writer) *JUnitFormatter {
	return &JUnitFormatter{
		writer: w,
	}
}

// JUnitTestSuites JUnit XML structures
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Name       string           `xml:"name,attr"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	Time       float64          `xml:"time,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

type JUnitTestSuite struct {
	XMLName   xml.Name        `xml:"testsuite"`
	Name      string          `xml:"name,attr"`
	Tests     int             `xml:"tests,attr"`
	Failures  int             `xml:"failures,attr"`
	Errors    int             `xml:"errors,attr"`
	Skipped   int             `xml:"skipped,attr"`
	Time      float64         `xml:"time,attr"`
	TestCases []JUnitTestCase `xml:"testcase"`
}

type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	ClassName string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Error     *JUnitError   `xml:"error,omitempty"`
	Skipped   *JUnitSkipped `xml:"skipped,omitempty"`
}

type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Content string `xml:",chardata"`
}

type JUnitError struct {
	Message string `xml:"message,attr"`
	Content string `xml:",chardata"`
}

type JUnitSkipped struct {
	Message string `xml:"message,attr,omitempty"`
}

// Format writes the report as JUnit XML.
func (f *JUnitFormatter) Format(report *execution.CompileReport) error {
	suites := JUnitTestSuites{
		Name: "shaderbuild",
		Time: report.Duration.Seconds(),
	}

	for _, mod := range report.Modules {
		suite := f.moduleSuite(mod)
		suites.Tests += suite.Tests
		suites.Failures += suite.Failures
		suites.Errors += suite.Errors
		suites.TestSuites = append(suites.TestSuites, suite)
	}

	_, err := f.writer.Write([]byte(xml.Header))
	if err != nil {
		return err
	}

	encoder := xml.NewEncoder(f.writer)
	encoder.Indent("", "  ")
	if err := encoder.Encode(suites); err != nil {
		return err
	}

	_, err = f.writer.Write([]byte("\n"))
	return err
}

func (f *JUnitFormatter) moduleSuite(mod execution.ModuleResult) JUnitTestSuite {
	suite := JUnitTestSuite{
		Name: mod.Module,
		Time: mod.Duration.Seconds(),
	}

	// A module that failed before reaching the compiler has no stages;
	// report it as a single errored case so it is not lost.
	if len(mod.Stages) == 0 {
		suite.Tests = 1
		suite.Errors = 1
		suite.TestCases = []JUnitTestCase{{
			Name:      "resolve",
			ClassName: mod.Module,
			Error:     &JUnitError{Message: mod.Message},
		}}
		return suite
	}

	for _, st := range mod.Stages {
		c := JUnitTestCase{
			Name:      string(st.Stage),
			ClassName: mod.Module,
			Time:      st.Duration.Seconds(),
		}

		switch st.Status {
		case values.StatusFail:
			suite.Failures++
			c.Failure = &JUnitFailure{
				Message: stageMessage(mod, st),
				Content: stageDetails(st),
			}
		case values.StatusError:
			suite.Errors++
			c.Error = &JUnitError{
				Message: stageMessage(mod, st),
				Content: stageDetails(st),
			}
		case values.StatusSkipped:
			suite.Skipped++
			c.Skipped = &JUnitSkipped{Message: "not compiled"}
		}

		suite.Tests++
		suite.TestCases = append(suite.TestCases, c)
	}
	return suite
}

func stageMessage(mod execution.ModuleResult, st execution.StageResult) string {
	if mod.Message != "" {
		return mod.Message
	}
	return fmt.Sprintf("%s stage exited with status %d", st.Stage, st.ExitCode)
}

func stageDetails(st execution.StageResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Command: %s\n", st.CommandLine)
	fmt.Fprintf(&b, "Exit code: %d\n", st.ExitCode)
	if st.Diagnostics != "" {
		fmt.Fprintf(&b, "Diagnostics:\n%s\n", st.Diagnostics)
	}
	return b.String()
}
