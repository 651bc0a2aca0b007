package entities

import (
	"strings"

	"github.com/reglet-dev/shaderbuild/internal/domain/values"
)

// Invocation is a single call of the shader compiler for one stage.
type Invocation struct {
	Compiler   string
	Source     string
	Output     string
	VaryingDef string
	Stage      values.Stage
	Platform   values.PlatformID
	Profile    values.ShaderProfile
}

// NewInvocation builds the invocation for a source shader, deriving its
// stage from the file name.
func NewInvocation(
	compiler, source, output, varyingDef string,
	platform values.PlatformID,
	profile values.ShaderProfile,
) (Invocation, error) {
	stage, err := values.ClassifyStage(source)
	if err != nil {
		return Invocation{}, err
	}

	return Invocation{
		Compiler:   compiler,
		Source:     source,
		Output:     output,
		VaryingDef: varyingDef,
		Stage:      stage,
		Platform:   platform,
		Profile:    profile,
	}, nil
}

// Args returns the compiler arguments, excluding the executable itself.
func (i Invocation) Args() []string {
	return []string{
		"-f", i.Source,
		"-o", i.Output,
		"--type", i.Stage.String(),
		"--profile", i.Profile.String(),
		"--platform", i.Platform.String(),
		"--varyingdef", i.VaryingDef,
	}
}

// CommandLine renders the full command for logging.
func (i Invocation) CommandLine() string {
	return strings.Join(append([]string{i.Compiler}, i.Args()...), " ")
}
