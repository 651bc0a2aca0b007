package values

import (
	"errors"
	"fmt"
	"strings"
)

// Stage is a shader pipeline stage, passed to the compiler's --type flag.
type Stage string

const (
	// StageVertex is the vertex shader stage.
	StageVertex Stage = "vertex"
	// StageFragment is the fragment shader stage.
	StageFragment Stage = "fragment"
)

// ErrInvalidShader is returned when a path does not follow the
// {name}.vs.sc / {name}.fs.sc naming convention.
var ErrInvalidShader = errors.New("invalid shader")

// ClassifyStage derives the stage of a shader from its path.
// This is a naming-convention check; the file is never opened.
func ClassifyStage(path string) (Stage, error) {
	if strings.Contains(path, "vs.sc") {
		return StageVertex, nil
	}
	if strings.Contains(path, "fs.sc") {
		return StageFragment, nil
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidShader, path)
}

// String returns the stage name
func (s Stage) String() string {
	return string(s)
}
