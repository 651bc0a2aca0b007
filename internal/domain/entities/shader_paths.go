package entities

import (
	"path/filepath"

	"github.com/reglet-dev/shaderbuild/internal/domain/values"
)

const (
	vertexSuffix   = ".vs.sc"
	fragmentSuffix = ".fs.sc"
	// VaryingDefFile is the name of the varying-definitions file shared by
	// both stages of a module.
	VaryingDefFile = "varying.def.sc"
	// CompiledSuffix is appended to a source file name to name its output.
	CompiledSuffix = ".bin"
)

// ShaderPaths holds the source files of one shader module.
type ShaderPaths struct {
	Vertex     string `json:"vertex" yaml:"vertex"`
	Fragment   string `json:"fragment" yaml:"fragment"`
	VaryingDef string `json:"varying_def" yaml:"varying_def"`
}

// OutputPaths holds the compiled artifacts of one shader module.
type OutputPaths struct {
	Vertex   string `json:"vertex" yaml:"vertex"`
	Fragment string `json:"fragment" yaml:"fragment"`
}

// ResolveShaderPaths builds the source paths of a module:
//
//	{resources}/shaders/{m}/{m}.vs.sc
//	{resources}/shaders/{m}/{m}.fs.sc
//	{resources}/shaders/{m}/varying.def.sc
func ResolveShaderPaths(resourcesDir string, module values.ModuleName) ShaderPaths {
	name := module.String()
	dir := filepath.Join(resourcesDir, ShadersDirName, name)
	vertex := filepath.Join(dir, name+vertexSuffix)

	return ShaderPaths{
		Vertex:     vertex,
		Fragment:   filepath.Join(dir, name+fragmentSuffix),
		VaryingDef: filepath.Join(filepath.Dir(vertex), VaryingDefFile),
	}
}

// ResolveOutputPath maps a source shader to its compiled output by inserting
// the profile directory before the file name and appending ".bin".
func ResolveOutputPath(source string, profile values.ShaderProfile) string {
	dir, file := filepath.Split(source)
	return filepath.Join(dir, profile.DirName(), file+CompiledSuffix)
}

// ResolveOutputPaths applies ResolveOutputPath to both stages.
func ResolveOutputPaths(paths ShaderPaths, profile values.ShaderProfile) OutputPaths {
	return OutputPaths{
		Vertex:   ResolveOutputPath(paths.Vertex, profile),
		Fragment: ResolveOutputPath(paths.Fragment, profile),
	}
}

// Dir returns the directory compiled shaders are written to.
func (o OutputPaths) Dir() string {
	return filepath.Dir(o.Vertex)
}

// Source returns the source path for a stage.
func (p ShaderPaths) Source(stage values.Stage) string {
	if stage == values.StageFragment {
		return p.Fragment
	}
	return p.Vertex
}

// Output returns the output path for a stage.
func (o OutputPaths) Output(stage values.Stage) string {
	if stage == values.StageFragment {
		return o.Fragment
	}
	return o.Vertex
}
