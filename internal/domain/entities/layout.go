// Package entities contains domain entities for the shader build domain model.
// These are pure domain types with NO infrastructure dependencies.
package entities

import (
	"path/filepath"

	"github.com/reglet-dev/shaderbuild/internal/domain/values"
)

const (
	// DefaultBuildDir is the native build output tree, relative to the project root.
	DefaultBuildDir = "build"
	// DefaultResourcesDir is the resources tree, relative to the project root.
	DefaultResourcesDir = "resources"
	// ShadersDirName is the directory under the resources tree holding one
	// subdirectory per shader module.
	ShadersDirName = "shaders"
)

// ProjectLayout describes where a project keeps its build output and its
// shader resources. All paths are absolute once the layout is constructed.
type ProjectLayout struct {
	RootDir      string
	BuildDir     string
	ResourcesDir string
}

// NewProjectLayout builds a layout from a root directory and optional
// build/resources directories. Empty directories fall back to the defaults;
// relative directories are resolved against the root.
func NewProjectLayout(root, buildDir, resourcesDir string) (ProjectLayout, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return ProjectLayout{}, err
	}

	if buildDir == "" {
		buildDir = DefaultBuildDir
	}
	if resourcesDir == "" {
		resourcesDir = DefaultResourcesDir
	}

	return ProjectLayout{
		RootDir:      absRoot,
		BuildDir:     resolveUnder(absRoot, buildDir),
		ResourcesDir: resolveUnder(absRoot, resourcesDir),
	}, nil
}

// ShadersDir returns the directory whose subdirectories are shader modules.
func (l ProjectLayout) ShadersDir() string {
	return filepath.Join(l.ResourcesDir, ShadersDirName)
}

// CompilerPath returns where the bgfx shaderc build places its executable.
//
// The Windows build is multi-config, so the binary sits one level deeper
// under the Debug configuration and carries an .exe suffix. The path is not
// checked for existence.
func (l ProjectLayout) CompilerPath(platform values.PlatformID) string {
	bgfx := filepath.Join(l.BuildDir, "third_party", "bgfx")
	if platform == values.PlatformWindows {
		return filepath.Join(bgfx, "Debug", "shaderc.exe")
	}
	return filepath.Join(bgfx, "shaderc")
}

func resolveUnder(root, dir string) string {
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(root, dir)
}
