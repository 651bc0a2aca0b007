package entities

import (
	"path/filepath"
	"testing"

	"github.com/reglet-dev/shaderbuild/internal/domain/values"
	"github.com/stretchr/testify/assert"
)

func TestResolveShaderPaths(t *testing.T) {
	resources := filepath.Join("/", "proj", "resources")
	dir := filepath.Join(resources, "shaders", "core")

	paths := ResolveShaderPaths(resources, values.MustNewModuleName("core"))

	assert.Equal(t, filepath.Join(dir, "core.vs.sc"), paths.Vertex)
	assert.Equal(t, filepath.Join(dir, "core.fs.sc"), paths.Fragment)
	assert.Equal(t, filepath.Join(dir, "varying.def.sc"), paths.VaryingDef)
}

func TestResolveOutputPath(t *testing.T) {
	sources := []string{
		filepath.Join("/", "proj", "resources", "shaders", "core", "core.vs.sc"),
		filepath.Join("/", "proj", "resources", "shaders", "ui", "ui.fs.sc"),
		filepath.Join("rel", "x.vs.sc"),
	}
	profiles := []values.ShaderProfile{values.ProfileMetal, values.ProfileGLSL440}

	for _, src := range sources {
		for _, profile := range profiles {
			t.Run(src+"/"+profile.String(), func(t *testing.T) {
				out := ResolveOutputPath(src, profile)

				assert.Equal(t, profile.DirName(), filepath.Base(filepath.Dir(out)))
				assert.Equal(t, filepath.Base(src)+".bin", filepath.Base(out))
				assert.Equal(t, filepath.Dir(src), filepath.Dir(filepath.Dir(out)))
			})
		}
	}
}

func TestResolveOutputPaths(t *testing.T) {
	paths := ResolveShaderPaths(filepath.Join("/", "r"), values.MustNewModuleName("core"))
	dir := filepath.Join("/", "r", "shaders", "core", "glsl")

	out := ResolveOutputPaths(paths, values.ProfileGLSL440)

	assert.Equal(t, filepath.Join(dir, "core.vs.sc.bin"), out.Vertex)
	assert.Equal(t, filepath.Join(dir, "core.fs.sc.bin"), out.Fragment)
	assert.Equal(t, dir, out.Dir())
	assert.Equal(t, out.Vertex, out.Output(values.StageVertex))
	assert.Equal(t, out.Fragment, out.Output(values.StageFragment))
	assert.Equal(t, paths.Fragment, paths.Source(values.StageFragment))
}
