// Package fixture builds throwaway shader projects for tests: a resources
// tree with shader modules and a stand-in shaderc executable.
package fixture

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/reglet-dev/shaderbuild/internal/domain/entities"
	"github.com/reglet-dev/shaderbuild/internal/domain/values"
)

// Project is a shader project rooted in a temporary directory.
type Project struct {
	Layout entities.ProjectLayout
	// ArgsLog receives one compiler argument per line, appended per call.
	ArgsLog string
}

// CompilerBehavior selects what the stub compiler does.
type CompilerBehavior int

const (
	// WritesOutput prints a line to stdout and to stderr, writes a
	// nonempty file to the -o path and exits 0.
	WritesOutput CompilerBehavior = iota
	// FailsSilently exits 1 without writing anything.
	FailsSilently
	// ExitsCleanWithoutOutput exits 0 without writing anything.
	ExitsCleanWithoutOutput
	// Hangs sleeps long enough for a test timeout to fire.
	Hangs
)

// NewProject creates a project with the given modules. Each module gets a
// vertex shader, a fragment shader and a varying-definitions file.
func NewProject(t *testing.T, modules ...string) *Project {
	t.Helper()

	layout, err := entities.NewProjectLayout(t.TempDir(), "", "")
	if err != nil {
		t.Fatalf("layout: %v", err)
	}

	p := &Project{
		Layout:  layout,
		ArgsLog: filepath.Join(layout.RootDir, "shaderc-args.log"),
	}
	for _, m := range modules {
		p.AddModule(t, m)
	}
	return p
}

// AddModule writes the three source files of a module.
func (p *Project) AddModule(t *testing.T, module string) entities.ShaderPaths {
	t.Helper()

	paths := entities.ResolveShaderPaths(p.Layout.ResourcesDir, values.MustNewModuleName(module))
	mustMkdir(t, filepath.Dir(paths.Vertex))
	mustWrite(t, paths.Vertex, "void main() {}\n")
	mustWrite(t, paths.Fragment, "void main() {}\n")
	mustWrite(t, paths.VaryingDef, "vec4 v_color0 : COLOR0;\n")
	return paths
}

// InstallCompiler writes a POSIX shell stub at the conventional compiler
// location for the host platform and returns its path. Tests using it are
// skipped on Windows.
func (p *Project) InstallCompiler(t *testing.T, behavior CompilerBehavior) string {
	t.Helper()

	platform, err := values.DetectPlatform(runtime.GOOS)
	if err != nil {
		t.Fatalf("platform: %v", err)
	}
	path := p.Layout.CompilerPath(platform)
	p.WriteCompiler(t, path, behavior)
	return path
}

// WriteCompiler writes the shell stub at an arbitrary path.
func (p *Project) WriteCompiler(t *testing.T, path string, behavior CompilerBehavior) {
	t.Helper()
	SkipWithoutShell(t)

	action := `echo "shaderc: compiling $src"
echo "shaderc: warning: $src uses defaults" >&2
[ -n "$out" ] && printf 'compiled\n' > "$out"
exit 0`
	switch behavior {
	case FailsSilently:
		action = `echo "shaderc: failed to compile $src" >&2
exit 1`
	case ExitsCleanWithoutOutput:
		action = `exit 0`
	case Hangs:
		action = `exec sleep 30`
	}

	script := `#!/bin/sh
printf '%s\n' "$@" >> '` + p.ArgsLog + `'
out=""
src=""
while [ $# -gt 0 ]; do
  case "$1" in
    -o) out="$2"; shift 2 ;;
    -f) src="$2"; shift 2 ;;
    *) shift ;;
  esac
done
` + action + "\n"

	mustMkdir(t, filepath.Dir(path))
	//nolint:gosec // G306: the stub must be executable
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write compiler stub: %v", err)
	}
}

// SkipWithoutShell skips tests that need /bin/sh.
func SkipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stub compiler requires a POSIX shell")
	}
}

func mustMkdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
