package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/shaderbuild/internal/infrastructure/system"
	"github.com/reglet-dev/shaderbuild/internal/test/fixture"
)

// execute runs the CLI in-process with an empty home directory.
func execute(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out, errOut bytes.Buffer
	code = run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestCompile_DefaultModule(t *testing.T) {
	p := fixture.NewProject(t, "core")
	p.InstallCompiler(t, fixture.WritesOutput)

	code, stdout, stderr := execute(t, "compile", "--root", p.Layout.RootDir)

	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, successMessage)
	assert.Contains(t, stderr, "calling shader compiler")
	assert.FileExists(t, filepath.Join(p.Layout.ShadersDir(), "core", "glsl", "core.vs.sc.bin"))
	assert.FileExists(t, filepath.Join(p.Layout.ShadersDir(), "core", "glsl", "core.fs.sc.bin"))
}

func TestCompile_CaseInsensitiveModule(t *testing.T) {
	p := fixture.NewProject(t, "core", "sprite")
	p.InstallCompiler(t, fixture.WritesOutput)

	code, _, stderr := execute(t, "compile", "SPRITE", "--root", p.Layout.RootDir)

	require.Equal(t, 0, code, stderr)
	assert.FileExists(t, filepath.Join(p.Layout.ShadersDir(), "sprite", "glsl", "sprite.fs.sc.bin"))
	assert.NoDirExists(t, filepath.Join(p.Layout.ShadersDir(), "core", "glsl"))
}

func TestCompile_UnknownModule(t *testing.T) {
	p := fixture.NewProject(t, "core")

	code, stdout, stderr := execute(t, "compile", "nonexistent", "--root", p.Layout.RootDir)

	assert.Equal(t, 1, code)
	assert.NotContains(t, stdout, successMessage)
	assert.Contains(t, stderr, `module \"nonexistent\" not found`)
}

func TestCompile_TooManyArguments(t *testing.T) {
	code, _, stderr := execute(t, "compile", "core", "sprite")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "accepts at most 1 arg")
}

func TestCompile_MissingVaryingDef(t *testing.T) {
	p := fixture.NewProject(t, "core")
	p.InstallCompiler(t, fixture.WritesOutput)
	varying := filepath.Join(p.Layout.ShadersDir(), "core", "varying.def.sc")
	require.NoError(t, os.Remove(varying))

	code, _, stderr := execute(t, "compile", "--root", p.Layout.RootDir)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "does not exist")
	assert.NoFileExists(t, p.ArgsLog, "compiler never called")
}

func TestCompile_CompilerFails(t *testing.T) {
	p := fixture.NewProject(t, "core")
	p.InstallCompiler(t, fixture.FailsSilently)

	code, stdout, stderr := execute(t, "compile", "--root", p.Layout.RootDir, "--no-color")

	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "✗ core")
	assert.Contains(t, stderr, "exit status 1")

	logged, err := os.ReadFile(p.ArgsLog)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(logged), "--type"), "fragment stage skipped")
}

func TestCompile_LegacyExitStatus(t *testing.T) {
	p := fixture.NewProject(t, "core")
	p.InstallCompiler(t, fixture.FailsSilently)

	code, _, stderr := execute(t, "compile", "--root", p.Layout.RootDir, "--check-exit-status=false")

	assert.Equal(t, 1, code, "output check still fails the run")
	assert.Contains(t, stderr, "does not exist")

	logged, err := os.ReadFile(p.ArgsLog)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(logged), "--type"), "both stages attempted")
}

func TestCompile_AllJSON(t *testing.T) {
	p := fixture.NewProject(t, "core", "post", "sprite")
	p.InstallCompiler(t, fixture.WritesOutput)

	code, stdout, stderr := execute(t, "compile", "--all", "--jobs", "2", "--format", "json", "--root", p.Layout.RootDir)
	require.Equal(t, 0, code, stderr)

	var report struct {
		Modules []struct {
			Module string `json:"module"`
			Status string `json:"status"`
		} `json:"modules"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &report), stdout)
	require.Len(t, report.Modules, 3)
	for i, name := range []string{"core", "post", "sprite"} {
		assert.Equal(t, name, report.Modules[i].Module)
		assert.Equal(t, "pass", report.Modules[i].Status)
	}
}

func TestCompile_AllConcurrentCompilerOutput(t *testing.T) {
	modules := []string{"a", "b", "c", "d", "e", "f"}
	p := fixture.NewProject(t, modules...)
	p.InstallCompiler(t, fixture.WritesOutput)

	code, stdout, stderr := execute(t, "compile", "--all", "--jobs", "4", "--format", "json", "--root", p.Layout.RootDir)
	require.Equal(t, 0, code, stderr)

	var report struct {
		Modules []struct {
			Module string `json:"module"`
		} `json:"modules"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &report), "compiler output must stay off stdout")
	assert.Len(t, report.Modules, len(modules))

	// two stages per module, each printing once to stdout and once to stderr
	assert.Equal(t, 2*len(modules), strings.Count(stderr, "shaderc: compiling"))
	assert.Equal(t, 2*len(modules), strings.Count(stderr, "uses defaults"))
}

func TestCompile_AllWithModule(t *testing.T) {
	code, _, stderr := execute(t, "compile", "--all", "core")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "--all cannot be combined")
}

func TestCompile_DryRun(t *testing.T) {
	p := fixture.NewProject(t, "core")
	p.InstallCompiler(t, fixture.WritesOutput)

	code, stdout, stderr := execute(t, "compile", "--dry-run", "--no-color", "--root", p.Layout.RootDir)

	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Dry run")
	assert.NoFileExists(t, p.ArgsLog)
	assert.NoDirExists(t, filepath.Join(p.Layout.ShadersDir(), "core", "glsl"))
}

func TestCompile_OutputFile(t *testing.T) {
	p := fixture.NewProject(t, "core")
	p.InstallCompiler(t, fixture.WritesOutput)
	report := filepath.Join(t.TempDir(), "shaders.sarif")

	code, stdout, stderr := execute(t, "compile", "--format", "sarif", "-o", report, "--root", p.Layout.RootDir)

	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, successMessage)
	data, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Contains(t, string(data), "2.1.0")
}

func TestCompile_CompilerFromEnvironment(t *testing.T) {
	p := fixture.NewProject(t, "core")
	compiler := filepath.Join(t.TempDir(), "my-shaderc")
	p.WriteCompiler(t, compiler, fixture.WritesOutput)
	t.Setenv("SHADERBUILD_COMPILER", compiler)

	code, _, stderr := execute(t, "compile", "--root", p.Layout.RootDir)

	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stderr, compiler)
}

func TestRoot_VerboseAndQuiet(t *testing.T) {
	code, _, stderr := execute(t, "version", "-v", "-q")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "mutually exclusive")
}

func TestModules(t *testing.T) {
	p := fixture.NewProject(t, "core", "sprite")
	require.NoError(t, os.Remove(filepath.Join(p.Layout.ShadersDir(), "sprite", "sprite.fs.sc")))

	code, stdout, stderr := execute(t, "modules", "--root", p.Layout.RootDir)

	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "MODULE")
	assert.Regexp(t, `core\s+ok\s+core.fs.sc core.vs.sc varying.def.sc`, stdout)
	assert.Regexp(t, `sprite\s+missing sprite.fs.sc`, stdout)
}

func TestModules_FlagsDirectoriesThatAreNotModules(t *testing.T) {
	p := fixture.NewProject(t, "core")
	require.NoError(t, os.MkdirAll(filepath.Join(p.Layout.ShadersDir(), "Legacy"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(p.Layout.ShadersDir(), ".cache"), 0o755))

	code, stdout, stderr := execute(t, "modules", "--root", p.Layout.RootDir)

	require.Equal(t, 0, code, stderr)
	assert.Regexp(t, `Legacy\s+ignored: directory "Legacy" is not a lower-case module name`, stdout)
	assert.Regexp(t, `core\s+ok`, stdout)
	assert.NotContains(t, stdout, ".cache")
}

func TestModules_NoShadersDir(t *testing.T) {
	code, _, stderr := execute(t, "modules", "--root", t.TempDir())

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "does not exist")
}

func TestInit_NoInteractive(t *testing.T) {
	root := t.TempDir()

	code, stdout, stderr := execute(t, "init", "--no-interactive", "--root", root, "--platform", "osx")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Project config saved")

	loader, err := system.NewConfigLoader()
	require.NoError(t, err)
	cfg, err := loader.Load(filepath.Join(root, system.ProjectFileName))
	require.NoError(t, err)
	assert.Equal(t, "osx", cfg.Platform)
	assert.True(t, cfg.ExitStatusChecked())

	code, _, stderr = execute(t, "init", "--no-interactive", "--root", root)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "--force")

	code, _, stderr = execute(t, "init", "--no-interactive", "--force", "--root", root)
	assert.Equal(t, 0, code, stderr)
}

func TestInit_InvalidConfigHasNoForceHint(t *testing.T) {
	root := t.TempDir()

	code, _, stderr := execute(t, "init", "--no-interactive", "--root", root, "--platform", "amiga")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid project config")
	assert.NotContains(t, stderr, "--force")
	assert.NoFileExists(t, filepath.Join(root, system.ProjectFileName))
}

func TestVersion(t *testing.T) {
	code, stdout, _ := execute(t, "version", "--short")

	assert.Equal(t, 0, code)
	assert.Equal(t, "dev\n", stdout)
}
