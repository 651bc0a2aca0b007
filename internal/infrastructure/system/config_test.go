package system

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/reglet-dev/shaderbuild/internal/domain/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoader(t *testing.T) *ConfigLoader {
	t.Helper()
	loader, err := NewConfigLoader()
	require.NoError(t, err)
	return loader
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ProjectFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestConfigLoader_Load_FileNotExists(t *testing.T) {
	cfg, err := newLoader(t).Load("/nonexistent/shaderbuild.yaml")

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.True(t, cfg.ExitStatusChecked())
	assert.Zero(t, cfg.Timeout())
}

func TestConfigLoader_Load_EmptyFile(t *testing.T) {
	cfg, err := newLoader(t).Load(writeConfig(t, "\n"))

	require.NoError(t, err)
	assert.Equal(t, "build", cfg.BuildDir)
}

func TestConfigLoader_Load_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
build_dir: out
compiler_path: /opt/bgfx/shaderc
platform: osx
check_exit_status: false
timeout_seconds: 30
`)

	cfg, err := newLoader(t).Load(path)
	require.NoError(t, err)

	assert.Equal(t, "out", cfg.BuildDir)
	assert.Equal(t, "resources", cfg.ResourcesDir, "unset keys keep defaults")
	assert.Equal(t, "/opt/bgfx/shaderc", cfg.CompilerPath)
	assert.False(t, cfg.ExitStatusChecked())
	assert.Equal(t, 30*time.Second, cfg.Timeout())

	platform, err := cfg.PlatformOverride()
	require.NoError(t, err)
	assert.Equal(t, values.PlatformOSX, platform)
}

func TestConfigLoader_Load_SchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "unknown key", content: "shader_dir: x\n", want: "shader_dir"},
		{name: "bad platform", content: "platform: amiga\n", want: "/platform"},
		{name: "negative timeout", content: "timeout_seconds: -1\n", want: "/timeout_seconds"},
		{name: "wrong type", content: "check_exit_status: sometimes\n", want: "/check_exit_status"},
		{name: "not a mapping", content: "- build\n", want: "(root)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newLoader(t).Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config validation failed")
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestConfigLoader_Load_MalformedYAML(t *testing.T) {
	_, err := newLoader(t).Load(writeConfig(t, "build_dir: [unterminated\n"))
	require.Error(t, err)
}

func TestConfigLoader_Save(t *testing.T) {
	loader := newLoader(t)
	path := filepath.Join(t.TempDir(), ProjectFileName)

	cfg := DefaultConfig()
	cfg.CompilerPath = "tools/shaderc"
	require.NoError(t, loader.Save(path, cfg, false))

	loaded, err := loader.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	err = loader.Save(path, cfg, false)
	require.ErrorIs(t, err, ErrConfigExists)
	assert.Contains(t, err.Error(), "already exists")

	invalid := DefaultConfig()
	invalid.Platform = "amiga"
	err = loader.Save(filepath.Join(t.TempDir(), ProjectFileName), invalid, false)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrConfigExists)

	require.NoError(t, loader.Save(path, cfg, true))
}

func TestConfig_PlatformOverride_Unset(t *testing.T) {
	platform, err := DefaultConfig().PlatformOverride()
	require.NoError(t, err)
	assert.True(t, platform.IsZero())
}
