package services

import (
	"context"

	"github.com/reglet-dev/shaderbuild/internal/application/dto"
	"github.com/reglet-dev/shaderbuild/internal/application/ports"
	"github.com/reglet-dev/shaderbuild/internal/domain/entities"
	"github.com/stretchr/testify/mock"
)

// MockCompiler is a mock implementation of ports.ShaderCompiler
type MockCompiler struct {
	mock.Mock
}

func (m *MockCompiler) Compile(ctx context.Context, inv entities.Invocation) (*ports.InvocationResult, error) {
	args := m.Called(ctx, inv)
	res, _ := args.Get(0).(*ports.InvocationResult)
	return res, args.Error(1)
}

// MockCatalog is a mock implementation of ports.ModuleCatalog
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) ListModules(ctx context.Context, shadersDir string) ([]string, error) {
	args := m.Called(ctx, shadersDir)
	mods, _ := args.Get(0).([]string)
	return mods, args.Error(1)
}

func (m *MockCatalog) DescribeModule(ctx context.Context, shadersDir, name string) (*dto.ModuleInfo, error) {
	args := m.Called(ctx, shadersDir, name)
	info, _ := args.Get(0).(*dto.ModuleInfo)
	return info, args.Error(1)
}

// fakePaths is an in-memory ports.PathChecker. Compiling a stage through
// a compiler that "writes" its output is modelled by adding to existing.
type fakePaths struct {
	existing map[string]bool
	dirs     []string
}

func newFakePaths(paths ...string) *fakePaths {
	f := &fakePaths{existing: make(map[string]bool)}
	for _, p := range paths {
		f.existing[p] = true
	}
	return f
}

func (f *fakePaths) Exists(path string) bool {
	return f.existing[path]
}

func (f *fakePaths) EnsureDir(path string) (bool, error) {
	if f.existing[path] {
		return false, nil
	}
	f.existing[path] = true
	f.dirs = append(f.dirs, path)
	return true, nil
}
