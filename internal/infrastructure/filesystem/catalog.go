// Package filesystem implements the on-disk side of a compile run: module
// discovery under the shaders directory and the path checks around the
// compiler invocations.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/reglet-dev/shaderbuild/internal/application/dto"
	"github.com/reglet-dev/shaderbuild/internal/domain/entities"
	"github.com/reglet-dev/shaderbuild/internal/domain/values"
)

// SourcePattern matches shader sources inside a module directory.
const SourcePattern = "**/*.sc"

// ModuleCatalog lists shader modules as the subdirectories of the shaders directory.
type ModuleCatalog struct{}

// NewModuleCatalog creates a module catalog.
func NewModuleCatalog() *ModuleCatalog {
	return &ModuleCatalog{}
}

// ListModules returns the sorted names of the directories under shadersDir.
// Plain files and hidden directories are ignored.
func (c *ModuleCatalog) ListModules(ctx context.Context, shadersDir string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(shadersDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list shader modules: %w", err)
	}

	modules := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			modules = append(modules, entry.Name())
		}
	}
	sort.Strings(modules)
	return modules, nil
}

// DescribeModule reports the shader sources found in a module directory and
// which of the files a compile needs are absent. A directory that cannot be
// a module is reported with Ignored set instead of failing the listing.
func (c *ModuleCatalog) DescribeModule(ctx context.Context, shadersDir, name string) (*dto.ModuleInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir := filepath.Join(shadersDir, name)
	module, err := values.ModuleNameFromDir(name)
	if err != nil {
		return &dto.ModuleInfo{Name: name, Dir: dir, Ignored: err.Error()}, nil
	}

	sources, err := doublestar.Glob(os.DirFS(dir), SourcePattern)
	if err != nil {
		return nil, fmt.Errorf("failed to scan module %s: %w", name, err)
	}
	sort.Strings(sources)

	info := &dto.ModuleInfo{
		Name:    name,
		Dir:     dir,
		Sources: sources,
	}

	required := entities.ResolveShaderPaths(filepath.Dir(shadersDir), module)
	for _, path := range []string{required.Vertex, required.Fragment, required.VaryingDef} {
		if _, err := os.Stat(path); err != nil {
			info.Missing = append(info.Missing, filepath.Base(path))
		}
	}

	return info, nil
}
