package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/reglet-dev/shaderbuild/internal/application/dto"
	apperrors "github.com/reglet-dev/shaderbuild/internal/application/errors"
	"github.com/reglet-dev/shaderbuild/internal/application/ports"
	"github.com/reglet-dev/shaderbuild/internal/domain/values"
)

// ModuleResolver turns the shader module argument into a ModuleName,
// validating it against the modules present on disk.
type ModuleResolver struct {
	catalog    ports.ModuleCatalog
	shadersDir string
}

// NewModuleResolver creates a resolver over the given shaders directory.
func NewModuleResolver(catalog ports.ModuleCatalog, shadersDir string) *ModuleResolver {
	return &ModuleResolver{
		catalog:    catalog,
		shadersDir: shadersDir,
	}
}

// Resolve validates a module argument. An empty argument selects the
// default module without consulting the catalog; anything else is
// lower-cased and must name an existing module directory.
func (r *ModuleResolver) Resolve(ctx context.Context, arg string) (values.ModuleName, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return values.MustNewModuleName(values.DefaultModuleName), nil
	}

	name := strings.ToLower(arg)
	modules, err := r.List(ctx)
	if err != nil {
		return values.ModuleName{}, err
	}

	if !slices.Contains(modules, name) {
		return values.ModuleName{}, apperrors.NewValidationError(
			"shader_module",
			fmt.Sprintf("module %q not found (must be one of %v)", name, modules),
		)
	}

	module, err := values.NewModuleName(name)
	if err != nil {
		return values.ModuleName{}, apperrors.NewValidationError("shader_module", err.Error())
	}
	return module, nil
}

// All returns every module found under the shaders directory, in catalog order.
func (r *ModuleResolver) All(ctx context.Context) ([]values.ModuleName, error) {
	dirs, err := r.listDirs(ctx)
	if err != nil {
		return nil, err
	}

	modules := make([]values.ModuleName, 0, len(dirs))
	for _, d := range dirs {
		if m, err := values.ModuleNameFromDir(d); err == nil {
			modules = append(modules, m)
		}
	}
	return modules, nil
}

// List returns the names of the module directories. Directories that
// cannot be modules (see values.ModuleNameFromDir) are left out.
func (r *ModuleResolver) List(ctx context.Context) ([]string, error) {
	modules, err := r.All(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(modules))
	for _, m := range modules {
		names = append(names, m.String())
	}
	return names, nil
}

func (r *ModuleResolver) listDirs(ctx context.Context) ([]string, error) {
	modules, err := r.catalog.ListModules(ctx, r.shadersDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.NewPathNotFoundError(r.shadersDir, "shaders directory")
		}
		return nil, fmt.Errorf("failed to list shader modules: %w", err)
	}
	return modules, nil
}

// Describe returns the discovered sources of every module directory.
// Directories that cannot be modules are included and flagged by the catalog.
func (r *ModuleResolver) Describe(ctx context.Context) ([]dto.ModuleInfo, error) {
	names, err := r.listDirs(ctx)
	if err != nil {
		return nil, err
	}

	infos := make([]dto.ModuleInfo, 0, len(names))
	for _, n := range names {
		info, err := r.catalog.DescribeModule(ctx, r.shadersDir, n)
		if err != nil {
			return nil, fmt.Errorf("failed to describe module %s: %w", n, err)
		}
		infos = append(infos, *info)
	}
	return infos, nil
}
