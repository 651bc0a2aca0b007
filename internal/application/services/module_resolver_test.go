package services

import (
	"context"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/reglet-dev/shaderbuild/internal/application/dto"
	apperrors "github.com/reglet-dev/shaderbuild/internal/application/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestModuleResolver_Resolve(t *testing.T) {
	catalog := new(MockCatalog)
	catalog.On("ListModules", mock.Anything, "/s").Return([]string{"core", "ui"}, nil)
	r := NewModuleResolver(catalog, "/s")

	module, err := r.Resolve(context.Background(), "UI")
	require.NoError(t, err)
	assert.Equal(t, "ui", module.String())
}

func TestModuleResolver_Resolve_DefaultSkipsCatalog(t *testing.T) {
	catalog := new(MockCatalog)
	r := NewModuleResolver(catalog, "/s")

	module, err := r.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "core", module.String())
	catalog.AssertNotCalled(t, "ListModules", mock.Anything, mock.Anything)
}

func TestModuleResolver_Resolve_Unknown(t *testing.T) {
	catalog := new(MockCatalog)
	catalog.On("ListModules", mock.Anything, "/s").Return([]string{"core"}, nil)
	r := NewModuleResolver(catalog, "/s")

	_, err := r.Resolve(context.Background(), "nonexistent")

	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Empty(t, ve.Details)
	assert.Equal(t, 1, strings.Count(ve.Error(), "core"), "valid set is listed once: %s", ve.Error())
	assert.Contains(t, ve.Message, "must be one of [core]")
}

func TestModuleResolver_List_MissingShadersDir(t *testing.T) {
	catalog := new(MockCatalog)
	catalog.On("ListModules", mock.Anything, "/s").
		Return(nil, fmt.Errorf("open /s: %w", fs.ErrNotExist))
	r := NewModuleResolver(catalog, "/s")

	_, err := r.Resolve(context.Background(), "core")

	var pnf *apperrors.PathNotFoundError
	require.ErrorAs(t, err, &pnf)
	assert.Equal(t, "/s", pnf.Path)
}

func TestModuleResolver_All_SkipsInvalidNames(t *testing.T) {
	catalog := new(MockCatalog)
	catalog.On("ListModules", mock.Anything, "/s").
		Return([]string{".cache", "Legacy", "bad\\name", "core", "ui"}, nil)
	r := NewModuleResolver(catalog, "/s")

	modules, err := r.All(context.Background())
	require.NoError(t, err)
	require.Len(t, modules, 2)
	assert.Equal(t, "core", modules[0].String())
	assert.Equal(t, "ui", modules[1].String())

	names, err := r.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"core", "ui"}, names)
}

func TestModuleResolver_Resolve_IgnoresMixedCaseDirectory(t *testing.T) {
	catalog := new(MockCatalog)
	catalog.On("ListModules", mock.Anything, "/s").Return([]string{"Legacy", "core"}, nil)
	r := NewModuleResolver(catalog, "/s")

	_, err := r.Resolve(context.Background(), "legacy")

	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Message, "must be one of [core]")
}

func TestModuleResolver_Describe(t *testing.T) {
	catalog := new(MockCatalog)
	catalog.On("ListModules", mock.Anything, "/s").Return([]string{"core"}, nil)
	catalog.On("DescribeModule", mock.Anything, "/s", "core").
		Return(&dto.ModuleInfo{Name: "core", Sources: []string{"core.vs.sc"}, Missing: []string{"core.fs.sc"}}, nil)
	r := NewModuleResolver(catalog, "/s")

	infos, err := r.Describe(context.Background())
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.False(t, infos[0].Complete())
}
