package installer_test

import (
	"testing"

	"github.com/arthur-debert/modinstall/pkg/config"
	"github.com/arthur-debert/modinstall/pkg/errors"
	"github.com/arthur-debert/modinstall/pkg/installer"
	"github.com/arthur-debert/modinstall/pkg/testutil"
	"github.com/arthur-debert/modinstall/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const selectionConfig = `{
  "modules": {
    "core": {"enabled": true, "operations": [{"type": "copy_dir", "source": "core", "target": "core"}]},
    "docs": {"enabled": false, "operations": [{"type": "copy_dir", "source": "docs", "target": "docs"}]},
    "extras": {"enabled": true, "operations": [{"type": "copy_dir", "source": "extras", "target": "extras"}]}
  }
}`

func loadSelectionConfig(t *testing.T) *config.Config {
	t.Helper()
	path := testutil.CreateFile(t, t.TempDir(), "config.json", selectionConfig)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	return cfg
}

func moduleNames(modules []types.Module) []string {
	names := make([]string, len(modules))
	for i, m := range modules {
		names[i] = m.Name
	}
	return names
}

func TestSelectModulesDefaultPicksEnabledInOrder(t *testing.T) {
	cfg := loadSelectionConfig(t)

	for _, arg := range []string{"", "all", "ALL"} {
		selected, err := installer.SelectModules(cfg, arg)
		require.NoError(t, err, "arg %q", arg)
		assert.Equal(t, []string{"core", "extras"}, moduleNames(selected), "arg %q", arg)
	}
}

func TestSelectModulesByNameKeepsGivenOrder(t *testing.T) {
	cfg := loadSelectionConfig(t)

	selected, err := installer.SelectModules(cfg, "extras, core")

	require.NoError(t, err)
	assert.Equal(t, []string{"extras", "core"}, moduleNames(selected))
}

func TestSelectModulesByNameIncludesDisabled(t *testing.T) {
	cfg := loadSelectionConfig(t)

	selected, err := installer.SelectModules(cfg, "docs")

	require.NoError(t, err)
	require.Len(t, selected, 1)
	assert.Equal(t, "docs", selected[0].Name)
	assert.False(t, selected[0].Enabled)
}

func TestSelectModulesDeduplicates(t *testing.T) {
	cfg := loadSelectionConfig(t)

	selected, err := installer.SelectModules(cfg, "core,core,extras")

	require.NoError(t, err)
	assert.Equal(t, []string{"core", "extras"}, moduleNames(selected))
}

func TestSelectModulesUnknownName(t *testing.T) {
	cfg := loadSelectionConfig(t)

	_, err := installer.SelectModules(cfg, "core,nope")

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrModuleNotFound))
	assert.Contains(t, err.Error(), "nope")
}
