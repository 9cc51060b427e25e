package main

import (
	"testing"

	"github.com/arthur-debert/modinstall/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCommandRendersModules(t *testing.T) {
	cfg := testutil.CreateFile(t, t.TempDir(), "config.json", `{
  "modules": {
    "core": {"enabled": true, "description": "Core files",
      "operations": [{"type": "copy_dir", "source": "core", "target": "core"}]},
    "docs": {"enabled": false, "description": "Documentation",
      "operations": [{"type": "copy_dir", "source": "docs", "target": "docs"}]}
  }
}`)
	prev := configPath
	configPath = cfg
	t.Cleanup(func() { configPath = prev })

	cmd := newListCmd()
	require.NoError(t, cmd.RunE(cmd, nil))
}

func TestListCommandBadConfig(t *testing.T) {
	prev := configPath
	configPath = "does-not-exist.json"
	t.Cleanup(func() { configPath = prev })

	cmd := newListCmd()
	assert.Error(t, cmd.RunE(cmd, nil))
}
