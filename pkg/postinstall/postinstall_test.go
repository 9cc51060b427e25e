package postinstall

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/modinstall/pkg/auditlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectPlatform(t *testing.T) {
	p := DetectPlatform()
	assert.NotEmpty(t, p.OS)
	assert.NotEmpty(t, p.Arch)
}

func TestRcFileForShell(t *testing.T) {
	home := t.TempDir()

	tests := []struct {
		name     string
		shell    string
		expected string
	}{
		{"zsh", "/bin/zsh", ".zshrc"},
		{"bash without profile", "/bin/bash", ".bashrc"},
		{"unknown shell", "/bin/fish", ".profile"},
		{"empty shell", "", ".profile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, filepath.Join(home, tt.expected), rcFileForShell(home, tt.shell))
		})
	}
}

func TestRcFileForBashPrefersBashProfile(t *testing.T) {
	home := t.TempDir()
	profile := filepath.Join(home, ".bash_profile")
	if err := os.WriteFile(profile, nil, 0644); err != nil {
		t.Fatalf("Failed to create %s: %v", profile, err)
	}

	assert.Equal(t, profile, rcFileForShell(home, "/usr/local/bin/bash"))
}

func TestInstallNpmPackagesEmptyListIsNoOp(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "install.log")

	InstallNpmPackages(nil, auditlog.New(logPath))

	_, err := os.Stat(logPath)
	assert.True(t, os.IsNotExist(err))
}

func TestInstallNpmPackagesSkipsWhenNpmMissing(t *testing.T) {
	// An empty directory as PATH guarantees the npm lookup fails.
	t.Setenv("PATH", t.TempDir())
	logPath := filepath.Join(t.TempDir(), "install.log")

	InstallNpmPackages([]string{"left-pad"}, auditlog.New(logPath))

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "npm not found")
}

func TestPathContains(t *testing.T) {
	assert.True(t, pathContains("/usr/bin:/home/u/bin:/bin", "/home/u/bin"))
	assert.False(t, pathContains("/usr/bin:/home/u/binx", "/home/u/bin"))
	assert.False(t, pathContains("", "/home/u/bin"))
}
