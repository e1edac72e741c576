package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FOCUS_HOME", dir)
	t.Setenv("FOCUS_HOSTS_FILE", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.Dir)
	assert.Equal(t, DefaultHostsFile(), cfg.HostsFile)
	assert.Equal(t, []string{"127.0.0.1"}, cfg.Addresses)
	assert.True(t, cfg.IncludeWWW)
	assert.True(t, cfg.FlushDNS)
	assert.Equal(t, filepath.Join(dir, "domains.txt"), cfg.DomainsFile())
	assert.Equal(t, filepath.Join(dir, "focus.log"), cfg.LogFile())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FOCUS_HOME", dir)
	t.Setenv("FOCUS_HOSTS_FILE", "")

	content := `
hosts_file: /tmp/hosts
addresses: ["0.0.0.0", "::1"]
include_www: false
log:
  file: ""
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/hosts", cfg.HostsFile)
	assert.Equal(t, []string{"0.0.0.0", "::1"}, cfg.Addresses)
	assert.False(t, cfg.IncludeWWW)
	assert.True(t, cfg.FlushDNS, "absent keys keep their defaults")
	assert.Empty(t, cfg.LogFile())
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FOCUS_HOME", dir)
	t.Setenv("FOCUS_HOSTS_FILE", "/srv/hosts")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/srv/hosts", cfg.HostsFile)
}

func TestLoadRejectsBadAddress(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FOCUS_HOME", dir)
	t.Setenv("FOCUS_HOSTS_FILE", "")

	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addresses: [not-an-ip]\n"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "invalid redirect address")
}

func TestLoadRejectsBadYAML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FOCUS_HOME", dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("addresses: [\n"), 0o644))

	_, err := Load("")
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestEnsureDir(t *testing.T) {
	t.Setenv("SUDO_UID", "")
	t.Setenv("SUDO_GID", "")
	dir := filepath.Join(t.TempDir(), "home", ".focus")

	require.NoError(t, EnsureDir(dir))
	assert.DirExists(t, dir)
	require.NoError(t, EnsureDir(dir), "an existing directory is left alone")
}

func TestChownToInvokerOutsideSudo(t *testing.T) {
	t.Setenv("SUDO_UID", "")
	t.Setenv("SUDO_GID", "")
	path := filepath.Join(t.TempDir(), "domains.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	assert.NoError(t, ChownToInvoker(path))
}
