//go:build unix

package app

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstRunUnderSudoHandsFocusDirToUser(t *testing.T) {
	if os.Geteuid() != 0 {
		t.Skip("handing files to another user needs root")
	}
	dir := filepath.Join(t.TempDir(), ".focus")
	t.Setenv("FOCUS_HOME", dir)
	t.Setenv("FOCUS_HOSTS_FILE", "")
	t.Setenv("SUDO_UID", "1234")
	t.Setenv("SUDO_GID", "1234")

	rt, err := NewRuntime(Options{})
	require.NoError(t, err)
	_, err = rt.BlockList.Ensure()
	require.NoError(t, err)

	for _, path := range []string{dir, rt.Config.DomainsFile(), rt.Config.LogFile()} {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.EqualValues(t, 1234, info.Sys().(*syscall.Stat_t).Uid, path)
	}
}
