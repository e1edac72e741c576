//go:build unix

package config

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDirUnderSudo(t *testing.T) {
	if os.Geteuid() != 0 {
		t.Skip("handing files to another user needs root")
	}
	t.Setenv("SUDO_UID", "1234")
	t.Setenv("SUDO_GID", "1234")
	dir := filepath.Join(t.TempDir(), ".focus")

	require.NoError(t, EnsureDir(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	st := info.Sys().(*syscall.Stat_t)
	assert.EqualValues(t, 1234, st.Uid)
	assert.EqualValues(t, 1234, st.Gid)
}
