package cmd

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunUninstallDeclined(t *testing.T) {
	prev := uninstallYes
	t.Cleanup(func() { uninstallYes = prev })
	uninstallYes = false

	cmd, out := newTestCmd(t)
	cmd.SetIn(strings.NewReader("n\n"))
	require.NoError(t, runUninstall(cmd, nil))

	assert.Contains(t, out.String(), "Aborted.")

	exe, err := os.Executable()
	require.NoError(t, err)
	_, err = os.Stat(exe)
	assert.NoError(t, err, "the binary must survive a declined prompt")
}
