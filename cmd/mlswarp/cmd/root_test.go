package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := GetRootCommand()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	// Flag values persist across Execute calls on the shared command.
	_ = root.PersistentFlags().Set("version", "false")
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestRootVersionFlag(t *testing.T) {
	out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "mlswarp")
}

func TestRootShowsHelpWithoutArgs(t *testing.T) {
	out, err := execute(t)
	require.NoError(t, err)
	assert.Contains(t, out, "warp")
	assert.Contains(t, out, "moving least squares")
}

func TestWarpCommandRegistered(t *testing.T) {
	root := GetRootCommand()
	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "warp")
}
