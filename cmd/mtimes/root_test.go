package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/csotherden/gorgonia-mtimes/mtimes"
)

const runFile = `
[log]
level = "off"
[a]
data = [1, 2, 3, 4, 5, 6, 7, 8]
[b]
cols = 2
data = [1, 0, 0, 0, 0, 1, 1, 1]
`

func execute(t *testing.T, content string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("MTIMES_LOG_LEVEL", "")
	t.Setenv("MTIMES_BACKEND", "")
	return executeWithEnv(t, content, args...)
}

// executeWithEnv runs the root command without resetting MTIMES_* variables.
func executeWithEnv(t *testing.T, content string, args ...string) (string, error) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "run.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", path}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRootPrintsProductForEveryBackend(t *testing.T) {
	want := "C_size = [2 2]\n1 15\n2 18\n"
	for _, backend := range []string{"kernel", "engine", "graph"} {
		out, err := execute(t, runFile, "--backend", backend)
		require.NoError(t, err, backend)
		require.Equal(t, want, out, backend)
	}
}

func TestRootEmptyB(t *testing.T) {
	content := `
[log]
level = "off"
[a]
data = [1, 2, 3, 4, 5, 6, 7, 8]
[b]
cols = 0
`
	for _, backend := range []string{"kernel", "engine", "graph"} {
		out, err := execute(t, content, "--backend", backend)
		require.NoError(t, err, backend)
		require.Equal(t, "C_size = [2 0]\n", out, backend)
	}
}

func TestRootBackendFlagOverridesEnv(t *testing.T) {
	t.Setenv("MTIMES_LOG_LEVEL", "")
	t.Setenv("MTIMES_BACKEND", "gpu")

	out, err := executeWithEnv(t, runFile, "--backend", "kernel")
	require.NoError(t, err)
	require.Equal(t, "C_size = [2 2]\n1 15\n2 18\n", out)

	_, err = executeWithEnv(t, runFile)
	require.Error(t, err)
}

func TestRootDimensionMismatch(t *testing.T) {
	content := `
[log]
level = "off"
[a]
data = [1, 2, 3, 4, 5, 6, 7, 8]
[b]
rows = 3
cols = 1
data = [1, 2, 3]
`
	for _, backend := range []string{"kernel", "engine"} {
		_, err := execute(t, content, "--backend", backend)
		require.ErrorIs(t, err, mtimes.ErrDimensionMismatch, backend)
	}
}

func TestRootRequiresConfig(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(nil)
	require.Error(t, cmd.Execute())
}

func TestRootRejectsUnknownBackendFlag(t *testing.T) {
	_, err := execute(t, runFile, "--backend", "gpu")
	require.Error(t, err)
}
