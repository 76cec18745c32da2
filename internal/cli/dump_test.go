package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpBothSets(t *testing.T) {
	factDir := writeFactDir(t)

	buf := &bytes.Buffer{}
	cmd := NewDumpCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"reach", "-F", factDir})

	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "edge\n<s:Node,s:Node>")
	assert.Contains(t, out, "reachable\n<s:Node,s:Node>")
	assert.Contains(t, out, "a\tc")
}

func TestDumpOutputsOnly(t *testing.T) {
	factDir := writeFactDir(t)

	buf := &bytes.Buffer{}
	cmd := NewDumpCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"reach", "-F", factDir, "--outputs"})

	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "reachable")
	assert.NotContains(t, out, "edge\n")
}

func TestDumpNoRunSkipsEvaluation(t *testing.T) {
	factDir := writeFactDir(t)

	buf := &bytes.Buffer{}
	cmd := NewDumpCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"reach", "-F", factDir, "--outputs", "--no-run"})

	require.NoError(t, cmd.Execute())

	// Loaded but not evaluated: reachable dumps empty.
	body := strings.SplitN(buf.String(), "===============\n", 3)
	require.Len(t, body, 3)
	assert.Empty(t, body[1])
}

func TestDumpUnknownProgram(t *testing.T) {
	cmd := NewDumpCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"no-such-program"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestDumpMissingFacts(t *testing.T) {
	cmd := NewDumpCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"reach", "-F", t.TempDir()})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "load failed")
}
