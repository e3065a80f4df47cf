package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes the root command with args in an isolated config dir.
func runCLI(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config-dir", dir, "--log-format", "text"}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmd := newRootCommand()
	names := []string{}
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"serve", "generate", "export", "token"})
}

func TestRootCommand_InvalidLogFormat(t *testing.T) {
	_, _, err := runCLI(t, t.TempDir(), "--log-format", "xml", "generate", "severity")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log format")
}

func TestRootCommand_ConfigAnchors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".evaldash.yaml"),
		[]byte("data:\n  anchors: anchors.yaml\n  seed: 9\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "anchors.yaml"),
		[]byte("domains:\n  - name: Robotics\n    win_rate: 44\n    volume: 12\n"), 0o644))

	out, _, err := runCLI(t, dir, "generate", "domains")
	require.NoError(t, err)
	assert.Contains(t, out, "Robotics")
	assert.NotContains(t, out, "Finance")
}

func TestRootCommand_BadAnchors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".evaldash.yaml"),
		[]byte("data:\n  anchors: missing.yaml\n"), 0o644))

	_, _, err := runCLI(t, dir, "generate", "domains")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data.anchors")
}

func TestRootCommand_DebugLogging(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".evaldash.yaml"), []byte("server:\n  port: 4000\n"), 0o644))

	_, stderr, err := runCLI(t, dir, "--debug", "generate", "severity")
	require.NoError(t, err)
	assert.Contains(t, stderr, "loaded config")
}
