package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/parbst"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := newApp(&stdout, &stderr)
	err := app.Run(append([]string{"bstbuild"}, args...))
	return stdout.String(), stderr.String(), err
}

func TestRunWithFlags(t *testing.T) {
	out, _, err := runApp(t, "--count", "5000", "--seed", "3", "--workers", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "BST v1.0 [Go]")
	assert.Contains(t, out, "configuration: 5000 values with seed of 3 with number of threads: 4 (static)")
	assert.Contains(t, out, "compute time: ")
	assert.Contains(t, out, "Mvalues/s")
	assert.Contains(t, out, "verified: 5000 nodes")
	assert.NotContains(t, out, "\x1b[", "report must not be colored when not writing to a terminal")
}

func TestRunWithPositionalArguments(t *testing.T) {
	out, _, err := runApp(t, "1000", "42", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "configuration: 1000 values with seed of 42 with number of threads: 3")
	assert.Contains(t, out, "verified: 1000 nodes")
}

func TestRunRejectsInvalidParameters(t *testing.T) {
	_, _, err := runApp(t, "--count", "0")
	require.ErrorIs(t, err, parbst.ErrInvalidConfig)

	_, _, err = runApp(t, "--workers", "0")
	require.ErrorIs(t, err, parbst.ErrInvalidConfig)

	_, _, err = runApp(t, "10", "1")
	require.ErrorIs(t, err, errUsage)

	_, _, err = runApp(t, "ten", "1", "2")
	require.ErrorIs(t, err, errUsage)

	_, _, err = runApp(t, "--schedule", "guided")
	require.ErrorIs(t, err, parbst.ErrInvalidConfig)

	_, _, err = runApp(t, "--trace", "verbose")
	require.Error(t, err)
}

func TestRunDynamicWithStatsAndProgress(t *testing.T) {
	out, errout, err := runApp(t, "-n", "20000", "-w", "6", "--schedule", "dynamic",
		"--batch", "500", "--stats", "--progress")
	require.NoError(t, err)
	assert.Contains(t, out, "(dynamic)")
	assert.Contains(t, out, "shape: 20000 nodes")
	assert.Contains(t, out, "contention: ")
	assert.Contains(t, out, "verified: 20000 nodes")
	assert.Contains(t, errout, "progress: 100% (20000 of 20000 values)")
}

func TestRunWritesDot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.dot")
	out, _, err := runApp(t, "-n", "50", "-w", "2", "--dot", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote DOT output")
	dot, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(dot), "strict digraph {"))
	assert.Equal(t, 50, strings.Count(string(dot), "label=")-strings.Count(string(dot), "label=\"\""))
}

func TestRunRefusesDotForLargeTrees(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.dot")
	_, _, err := runApp(t, "-n", "5000", "--dot", path)
	require.ErrorIs(t, err, parbst.ErrTreeTooLarge)
}
