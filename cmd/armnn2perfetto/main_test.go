package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/armnn2perfetto/internal/engine/testdata"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}

func writeInput(t *testing.T, dir string) string {
	t.Helper()
	in := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(in, []byte(testdata.NestedTrace), 0o644))
	return in
}

func countPhase(t *testing.T, path, phase string) int {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc struct {
		TraceEvents []struct {
			Phase string `json:"ph"`
		} `json:"traceEvents"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	n := 0
	for _, ev := range doc.TraceEvents {
		if ev.Phase == phase {
			n++
		}
	}
	return n
}

func TestRootConvertsFile(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir)
	out := filepath.Join(dir, "perfetto_trace.json")

	require.NoError(t, execute(t, "-i", in, "-o", out, "--flows"))
	assert.Equal(t, 5, countPhase(t, out, "X"))
	assert.Equal(t, 3, countPhase(t, out, "s"))
}

func TestRootBeginEnd(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir)
	out := filepath.Join(dir, "trace.json")

	require.NoError(t, execute(t, "--input", in, "--output", out, "--begin-end"))
	assert.Equal(t, 0, countPhase(t, out, "X"))
	assert.Equal(t, 5, countPhase(t, out, "B"))
	assert.Equal(t, 5, countPhase(t, out, "E"))
}

func TestRootRequiresInputAndOutput(t *testing.T) {
	err := execute(t, "-o", filepath.Join(t.TempDir(), "trace.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no input")

	err = execute(t, "-i", "out.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no output")
}

func TestRootRejectsPositionalArgs(t *testing.T) {
	assert.Error(t, execute(t, "out.json"))
}

func TestRootMalformedInput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "out.json")
	out := filepath.Join(dir, "trace.json")
	require.NoError(t, os.WriteFile(in, []byte("profiling disabled"), 0o644))

	require.Error(t, execute(t, "-i", in, "-o", out))
	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}

func TestRootConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir)
	out := filepath.Join(dir, "trace.json")
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("flows: true\npretty: false\n"), 0o644))
	t.Setenv("ARMNN2PERFETTO_INPUT", in)
	t.Setenv("ARMNN2PERFETTO_OUTPUT", out)

	require.NoError(t, execute(t, "--config", cfgPath))
	assert.Equal(t, 3, countPhase(t, out, "s"))
}

func TestRootFlagOverridesConfig(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir)
	out := filepath.Join(dir, "trace.json")
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("flows: true\n"), 0o644))

	require.NoError(t, execute(t, "--config", cfgPath, "-i", in, "-o", out, "--flows=false"))
	assert.Equal(t, 0, countPhase(t, out, "s"))
}

func TestRootInvalidLogFormat(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir)
	err := execute(t, "-i", in, "-o", filepath.Join(dir, "trace.json"), "--log-format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log format")
}
