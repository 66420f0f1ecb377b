package armnn2perfetto

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/armnn2perfetto/internal/engine/testdata"
	"github.com/crimson-sun/armnn2perfetto/internal/model"
)

type traceFile struct {
	TraceEvents []struct {
		Name  string         `json:"name"`
		Phase string         `json:"ph"`
		TID   *int           `json:"tid"`
		Args  map[string]any `json:"args"`
	} `json:"traceEvents"`
	DisplayTimeUnit string `json:"displayTimeUnit"`
}

func TestConvertNestedDump(t *testing.T) {
	data, stats, err := New().Convert([]byte(testdata.NestedTrace))
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Spans)
	assert.Equal(t, 0, stats.Flows)

	var tf traceFile
	require.NoError(t, json.Unmarshal(data, &tf))
	assert.Equal(t, "ns", tf.DisplayTimeUnit)
	assert.Len(t, tf.TraceEvents, 9)
	assert.True(t, strings.HasSuffix(string(data), "\n"))
}

func TestConvertCompact(t *testing.T) {
	data, _, err := New(WithPretty(false)).Convert([]byte(testdata.NestedTrace))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "\n"))
}

func TestConvertDeterministic(t *testing.T) {
	c := New(WithFlows(true))
	a, _, err := c.Convert([]byte(testdata.NestedTrace))
	require.NoError(t, err)
	b, _, err := c.Convert([]byte(testdata.NestedTrace))
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestConvertMalformed(t *testing.T) {
	_, _, err := New().Convert([]byte("Profiling is disabled"))
	var mErr *model.MalformedInputError
	assert.True(t, errors.As(err, &mErr), "got %v", err)
}

func TestConvertStrictTiming(t *testing.T) {
	_, stats, err := New().Convert([]byte(testdata.FlatTrace))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Skipped)

	_, _, err = New(WithStrictTiming(true)).Convert([]byte(testdata.FlatTrace))
	var tErr *model.InvalidTimingError
	assert.True(t, errors.As(err, &tErr), "got %v", err)
}

func TestConvertProcessName(t *testing.T) {
	data, _, err := New(WithProcessName("resnet50")).Convert([]byte(testdata.NestedTrace))
	require.NoError(t, err)

	var tf traceFile
	require.NoError(t, json.Unmarshal(data, &tf))
	assert.Equal(t, "process_name", tf.TraceEvents[0].Name)
	assert.Equal(t, "resnet50", tf.TraceEvents[0].Args["name"])
}

func TestWithMarkersKeepsDefaultsForEmpty(t *testing.T) {
	c := New(WithMarkers("", "", "winograd", ""))
	assert.Equal(t, "winograd", c.cfg.Markers.GemmToken)
	assert.Equal(t, "OpenClKernelTimer", c.cfg.Markers.Kernel)
	assert.Equal(t, ":", c.cfg.Markers.OrdinalSeparator)
}

func TestWithMarkersGemmToken(t *testing.T) {
	dump := `[{"label": "OpenClKernelTimer/0: winograd_input_transform", "start": 0, "dur": 10}]`
	data, _, err := New(WithMarkers("", "", "winograd", "")).Convert([]byte(dump))
	require.NoError(t, err)

	var tf traceFile
	require.NoError(t, json.Unmarshal(data, &tf))
	last := tf.TraceEvents[len(tf.TraceEvents)-1]
	assert.Equal(t, "winograd_input_transform", last.Name)
	require.NotNil(t, last.TID)
	assert.Equal(t, 1, *last.TID)
}

func TestConvertFileGzip(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "out.json")
	out := filepath.Join(dir, "trace.json.gz")
	require.NoError(t, os.WriteFile(in, []byte(testdata.NestedTrace), 0o644))

	stats, err := New(WithFlows(true)).ConvertFile(context.Background(), in, out)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Flows)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	zr, err := gzip.NewReader(f)
	require.NoError(t, err)
	defer zr.Close()

	var tf traceFile
	require.NoError(t, json.NewDecoder(zr).Decode(&tf))
	assert.Len(t, tf.TraceEvents, 15)
}

func TestConvertFileMissingInput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "trace.json")

	_, err := New().ConvertFile(context.Background(), filepath.Join(dir, "missing.json"), out)
	require.Error(t, err)
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestTracksFollowConfig(t *testing.T) {
	tracks := New().Tracks()
	require.Len(t, tracks, 3)
	assert.Equal(t, Track{ID: 1, Label: "GEMM MM Kernels"}, tracks[1])
}
