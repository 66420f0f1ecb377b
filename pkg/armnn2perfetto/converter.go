package armnn2perfetto

import (
	"context"
	"fmt"

	"github.com/crimson-sun/armnn2perfetto/internal/config"
	"github.com/crimson-sun/armnn2perfetto/internal/output"
	"github.com/crimson-sun/armnn2perfetto/internal/output/file"
	"github.com/crimson-sun/armnn2perfetto/internal/pipeline"
	filesrc "github.com/crimson-sun/armnn2perfetto/internal/source/file"
)

// Converter turns ArmNN profiler dumps into Perfetto traces.
// A Converter holds no per-run state; each call starts a fresh flow counter.
type Converter struct {
	cfg      config.Config
	pipeline *pipeline.Pipeline
}

// New creates a Converter with default settings adjusted by opts.
func New(opts ...Option) *Converter {
	cfg := config.Default()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Converter{cfg: cfg, pipeline: pipeline.FromConfig(cfg)}
}

// Convert converts an in-memory dump and returns the encoded trace.
// Text around the JSON document is ignored.
func (c *Converter) Convert(dump []byte) ([]byte, Stats, error) {
	doc, stats, err := c.pipeline.Convert(dump)
	if err != nil {
		return nil, statsFromPipeline(stats), fmt.Errorf("armnn2perfetto: %w", err)
	}
	data, err := output.Encode(doc, c.cfg.Pretty)
	if err != nil {
		return nil, statsFromPipeline(stats), fmt.Errorf("armnn2perfetto: %w", err)
	}
	return data, statsFromPipeline(stats), nil
}

// ConvertFile converts the dump at in and writes the trace to out.
// A ".gz" suffix on out compresses the trace; gzip input is detected.
// out is left untouched when conversion fails.
func (c *Converter) ConvertFile(ctx context.Context, in, out string) (Stats, error) {
	stats, err := c.pipeline.Run(ctx, filesrc.New(in), file.New(out, file.WithPretty(c.cfg.Pretty)))
	if err != nil {
		return statsFromPipeline(stats), fmt.Errorf("armnn2perfetto: %w", err)
	}
	return statsFromPipeline(stats), nil
}
