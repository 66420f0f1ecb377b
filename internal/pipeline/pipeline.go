package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"go.uber.org/multierr"

	"github.com/crimson-sun/armnn2perfetto/internal/config"
	"github.com/crimson-sun/armnn2perfetto/internal/engine"
	"github.com/crimson-sun/armnn2perfetto/internal/engine/classifier"
	"github.com/crimson-sun/armnn2perfetto/internal/engine/emitter"
	"github.com/crimson-sun/armnn2perfetto/internal/engine/extract"
	"github.com/crimson-sun/armnn2perfetto/internal/engine/flows"
	"github.com/crimson-sun/armnn2perfetto/internal/engine/normalizer"
	"github.com/crimson-sun/armnn2perfetto/internal/engine/recovery"
	"github.com/crimson-sun/armnn2perfetto/internal/engine/tracks"
	"github.com/crimson-sun/armnn2perfetto/internal/model"
	"github.com/crimson-sun/armnn2perfetto/internal/output"
	"github.com/crimson-sun/armnn2perfetto/internal/perfetto"
	"github.com/crimson-sun/armnn2perfetto/internal/source"
)

// Options controls what the pipeline emits.
type Options struct {
	Flows    bool
	Document perfetto.Options
}

// Stats summarizes one conversion.
type Stats struct {
	InputBytes   int
	Events       int // raw events extracted
	Spans        int
	Flows        int
	Unrecognized int
	Skipped      int // events dropped for invalid timing
}

// Pipeline connects extraction, the engine and flow synthesis into a
// one-shot conversion.
type Pipeline struct {
	extractor *extract.Extractor
	engine    *engine.Engine
	opts      Options
}

// New creates a Pipeline from the given components.
func New(x *extract.Extractor, eng *engine.Engine, opts Options) *Pipeline {
	return &Pipeline{
		extractor: x,
		engine:    eng,
		opts:      opts,
	}
}

// FromConfig wires a Pipeline from configuration.
func FromConfig(cfg config.Config) *Pipeline {
	m := cfg.Markers
	eng := engine.New(
		classifier.New(m.Framework, m.Kernel, m.GemmToken),
		normalizer.New(m.Kernel, m.OrdinalSeparator),
		tracks.New(cfg.Tracks.Framework, cfg.Tracks.Gemm, cfg.Tracks.Other),
		emitter.New(cfg.PID),
		cfg.StrictTiming,
	)
	return New(extract.New(m.Framework, m.Kernel), eng, Options{
		Flows: cfg.Flows,
		Document: perfetto.Options{
			ProcessName:     cfg.ProcessName,
			PID:             cfg.PID,
			DisplayTimeUnit: cfg.DisplayTimeUnit,
			BeginEnd:        cfg.BeginEnd,
		},
	})
}

// Convert turns input text into a trace document. Nothing is written.
func (p *Pipeline) Convert(text []byte) (perfetto.Document, Stats, error) {
	stats := Stats{InputBytes: len(text)}

	doc, err := recovery.Recover(string(text))
	if err != nil {
		return perfetto.Document{}, stats, fmt.Errorf("pipeline recover: %w", err)
	}

	events, err := p.extractor.Extract(&doc)
	if err != nil {
		return perfetto.Document{}, stats, fmt.Errorf("pipeline extract: %w", err)
	}
	stats.Events = len(events)

	res, err := p.engine.Process(events)
	if err != nil {
		return perfetto.Document{}, stats, fmt.Errorf("pipeline process: %w", err)
	}
	stats.Spans = len(res.Spans)
	stats.Unrecognized = res.Unrecognized
	stats.Skipped = res.SkippedCount()
	for _, skipErr := range multierr.Errors(res.Skipped) {
		slog.Warn("skipping event", "error", skipErr)
	}

	var links []model.FlowLink
	if p.opts.Flows {
		links = flows.Synthesize(res.Spans, flows.NewCounter(1))
	}
	stats.Flows = len(links)

	return perfetto.Build(res.Spans, links, p.engine.Tracks().All(), p.opts.Document), stats, nil
}

// Run reads src, converts it and writes the document to out.
// out is not written when any stage fails.
func (p *Pipeline) Run(ctx context.Context, src source.Source, out output.Output) (Stats, error) {
	text, err := src.Read(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("pipeline read: %w", err)
	}
	slog.Debug("read input", "source", src.Name(), "size", humanize.Bytes(uint64(len(text))))

	doc, stats, err := p.Convert(text)
	if err != nil {
		return stats, err
	}

	if err := out.Write(ctx, doc); err != nil {
		return stats, fmt.Errorf("pipeline output: %w", err)
	}
	if err := out.Close(); err != nil {
		return stats, fmt.Errorf("pipeline output: %w", err)
	}

	slog.Info("trace converted",
		"source", src.Name(),
		"input", humanize.Bytes(uint64(stats.InputBytes)),
		"events", stats.Events,
		"spans", stats.Spans,
		"flows", stats.Flows,
		"unrecognized", stats.Unrecognized,
		"skipped", stats.Skipped,
	)
	return stats, nil
}
