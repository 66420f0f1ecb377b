package engine

import (
	"errors"
	"log/slog"

	"go.uber.org/multierr"

	"github.com/crimson-sun/armnn2perfetto/internal/engine/classifier"
	"github.com/crimson-sun/armnn2perfetto/internal/engine/emitter"
	"github.com/crimson-sun/armnn2perfetto/internal/engine/normalizer"
	"github.com/crimson-sun/armnn2perfetto/internal/engine/tracks"
	"github.com/crimson-sun/armnn2perfetto/internal/model"
)

// Result is the outcome of processing one run's events.
type Result struct {
	Spans        []model.OutputSpan
	Unrecognized int   // events whose label matched no marker
	Skipped      error // InvalidTimingErrors of skipped events, combined with multierr
}

// SkippedCount returns the number of events dropped for invalid timing.
func (r Result) SkippedCount() int {
	return len(multierr.Errors(r.Skipped))
}

// Engine orchestrates the classify → normalize → assign track → emit stages.
type Engine struct {
	classifier *classifier.Classifier
	normalizer *normalizer.Normalizer
	tracks     *tracks.Tracks
	emitter    *emitter.Emitter
	strict     bool
}

// New creates an Engine with the provided components. When strict is set an
// event with negative duration aborts processing; otherwise it is skipped.
func New(cls *classifier.Classifier, nrm *normalizer.Normalizer, trk *tracks.Tracks, emt *emitter.Emitter, strict bool) *Engine {
	return &Engine{
		classifier: cls,
		normalizer: nrm,
		tracks:     trk,
		emitter:    emt,
		strict:     strict,
	}
}

// Tracks returns the engine's track table.
func (e *Engine) Tracks() *tracks.Tracks {
	return e.tracks
}

// Process converts events into spans, preserving input order.
// A kernel without an explicit parent inherits the most recently emitted
// framework span.
func (e *Engine) Process(events []model.RawEvent) (Result, error) {
	res := Result{Spans: make([]model.OutputSpan, 0, len(events))}
	scope := ""

	for _, ev := range events {
		cat, ok := e.classifier.Classify(ev.Label)
		if !ok {
			res.Unrecognized++
			slog.Debug("skipping unrecognized event", "label", ev.Label)
			continue
		}

		var (
			kernel model.KernelName
			parent string
		)
		if cat.IsKernel() {
			kernel = e.normalizer.Normalize(ev.Label)
			parent = ev.Parent
			if parent == "" {
				parent = scope
			}
		}

		span, err := e.emitter.Emit(ev, cat, e.tracks.Assign(cat), kernel, parent)
		if err != nil {
			var timingErr *model.InvalidTimingError
			if e.strict || !errors.As(err, &timingErr) {
				return Result{}, err
			}
			res.Skipped = multierr.Append(res.Skipped, err)
			continue
		}

		if cat == model.FrameworkSpan {
			scope = span.Name
		}
		res.Spans = append(res.Spans, span)
	}
	return res, nil
}
