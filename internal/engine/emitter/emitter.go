package emitter

import (
	"strings"

	"github.com/crimson-sun/armnn2perfetto/internal/model"
)

// Emitter turns classified raw events into output spans.
type Emitter struct {
	PID int
}

// New creates an Emitter writing every span under pid.
func New(pid int) *Emitter {
	return &Emitter{PID: pid}
}

// Emit builds the span for ev. kernel is ignored for framework spans.
// parent is the nearest enclosing framework span name, or "" when none is in scope.
// A negative duration yields *model.InvalidTimingError.
func (e *Emitter) Emit(ev model.RawEvent, cat model.Category, track model.Track, kernel model.KernelName, parent string) (model.OutputSpan, error) {
	dur := ev.Elapsed()
	if dur < 0 {
		return model.OutputSpan{}, &model.InvalidTimingError{Label: ev.Label, Start: ev.Start, Duration: dur}
	}

	args := make(map[string]any, len(ev.Attrs)+len(kernel.Attrs)+1)
	for k, v := range ev.Attrs {
		args[k] = v
	}

	var name string
	if cat == model.FrameworkSpan {
		name = strings.TrimSpace(ev.Name)
		if name == "" {
			name = strings.TrimSpace(ev.Label)
		}
	} else {
		name = kernel.Name
		for k, v := range kernel.Attrs {
			args[k] = v
		}
	}
	if parent != "" && cat.IsKernel() {
		args[model.AttrParent] = parent
	}

	return model.OutputSpan{
		Name:     name,
		Category: cat,
		Cat:      cat.Tag(),
		Start:    ev.Start,
		Duration: dur,
		PID:      e.PID,
		TID:      track.ID,
		Args:     args,
	}, nil
}
