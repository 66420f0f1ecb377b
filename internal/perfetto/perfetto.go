// Package perfetto builds Chrome JSON trace documents as accepted by the
// Perfetto UI and chrome://tracing.
package perfetto

import "github.com/crimson-sun/armnn2perfetto/internal/model"

// Phase is the discriminator of a trace event.
type Phase string

const (
	PhaseBegin      Phase = "B"
	PhaseEnd        Phase = "E"
	PhaseComplete   Phase = "X"
	PhaseFlowStart  Phase = "s"
	PhaseFlowFinish Phase = "f"
	PhaseMetadata   Phase = "M"
)

const flowCategory = "flow"

// Document is the top-level trace file.
type Document struct {
	TraceEvents     []Event `json:"traceEvents"`
	DisplayTimeUnit string  `json:"displayTimeUnit,omitempty"`
}

// Event is one entry of traceEvents. Optional fields are pointers so that a
// zero timestamp or thread id is still written. Args is always present.
type Event struct {
	Name      string         `json:"name,omitempty"`
	Category  string         `json:"cat,omitempty"`
	Phase     Phase          `json:"ph"`
	Timestamp *float64       `json:"ts,omitempty"`
	Duration  *float64       `json:"dur,omitempty"`
	ProcessID int            `json:"pid"`
	ThreadID  *int           `json:"tid,omitempty"`
	ID        *int64         `json:"id,omitempty"`
	BindPoint string         `json:"bp,omitempty"`
	Args      map[string]any `json:"args"`
}

// Options controls document layout.
type Options struct {
	ProcessName     string
	PID             int
	DisplayTimeUnit string
	// BeginEnd writes each span as a B/E pair instead of one X event.
	BeginEnd bool
}

// Build assembles the document: process and thread metadata, then spans in
// order, then flow start/finish pairs.
func Build(spans []model.OutputSpan, links []model.FlowLink, trackList []model.Track, opts Options) Document {
	n := 1 + len(trackList) + len(spans) + 2*len(links)
	if opts.BeginEnd {
		n += len(spans)
	}
	events := make([]Event, 0, n)

	events = append(events, Event{
		Name:      "process_name",
		Phase:     PhaseMetadata,
		ProcessID: opts.PID,
		Args:      map[string]any{"name": opts.ProcessName},
	})
	for _, tr := range trackList {
		events = append(events, Event{
			Name:      "thread_name",
			Phase:     PhaseMetadata,
			ProcessID: opts.PID,
			ThreadID:  ptr(tr.ID),
			Args:      map[string]any{"name": tr.Label},
		})
	}

	for _, s := range spans {
		if opts.BeginEnd {
			events = append(events, beginEnd(s)...)
			continue
		}
		events = append(events, Event{
			Name:      s.Name,
			Category:  s.Cat,
			Phase:     PhaseComplete,
			Timestamp: ptr(s.Start),
			Duration:  ptr(s.Duration),
			ProcessID: s.PID,
			ThreadID:  ptr(s.TID),
			Args:      s.Args,
		})
	}

	for _, l := range links {
		events = append(events,
			Event{
				Name:      flowCategory,
				Category:  flowCategory,
				Phase:     PhaseFlowStart,
				Timestamp: ptr(l.From.Timestamp),
				ProcessID: l.From.PID,
				ThreadID:  ptr(l.From.TID),
				ID:        ptr(l.ID),
				Args:      map[string]any{},
			},
			Event{
				Name:      flowCategory,
				Category:  flowCategory,
				Phase:     PhaseFlowFinish,
				Timestamp: ptr(l.To.Timestamp),
				ProcessID: l.To.PID,
				ThreadID:  ptr(l.To.TID),
				ID:        ptr(l.ID),
				BindPoint: "e",
				Args:      map[string]any{},
			},
		)
	}

	return Document{TraceEvents: events, DisplayTimeUnit: opts.DisplayTimeUnit}
}

func beginEnd(s model.OutputSpan) []Event {
	return []Event{
		{
			Name:      s.Name,
			Category:  s.Cat,
			Phase:     PhaseBegin,
			Timestamp: ptr(s.Start),
			ProcessID: s.PID,
			ThreadID:  ptr(s.TID),
			Args:      s.Args,
		},
		{
			Name:      s.Name,
			Category:  s.Cat,
			Phase:     PhaseEnd,
			Timestamp: ptr(s.End()),
			ProcessID: s.PID,
			ThreadID:  ptr(s.TID),
			Args:      map[string]any{},
		},
	}
}

func ptr[T any](v T) *T {
	return &v
}
