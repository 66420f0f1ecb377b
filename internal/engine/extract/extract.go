// Package extract turns a recovered JSON document into an ordered list of
// raw events. Both ArmNN's nested profiler dump and a flat event list are
// understood.
package extract

import (
	"strings"

	"github.com/bytedance/sonic/ast"

	"github.com/crimson-sun/armnn2perfetto/internal/model"
)

const (
	wallClockStart = "Wall clock time (Start)"
	wallClockStop  = "Wall clock time (Stop)"
	eventsKey      = "events"
)

// Extractor walks a document in key order and emits raw events.
type Extractor struct {
	// FrameworkLabel is the label given to wall-clock spans found in a nested dump.
	FrameworkLabel string
	// KernelMarker is the key prefix identifying kernel measurements.
	KernelMarker string
}

// New creates an Extractor.
func New(frameworkLabel, kernelMarker string) *Extractor {
	return &Extractor{FrameworkLabel: frameworkLabel, KernelMarker: kernelMarker}
}

// Extract returns the events of doc in document order.
func (x *Extractor) Extract(doc *ast.Node) ([]model.RawEvent, error) {
	if list := eventList(doc); list != nil {
		return x.flat(list)
	}
	var events []model.RawEvent
	if err := x.walk(doc, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// eventList returns the flat event array of doc, or nil for a nested dump.
func eventList(doc *ast.Node) *ast.Node {
	switch doc.Type() {
	case ast.V_ARRAY:
		return doc
	case ast.V_OBJECT:
		if n := child(doc, eventsKey); n != nil && n.Type() == ast.V_ARRAY {
			return n
		}
	}
	return nil
}

// walk recurses through a nested ArmNN dump. A value holding both wall-clock
// start and stop measurements is a framework span named by its key; its
// direct kernel timers follow it, laid end to end from the span's start.
func (x *Extractor) walk(n *ast.Node, events *[]model.RawEvent) error {
	switch n.Type() {
	case ast.V_OBJECT, ast.V_ARRAY:
	default:
		return nil
	}

	var walkErr error
	err := n.ForEach(func(path ast.Sequence, v *ast.Node) bool {
		if path.Key != nil && v.Type() == ast.V_OBJECT {
			if start, stop, ok := wallClock(v); ok {
				*events = append(*events, model.RawEvent{
					Label:   x.FrameworkLabel,
					Name:    *path.Key,
					Start:   start,
					Stop:    stop,
					HasStop: true,
				})
				x.kernels(*path.Key, start, v, events)
			}
		}
		if walkErr = x.walk(v, events); walkErr != nil {
			return false
		}
		return true
	})
	if err != nil {
		return err
	}
	return walkErr
}

// kernels appends the kernel timers directly under a framework span.
func (x *Extractor) kernels(parent string, start float64, span *ast.Node, events *[]model.RawEvent) {
	cursor := start
	span.ForEach(func(path ast.Sequence, v *ast.Node) bool {
		if path.Key == nil || !strings.HasPrefix(*path.Key, x.KernelMarker) {
			return true
		}
		dur, ok := firstRaw(v)
		if !ok {
			return true
		}
		*events = append(*events, model.RawEvent{
			Label:    *path.Key,
			Name:     *path.Key,
			Start:    cursor,
			Duration: dur,
			Parent:   parent,
		})
		cursor += dur
		return true
	})
}

// wallClock reports the start and stop of a framework span measurement block.
func wallClock(v *ast.Node) (start, stop float64, ok bool) {
	var haveStart, haveStop bool
	v.ForEach(func(path ast.Sequence, m *ast.Node) bool {
		if path.Key == nil {
			return true
		}
		switch {
		case !haveStart && strings.HasPrefix(*path.Key, wallClockStart):
			start, haveStart = firstRaw(m)
		case !haveStop && strings.HasPrefix(*path.Key, wallClockStop):
			stop, haveStop = firstRaw(m)
		}
		return !(haveStart && haveStop)
	})
	return start, stop, haveStart && haveStop
}

// firstRaw returns raw[0] of a measurement object when it is numeric.
func firstRaw(m *ast.Node) (float64, bool) {
	if m.Type() != ast.V_OBJECT {
		return 0, false
	}
	raw := child(m, "raw")
	if raw == nil || raw.Type() != ast.V_ARRAY {
		return 0, false
	}
	var (
		val float64
		ok  bool
	)
	raw.ForEach(func(_ ast.Sequence, n *ast.Node) bool {
		val, ok = number(n)
		return false
	})
	return val, ok
}

// flat converts a flat list of event records.
func (x *Extractor) flat(list *ast.Node) ([]model.RawEvent, error) {
	var events []model.RawEvent
	err := list.ForEach(func(_ ast.Sequence, rec *ast.Node) bool {
		if rec.Type() != ast.V_OBJECT {
			return true
		}
		events = append(events, record(rec))
		return true
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

func record(rec *ast.Node) model.RawEvent {
	var ev model.RawEvent
	rec.ForEach(func(path ast.Sequence, v *ast.Node) bool {
		if path.Key == nil {
			return true
		}
		switch *path.Key {
		case "label":
			ev.Label, _ = str(v)
		case "name":
			ev.Name, _ = str(v)
		case "parent":
			ev.Parent, _ = str(v)
		case "start", "ts":
			ev.Start, _ = number(v)
		case "stop", "end":
			ev.Stop, ev.HasStop = number(v)
		case "dur", "duration":
			ev.Duration, _ = number(v)
		case "args":
			if v.Type() == ast.V_OBJECT {
				if m, err := v.Map(); err == nil {
					ev.Attrs = m
				}
			}
		}
		return true
	})
	if ev.Label == "" {
		ev.Label = ev.Name
	}
	return ev
}

func child(n *ast.Node, key string) *ast.Node {
	var found *ast.Node
	n.ForEach(func(path ast.Sequence, v *ast.Node) bool {
		if path.Key != nil && *path.Key == key {
			found = v
			return false
		}
		return true
	})
	return found
}

func number(n *ast.Node) (float64, bool) {
	if n.Type() != ast.V_NUMBER {
		return 0, false
	}
	f, err := n.Float64()
	return f, err == nil
}

func str(n *ast.Node) (string, bool) {
	if n.Type() != ast.V_STRING {
		return "", false
	}
	s, err := n.String()
	return s, err == nil
}
