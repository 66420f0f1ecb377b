// Package flows links framework spans to the kernel spans they enclose.
//
// Pairing is by name and position only. A kernel is attached to every
// framework span whose name matches its parent attribute and whose window
// (up to the next framework span of the same name) contains it. With
// overlapping children or interleaved windows a kernel can end up on the
// wrong flow id. The links are a visual hint, not a causal proof.
package flows

import "github.com/crimson-sun/armnn2perfetto/internal/model"

// Counter hands out flow ids for one run. Not safe for concurrent use.
type Counter struct {
	next int64
}

// NewCounter returns a counter whose first id is start.
func NewCounter(start int64) *Counter {
	return &Counter{next: start}
}

// Next returns the next id.
func (c *Counter) Next() int64 {
	id := c.next
	c.next++
	return id
}

// Synthesize returns one link per (framework span, kernel span) pair, in
// span order, drawing ids from counter.
func Synthesize(spans []model.OutputSpan, counter *Counter) []model.FlowLink {
	var links []model.FlowLink
	for i, parent := range spans {
		if parent.Category != model.FrameworkSpan {
			continue
		}
		for j := i + 1; j < len(spans); j++ {
			child := spans[j]
			if child.Category == model.FrameworkSpan {
				if child.Name == parent.Name {
					break
				}
				continue
			}
			if child.Parent() != parent.Name {
				continue
			}
			links = append(links, model.FlowLink{
				ID: counter.Next(),
				From: model.FlowEndpoint{
					PID:       parent.PID,
					TID:       parent.TID,
					Timestamp: parent.End(),
					Span:      i,
				},
				To: model.FlowEndpoint{
					PID:       child.PID,
					TID:       child.TID,
					Timestamp: child.Start,
					Span:      j,
				},
			})
		}
	}
	return links
}
