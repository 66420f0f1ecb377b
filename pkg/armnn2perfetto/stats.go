package armnn2perfetto

import "github.com/crimson-sun/armnn2perfetto/internal/pipeline"

// Stats summarizes one conversion.
type Stats struct {
	InputBytes   int `json:"input_bytes"`
	Events       int `json:"events"`       // raw events found in the input
	Spans        int `json:"spans"`        // spans written
	Flows        int `json:"flows"`        // flow links written
	Unrecognized int `json:"unrecognized"` // events with no known marker
	Skipped      int `json:"skipped"`      // events dropped for negative duration
}

func statsFromPipeline(s pipeline.Stats) Stats {
	return Stats{
		InputBytes:   s.InputBytes,
		Events:       s.Events,
		Spans:        s.Spans,
		Flows:        s.Flows,
		Unrecognized: s.Unrecognized,
		Skipped:      s.Skipped,
	}
}
