package model

// RawEvent is the intermediate type produced by extraction and consumed by the engine.
type RawEvent struct {
	Label    string         // marker-bearing label used for classification
	Name     string         // owning key or display name (framework spans)
	Start    float64        // start timestamp in trace units (us)
	Stop     float64        // stop timestamp, valid when HasStop is set
	HasStop  bool
	Duration float64        // explicit duration, used when HasStop is false
	Parent   string         // enclosing framework span name, if known at extraction
	Attrs    map[string]any // source-specific attributes
}

// Elapsed returns the event duration from whichever timing representation it carries.
func (e RawEvent) Elapsed() float64 {
	if e.HasStop {
		return e.Stop - e.Start
	}
	return e.Duration
}
