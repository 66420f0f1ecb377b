package armnn2perfetto

// Track is a display lane of the output trace.
type Track struct {
	ID    int    // thread id in the trace
	Label string // thread name shown in the UI
}

// Tracks returns the lanes the converter writes, in id order. This is
// read-only; labels are set through configuration.
func (c *Converter) Tracks() []Track {
	cfg := c.cfg.Tracks
	return []Track{
		{ID: 0, Label: cfg.Framework},
		{ID: 1, Label: cfg.Gemm},
		{ID: 2, Label: cfg.Other},
	}
}
