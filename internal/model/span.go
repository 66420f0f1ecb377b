package model

// Recognized KernelName attribute keys.
const (
	AttrGWS      = "gws"
	AttrLWS      = "lws"
	AttrKernelID = "kernel_id"
	AttrRawName  = "raw_name"
	AttrParent   = "parent"
)

// KernelName is a kernel label split into a canonical display name and
// the decoration extracted from it.
type KernelName struct {
	Name  string
	Attrs map[string]string // always contains AttrRawName
}

// Track is a display lane spans are grouped into.
type Track struct {
	ID    int
	Label string
}

// OutputSpan is a complete (duration) event ready for the trace document.
type OutputSpan struct {
	Name     string
	Category Category
	Cat      string // dotted category tag
	Start    float64
	Duration float64
	PID      int
	TID      int
	Args     map[string]any
}

// End returns the span end timestamp.
func (s OutputSpan) End() float64 {
	return s.Start + s.Duration
}

// Parent returns the enclosing framework span name, or "" if none.
func (s OutputSpan) Parent() string {
	p, _ := s.Args[AttrParent].(string)
	return p
}

// FlowEndpoint anchors one side of a flow to a span.
type FlowEndpoint struct {
	PID       int
	TID       int
	Timestamp float64
	Span      int // index into the emitted span sequence
}

// FlowLink connects a framework span to one of its kernel spans.
type FlowLink struct {
	ID   int64
	From FlowEndpoint // parent end
	To   FlowEndpoint // child start
}
