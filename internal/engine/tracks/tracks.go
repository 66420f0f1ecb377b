package tracks

import "github.com/crimson-sun/armnn2perfetto/internal/model"

// Fixed track ids, one per category.
const (
	FrameworkTID = 0
	GemmTID      = 1
	OtherTID     = 2
)

// Tracks maps categories to their display lanes.
type Tracks struct {
	byCategory map[model.Category]model.Track
}

// New creates the track table with the given display labels.
func New(framework, gemm, other string) *Tracks {
	return &Tracks{byCategory: map[model.Category]model.Track{
		model.FrameworkSpan: {ID: FrameworkTID, Label: framework},
		model.GemmKernel:    {ID: GemmTID, Label: gemm},
		model.OtherKernel:   {ID: OtherTID, Label: other},
	}}
}

// Default returns the table with ArmNN's usual lane names.
func Default() *Tracks {
	return New("ArmNN Top-Level", "GEMM MM Kernels", "Other OpenCL Kernels")
}

// Assign returns the track for cat. Unknown values fall back to the other-kernel lane.
func (t *Tracks) Assign(cat model.Category) model.Track {
	if tr, ok := t.byCategory[cat]; ok {
		return tr
	}
	return t.byCategory[model.OtherKernel]
}

// All returns every track in id order.
func (t *Tracks) All() []model.Track {
	cats := model.Categories()
	out := make([]model.Track, 0, len(cats))
	for _, c := range cats {
		out = append(out, t.byCategory[c])
	}
	return out
}
