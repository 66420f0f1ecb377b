package classifier

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/crimson-sun/armnn2perfetto/internal/model"
)

// Classifier assigns raw event labels to categories by marker substrings.
type Classifier struct {
	FrameworkMarker string
	KernelMarker    string
	GemmToken       string
}

// New creates a Classifier with the given markers.
func New(frameworkMarker, kernelMarker, gemmToken string) *Classifier {
	return &Classifier{
		FrameworkMarker: frameworkMarker,
		KernelMarker:    kernelMarker,
		GemmToken:       gemmToken,
	}
}

// Classify returns the category of label. ok is false for labels that carry
// neither marker, and for empty or whitespace-only labels; such events are
// not emitted.
func (c *Classifier) Classify(label string) (cat model.Category, ok bool) {
	if strings.TrimSpace(label) == "" {
		return 0, false
	}
	if strings.Contains(label, c.FrameworkMarker) {
		return model.FrameworkSpan, true
	}
	i := strings.Index(label, c.KernelMarker)
	if i == -1 {
		return 0, false
	}
	if c.GemmToken != "" && containsFold(label[i+len(c.KernelMarker):], c.GemmToken) {
		return model.GemmKernel, true
	}
	return model.OtherKernel, true
}

// containsFold reports whether substr is within s under Unicode case folding.
func containsFold(s, substr string) bool {
	fold := cases.Fold()
	return strings.Contains(fold.String(s), fold.String(substr))
}
