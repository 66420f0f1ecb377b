package output

import (
	"context"

	"github.com/crimson-sun/armnn2perfetto/internal/perfetto"
)

// Output defines the interface for trace document destinations.
type Output interface {
	Write(ctx context.Context, doc perfetto.Document) error
	Close() error
}
