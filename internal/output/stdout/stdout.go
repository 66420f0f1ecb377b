package stdout

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/crimson-sun/armnn2perfetto/internal/output"
	"github.com/crimson-sun/armnn2perfetto/internal/perfetto"
)

// Output writes the JSON trace document to stdout.
type Output struct {
	w      io.Writer
	pretty bool
}

// New creates a new stdout Output with optional pretty-printed JSON.
func New(pretty bool) *Output {
	return &Output{w: os.Stdout, pretty: pretty}
}

func (o *Output) Write(_ context.Context, doc perfetto.Document) error {
	data, err := output.Encode(doc, o.pretty)
	if err != nil {
		return fmt.Errorf("stdout output: %w", err)
	}
	if _, err := o.w.Write(data); err != nil {
		return fmt.Errorf("stdout output: %w", err)
	}
	return nil
}

func (o *Output) Close() error {
	return nil
}
