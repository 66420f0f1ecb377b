package file

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/crimson-sun/armnn2perfetto/internal/source"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// Source reads a trace from a file path, or from stdin when the path is "-".
type Source struct {
	path  string
	stdin io.Reader
}

// New creates a file Source.
func New(path string) *Source {
	return &Source{path: path, stdin: os.Stdin}
}

// Name returns the input path.
func (s *Source) Name() string {
	return s.path
}

// Read loads the whole input and inflates it if it is gzip-compressed.
func (s *Source) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		data []byte
		err  error
	)
	if s.path == Stdin {
		data, err = io.ReadAll(s.stdin)
	} else {
		data, err = readFile(s.path)
	}
	if err != nil {
		return nil, err
	}

	out, err := source.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("file source: %s: %w", s.path, err)
	}
	return out, nil
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("file source: open %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("file source: read %s: %w", path, err)
	}
	return data, nil
}
