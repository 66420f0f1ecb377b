package source

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// Source supplies the raw text of one trace.
type Source interface {
	// Read returns the full, decompressed input.
	Read(ctx context.Context) ([]byte, error)
	// Name identifies the source in logs.
	Name() string
}

var gzipMagic = []byte{0x1f, 0x8b}

// IsGzip reports whether data starts with the gzip magic bytes.
func IsGzip(data []byte) bool {
	return bytes.HasPrefix(data, gzipMagic)
}

// Decompress inflates gzip data and returns anything else unchanged.
func Decompress(data []byte) ([]byte, error) {
	if !IsGzip(data) {
		return data, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gzip: %w", err)
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("gzip: %w", err)
	}
	return out, nil
}
