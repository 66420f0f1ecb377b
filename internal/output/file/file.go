package file

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/crimson-sun/armnn2perfetto/internal/output"
	"github.com/crimson-sun/armnn2perfetto/internal/perfetto"
)

const defaultBufSize = 64 * 1024 // 64KB

// Option configures a file Output.
type Option func(*Output)

// WithBufSize sets the bufio.Writer buffer size. Default: 64KB.
func WithBufSize(bytes int) Option {
	return func(o *Output) { o.bufSize = bytes }
}

// WithGzip forces gzip compression on or off. By default it follows the
// ".gz" suffix of the path.
func WithGzip(enabled bool) Option {
	return func(o *Output) { o.gzip = enabled }
}

// WithPretty indents the JSON document.
func WithPretty(pretty bool) Option {
	return func(o *Output) { o.pretty = pretty }
}

// Output writes one trace document to a file. The document is written to a
// temporary file in the same directory and renamed into place, so a failed
// run never leaves a partial trace at path.
type Output struct {
	path    string
	bufSize int
	gzip    bool
	pretty  bool
	written bool
}

// New creates a file output for path. Nothing is created until Write.
func New(path string, opts ...Option) *Output {
	o := &Output{
		path:    path,
		bufSize: defaultBufSize,
		gzip:    strings.HasSuffix(path, ".gz"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Write encodes doc and atomically replaces the file at path.
func (o *Output) Write(ctx context.Context, doc perfetto.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := output.Encode(doc, o.pretty)
	if err != nil {
		return fmt.Errorf("file output: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(o.path), "."+filepath.Base(o.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("file output: create temp: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := o.writeTo(tmp, data); err != nil {
		return fmt.Errorf("file output: write %s: %w", o.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file output: close %s: %w", o.path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("file output: chmod %s: %w", o.path, err)
	}
	if err := os.Rename(tmp.Name(), o.path); err != nil {
		return fmt.Errorf("file output: rename to %s: %w", o.path, err)
	}
	committed = true
	o.written = true
	return nil
}

func (o *Output) writeTo(f io.Writer, data []byte) error {
	w := bufio.NewWriterSize(f, o.bufSize)
	if o.gzip {
		zw := gzip.NewWriter(w)
		if _, err := zw.Write(data); err != nil {
			return err
		}
		if err := zw.Close(); err != nil {
			return err
		}
	} else if _, err := w.Write(data); err != nil {
		return err
	}
	return w.Flush()
}

// Written reports whether a document has been committed to path.
func (o *Output) Written() bool {
	return o.written
}

// Close is a no-op; Write releases its file handle before returning.
func (o *Output) Close() error {
	return nil
}
