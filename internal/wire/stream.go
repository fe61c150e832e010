// Package wire implements the uniform byte-stream abstraction the
// serializer writes to and reads from, and the little-endian primitive
// codec used by the binary tree format.
//
// A stream is nothing more than an io.Writer or io.Reader: the teacher's
// separate file-backed and memory-backed stream types collapse here into
// os.File and bytes.Buffer/bytes.Reader, both of which already satisfy
// those interfaces. What this package adds is the construction helpers
// (plain and snappy-compressed) and the fixed-width/length-prefixed
// primitive codec every Node/Attribute/Schema encoder and decoder needs.
package wire

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/golang/snappy"
)

// NewMemWriter returns a growable in-memory sink satisfying io.Writer.
func NewMemWriter() *bytes.Buffer {
	return new(bytes.Buffer)
}

// NewMemReader wraps an in-memory byte slice as an io.Reader.
func NewMemReader(data []byte) *bytes.Reader {
	return bytes.NewReader(data)
}

// OpenFileWriter creates (truncating) the named file for writing.
func OpenFileWriter(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, &IOError{Op: "open file writer", Path: path, Err: err}
	}
	return f, nil
}

// OpenFileReader opens the named file for reading.
func OpenFileReader(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open file reader", Path: path, Err: err}
	}
	return f, nil
}

// snappyWriteCloser adapts a snappy.Writer to an io.WriteCloser that
// also closes the underlying file once the snappy frame is flushed
// (snappy.Writer's own Close does not close the file).
type snappyWriteCloser struct {
	*snappy.Writer
	underlying io.Closer
}

func (s *snappyWriteCloser) Close() error {
	if err := s.Writer.Flush(); err != nil {
		return err
	}
	return s.underlying.Close()
}

// OpenCompressedFileWriter wraps a file writer in a snappy framed stream.
// The bytes written through it are the same canonical tree encoding a
// plain FileWriter would produce; only the on-disk representation is
// compressed (a ".ghtz" archive convenience, see SPEC_FULL.md §4.7).
func OpenCompressedFileWriter(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, &IOError{Op: "open compressed file writer", Path: path, Err: err}
	}
	return &snappyWriteCloser{Writer: snappy.NewBufferedWriter(f), underlying: f}, nil
}

type snappyReadCloser struct {
	*snappy.Reader
	underlying io.Closer
}

func (s *snappyReadCloser) Close() error {
	return s.underlying.Close()
}

// OpenCompressedFileReader opens a snappy-framed ".ghtz" archive and
// exposes the decompressed canonical byte stream.
func OpenCompressedFileReader(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open compressed file reader", Path: path, Err: err}
	}
	return &snappyReadCloser{Reader: snappy.NewReader(f), underlying: f}, nil
}

// IOError wraps a failure from the underlying stream (open/read/write)
// with the operation and path that failed, per SPEC_FULL.md's IO error
// kind.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("wire: %s %q: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("wire: %s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
