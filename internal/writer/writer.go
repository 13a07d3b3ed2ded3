// Package writer persists soft symbols to a file (spec.md §4.G).
package writer

import (
	"bufio"
	"fmt"
	"os"

	"github.com/dernasherbrezon/lrptdemod/internal/demoderr"
)

// DefaultChunkSize is the buffered-writer flush granularity.
const DefaultChunkSize = 32768

// Writer appends (I, Q) signed-8-bit soft symbol pairs to a file,
// buffering writes in configurable chunks and flushing on Close
// (spec.md §4.G, §6 output format).
type Writer struct {
	f   *os.File
	buf *bufio.Writer
}

// New creates the output file and a buffered Writer over it.
func New(path string, chunkSize int) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", demoderr.ErrOutputOpen, err)
	}
	return &Writer{f: f, buf: bufio.NewWriterSize(f, chunkSize)}, nil
}

// WriteSymbol appends one (I, Q) soft symbol pair.
func (w *Writer) WriteSymbol(i, q int8) error {
	if err := w.buf.WriteByte(byte(i)); err != nil {
		return fmt.Errorf("%w: %v", demoderr.ErrWriteFailure, err)
	}
	if err := w.buf.WriteByte(byte(q)); err != nil {
		return fmt.Errorf("%w: %v", demoderr.ErrWriteFailure, err)
	}
	return nil
}

// Close flushes any buffered symbols and closes the file.
func (w *Writer) Close() error {
	if err := w.buf.Flush(); err != nil {
		w.f.Close()
		return fmt.Errorf("%w: flush: %v", demoderr.ErrWriteFailure, err)
	}
	return w.f.Close()
}
