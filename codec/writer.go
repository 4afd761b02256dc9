package codec

import (
	"io"

	"github.com/bytewire/bytewire/errors"
)

// Writer is the append-only byte sink consumed by an Encoder.
type Writer interface {
	Write(p []byte) error
}

// BufferWriter collects written bytes into a growable in-memory buffer.
type BufferWriter struct {
	buf []byte
}

// NewBufferWriter returns an empty BufferWriter.
func NewBufferWriter() *BufferWriter {
	return &BufferWriter{}
}

// NewBufferWriterSize returns a BufferWriter with pre-allocated capacity.
func NewBufferWriterSize(n int) *BufferWriter {
	return &BufferWriter{buf: make([]byte, 0, n)}
}

func (w *BufferWriter) Write(p []byte) error {
	w.buf = append(w.buf, p...)
	return nil
}

// Bytes returns the accumulated output. The slice aliases the writer's
// buffer and is invalidated by further writes.
func (w *BufferWriter) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written so far.
func (w *BufferWriter) Len() int {
	return len(w.buf)
}

// Reset discards the accumulated output, retaining capacity.
func (w *BufferWriter) Reset() {
	w.buf = w.buf[:0]
}

// FixedWriter writes into a caller-provided buffer and fails with
// write_failed once its capacity is exhausted.
type FixedWriter struct {
	buf []byte
	n   int
}

// NewFixedWriter returns a FixedWriter over buf.
func NewFixedWriter(buf []byte) *FixedWriter {
	return &FixedWriter{buf: buf}
}

func (w *FixedWriter) Write(p []byte) error {
	if len(p) > len(w.buf)-w.n {
		return errors.SinkFull(len(w.buf), w.n+len(p))
	}
	copy(w.buf[w.n:], p)
	w.n += len(p)
	return nil
}

// Bytes returns the written prefix of the underlying buffer.
func (w *FixedWriter) Bytes() []byte {
	return w.buf[:w.n]
}

// Len returns the number of bytes written so far.
func (w *FixedWriter) Len() int {
	return w.n
}

// IOWriter adapts a standard io.Writer into a codec Writer.
type IOWriter struct {
	w io.Writer
}

// NewIOWriter returns a Writer forwarding to w.
func NewIOWriter(w io.Writer) *IOWriter {
	return &IOWriter{w: w}
}

func (w *IOWriter) Write(p []byte) error {
	n, err := w.w.Write(p)
	if err != nil {
		return errors.WriteFailed(err)
	}
	if n != len(p) {
		return errors.WriteFailed(io.ErrShortWrite)
	}
	return nil
}
