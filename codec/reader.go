package codec

import (
	"io"

	"github.com/bytewire/bytewire/errors"
)

// Reader is the sequential byte source consumed by a Decoder. Read fills
// p completely or fails; there are no short reads.
type Reader interface {
	Read(p []byte) error
}

// BorrowReader is a Reader whose backing store outlives the decode call,
// allowing zero-copy results that alias it.
type BorrowReader interface {
	Reader

	// TakeBytes consumes and returns the next n bytes without copying.
	// The returned slice aliases the reader's buffer.
	TakeBytes(n int) ([]byte, error)
}

// SliceReader reads from an in-memory byte slice and supports borrowing.
type SliceReader struct {
	data []byte
	pos  int
}

// NewSliceReader returns a SliceReader over data.
func NewSliceReader(data []byte) *SliceReader {
	return &SliceReader{data: data}
}

func (r *SliceReader) Read(p []byte) error {
	if len(p) > len(r.data)-r.pos {
		return errors.UnexpectedEnd(r.pos, len(p), len(r.data)-r.pos)
	}
	copy(p, r.data[r.pos:])
	r.pos += len(p)
	return nil
}

func (r *SliceReader) TakeBytes(n int) ([]byte, error) {
	if n > len(r.data)-r.pos {
		return nil, errors.UnexpectedEnd(r.pos, n, len(r.data)-r.pos)
	}
	b := r.data[r.pos : r.pos+n : r.pos+n]
	r.pos += n
	return b, nil
}

// Offset returns the number of bytes consumed so far.
func (r *SliceReader) Offset() int {
	return r.pos
}

// Remaining returns the number of bytes not yet consumed.
func (r *SliceReader) Remaining() int {
	return len(r.data) - r.pos
}

// IOReader adapts a standard io.Reader into a codec Reader.
type IOReader struct {
	r   io.Reader
	off int
}

// NewIOReader returns a Reader forwarding to r.
func NewIOReader(r io.Reader) *IOReader {
	return &IOReader{r: r}
}

func (r *IOReader) Read(p []byte) error {
	n, err := io.ReadFull(r.r, p)
	r.off += n
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return errors.UnexpectedEnd(r.off, len(p)-n, 0)
	}
	if err != nil {
		return errors.ReadFailed(err)
	}
	return nil
}
