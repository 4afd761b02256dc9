package bytewire

import (
	"io"

	"github.com/bytewire/bytewire/codec"
)

// Config is the codec session configuration. See codec.Config for the
// endianness, integer mode, and limit knobs.
type Config = codec.Config

// DefaultConfig is little-endian varint encoding with no decode limit.
func DefaultConfig() Config {
	return codec.DefaultConfig()
}

// NoLimit disables the decode byte budget.
const NoLimit = codec.NoLimit

// Marshal encodes v into a fresh byte slice.
func Marshal(v codec.Encodable, cfg Config) ([]byte, error) {
	w := codec.NewBufferWriter()
	if err := v.EncodeWire(codec.NewEncoder(w, cfg)); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// MarshalTo encodes v into w.
func MarshalTo(w io.Writer, v codec.Encodable, cfg Config) error {
	return v.EncodeWire(codec.NewEncoder(codec.NewIOWriter(w), cfg))
}

// Unmarshal decodes one value from the front of data into v and reports
// how many bytes it consumed. Trailing bytes are not an error; callers
// that require full consumption compare the count against len(data).
func Unmarshal(data []byte, v codec.Decodable, cfg Config) (int, error) {
	r := codec.NewSliceReader(data)
	if err := v.DecodeWire(codec.NewDecoder(r, cfg)); err != nil {
		return r.Offset(), err
	}
	return r.Offset(), nil
}

// UnmarshalBorrowed is Unmarshal on the zero-copy path: v may end up
// holding subslices of data, so data must stay alive and unmodified for
// as long as v is used.
func UnmarshalBorrowed(data []byte, v codec.BorrowDecodable, cfg Config) (int, error) {
	r := codec.NewSliceReader(data)
	if err := v.DecodeWireBorrowed(codec.NewDecoder(r, cfg)); err != nil {
		return r.Offset(), err
	}
	return r.Offset(), nil
}

// MarshalValue encodes a single value through fn, for types that do not
// implement Encodable, primitives and containers included.
func MarshalValue[T any](v T, fn codec.EncodeFn[T], cfg Config) ([]byte, error) {
	w := codec.NewBufferWriter()
	if err := fn(codec.NewEncoder(w, cfg), v); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// UnmarshalValue decodes a single value through fn, reporting bytes
// consumed.
func UnmarshalValue[T any](data []byte, fn codec.DecodeFn[T], cfg Config) (T, int, error) {
	r := codec.NewSliceReader(data)
	v, err := fn(codec.NewDecoder(r, cfg))
	return v, r.Offset(), err
}
