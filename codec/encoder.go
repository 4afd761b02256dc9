package codec

import (
	"math"

	"github.com/bytewire/bytewire/codec/internal/bits"
	"github.com/bytewire/bytewire/errors"
)

// Encoder writes values to a Writer under one Config. An Encoder is owned
// by a single encode call stack and must not be shared.
type Encoder struct {
	w       Writer
	cfg     Config
	scratch [17]byte
}

// NewEncoder returns an Encoder writing to w with cfg.
func NewEncoder(w Writer, cfg Config) *Encoder {
	return &Encoder{w: w, cfg: cfg}
}

// Config returns the session configuration.
func (e *Encoder) Config() Config {
	return e.cfg
}

// Writer returns the underlying sink.
func (e *Encoder) Writer() Writer {
	return e.w
}

// WriteBool writes one byte, 0x00 or 0x01.
func (e *Encoder) WriteBool(v bool) error {
	if v {
		e.scratch[0] = 1
	} else {
		e.scratch[0] = 0
	}
	return e.w.Write(e.scratch[:1])
}

// WriteU8 writes one raw byte. 8-bit values have no mode branch.
func (e *Encoder) WriteU8(v uint8) error {
	e.scratch[0] = v
	return e.w.Write(e.scratch[:1])
}

// WriteI8 writes one raw byte.
func (e *Encoder) WriteI8(v int8) error {
	return e.WriteU8(uint8(v))
}

// WriteU16 writes v per the configured integer mode and byte order.
func (e *Encoder) WriteU16(v uint16) error {
	if e.cfg.IntMode == FixedInt {
		e.cfg.byteOrder().PutUint16(e.scratch[:2], v)
		return e.w.Write(e.scratch[:2])
	}
	return e.writeUvarint(uint64(v))
}

// WriteU32 writes v per the configured integer mode and byte order.
func (e *Encoder) WriteU32(v uint32) error {
	if e.cfg.IntMode == FixedInt {
		e.cfg.byteOrder().PutUint32(e.scratch[:4], v)
		return e.w.Write(e.scratch[:4])
	}
	return e.writeUvarint(uint64(v))
}

// WriteU64 writes v per the configured integer mode and byte order.
func (e *Encoder) WriteU64(v uint64) error {
	if e.cfg.IntMode == FixedInt {
		e.cfg.byteOrder().PutUint64(e.scratch[:8], v)
		return e.w.Write(e.scratch[:8])
	}
	return e.writeUvarint(v)
}

// WriteU128 writes a 128-bit value per the configured mode and order.
func (e *Encoder) WriteU128(v U128) error {
	if e.cfg.IntMode == FixedInt {
		e.put128(e.scratch[:16], v)
		return e.w.Write(e.scratch[:16])
	}
	return e.writeUvarint128(v)
}

// WriteUint writes a pointer-sized unsigned integer, always carried on the
// wire as a 64-bit value so streams are portable across architectures.
func (e *Encoder) WriteUint(v uint) error {
	return e.WriteU64(uint64(v))
}

// WriteI16 writes v, zigzag-mapped first in varint mode.
func (e *Encoder) WriteI16(v int16) error {
	if e.cfg.IntMode == FixedInt {
		e.cfg.byteOrder().PutUint16(e.scratch[:2], uint16(v))
		return e.w.Write(e.scratch[:2])
	}
	return e.writeIvarint(int64(v))
}

// WriteI32 writes v, zigzag-mapped first in varint mode.
func (e *Encoder) WriteI32(v int32) error {
	if e.cfg.IntMode == FixedInt {
		e.cfg.byteOrder().PutUint32(e.scratch[:4], uint32(v))
		return e.w.Write(e.scratch[:4])
	}
	return e.writeIvarint(int64(v))
}

// WriteI64 writes v, zigzag-mapped first in varint mode.
func (e *Encoder) WriteI64(v int64) error {
	if e.cfg.IntMode == FixedInt {
		e.cfg.byteOrder().PutUint64(e.scratch[:8], uint64(v))
		return e.w.Write(e.scratch[:8])
	}
	return e.writeIvarint(v)
}

// WriteI128 writes a signed 128-bit value.
func (e *Encoder) WriteI128(v I128) error {
	if e.cfg.IntMode == FixedInt {
		e.put128(e.scratch[:16], U128{Hi: v.Hi, Lo: v.Lo})
		return e.w.Write(e.scratch[:16])
	}
	hi, lo := bits.ZigZag128(v.Hi, v.Lo)
	return e.writeUvarint128(U128{Hi: hi, Lo: lo})
}

// WriteInt writes a pointer-sized signed integer as a 64-bit value.
func (e *Encoder) WriteInt(v int) error {
	return e.WriteI64(int64(v))
}

// WriteF32 writes IEEE-754 bits at fixed width. Floats are never varint.
func (e *Encoder) WriteF32(v float32) error {
	e.cfg.byteOrder().PutUint32(e.scratch[:4], math.Float32bits(v))
	return e.w.Write(e.scratch[:4])
}

// WriteF64 writes IEEE-754 bits at fixed width. Floats are never varint.
func (e *Encoder) WriteF64(v float64) error {
	e.cfg.byteOrder().PutUint64(e.scratch[:8], math.Float64bits(v))
	return e.w.Write(e.scratch[:8])
}

// WriteRune writes a Unicode scalar value as 1-4 UTF-8 bytes, independent
// of the integer mode.
func (e *Encoder) WriteRune(r rune) error {
	if !bits.ValidRune(r) {
		return errors.New(errors.PhaseEncode, errors.KindInvalidChar).
			Detail("invalid Unicode scalar value 0x%X", r).
			Value(r).
			Build()
	}
	switch {
	case r < 0x80:
		e.scratch[0] = byte(r)
		return e.w.Write(e.scratch[:1])
	case r < 0x800:
		e.scratch[0] = 0xC0 | byte(r>>6)
		e.scratch[1] = 0x80 | byte(r)&0x3F
		return e.w.Write(e.scratch[:2])
	case r < 0x10000:
		e.scratch[0] = 0xE0 | byte(r>>12)
		e.scratch[1] = 0x80 | byte(r>>6)&0x3F
		e.scratch[2] = 0x80 | byte(r)&0x3F
		return e.w.Write(e.scratch[:3])
	default:
		e.scratch[0] = 0xF0 | byte(r>>18)
		e.scratch[1] = 0x80 | byte(r>>12)&0x3F
		e.scratch[2] = 0x80 | byte(r>>6)&0x3F
		e.scratch[3] = 0x80 | byte(r)&0x3F
		return e.w.Write(e.scratch[:4])
	}
}

// WriteLen writes a collection length prefix as an unsigned 64-bit integer.
func (e *Encoder) WriteLen(n int) error {
	if n < 0 {
		return errors.New(errors.PhaseEncode, errors.KindUnexpectedVariant).
			Detail("negative length %d", n).
			Value(n).
			Build()
	}
	return e.WriteU64(uint64(n))
}

// WriteBytes writes a length prefix followed by the raw bytes in one bulk
// sink call. This is the byte-element fast path.
func (e *Encoder) WriteBytes(p []byte) error {
	if err := e.WriteLen(len(p)); err != nil {
		return err
	}
	if len(p) == 0 {
		return nil
	}
	return e.w.Write(p)
}

// WriteString writes the string's UTF-8 bytes with a length prefix.
func (e *Encoder) WriteString(s string) error {
	if err := e.WriteLen(len(s)); err != nil {
		return err
	}
	if len(s) == 0 {
		return nil
	}
	return e.w.Write([]byte(s))
}

// WriteRawBytes writes p with no length prefix, for fixed-size byte arrays
// whose length is static.
func (e *Encoder) WriteRawBytes(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	return e.w.Write(p)
}
