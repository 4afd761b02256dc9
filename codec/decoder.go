package codec

import (
	"math"
	"unicode/utf8"
	"unsafe"

	"github.com/bytewire/bytewire/codec/internal/bits"
	"github.com/bytewire/bytewire/errors"
)

// Decoder reads values from a Reader under one Config, tracking the decode
// byte budget. A Decoder is owned by a single decode call stack and must
// not be shared; the budget counter is threaded through every recursive
// sub-decode of that one call.
type Decoder struct {
	r         Reader
	br        BorrowReader // nil when the source cannot borrow
	cfg       Config
	remaining int
	limited   bool
	scratch   [16]byte
}

// NewDecoder returns a Decoder reading from r with cfg. When r implements
// BorrowReader the Borrow* methods return data aliasing its buffer.
func NewDecoder(r Reader, cfg Config) *Decoder {
	d := &Decoder{r: r, cfg: cfg}
	if br, ok := r.(BorrowReader); ok {
		d.br = br
	}
	if cfg.Limit != NoLimit {
		d.limited = true
		d.remaining = cfg.Limit
	}
	return d
}

// Config returns the session configuration.
func (d *Decoder) Config() Config {
	return d.cfg
}

// Reader returns the underlying source.
func (d *Decoder) Reader() Reader {
	return d.r
}

// ClaimBytes reserves n bytes against the configured budget. Under a limit
// the reservation fails with limit_exceeded before any allocation; without
// one it is a no-op.
func (d *Decoder) ClaimBytes(n int) error {
	if !d.limited {
		return nil
	}
	if n > d.remaining {
		return errors.LimitExceeded(n, d.remaining)
	}
	d.remaining -= n
	return nil
}

// Unclaim credits n bytes back to the budget. Container decodes claim a
// conservative count x sizeof(element) up front, then unclaim one element's
// estimate before each element decode claims its true cost, so variable
// -width element encodings don't over-penalize the budget.
func (d *Decoder) Unclaim(n int) {
	if !d.limited {
		return
	}
	d.remaining += n
}

// BudgetRemaining reports the unclaimed budget, or NoLimit when unlimited.
func (d *Decoder) BudgetRemaining() int {
	if !d.limited {
		return NoLimit
	}
	return d.remaining
}

// ClaimContainer reserves budget for a declared count of T elements before
// the count is trusted. Overflow of count x sizeof(T) is itself rejected.
func ClaimContainer[T any](d *Decoder, count int) error {
	if !d.limited {
		return nil
	}
	total, ok := bits.SafeMul(count, elemSize[T]())
	if !ok {
		return errors.LimitExceeded(count, d.remaining)
	}
	return d.ClaimBytes(total)
}

// elemSize is the conservative per-element budget estimate: the in-memory
// size of T. Variable-sized elements reconcile via Unclaim as they decode.
func elemSize[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// ReadBool reads one byte and requires it to be 0x00 or 0x01.
func (d *Decoder) ReadBool() (bool, error) {
	b, err := d.ReadU8()
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, errors.InvalidBool(b)
	}
}

// ReadU8 reads one raw byte. 8-bit values have no mode branch.
func (d *Decoder) ReadU8() (uint8, error) {
	if err := d.ClaimBytes(1); err != nil {
		return 0, err
	}
	if err := d.r.Read(d.scratch[:1]); err != nil {
		return 0, err
	}
	return d.scratch[0], nil
}

// ReadI8 reads one raw byte.
func (d *Decoder) ReadI8() (int8, error) {
	v, err := d.ReadU8()
	return int8(v), err
}

// ReadU16 reads a 16-bit unsigned integer per the configured mode.
func (d *Decoder) ReadU16() (uint16, error) {
	if err := d.ClaimBytes(2); err != nil {
		return 0, err
	}
	if d.cfg.IntMode == FixedInt {
		if err := d.r.Read(d.scratch[:2]); err != nil {
			return 0, err
		}
		return d.cfg.byteOrder().Uint16(d.scratch[:2]), nil
	}
	v, err := d.readUvarint("uint16", varintTagU16, math.MaxUint16)
	return uint16(v), err
}

// ReadU32 reads a 32-bit unsigned integer per the configured mode.
func (d *Decoder) ReadU32() (uint32, error) {
	if err := d.ClaimBytes(4); err != nil {
		return 0, err
	}
	if d.cfg.IntMode == FixedInt {
		if err := d.r.Read(d.scratch[:4]); err != nil {
			return 0, err
		}
		return d.cfg.byteOrder().Uint32(d.scratch[:4]), nil
	}
	v, err := d.readUvarint("uint32", varintTagU32, math.MaxUint32)
	return uint32(v), err
}

// ReadU64 reads a 64-bit unsigned integer per the configured mode.
func (d *Decoder) ReadU64() (uint64, error) {
	if err := d.ClaimBytes(8); err != nil {
		return 0, err
	}
	if d.cfg.IntMode == FixedInt {
		if err := d.r.Read(d.scratch[:8]); err != nil {
			return 0, err
		}
		return d.cfg.byteOrder().Uint64(d.scratch[:8]), nil
	}
	return d.readUvarint("uint64", varintTagU64, math.MaxUint64)
}

// ReadU128 reads a 128-bit unsigned integer per the configured mode.
func (d *Decoder) ReadU128() (U128, error) {
	if err := d.ClaimBytes(16); err != nil {
		return U128{}, err
	}
	if d.cfg.IntMode == FixedInt {
		return d.read128()
	}
	return d.readUvarint128()
}

// ReadUint reads a pointer-sized unsigned integer carried as 64 bits.
func (d *Decoder) ReadUint() (uint, error) {
	v, err := d.ReadU64()
	if err != nil {
		return 0, err
	}
	if v > uint64(^uint(0)) {
		return 0, errors.OutOfRange(v, "uint")
	}
	return uint(v), nil
}

// ReadI16 reads a 16-bit signed integer per the configured mode.
func (d *Decoder) ReadI16() (int16, error) {
	if err := d.ClaimBytes(2); err != nil {
		return 0, err
	}
	if d.cfg.IntMode == FixedInt {
		if err := d.r.Read(d.scratch[:2]); err != nil {
			return 0, err
		}
		return int16(d.cfg.byteOrder().Uint16(d.scratch[:2])), nil
	}
	v, err := d.readIvarint("int16", varintTagU16, math.MinInt16, math.MaxInt16)
	return int16(v), err
}

// ReadI32 reads a 32-bit signed integer per the configured mode.
func (d *Decoder) ReadI32() (int32, error) {
	if err := d.ClaimBytes(4); err != nil {
		return 0, err
	}
	if d.cfg.IntMode == FixedInt {
		if err := d.r.Read(d.scratch[:4]); err != nil {
			return 0, err
		}
		return int32(d.cfg.byteOrder().Uint32(d.scratch[:4])), nil
	}
	v, err := d.readIvarint("int32", varintTagU32, math.MinInt32, math.MaxInt32)
	return int32(v), err
}

// ReadI64 reads a 64-bit signed integer per the configured mode.
func (d *Decoder) ReadI64() (int64, error) {
	if err := d.ClaimBytes(8); err != nil {
		return 0, err
	}
	if d.cfg.IntMode == FixedInt {
		if err := d.r.Read(d.scratch[:8]); err != nil {
			return 0, err
		}
		return int64(d.cfg.byteOrder().Uint64(d.scratch[:8])), nil
	}
	return d.readIvarint("int64", varintTagU64, math.MinInt64, math.MaxInt64)
}

// ReadI128 reads a 128-bit signed integer per the configured mode.
func (d *Decoder) ReadI128() (I128, error) {
	if err := d.ClaimBytes(16); err != nil {
		return I128{}, err
	}
	if d.cfg.IntMode == FixedInt {
		u, err := d.read128()
		return I128{Hi: u.Hi, Lo: u.Lo}, err
	}
	u, err := d.readUvarint128()
	if err != nil {
		return I128{}, err
	}
	hi, lo := bits.UnZigZag128(u.Hi, u.Lo)
	return I128{Hi: hi, Lo: lo}, nil
}

// ReadInt reads a pointer-sized signed integer carried as 64 bits.
func (d *Decoder) ReadInt() (int, error) {
	v, err := d.ReadI64()
	if err != nil {
		return 0, err
	}
	if v > math.MaxInt || v < math.MinInt {
		return 0, errors.OutOfRange(v, "int")
	}
	return int(v), nil
}

// ReadF32 reads fixed-width IEEE-754 bits. Floats are never varint.
func (d *Decoder) ReadF32() (float32, error) {
	if err := d.ClaimBytes(4); err != nil {
		return 0, err
	}
	if err := d.r.Read(d.scratch[:4]); err != nil {
		return 0, err
	}
	return math.Float32frombits(d.cfg.byteOrder().Uint32(d.scratch[:4])), nil
}

// ReadF64 reads fixed-width IEEE-754 bits. Floats are never varint.
func (d *Decoder) ReadF64() (float64, error) {
	if err := d.ClaimBytes(8); err != nil {
		return 0, err
	}
	if err := d.r.Read(d.scratch[:8]); err != nil {
		return 0, err
	}
	return math.Float64frombits(d.cfg.byteOrder().Uint64(d.scratch[:8])), nil
}

// ReadRune reads a 1-4 byte UTF-8 scalar value, validating continuation
// bytes, overlong forms, and the scalar-value range.
func (d *Decoder) ReadRune() (rune, error) {
	if err := d.ClaimBytes(1); err != nil {
		return 0, err
	}
	if err := d.r.Read(d.scratch[:1]); err != nil {
		return 0, err
	}
	width := bits.UTF8Width(d.scratch[0])
	if width == 0 {
		return 0, errors.InvalidChar([4]byte{d.scratch[0]})
	}
	if err := d.ClaimBytes(width - 1); err != nil {
		return 0, err
	}
	if width == 1 {
		return rune(d.scratch[0]), nil
	}
	if err := d.r.Read(d.scratch[1:width]); err != nil {
		return 0, err
	}
	r, size := utf8.DecodeRune(d.scratch[:width])
	if r == utf8.RuneError && size <= 1 || size != width {
		var raw [4]byte
		copy(raw[:], d.scratch[:width])
		return 0, errors.InvalidChar(raw)
	}
	return r, nil
}

// ReadLen reads a collection length prefix.
func (d *Decoder) ReadLen() (int, error) {
	v, err := d.ReadU64()
	if err != nil {
		return 0, err
	}
	if v > math.MaxInt {
		return 0, errors.OutOfRange(v, "length")
	}
	return int(v), nil
}

// ReadBytes reads a length-prefixed byte run into freshly owned storage in
// one bulk source call. The budget is claimed before the run is allocated.
func (d *Decoder) ReadBytes() ([]byte, error) {
	n, err := d.ReadLen()
	if err != nil {
		return nil, err
	}
	if err := d.ClaimBytes(n); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if n == 0 {
		return buf, nil
	}
	if err := d.r.Read(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// BorrowBytes reads a length-prefixed byte run without copying when the
// source supports borrowing, falling back to an owned read otherwise. The
// result is only valid while the source's buffer is alive and unmodified.
func (d *Decoder) BorrowBytes() ([]byte, error) {
	if d.br == nil {
		return d.ReadBytes()
	}
	n, err := d.ReadLen()
	if err != nil {
		return nil, err
	}
	if err := d.ClaimBytes(n); err != nil {
		return nil, err
	}
	return d.br.TakeBytes(n)
}

// ReadString reads a length-prefixed byte run and validates it as UTF-8,
// reporting the offset of the first invalid sequence on failure.
func (d *Decoder) ReadString() (string, error) {
	b, err := d.ReadBytes()
	if err != nil {
		return "", err
	}
	if off, ok := firstInvalidUTF8(b); !ok {
		return "", errors.InvalidUTF8(off, b[off:])
	}
	return string(b), nil
}

// BorrowString is ReadString on the zero-copy path: the returned string
// aliases the source's buffer when borrowing is possible.
func (d *Decoder) BorrowString() (string, error) {
	b, err := d.BorrowBytes()
	if err != nil {
		return "", err
	}
	if off, ok := firstInvalidUTF8(b); !ok {
		return "", errors.InvalidUTF8(off, b[off:])
	}
	if len(b) == 0 {
		return "", nil
	}
	return unsafe.String(unsafe.SliceData(b), len(b)), nil
}

// ReadFixedBytes reads exactly n bytes with no length prefix, for byte
// arrays whose length is static.
func (d *Decoder) ReadFixedBytes(n int) ([]byte, error) {
	if err := d.ClaimBytes(n); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if n == 0 {
		return buf, nil
	}
	if err := d.r.Read(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadRawInto fills p with no length prefix.
func (d *Decoder) ReadRawInto(p []byte) error {
	if err := d.ClaimBytes(len(p)); err != nil {
		return err
	}
	if len(p) == 0 {
		return nil
	}
	return d.r.Read(p)
}

// firstInvalidUTF8 returns (0, true) for valid input, else the byte offset
// of the first invalid sequence and false.
func firstInvalidUTF8(b []byte) (int, bool) {
	if utf8.Valid(b) {
		return 0, true
	}
	off := 0
	for off < len(b) {
		r, size := utf8.DecodeRune(b[off:])
		if r == utf8.RuneError && size <= 1 {
			return off, false
		}
		off += size
	}
	return off, false
}
