package codec

import (
	"encoding/binary"
	"math"

	"github.com/bytewire/bytewire/codec/internal/bits"
	"github.com/bytewire/bytewire/errors"
)

// Variable-length integer framing: magnitudes at or below varintSingleMax
// occupy one byte; anything larger is a width tag followed by that width's
// payload in the configured byte order.
const (
	varintSingleMax = 250
	varintTagU16    = 251
	varintTagU32    = 252
	varintTagU64    = 253
	varintTagU128   = 254
)

func (e *Encoder) writeUvarint(v uint64) error {
	switch {
	case v <= varintSingleMax:
		e.scratch[0] = byte(v)
		return e.w.Write(e.scratch[:1])
	case v <= math.MaxUint16:
		e.scratch[0] = varintTagU16
		e.cfg.byteOrder().PutUint16(e.scratch[1:3], uint16(v))
		return e.w.Write(e.scratch[:3])
	case v <= math.MaxUint32:
		e.scratch[0] = varintTagU32
		e.cfg.byteOrder().PutUint32(e.scratch[1:5], uint32(v))
		return e.w.Write(e.scratch[:5])
	default:
		e.scratch[0] = varintTagU64
		e.cfg.byteOrder().PutUint64(e.scratch[1:9], v)
		return e.w.Write(e.scratch[:9])
	}
}

func (e *Encoder) writeUvarint128(v U128) error {
	if v.Hi == 0 {
		return e.writeUvarint(v.Lo)
	}
	e.scratch[0] = varintTagU128
	e.put128(e.scratch[1:17], v)
	return e.w.Write(e.scratch[:17])
}

func (e *Encoder) writeIvarint(v int64) error {
	return e.writeUvarint(bits.ZigZag64(v))
}

func (e *Encoder) put128(b []byte, v U128) {
	if e.cfg.Endian == BigEndian {
		binary.BigEndian.PutUint64(b[0:8], v.Hi)
		binary.BigEndian.PutUint64(b[8:16], v.Lo)
	} else {
		binary.LittleEndian.PutUint64(b[0:8], v.Lo)
		binary.LittleEndian.PutUint64(b[8:16], v.Hi)
	}
}

// readUvarint decodes one variable-length unsigned integer for a target
// whose widest admissible form is the tag widest. A wire form wider than
// the target's own width is rejected by tag alone: 16-to-64-bit tags past
// widest fail with out_of_range, and the 128-bit tag read into a narrower
// target fails with invalid_integer, the same as the reserved 255 tag.
func (d *Decoder) readUvarint(target string, widest byte, max uint64) (uint64, error) {
	if err := d.r.Read(d.scratch[:1]); err != nil {
		return 0, err
	}
	tag := d.scratch[0]

	var v uint64
	switch {
	case tag <= varintSingleMax:
		v = uint64(tag)
	case tag == varintTagU16:
		if err := d.r.Read(d.scratch[:2]); err != nil {
			return 0, err
		}
		v = uint64(d.cfg.byteOrder().Uint16(d.scratch[:2]))
	case tag == varintTagU32:
		if err := d.r.Read(d.scratch[:4]); err != nil {
			return 0, err
		}
		v = uint64(d.cfg.byteOrder().Uint32(d.scratch[:4]))
	case tag == varintTagU64:
		if err := d.r.Read(d.scratch[:8]); err != nil {
			return 0, err
		}
		v = d.cfg.byteOrder().Uint64(d.scratch[:8])
	default:
		// varintTagU128, the reserved 255 tag, and anything a future
		// format revision might add.
		return 0, errors.InvalidInteger(tag, target)
	}

	if tag > widest {
		return 0, errors.OutOfRange(v, target)
	}
	if v > max {
		return 0, errors.OutOfRange(v, target)
	}
	return v, nil
}

func (d *Decoder) readUvarint128() (U128, error) {
	if err := d.r.Read(d.scratch[:1]); err != nil {
		return U128{}, err
	}
	tag := d.scratch[0]

	switch {
	case tag <= varintSingleMax:
		return U128{Lo: uint64(tag)}, nil
	case tag == varintTagU16:
		if err := d.r.Read(d.scratch[:2]); err != nil {
			return U128{}, err
		}
		return U128{Lo: uint64(d.cfg.byteOrder().Uint16(d.scratch[:2]))}, nil
	case tag == varintTagU32:
		if err := d.r.Read(d.scratch[:4]); err != nil {
			return U128{}, err
		}
		return U128{Lo: uint64(d.cfg.byteOrder().Uint32(d.scratch[:4]))}, nil
	case tag == varintTagU64:
		if err := d.r.Read(d.scratch[:8]); err != nil {
			return U128{}, err
		}
		return U128{Lo: d.cfg.byteOrder().Uint64(d.scratch[:8])}, nil
	case tag == varintTagU128:
		return d.read128()
	default:
		return U128{}, errors.InvalidInteger(tag, "U128")
	}
}

func (d *Decoder) readIvarint(target string, widest byte, min, max int64) (int64, error) {
	u, err := d.readUvarint(target, widest, math.MaxUint64)
	if err != nil {
		// Surface the narrower target in range errors.
		if e, ok := err.(*errors.Error); ok && e.Kind == errors.KindOutOfRange {
			return 0, errors.OutOfRange(e.Value, target)
		}
		return 0, err
	}
	v := bits.UnZigZag64(u)
	if v < min || v > max {
		return 0, errors.OutOfRange(v, target)
	}
	return v, nil
}

func (d *Decoder) read128() (U128, error) {
	if err := d.r.Read(d.scratch[:16]); err != nil {
		return U128{}, err
	}
	if d.cfg.Endian == BigEndian {
		return U128{
			Hi: binary.BigEndian.Uint64(d.scratch[0:8]),
			Lo: binary.BigEndian.Uint64(d.scratch[8:16]),
		}, nil
	}
	return U128{
		Lo: binary.LittleEndian.Uint64(d.scratch[0:8]),
		Hi: binary.LittleEndian.Uint64(d.scratch[8:16]),
	}, nil
}
