package codec_test

import (
	"bytes"
	stderrors "errors"
	"math"
	"testing"

	"github.com/bytewire/bytewire/codec"
	"github.com/bytewire/bytewire/errors"
)

var allConfigs = []struct {
	name string
	cfg  codec.Config
}{
	{"little_varint", codec.DefaultConfig()},
	{"little_fixed", codec.DefaultConfig().WithFixedInts()},
	{"big_varint", codec.DefaultConfig().WithBigEndian()},
	{"big_fixed", codec.DefaultConfig().WithBigEndian().WithFixedInts()},
}

func TestPrimitiveRoundTrip(t *testing.T) {
	for _, cc := range allConfigs {
		t.Run(cc.name, func(t *testing.T) {
			w := codec.NewBufferWriter()
			e := codec.NewEncoder(w, cc.cfg)

			steps := []error{
				e.WriteBool(true),
				e.WriteBool(false),
				e.WriteU8(0xAB),
				e.WriteI8(-12),
				e.WriteU16(40000),
				e.WriteU32(3_000_000_000),
				e.WriteU64(math.MaxUint64 - 7),
				e.WriteUint(123456),
				e.WriteI16(-30000),
				e.WriteI32(math.MinInt32),
				e.WriteI64(math.MinInt64),
				e.WriteInt(-42),
				e.WriteF32(3.5),
				e.WriteF64(-math.MaxFloat64),
				e.WriteRune('A'),
				e.WriteRune('é'),
				e.WriteRune('€'),
				e.WriteRune('🦀'),
				e.WriteString("héllo"),
				e.WriteBytes([]byte{9, 8, 7}),
			}
			for i, err := range steps {
				if err != nil {
					t.Fatalf("encode step %d: %v", i, err)
				}
			}

			d := codec.NewDecoder(codec.NewSliceReader(w.Bytes()), cc.cfg)
			check := func(name string, got, want any, err error) {
				t.Helper()
				if err != nil {
					t.Fatalf("decode %s: %v", name, err)
				}
				if got != want {
					t.Fatalf("%s: got %v, want %v", name, got, want)
				}
			}

			b1, err := d.ReadBool()
			check("bool true", b1, true, err)
			b2, err := d.ReadBool()
			check("bool false", b2, false, err)
			u8, err := d.ReadU8()
			check("u8", u8, uint8(0xAB), err)
			i8, err := d.ReadI8()
			check("i8", i8, int8(-12), err)
			u16, err := d.ReadU16()
			check("u16", u16, uint16(40000), err)
			u32, err := d.ReadU32()
			check("u32", u32, uint32(3_000_000_000), err)
			u64, err := d.ReadU64()
			check("u64", u64, uint64(math.MaxUint64-7), err)
			uv, err := d.ReadUint()
			check("uint", uv, uint(123456), err)
			i16, err := d.ReadI16()
			check("i16", i16, int16(-30000), err)
			i32, err := d.ReadI32()
			check("i32", i32, int32(math.MinInt32), err)
			i64, err := d.ReadI64()
			check("i64", i64, int64(math.MinInt64), err)
			iv, err := d.ReadInt()
			check("int", iv, -42, err)
			f32, err := d.ReadF32()
			check("f32", f32, float32(3.5), err)
			f64, err := d.ReadF64()
			check("f64", f64, -math.MaxFloat64, err)
			for _, want := range []rune{'A', 'é', '€', '🦀'} {
				r, err := d.ReadRune()
				check("rune", r, want, err)
			}
			s, err := d.ReadString()
			check("string", s, "héllo", err)
			bs, err := d.ReadBytes()
			if err != nil {
				t.Fatalf("decode bytes: %v", err)
			}
			if !bytes.Equal(bs, []byte{9, 8, 7}) {
				t.Fatalf("bytes: got %v", bs)
			}

			if sr, ok := d.Reader().(*codec.SliceReader); ok && sr.Remaining() != 0 {
				t.Fatalf("stream not fully consumed: %d bytes left", sr.Remaining())
			}
		})
	}
}

func TestGoldenVectors(t *testing.T) {
	t.Run("byte_slice_default", func(t *testing.T) {
		got := encodeWith(t, codec.DefaultConfig(), func(e *codec.Encoder) error {
			return e.WriteBytes([]byte{1, 2, 3})
		})
		want := []byte{0x03, 0x01, 0x02, 0x03}
		if !bytes.Equal(got, want) {
			t.Fatalf("got % X, want % X", got, want)
		}
	})

	t.Run("absent_option", func(t *testing.T) {
		got := encodeWith(t, codec.DefaultConfig(), func(e *codec.Encoder) error {
			return codec.EncodeOption[uint32](e, nil, (*codec.Encoder).WriteU32)
		})
		if !bytes.Equal(got, []byte{0x00}) {
			t.Fatalf("got % X, want 00", got)
		}
	})

	t.Run("present_option_fixed", func(t *testing.T) {
		v := uint32(300)
		got := encodeWith(t, codec.DefaultConfig().WithFixedInts(), func(e *codec.Encoder) error {
			return codec.EncodeOption(e, &v, (*codec.Encoder).WriteU32)
		})
		want := []byte{0x01, 0x2C, 0x01, 0x00, 0x00}
		if !bytes.Equal(got, want) {
			t.Fatalf("got % X, want % X", got, want)
		}
	})

	t.Run("bool_bytes", func(t *testing.T) {
		got := encodeWith(t, codec.DefaultConfig(), func(e *codec.Encoder) error {
			if err := e.WriteBool(false); err != nil {
				return err
			}
			return e.WriteBool(true)
		})
		if !bytes.Equal(got, []byte{0x00, 0x01}) {
			t.Fatalf("got % X", got)
		}
	})

	t.Run("floats_never_varint", func(t *testing.T) {
		got := encodeWith(t, codec.DefaultConfig(), func(e *codec.Encoder) error {
			return e.WriteF64(1.0)
		})
		if len(got) != 8 {
			t.Fatalf("f64 must be 8 bytes under every config, got % X", got)
		}
	})
}

func TestEndianAffectsFixedPayloads(t *testing.T) {
	le := encodeWith(t, codec.DefaultConfig().WithFixedInts(), func(e *codec.Encoder) error {
		return e.WriteU32(0x11223344)
	})
	be := encodeWith(t, codec.DefaultConfig().WithBigEndian().WithFixedInts(), func(e *codec.Encoder) error {
		return e.WriteU32(0x11223344)
	})
	if bytes.Equal(le, be) {
		t.Fatalf("endianness did not change the stream: % X", le)
	}

	// A stream decoded under the wrong endianness yields a different value,
	// not an error. Configs are part of the protocol contract.
	d := codec.NewDecoder(codec.NewSliceReader(le), codec.DefaultConfig().WithBigEndian().WithFixedInts())
	v, err := d.ReadU32()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v != 0x44332211 {
		t.Fatalf("got %#x, want byte-swapped %#x", v, 0x44332211)
	}
}

func TestFixedIntWidths(t *testing.T) {
	cfg := codec.DefaultConfig().WithFixedInts()
	got := encodeWith(t, cfg, func(e *codec.Encoder) error {
		if err := e.WriteU16(1); err != nil {
			return err
		}
		if err := e.WriteU32(1); err != nil {
			return err
		}
		if err := e.WriteU64(1); err != nil {
			return err
		}
		return e.WriteU128(codec.U128From64(1))
	})
	if len(got) != 2+4+8+16 {
		t.Fatalf("fixed widths: got %d bytes", len(got))
	}
}

func TestI128RoundTrip(t *testing.T) {
	values := []codec.I128{
		codec.I128From64(0),
		codec.I128From64(1),
		codec.I128From64(-1),
		codec.I128From64(math.MinInt64),
		{Hi: 0x7FFFFFFFFFFFFFFF, Lo: 0xFFFFFFFFFFFFFFFF},
		{Hi: 0x8000000000000000, Lo: 0},
	}
	for _, cc := range allConfigs {
		t.Run(cc.name, func(t *testing.T) {
			for _, v := range values {
				wire := encodeWith(t, cc.cfg, func(e *codec.Encoder) error {
					return e.WriteI128(v)
				})
				d := codec.NewDecoder(codec.NewSliceReader(wire), cc.cfg)
				back, err := d.ReadI128()
				if err != nil {
					t.Fatalf("decode %v: %v", v, err)
				}
				if back != v {
					t.Fatalf("round trip: got %v, want %v", back, v)
				}
			}
		})
	}
}

func TestInvalidInput(t *testing.T) {
	cfg := codec.DefaultConfig()

	t.Run("bool_out_of_domain", func(t *testing.T) {
		d := codec.NewDecoder(codec.NewSliceReader([]byte{0x02}), cfg)
		_, err := d.ReadBool()
		wantKind(t, err, errors.PhaseDecode, errors.KindInvalidBool)
	})

	t.Run("rune_bad_lead", func(t *testing.T) {
		d := codec.NewDecoder(codec.NewSliceReader([]byte{0x80}), cfg)
		_, err := d.ReadRune()
		wantKind(t, err, errors.PhaseDecode, errors.KindInvalidChar)
	})

	t.Run("rune_bad_continuation", func(t *testing.T) {
		d := codec.NewDecoder(codec.NewSliceReader([]byte{0xC3, 0x28}), cfg)
		_, err := d.ReadRune()
		wantKind(t, err, errors.PhaseDecode, errors.KindInvalidChar)
	})

	t.Run("rune_surrogate", func(t *testing.T) {
		// U+D800 encoded as UTF-8 is not a scalar value.
		d := codec.NewDecoder(codec.NewSliceReader([]byte{0xED, 0xA0, 0x80}), cfg)
		_, err := d.ReadRune()
		wantKind(t, err, errors.PhaseDecode, errors.KindInvalidChar)
	})

	t.Run("string_bad_utf8", func(t *testing.T) {
		wire := encodeWith(t, cfg, func(e *codec.Encoder) error {
			return e.WriteBytes([]byte{'o', 'k', 0xFF, 'x'})
		})
		d := codec.NewDecoder(codec.NewSliceReader(wire), cfg)
		_, err := d.ReadString()
		wantKind(t, err, errors.PhaseDecode, errors.KindInvalidUTF8)
	})

	t.Run("truncated_string", func(t *testing.T) {
		// Length prefix promises 5 bytes; 2 follow.
		d := codec.NewDecoder(codec.NewSliceReader([]byte{0x05, 'h', 'i'}), cfg)
		_, err := d.ReadString()
		wantKind(t, err, errors.PhaseDecode, errors.KindUnexpectedEnd)
	})

	t.Run("empty_stream", func(t *testing.T) {
		d := codec.NewDecoder(codec.NewSliceReader(nil), cfg)
		_, err := d.ReadU8()
		wantKind(t, err, errors.PhaseDecode, errors.KindUnexpectedEnd)
	})
}

func TestReadBudget(t *testing.T) {
	t.Run("forged_length_rejected_before_alloc", func(t *testing.T) {
		// Claims a 4 GiB byte run on a 32-byte budget.
		wire := encodeWith(t, codec.DefaultConfig(), func(e *codec.Encoder) error {
			return e.WriteU64(1 << 32)
		})
		d := codec.NewDecoder(codec.NewSliceReader(wire), codec.DefaultConfig().WithLimit(32))
		_, err := d.ReadBytes()
		wantKind(t, err, errors.PhaseDecode, errors.KindLimitExceeded)
	})

	t.Run("budget_admits_honest_stream", func(t *testing.T) {
		cfg := codec.DefaultConfig()
		wire := encodeWith(t, cfg, func(e *codec.Encoder) error {
			return codec.EncodeSlice(e, []uint64{1, 2, 3}, (*codec.Encoder).WriteU64)
		})
		// 8 for the length plus 8 per element estimate.
		d := codec.NewDecoder(codec.NewSliceReader(wire), cfg.WithLimit(32))
		got, err := codec.DecodeSlice(d, (*codec.Decoder).ReadU64)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(got) != 3 || got[0] != 1 || got[2] != 3 {
			t.Fatalf("got %v", got)
		}
	})

	t.Run("container_claim_scales_with_element_size", func(t *testing.T) {
		cfg := codec.DefaultConfig()
		wire := encodeWith(t, cfg, func(e *codec.Encoder) error {
			return codec.EncodeSlice(e, []uint64{1, 2, 3, 4}, (*codec.Encoder).WriteU64)
		})
		// 8 + 4x8 = 40 needed; 39 must fail.
		d := codec.NewDecoder(codec.NewSliceReader(wire), cfg.WithLimit(39))
		_, err := codec.DecodeSlice(d, (*codec.Decoder).ReadU64)
		wantKind(t, err, errors.PhaseDecode, errors.KindLimitExceeded)
	})

	t.Run("primitive_claims_width", func(t *testing.T) {
		wire := encodeWith(t, codec.DefaultConfig().WithFixedInts(), func(e *codec.Encoder) error {
			return e.WriteU64(7)
		})
		d := codec.NewDecoder(codec.NewSliceReader(wire), codec.DefaultConfig().WithFixedInts().WithLimit(7))
		_, err := d.ReadU64()
		wantKind(t, err, errors.PhaseDecode, errors.KindLimitExceeded)
	})

	t.Run("no_limit_is_unbounded", func(t *testing.T) {
		d := codec.NewDecoder(codec.NewSliceReader([]byte{0x01, 0x2A}), codec.DefaultConfig())
		if d.BudgetRemaining() != codec.NoLimit {
			t.Fatalf("expected NoLimit, got %d", d.BudgetRemaining())
		}
		n, err := d.ReadBytes()
		if err != nil || len(n) != 1 || n[0] != 0x2A {
			t.Fatalf("got %v, %v", n, err)
		}
	})
}

func TestZeroCopyBorrow(t *testing.T) {
	cfg := codec.DefaultConfig()
	wire := encodeWith(t, cfg, func(e *codec.Encoder) error {
		if err := e.WriteBytes([]byte("payload")); err != nil {
			return err
		}
		return e.WriteString("ünïcode")
	})

	t.Run("borrow_aliases_source", func(t *testing.T) {
		src := make([]byte, len(wire))
		copy(src, wire)
		d := codec.NewDecoder(codec.NewSliceReader(src), cfg)

		b, err := d.BorrowBytes()
		if err != nil {
			t.Fatalf("borrow: %v", err)
		}
		if string(b) != "payload" {
			t.Fatalf("got %q", b)
		}
		// Prove aliasing: mutating the source shows through the borrow.
		src[1] ^= 0xFF
		if string(b) == "payload" {
			t.Fatalf("borrowed bytes did not alias the source buffer")
		}
		src[1] ^= 0xFF

		s, err := d.BorrowString()
		if err != nil {
			t.Fatalf("borrow string: %v", err)
		}
		if s != "ünïcode" {
			t.Fatalf("got %q", s)
		}
	})

	t.Run("owned_read_copies", func(t *testing.T) {
		src := make([]byte, len(wire))
		copy(src, wire)
		d := codec.NewDecoder(codec.NewSliceReader(src), cfg)

		b, err := d.ReadBytes()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		src[1] ^= 0xFF
		if string(b) != "payload" {
			t.Fatalf("owned bytes alias the source: %q", b)
		}
	})

	t.Run("io_source_falls_back_to_copy", func(t *testing.T) {
		d := codec.NewDecoder(codec.NewIOReader(bytes.NewReader(wire)), cfg)
		b, err := d.BorrowBytes()
		if err != nil {
			t.Fatalf("borrow fallback: %v", err)
		}
		if string(b) != "payload" {
			t.Fatalf("got %q", b)
		}
	})
}

func TestSliceReaderOffsets(t *testing.T) {
	r := codec.NewSliceReader([]byte{1, 2, 3, 4})
	var buf [3]byte
	if err := r.Read(buf[:]); err != nil {
		t.Fatalf("read: %v", err)
	}
	if r.Offset() != 3 || r.Remaining() != 1 {
		t.Fatalf("offset %d remaining %d", r.Offset(), r.Remaining())
	}

	err := r.Read(buf[:2])
	var ce *errors.Error
	if !stderrors.As(err, &ce) || ce.Offset != 3 {
		t.Fatalf("expected unexpected_end at offset 3, got %v", err)
	}
}
