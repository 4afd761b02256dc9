package bytewire_test

import (
	"bytes"
	"testing"

	"github.com/bytewire/bytewire"
	"github.com/bytewire/bytewire/codec"
)

type record struct {
	ID   uint64
	Name string
	Tags []uint32
}

func (r record) EncodeWire(e *codec.Encoder) error {
	if err := e.WriteU64(r.ID); err != nil {
		return err
	}
	if err := e.WriteString(r.Name); err != nil {
		return err
	}
	return codec.EncodeSlice(e, r.Tags, (*codec.Encoder).WriteU32)
}

func (r *record) DecodeWire(d *codec.Decoder) error {
	var err error
	if r.ID, err = d.ReadU64(); err != nil {
		return err
	}
	if r.Name, err = d.ReadString(); err != nil {
		return err
	}
	r.Tags, err = codec.DecodeSlice(d, (*codec.Decoder).ReadU32)
	return err
}

func (r *record) DecodeWireBorrowed(d *codec.Decoder) error {
	var err error
	if r.ID, err = d.ReadU64(); err != nil {
		return err
	}
	if r.Name, err = d.BorrowString(); err != nil {
		return err
	}
	r.Tags, err = codec.DecodeSlice(d, (*codec.Decoder).ReadU32)
	return err
}

func TestMarshalUnmarshal(t *testing.T) {
	in := record{ID: 9000, Name: "telemetry", Tags: []uint32{1, 2, 3}}
	cfg := bytewire.DefaultConfig()

	wire, err := bytewire.Marshal(in, cfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out record
	n, err := bytewire.Unmarshal(wire, &out, cfg)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if n != len(wire) {
		t.Fatalf("consumed %d of %d bytes", n, len(wire))
	}
	if out.ID != in.ID || out.Name != in.Name || len(out.Tags) != 3 {
		t.Fatalf("got %+v, want %+v", out, in)
	}
}

func TestMarshalTo(t *testing.T) {
	in := record{ID: 1, Name: "x"}
	cfg := bytewire.DefaultConfig()

	var buf bytes.Buffer
	if err := bytewire.MarshalTo(&buf, in, cfg); err != nil {
		t.Fatalf("marshal to: %v", err)
	}
	direct, err := bytewire.Marshal(in, cfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), direct) {
		t.Fatalf("stream and slice encodings differ: % X vs % X", buf.Bytes(), direct)
	}
}

func TestUnmarshalReportsConsumed(t *testing.T) {
	cfg := bytewire.DefaultConfig()
	wire, err := bytewire.Marshal(record{ID: 5, Name: "a"}, cfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	// Trailing garbage is the caller's business.
	padded := append(append([]byte{}, wire...), 0xDE, 0xAD)

	var out record
	n, err := bytewire.Unmarshal(padded, &out, cfg)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if n != len(wire) {
		t.Fatalf("consumed %d, want %d", n, len(wire))
	}
}

func TestUnmarshalBorrowed(t *testing.T) {
	cfg := bytewire.DefaultConfig()
	wire, err := bytewire.Marshal(record{ID: 7, Name: "borrowed"}, cfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out record
	if _, err := bytewire.UnmarshalBorrowed(wire, &out, cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Name != "borrowed" {
		t.Fatalf("got %q", out.Name)
	}
}

func TestValueHelpers(t *testing.T) {
	cfg := bytewire.DefaultConfig()

	wire, err := bytewire.MarshalValue([]string{"a", "bb"}, func(e *codec.Encoder, s []string) error {
		return codec.EncodeSlice(e, s, (*codec.Encoder).WriteString)
	}, cfg)
	if err != nil {
		t.Fatalf("marshal value: %v", err)
	}

	out, n, err := bytewire.UnmarshalValue(wire, func(d *codec.Decoder) ([]string, error) {
		return codec.DecodeSlice(d, (*codec.Decoder).ReadString)
	}, cfg)
	if err != nil {
		t.Fatalf("unmarshal value: %v", err)
	}
	if n != len(wire) || len(out) != 2 || out[1] != "bb" {
		t.Fatalf("got %v (consumed %d)", out, n)
	}
}

func TestConfigIsPartOfTheContract(t *testing.T) {
	in := record{ID: 300, Name: "n"}
	fixed := bytewire.DefaultConfig().WithFixedInts()
	varint := bytewire.DefaultConfig()

	a, err := bytewire.Marshal(in, fixed)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	b, err := bytewire.Marshal(in, varint)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Fatalf("int mode did not change the stream")
	}
}
