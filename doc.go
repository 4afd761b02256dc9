// Package bytewire implements a compact, configurable binary serialization
// format for Go values.
//
// Streams are schema-less: there are no field names, type tags, or framing
// inside the payload, so the encoded form is as small as the values
// themselves. The static type drives both directions, and the producer and
// consumer must agree on the type and the configuration.
//
// # Architecture Overview
//
// The module is organized into packages with distinct responsibilities:
//
//	bytewire/            Root package: Marshal/Unmarshal convenience entry points
//	├── codec/           Core engine: Config, Encoder, Decoder, varint codec,
//	│                    read budget, container drivers, zero-copy borrowing
//	├── errors/          Structured error types for diagnostics
//	├── frame/           Self-describing envelope: magic, checksum, compression
//	└── cmd/wiredump/    Stream inspection CLI
//
// # Quick Start
//
// Implement codec.Encodable and codec.Decodable on a type, then:
//
//	type Point struct{ X, Y int32 }
//
//	func (p Point) EncodeWire(e *codec.Encoder) error {
//	    if err := e.WriteI32(p.X); err != nil {
//	        return err
//	    }
//	    return e.WriteI32(p.Y)
//	}
//
//	func (p *Point) DecodeWire(d *codec.Decoder) error { ... }
//
//	wire, err := bytewire.Marshal(Point{3, -4}, bytewire.DefaultConfig())
//
//	var p Point
//	n, err := bytewire.Unmarshal(wire, &p, bytewire.DefaultConfig())
//
// Unmarshal reports how many bytes it consumed; trailing data is left for
// the caller to judge.
//
// # Configuration
//
// A Config fixes three independent axes for a session: byte order
// (little or big endian), integer mode (variable-length or fixed-width),
// and the decode byte limit. Both sides of a stream must use the same
// Config; it is part of the protocol contract, not a stream property.
//
//	cfg := bytewire.DefaultConfig().WithBigEndian().WithLimit(1 << 20)
//
// # Decoding Untrusted Input
//
// With a limit set, the decoder refuses to allocate more memory than the
// budget allows, no matter what lengths the stream declares. A forged
// multi-gigabyte length prefix fails with a limit_exceeded error before
// any proportional allocation happens. The frame package adds an outer
// envelope with the same property plus integrity checking.
package bytewire
