// Package codec implements a compact, schema-less binary encoding engine.
//
// Values are serialized to a flat byte stream with no self-describing
// headers: the shape of the stream is entirely determined by the static
// type being encoded or decoded. Composite types drive their fields'
// encode/decode recursively, in declaration order, with no interleaving.
//
// # Wire Format
//
// Per value, recursively:
//
//	Type            Encoding
//	──────────────────────────────────────────────────────────────
//	zero-sized      no bytes
//	bool            1 byte, 0x00 or 0x01
//	u8/i8           1 raw byte (never mode-dependent)
//	u16..u128       Fixed: width bytes in configured order
//	                Varint: tagged variable-length form (see below)
//	f32/f64         always fixed-width IEEE-754, configured order
//	rune            1-4 UTF-8 bytes, independent of the integer mode
//	string/[]byte   {length as integer} {raw bytes}
//	slice           {length as integer} {length x element}
//	fixed array     {N x element}, no prefix
//	option          {0x00} or {0x01, payload}
//	result          {0 or 1 as u32} {payload}
//	map/set/deque/  {count as integer} {count x entry}
//	heap
//	pointer         identical wire shape to the pointee
//
// # Variable-Length Integers
//
// Unsigned values below 251 occupy a single byte. Larger magnitudes are
// escalated to a width-tagged form:
//
//	Tag     Payload
//	─────────────────
//	251     2 bytes
//	252     4 bytes
//	253     8 bytes
//	254     16 bytes
//
// Payload bytes respect the configured byte order. Signed integers are
// zigzag-mapped onto the unsigned scheme first. Decoding rejects a tag
// whose literal cannot fit the requested target width.
//
// # Read Budget
//
// A length-prefixed collection's declared count is read before any element
// bytes exist, so it is attacker-controlled. Under Config.Limit the Decoder
// "claims" count x sizeof(element) bytes before allocating and "unclaims"
// them element by element as decoding actually consumes input. A declared
// length whose claim exceeds the remaining budget fails with limit_exceeded
// before any proportional allocation occurs.
//
// # Key Types
//
//	Config    - byte order, integer mode, decode byte limit
//	Encoder   - writes values to a Writer
//	Decoder   - reads values from a Reader, tracking the budget
//	Writer    - append-only byte sink
//	Reader    - sequential byte source; BorrowReader can alias its buffer
//
// Generic drivers (EncodeSlice, DecodeMap, DecodeOption, ...) combine the
// primitive Encoder/Decoder methods into container encodings. Method
// expressions satisfy the driver signatures directly:
//
//	nums, err := codec.DecodeSlice(dec, (*codec.Decoder).ReadU32)
//
// # Zero-Copy Decode
//
// BorrowBytes and BorrowString return data aliasing the Decoder's input
// buffer when the underlying Reader supports borrowing. Borrowed results
// are only valid while the input buffer is alive and unmodified.
//
// # Thread Safety
//
// An Encoder or Decoder is exclusively owned by the call stack that created
// it. Separate sessions share no state and may run concurrently; a single
// context must never be shared.
//
// # Error Handling
//
// Errors use the structured types from the errors package:
//
//	[decode] limit_exceeded: claim of 1024 byte(s) exceeds remaining budget of 96
//	[decode] invalid_utf8 (offset 3): invalid UTF-8 sequence: ff fe
package codec
