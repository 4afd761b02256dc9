// Package frame wraps encoded streams in a self-describing envelope, so a
// consumer can validate, size-limit, and optionally decompress a payload
// before handing it to the codec.
//
// # Layout
//
//	+-------+---------+-------+--------------+----------------+---------+
//	| "BWF" | version | flags | payload len  | checksum       | payload |
//	| 3B    | 1B '1'  | 1B    | u32 LE       | 16B (optional) | ...     |
//	+-------+---------+-------+--------------+----------------+---------+
//
// The length field counts stored payload bytes, after compression when
// FlagZstd is set. The checksum, present when FlagChecksum is set, is a
// BLAKE3 digest truncated to 128 bits over the payload before compression.
//
// # Reading untrusted streams
//
// Read checks the declared length against the caller's limit before
// allocating, and caps zstd decompression to the same limit, so a forged
// header cannot force a large allocation:
//
//	payload, err := frame.Read(conn, 1<<20)
//
// Errors carry the frame phase and a kind such as bad_magic,
// unsupported_version, checksum_mismatch, or limit_exceeded; see the
// errors package.
package frame
