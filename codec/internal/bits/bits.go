package bits

import "math"

// ZigZag64 maps a signed value onto the unsigned varint domain so that small
// magnitudes of either sign stay small on the wire.
func ZigZag64(v int64) uint64 {
	return uint64(v<<1) ^ uint64(v>>63)
}

// UnZigZag64 is the exact inverse of ZigZag64.
func UnZigZag64(v uint64) int64 {
	return int64(v>>1) ^ -int64(v&1)
}

// ZigZag128 maps a signed 128-bit value (hi, lo) onto unsigned (hi, lo).
func ZigZag128(hi, lo uint64) (uint64, uint64) {
	// shift left by one across the word boundary
	shi := hi<<1 | lo>>63
	slo := lo << 1
	// arithmetic shift of the sign across both words
	sign := uint64(int64(hi) >> 63)
	return shi ^ sign, slo ^ sign
}

// UnZigZag128 is the exact inverse of ZigZag128.
func UnZigZag128(hi, lo uint64) (uint64, uint64) {
	sign := -(lo & 1)
	// shift right by one across the word boundary, then undo the sign XOR
	shi := hi >> 1
	slo := lo>>1 | hi<<63
	return shi ^ sign, slo ^ sign
}

// SafeMul multiplies two non-negative ints, reporting overflow.
func SafeMul(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if b != 0 && a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// UTF8Width returns the total encoded width implied by a UTF-8 lead byte,
// or 0 when the byte cannot start a sequence.
func UTF8Width(lead byte) int {
	switch {
	case lead < 0x80:
		return 1
	case lead < 0xC2:
		// continuation bytes and overlong 0xC0/0xC1 leads
		return 0
	case lead < 0xE0:
		return 2
	case lead < 0xF0:
		return 3
	case lead < 0xF5:
		return 4
	default:
		return 0
	}
}

// ValidRune rejects surrogates (0xD800-0xDFFF) and values past 0x10FFFF.
func ValidRune(r rune) bool {
	if r >= 0xD800 && r <= 0xDFFF {
		return false
	}
	return r >= 0 && r <= 0x10FFFF
}
