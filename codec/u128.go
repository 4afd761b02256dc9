package codec

import "fmt"

// U128 is an unsigned 128-bit integer carried as two 64-bit words.
type U128 struct {
	Hi uint64
	Lo uint64
}

// U128From64 widens a uint64.
func U128From64(v uint64) U128 {
	return U128{Lo: v}
}

// IsZero reports whether the value is zero.
func (v U128) IsZero() bool {
	return v.Hi == 0 && v.Lo == 0
}

func (v U128) String() string {
	if v.Hi == 0 {
		return fmt.Sprintf("%d", v.Lo)
	}
	return fmt.Sprintf("0x%016x%016x", v.Hi, v.Lo)
}

// I128 is a signed 128-bit integer in two's complement, carried as two
// 64-bit words. Hi holds the sign.
type I128 struct {
	Hi uint64
	Lo uint64
}

// I128From64 sign-extends an int64.
func I128From64(v int64) I128 {
	var hi uint64
	if v < 0 {
		hi = ^uint64(0)
	}
	return I128{Hi: hi, Lo: uint64(v)}
}

// Sign returns -1, 0, or +1.
func (v I128) Sign() int {
	if int64(v.Hi) < 0 {
		return -1
	}
	if v.Hi == 0 && v.Lo == 0 {
		return 0
	}
	return 1
}

func (v I128) String() string {
	switch {
	case v.Hi == 0 && int64(v.Lo) >= 0:
		return fmt.Sprintf("%d", v.Lo)
	case v.Hi == ^uint64(0) && int64(v.Lo) < 0:
		return fmt.Sprintf("%d", int64(v.Lo))
	default:
		return fmt.Sprintf("0x%016x%016x", v.Hi, v.Lo)
	}
}
