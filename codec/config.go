package codec

import "encoding/binary"

// Endian selects the byte order for multi-byte numeric payloads.
type Endian uint8

const (
	LittleEndian Endian = iota
	BigEndian
)

func (e Endian) String() string {
	if e == BigEndian {
		return "big"
	}
	return "little"
}

// IntMode selects between variable-length and fixed-width integer encoding.
type IntMode uint8

const (
	Varint IntMode = iota
	FixedInt
)

func (m IntMode) String() string {
	if m == FixedInt {
		return "fixed"
	}
	return "varint"
}

// NoLimit disables the decode-side read budget.
const NoLimit = -1

// Config is the immutable per-session configuration triple: byte order,
// integer-width mode, and the decode byte budget. It is selected once
// before an encode/decode call and never mutated mid-session.
type Config struct {
	Endian  Endian
	IntMode IntMode
	Limit   int // NoLimit, or the maximum bytes one decode call may claim
}

// DefaultConfig returns {LittleEndian, Varint, NoLimit}.
func DefaultConfig() Config {
	return Config{Endian: LittleEndian, IntMode: Varint, Limit: NoLimit}
}

// WithBigEndian returns a copy encoding multi-byte payloads big-endian.
func (c Config) WithBigEndian() Config {
	c.Endian = BigEndian
	return c
}

// WithLittleEndian returns a copy encoding multi-byte payloads little-endian.
func (c Config) WithLittleEndian() Config {
	c.Endian = LittleEndian
	return c
}

// WithFixedInts returns a copy encoding integers at their full declared width.
func (c Config) WithFixedInts() Config {
	c.IntMode = FixedInt
	return c
}

// WithVarints returns a copy encoding integers in the variable-length form.
func (c Config) WithVarints() Config {
	c.IntMode = Varint
	return c
}

// WithLimit returns a copy whose decoder claims at most n bytes per call.
func (c Config) WithLimit(n int) Config {
	c.Limit = n
	return c
}

func (c Config) byteOrder() binary.ByteOrder {
	if c.Endian == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}
