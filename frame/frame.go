package frame

import (
	"encoding/binary"
	stderrors "errors"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/zeebo/blake3"

	"github.com/bytewire/bytewire/errors"
)

// Flags select optional envelope features.
type Flags uint8

const (
	// FlagZstd marks the stored payload as zstd-compressed.
	FlagZstd Flags = 1 << 0
	// FlagChecksum adds a BLAKE3-128 digest of the uncompressed payload.
	FlagChecksum Flags = 1 << 1

	flagsKnown = FlagZstd | FlagChecksum
)

const (
	version = '1'

	// NoLimit disables the frame payload budget.
	NoLimit = -1

	checksumSize  = 16
	maxPayloadLen = 1<<32 - 1
)

var magic = [4]byte{'B', 'W', 'F', version}

// Header is the decoded envelope prefix, exposed for stream inspection.
type Header struct {
	Flags    Flags
	Length   uint32
	Checksum [checksumSize]byte
}

// HasChecksum reports whether the envelope carries a digest.
func (h Header) HasChecksum() bool {
	return h.Flags&FlagChecksum != 0
}

// Compressed reports whether the stored payload is zstd-compressed.
func (h Header) Compressed() bool {
	return h.Flags&FlagZstd != 0
}

// HeaderSize reports the byte length of the envelope prefix for flags.
func HeaderSize(flags Flags) int {
	n := len(magic) + 1 + 4
	if flags&FlagChecksum != 0 {
		n += checksumSize
	}
	return n
}

// Write wraps payload in an envelope and writes it to w. The digest, when
// requested, covers the payload before compression, so a reader verifies
// what the producer encoded rather than what zstd emitted.
func Write(w io.Writer, payload []byte, flags Flags) error {
	stored := payload
	if flags&FlagZstd != 0 {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return errors.New(errors.PhaseFrame, errors.KindWriteFailed).
				Detail("zstd encoder").
				Cause(err).
				Build()
		}
		stored = enc.EncodeAll(payload, nil)
		enc.Close()
		debugf("compressed payload %d -> %d bytes", len(payload), len(stored))
	}
	if len(stored) > maxPayloadLen {
		return errors.New(errors.PhaseFrame, errors.KindWriteFailed).
			Detail("payload of %d bytes exceeds the u32 length field", len(stored)).
			Build()
	}

	var hdr [len(magic) + 1 + 4 + checksumSize]byte
	n := copy(hdr[:], magic[:])
	hdr[n] = byte(flags)
	n++
	binary.LittleEndian.PutUint32(hdr[n:], uint32(len(stored)))
	n += 4
	if flags&FlagChecksum != 0 {
		digest(payload, hdr[n:n+checksumSize])
		n += checksumSize
	}

	if _, err := w.Write(hdr[:n]); err != nil {
		return errors.WriteFailed(err)
	}
	if len(stored) == 0 {
		return nil
	}
	if _, err := w.Write(stored); err != nil {
		return errors.WriteFailed(err)
	}
	return nil
}

// ReadHeader reads and validates the envelope prefix without touching the
// payload.
func ReadHeader(r io.Reader) (Header, error) {
	var pre [len(magic) + 1 + 4]byte
	if err := readFull(r, pre[:]); err != nil {
		return Header{}, err
	}
	if pre[0] != magic[0] || pre[1] != magic[1] || pre[2] != magic[2] {
		return Header{}, errors.BadMagic(pre[:len(magic)])
	}
	if pre[3] != version {
		return Header{}, errors.UnsupportedVersion(pre[3])
	}

	h := Header{
		Flags:  Flags(pre[4]),
		Length: binary.LittleEndian.Uint32(pre[5:9]),
	}
	if h.Flags&^flagsKnown != 0 {
		return Header{}, errors.New(errors.PhaseFrame, errors.KindUnsupportedVersion).
			Detail("unknown flag bits %#02x", uint8(h.Flags&^flagsKnown)).
			Value(uint8(h.Flags)).
			Build()
	}
	if h.HasChecksum() {
		if err := readFull(r, h.Checksum[:]); err != nil {
			return Header{}, err
		}
	}
	return h, nil
}

// Read reads one envelope from r and returns the payload, decompressed and
// verified per the header flags. The declared payload length is checked
// against limit before any allocation; pass NoLimit to accept any length
// the format can express.
func Read(r io.Reader, limit int) ([]byte, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}
	if limit != NoLimit && int64(h.Length) > int64(limit) {
		return nil, errors.New(errors.PhaseFrame, errors.KindLimitExceeded).
			Detail("declared payload of %d byte(s) exceeds limit of %d", h.Length, limit).
			Build()
	}

	stored := make([]byte, h.Length)
	if err := readFull(r, stored); err != nil {
		return nil, err
	}

	payload := stored
	if h.Compressed() {
		opts := []zstd.DOption{zstd.WithDecoderConcurrency(1)}
		if limit != NoLimit {
			// The decoder refuses ceilings below its minimum window, so
			// clamp the option and let the length check below enforce
			// limits smaller than that.
			mem := uint64(limit)
			if mem < zstd.MinWindowSize {
				mem = zstd.MinWindowSize
			}
			opts = append(opts, zstd.WithDecoderMaxMemory(mem))
		}
		dec, err := zstd.NewReader(nil, opts...)
		if err != nil {
			return nil, errors.ReadFailed(err)
		}
		payload, err = dec.DecodeAll(stored, nil)
		dec.Close()
		if err != nil {
			if stderrors.Is(err, zstd.ErrDecoderSizeExceeded) {
				return nil, errors.New(errors.PhaseFrame, errors.KindLimitExceeded).
					Detail("decompressed payload exceeds limit of %d", limit).
					Cause(err).
					Build()
			}
			return nil, errors.New(errors.PhaseFrame, errors.KindReadFailed).
				Detail("zstd payload").
				Cause(err).
				Build()
		}
		if limit != NoLimit && len(payload) > limit {
			return nil, errors.New(errors.PhaseFrame, errors.KindLimitExceeded).
				Detail("decompressed payload of %d byte(s) exceeds limit of %d", len(payload), limit).
				Build()
		}
		debugf("decompressed payload %d -> %d bytes", len(stored), len(payload))
	}

	if h.HasChecksum() {
		var sum [checksumSize]byte
		digest(payload, sum[:])
		if sum != h.Checksum {
			return nil, errors.ChecksumMismatch(h.Checksum[:], sum[:])
		}
	}
	return payload, nil
}

// digest writes the BLAKE3 hash of data into out, truncated to len(out).
func digest(data []byte, out []byte) {
	h := blake3.New()
	h.Write(data)
	d := h.Digest()
	d.Read(out)
}

func readFull(r io.Reader, p []byte) error {
	n, err := io.ReadFull(r, p)
	switch err {
	case nil:
		return nil
	case io.EOF, io.ErrUnexpectedEOF:
		return errors.UnexpectedEnd(n, len(p), n)
	default:
		return errors.ReadFailed(err)
	}
}
