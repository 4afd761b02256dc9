package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseEncode Phase = "encode" // value to wire bytes
	PhaseDecode Phase = "decode" // wire bytes to value
	PhaseFrame  Phase = "frame"  // stream envelope handling
)

// Kind categorizes the error
type Kind string

const (
	// Encode-side kinds.
	KindWriteFailed       Kind = "write_failed"
	KindUnexpectedVariant Kind = "unexpected_variant"
	KindValueLocked       Kind = "value_locked"

	// Decode-side kinds.
	KindUnexpectedEnd  Kind = "unexpected_end"
	KindReadFailed     Kind = "read_failed"
	KindInvalidInteger Kind = "invalid_integer"
	KindOutOfRange     Kind = "out_of_range"
	KindInvalidUTF8    Kind = "invalid_utf8"
	KindInvalidChar    Kind = "invalid_char"
	KindInvalidBool    Kind = "invalid_bool"
	KindInvalidVariant Kind = "invalid_variant"
	KindLimitExceeded  Kind = "limit_exceeded"

	// Frame kinds.
	KindBadMagic           Kind = "bad_magic"
	KindChecksumMismatch   Kind = "checksum_mismatch"
	KindUnsupportedVersion Kind = "unsupported_version"
)

// carriesOffset reports whether errors of this kind always record a stream
// offset, so that offset zero still renders for them.
func (k Kind) carriesOffset() bool {
	return k == KindUnexpectedEnd || k == KindInvalidUTF8
}

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Type   string
	Detail string
	Offset int
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Offset > 0 || e.Kind.carriesOffset() {
		fmt.Fprintf(&b, " (offset %d)", e.Offset)
	}

	if e.Type != "" {
		b.WriteString(": target ")
		b.WriteString(e.Type)
	}

	if e.Detail != "" {
		if e.Type != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Type sets the decode target (or encode source) type name
func (b *Builder) Type(t string) *Builder {
	b.err.Type = t
	return b
}

// Offset sets the stream byte offset at which the error was detected
func (b *Builder) Offset(off int) *Builder {
	b.err.Offset = off
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// UnexpectedEnd reports a source that ran out before satisfying a read.
func UnexpectedEnd(offset, want, have int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindUnexpectedEnd,
		Offset: offset,
		Detail: fmt.Sprintf("need %d more byte(s), %d remaining", want, have),
	}
}

// ReadFailed wraps an underlying reader failure.
func ReadFailed(cause error) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindReadFailed,
		Detail: "reader failed",
		Cause:  cause,
	}
}

// WriteFailed wraps an underlying writer failure.
func WriteFailed(cause error) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindWriteFailed,
		Detail: "writer failed",
		Cause:  cause,
	}
}

// SinkFull reports an output sink that refused bytes for lack of capacity.
func SinkFull(capacity, attempted int) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindWriteFailed,
		Detail: fmt.Sprintf("sink capacity %d exceeded by write of %d byte(s)", capacity, attempted),
	}
}

// OutOfRange reports a decoded literal that does not fit the target type.
func OutOfRange(value any, target string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindOutOfRange,
		Type:   target,
		Detail: fmt.Sprintf("value %v does not fit %s", value, target),
		Value:  value,
	}
}

// InvalidInteger reports a malformed variable-length integer tag.
func InvalidInteger(tag byte, target string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidInteger,
		Type:   target,
		Detail: fmt.Sprintf("invalid varint tag 0x%02X", tag),
		Value:  tag,
	}
}

// InvalidUTF8 reports a byte run that is not valid UTF-8. The offset is the
// position of the first invalid sequence within the decoded run.
func InvalidUTF8(offset int, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidUTF8,
		Offset: offset,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// InvalidChar reports a malformed UTF-8 scalar value encoding.
func InvalidChar(bytes [4]byte) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidChar,
		Detail: fmt.Sprintf("invalid char encoding: % x", bytes[:]),
		Value:  bytes,
	}
}

// InvalidBool reports a boolean byte that is neither 0x00 nor 0x01.
func InvalidBool(found byte) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidBool,
		Detail: fmt.Sprintf("invalid bool value 0x%02X", found),
		Value:  found,
	}
}

// InvalidDiscriminant reports an option/result tag outside its allowed range.
func InvalidDiscriminant(found uint32, maxValid uint32, typeName string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidVariant,
		Type:   typeName,
		Detail: fmt.Sprintf("discriminant %d out of range (max %d)", found, maxValid),
		Value:  found,
	}
}

// UnexpectedVariant reports a value whose discriminant cannot be encoded.
func UnexpectedVariant(typeName string, found any) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindUnexpectedVariant,
		Type:   typeName,
		Detail: fmt.Sprintf("impossible variant %v", found),
		Value:  found,
	}
}

// LimitExceeded reports a read-budget claim that the configured limit rejects.
func LimitExceeded(claimed, remaining int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindLimitExceeded,
		Detail: fmt.Sprintf("claim of %d byte(s) exceeds remaining budget of %d", claimed, remaining),
	}
}

// ValueLocked reports an encode of a guarded cell whose contents are
// exclusively held elsewhere.
func ValueLocked(typeName string) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindValueLocked,
		Type:   typeName,
		Detail: "cell is exclusively locked",
	}
}

// BadMagic reports a frame that does not start with the expected magic bytes.
func BadMagic(found []byte) *Error {
	return &Error{
		Phase:  PhaseFrame,
		Kind:   KindBadMagic,
		Detail: fmt.Sprintf("bad magic % x", found),
	}
}

// ChecksumMismatch reports a frame whose payload hash does not match.
func ChecksumMismatch(want, got []byte) *Error {
	return &Error{
		Phase:  PhaseFrame,
		Kind:   KindChecksumMismatch,
		Detail: fmt.Sprintf("checksum mismatch: header %x, payload %x", want, got),
	}
}

// UnsupportedVersion reports a frame version this build does not understand.
func UnsupportedVersion(found uint8) *Error {
	return &Error{
		Phase:  PhaseFrame,
		Kind:   KindUnsupportedVersion,
		Detail: fmt.Sprintf("unsupported frame version %d", found),
		Value:  found,
	}
}
