package codec

import (
	"fmt"
	"sync"

	"github.com/bytewire/bytewire/errors"
)

// EncodeOption writes a one-byte presence tag: 0x00 for nil, 0x01 followed
// by the value otherwise.
func EncodeOption[T any](e *Encoder, v *T, fn EncodeFn[T]) error {
	if v == nil {
		return e.WriteU8(0)
	}
	if err := e.WriteU8(1); err != nil {
		return err
	}
	return fn(e, *v)
}

// DecodeOption reads a presence tag and, when set, the value. Any tag other
// than 0x00 or 0x01 is rejected.
func DecodeOption[T any](d *Decoder, fn DecodeFn[T]) (*T, error) {
	tag, err := d.ReadU8()
	if err != nil {
		return nil, err
	}
	switch tag {
	case 0:
		return nil, nil
	case 1:
		v, err := fn(d)
		if err != nil {
			return nil, err
		}
		return &v, nil
	default:
		return nil, errors.InvalidDiscriminant(uint32(tag), 1, "option")
	}
}

// Result holds exactly one of a success value or an error value. Build one
// with OkResult or ErrResult.
type Result[T, E any] struct {
	Ok  *T
	Err *E
}

// OkResult returns a success Result.
func OkResult[T, E any](v T) Result[T, E] {
	return Result[T, E]{Ok: &v}
}

// ErrResult returns a failure Result.
func ErrResult[T, E any](e E) Result[T, E] {
	return Result[T, E]{Err: &e}
}

// IsOk reports whether the Result holds a success value.
func (r Result[T, E]) IsOk() bool {
	return r.Ok != nil
}

// EncodeResult writes a 32-bit discriminant, 0 for success and 1 for
// failure, followed by the corresponding value.
func EncodeResult[T, E any](e *Encoder, r Result[T, E], okf EncodeFn[T], errf EncodeFn[E]) error {
	if r.Ok != nil {
		if err := e.WriteU32(0); err != nil {
			return err
		}
		return okf(e, *r.Ok)
	}
	if r.Err == nil {
		return errors.New(errors.PhaseEncode, errors.KindUnexpectedVariant).
			Type("result").
			Detail("neither Ok nor Err is set").
			Build()
	}
	if err := e.WriteU32(1); err != nil {
		return err
	}
	return errf(e, *r.Err)
}

// DecodeResult reads a 32-bit discriminant and the matching value.
func DecodeResult[T, E any](d *Decoder, okf DecodeFn[T], errf DecodeFn[E]) (Result[T, E], error) {
	disc, err := d.ReadU32()
	if err != nil {
		return Result[T, E]{}, err
	}
	switch disc {
	case 0:
		v, err := okf(d)
		if err != nil {
			return Result[T, E]{}, err
		}
		return Result[T, E]{Ok: &v}, nil
	case 1:
		ev, err := errf(d)
		if err != nil {
			return Result[T, E]{}, err
		}
		return Result[T, E]{Err: &ev}, nil
	default:
		return Result[T, E]{}, errors.InvalidDiscriminant(disc, 1, "result")
	}
}

// EncodePtr writes the pointee. The pointer identity is not part of the
// stream; a nil pointer cannot be encoded.
func EncodePtr[T any](e *Encoder, p *T, fn EncodeFn[T]) error {
	if p == nil {
		return errors.New(errors.PhaseEncode, errors.KindUnexpectedVariant).
			Type(fmt.Sprintf("%T", p)).
			Detail("nil pointer has no wire form").
			Build()
	}
	return fn(e, *p)
}

// DecodePtr reads a value into freshly allocated storage. Pointers that
// shared a pointee before encoding come back distinct; no interning is
// performed.
func DecodePtr[T any](d *Decoder, fn DecodeFn[T]) (*T, error) {
	v, err := fn(d)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Guarded is a mutex-protected cell. Encoding takes a non-blocking lock
// attempt so a cell held by another goroutine fails fast instead of
// deadlocking the encode call.
type Guarded[T any] struct {
	mu  sync.Mutex
	val T
}

// NewGuarded returns a cell holding v.
func NewGuarded[T any](v T) *Guarded[T] {
	return &Guarded[T]{val: v}
}

// Get returns a copy of the held value.
func (g *Guarded[T]) Get() T {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.val
}

// Set replaces the held value.
func (g *Guarded[T]) Set(v T) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.val = v
}

// WithLock runs fn with exclusive access to the held value.
func (g *Guarded[T]) WithLock(fn func(*T)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn(&g.val)
}

// EncodeGuarded writes the held value, or fails with value_locked when the
// lock is contended at the moment of the call.
func EncodeGuarded[T any](e *Encoder, g *Guarded[T], fn EncodeFn[T]) error {
	if !g.mu.TryLock() {
		var zero T
		return errors.ValueLocked(fmt.Sprintf("%T", zero))
	}
	defer g.mu.Unlock()
	return fn(e, g.val)
}

// DecodeGuarded reads a value into a fresh unlocked cell.
func DecodeGuarded[T any](d *Decoder, fn DecodeFn[T]) (*Guarded[T], error) {
	v, err := fn(d)
	if err != nil {
		return nil, err
	}
	return NewGuarded(v), nil
}
