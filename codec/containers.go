package codec

import (
	"cmp"
	"slices"
)

// EncodeFn writes one value of T. Method expressions over Encoder satisfy
// it directly, e.g. (*Encoder).WriteU32.
type EncodeFn[T any] func(*Encoder, T) error

// DecodeFn reads one value of T, e.g. (*Decoder).ReadU32.
type DecodeFn[T any] func(*Decoder) (T, error)

// EncodeSlice writes a length prefix followed by each element in order.
func EncodeSlice[T any](e *Encoder, s []T, fn EncodeFn[T]) error {
	if err := e.WriteLen(len(s)); err != nil {
		return err
	}
	for i := range s {
		if err := fn(e, s[i]); err != nil {
			return err
		}
	}
	return nil
}

// DecodeSlice reads a length prefix and that many elements. The declared
// count is charged to the budget before the backing array is allocated, so
// a forged prefix fails with limit_exceeded instead of allocating. Each
// element's estimate is credited back before its own decode claims the real
// cost.
func DecodeSlice[T any](d *Decoder, fn DecodeFn[T]) ([]T, error) {
	n, err := d.ReadLen()
	if err != nil {
		return nil, err
	}
	if err := ClaimContainer[T](d, n); err != nil {
		return nil, err
	}
	size := elemSize[T]()
	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		d.Unclaim(size)
		v, err := fn(d)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// EncodeFixed writes exactly len(s) elements with no length prefix, for
// arrays whose length is part of the type.
func EncodeFixed[T any](e *Encoder, s []T, fn EncodeFn[T]) error {
	for i := range s {
		if err := fn(e, s[i]); err != nil {
			return err
		}
	}
	return nil
}

// DecodeFixedInto fills dst with no length prefix.
func DecodeFixedInto[T any](d *Decoder, dst []T, fn DecodeFn[T]) error {
	if err := ClaimContainer[T](d, len(dst)); err != nil {
		return err
	}
	size := elemSize[T]()
	for i := range dst {
		d.Unclaim(size)
		v, err := fn(d)
		if err != nil {
			return err
		}
		dst[i] = v
	}
	return nil
}

// EncodeMap writes a length prefix and each entry as key then value, in Go
// map iteration order. Two encodes of the same map may produce different
// byte streams; both decode to the same map. Use EncodeSortedMap when the
// stream itself must be reproducible.
func EncodeMap[K comparable, V any](e *Encoder, m map[K]V, kf EncodeFn[K], vf EncodeFn[V]) error {
	if err := e.WriteLen(len(m)); err != nil {
		return err
	}
	for k, v := range m {
		if err := kf(e, k); err != nil {
			return err
		}
		if err := vf(e, v); err != nil {
			return err
		}
	}
	return nil
}

// EncodeSortedMap writes entries in ascending key order for a reproducible
// stream.
func EncodeSortedMap[K cmp.Ordered, V any](e *Encoder, m map[K]V, kf EncodeFn[K], vf EncodeFn[V]) error {
	if err := e.WriteLen(len(m)); err != nil {
		return err
	}
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if err := kf(e, k); err != nil {
			return err
		}
		if err := vf(e, m[k]); err != nil {
			return err
		}
	}
	return nil
}

// DecodeMap reads a length prefix and that many key/value entries. A key
// repeated in the stream keeps its last value. The budget charge covers
// key and value estimates per entry.
func DecodeMap[K comparable, V any](d *Decoder, kf DecodeFn[K], vf DecodeFn[V]) (map[K]V, error) {
	n, err := d.ReadLen()
	if err != nil {
		return nil, err
	}
	if err := ClaimContainer[K](d, n); err != nil {
		return nil, err
	}
	if err := ClaimContainer[V](d, n); err != nil {
		return nil, err
	}
	ksize, vsize := elemSize[K](), elemSize[V]()
	out := make(map[K]V, n)
	for i := 0; i < n; i++ {
		d.Unclaim(ksize)
		k, err := kf(d)
		if err != nil {
			return nil, err
		}
		d.Unclaim(vsize)
		v, err := vf(d)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

// EncodeSet writes a length prefix and each member, in Go map iteration
// order.
func EncodeSet[T comparable](e *Encoder, s map[T]struct{}, fn EncodeFn[T]) error {
	if err := e.WriteLen(len(s)); err != nil {
		return err
	}
	for v := range s {
		if err := fn(e, v); err != nil {
			return err
		}
	}
	return nil
}

// EncodeSortedSet writes members in ascending order for a reproducible
// stream.
func EncodeSortedSet[T cmp.Ordered](e *Encoder, s map[T]struct{}, fn EncodeFn[T]) error {
	if err := e.WriteLen(len(s)); err != nil {
		return err
	}
	members := make([]T, 0, len(s))
	for v := range s {
		members = append(members, v)
	}
	slices.Sort(members)
	for _, v := range members {
		if err := fn(e, v); err != nil {
			return err
		}
	}
	return nil
}

// DecodeSet reads a length prefix and that many members. Duplicates in the
// stream collapse.
func DecodeSet[T comparable](d *Decoder, fn DecodeFn[T]) (map[T]struct{}, error) {
	n, err := d.ReadLen()
	if err != nil {
		return nil, err
	}
	if err := ClaimContainer[T](d, n); err != nil {
		return nil, err
	}
	size := elemSize[T]()
	out := make(map[T]struct{}, n)
	for i := 0; i < n; i++ {
		d.Unclaim(size)
		v, err := fn(d)
		if err != nil {
			return nil, err
		}
		out[v] = struct{}{}
	}
	return out, nil
}

// EncodePair writes a then b with no prefix.
func EncodePair[A, B any](e *Encoder, a A, b B, af EncodeFn[A], bf EncodeFn[B]) error {
	if err := af(e, a); err != nil {
		return err
	}
	return bf(e, b)
}

// DecodePair reads two values back to back.
func DecodePair[A, B any](d *Decoder, af DecodeFn[A], bf DecodeFn[B]) (A, B, error) {
	a, err := af(d)
	if err != nil {
		var zb B
		return a, zb, err
	}
	b, err := bf(d)
	return a, b, err
}
