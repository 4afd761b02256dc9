package codec

// Deque is a double-ended queue over a ring buffer. The zero value is ready
// to use. Not safe for concurrent use.
type Deque[T any] struct {
	buf   []T
	head  int
	count int
}

// NewDeque returns a deque with capacity for at least n elements.
func NewDeque[T any](n int) *Deque[T] {
	d := &Deque[T]{}
	if n > 0 {
		d.buf = make([]T, roundUpPow2(n))
	}
	return d
}

func roundUpPow2(n int) int {
	c := 1
	for c < n {
		c <<= 1
	}
	return c
}

// Len reports the number of elements.
func (d *Deque[T]) Len() int {
	return d.count
}

func (d *Deque[T]) grow() {
	if d.count < len(d.buf) {
		return
	}
	size := len(d.buf) * 2
	if size == 0 {
		size = 8
	}
	buf := make([]T, size)
	for i := 0; i < d.count; i++ {
		buf[i] = d.buf[(d.head+i)&(len(d.buf)-1)]
	}
	d.buf = buf
	d.head = 0
}

// PushBack appends v at the tail.
func (d *Deque[T]) PushBack(v T) {
	d.grow()
	d.buf[(d.head+d.count)&(len(d.buf)-1)] = v
	d.count++
}

// PushFront prepends v at the head.
func (d *Deque[T]) PushFront(v T) {
	d.grow()
	d.head = (d.head - 1) & (len(d.buf) - 1)
	d.buf[d.head] = v
	d.count++
}

// PopFront removes and returns the head element. The second result is
// false when the deque is empty.
func (d *Deque[T]) PopFront() (T, bool) {
	var zero T
	if d.count == 0 {
		return zero, false
	}
	v := d.buf[d.head]
	d.buf[d.head] = zero
	d.head = (d.head + 1) & (len(d.buf) - 1)
	d.count--
	return v, true
}

// PopBack removes and returns the tail element.
func (d *Deque[T]) PopBack() (T, bool) {
	var zero T
	if d.count == 0 {
		return zero, false
	}
	i := (d.head + d.count - 1) & (len(d.buf) - 1)
	v := d.buf[i]
	d.buf[i] = zero
	d.count--
	return v, true
}

// At returns the element i positions from the head. It panics when i is
// out of range, like a slice index.
func (d *Deque[T]) At(i int) T {
	if i < 0 || i >= d.count {
		panic("codec: deque index out of range")
	}
	return d.buf[(d.head+i)&(len(d.buf)-1)]
}

// EncodeDeque writes the deque as a length prefix and the elements in
// head-to-tail order, the same wire shape as a slice.
func EncodeDeque[T any](e *Encoder, d *Deque[T], fn EncodeFn[T]) error {
	if err := e.WriteLen(d.Len()); err != nil {
		return err
	}
	for i := 0; i < d.Len(); i++ {
		if err := fn(e, d.At(i)); err != nil {
			return err
		}
	}
	return nil
}

// DecodeDeque reads a slice-shaped stream into a deque.
func DecodeDeque[T any](dec *Decoder, fn DecodeFn[T]) (*Deque[T], error) {
	n, err := dec.ReadLen()
	if err != nil {
		return nil, err
	}
	if err := ClaimContainer[T](dec, n); err != nil {
		return nil, err
	}
	size := elemSize[T]()
	out := NewDeque[T](n)
	for i := 0; i < n; i++ {
		dec.Unclaim(size)
		v, err := fn(dec)
		if err != nil {
			return nil, err
		}
		out.PushBack(v)
	}
	return out, nil
}

// Heap is a priority queue ordered by a caller-supplied less function. The
// minimum element per less sits at the top. Not safe for concurrent use.
type Heap[T any] struct {
	items []T
	less  func(a, b T) bool
}

// NewHeap returns an empty heap ordered by less.
func NewHeap[T any](less func(a, b T) bool) *Heap[T] {
	return &Heap[T]{less: less}
}

// Len reports the number of elements.
func (h *Heap[T]) Len() int {
	return len(h.items)
}

// Push adds v.
func (h *Heap[T]) Push(v T) {
	h.items = append(h.items, v)
	h.up(len(h.items) - 1)
}

// Peek returns the top element without removing it.
func (h *Heap[T]) Peek() (T, bool) {
	var zero T
	if len(h.items) == 0 {
		return zero, false
	}
	return h.items[0], true
}

// Pop removes and returns the top element.
func (h *Heap[T]) Pop() (T, bool) {
	var zero T
	if len(h.items) == 0 {
		return zero, false
	}
	top := h.items[0]
	last := len(h.items) - 1
	h.items[0] = h.items[last]
	h.items[last] = zero
	h.items = h.items[:last]
	if last > 0 {
		h.down(0)
	}
	return top, true
}

func (h *Heap[T]) up(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(h.items[i], h.items[parent]) {
			return
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *Heap[T]) down(i int) {
	n := len(h.items)
	for {
		left := 2*i + 1
		if left >= n {
			return
		}
		least := left
		if right := left + 1; right < n && h.less(h.items[right], h.items[left]) {
			least = right
		}
		if !h.less(h.items[least], h.items[i]) {
			return
		}
		h.items[i], h.items[least] = h.items[least], h.items[i]
		i = least
	}
}

// EncodeHeap writes the heap as a length prefix and the elements in
// internal storage order. The order is an implementation detail of the
// heap's history; decoding restores an equivalent heap, not an identical
// byte stream.
func EncodeHeap[T any](e *Encoder, h *Heap[T], fn EncodeFn[T]) error {
	if err := e.WriteLen(h.Len()); err != nil {
		return err
	}
	for i := range h.items {
		if err := fn(e, h.items[i]); err != nil {
			return err
		}
	}
	return nil
}

// DecodeHeap reads a slice-shaped stream and re-establishes the heap
// ordering by pushing each element.
func DecodeHeap[T any](d *Decoder, less func(a, b T) bool, fn DecodeFn[T]) (*Heap[T], error) {
	n, err := d.ReadLen()
	if err != nil {
		return nil, err
	}
	if err := ClaimContainer[T](d, n); err != nil {
		return nil, err
	}
	size := elemSize[T]()
	out := NewHeap(less)
	out.items = make([]T, 0, n)
	for i := 0; i < n; i++ {
		d.Unclaim(size)
		v, err := fn(d)
		if err != nil {
			return nil, err
		}
		out.Push(v)
	}
	return out, nil
}
