// Package handle provides a generational handle table for render
// resources.
//
// A Handle is an (index, generation) pair referencing a slot in a dense
// array-backed table. When a slot is freed and later reused, its
// generation counter is incremented, so a stale handle held by a caller
// is detected instead of silently aliasing the new resource. This is
// the standard ownership model for GPU-side assets (textures, buffers)
// whose lifetime is managed by a backend rather than by the Go GC.
//
// The table is not safe for concurrent use. It is designed to be owned
// by a single backend and called only from the render-frame path.
package handle

// Handle identifies a resource slot in a Table.
//
// The zero Handle is never valid: generations start at 1, so a
// zero-valued Handle always fails lookup. This makes Handle a safe
// field default ("no resource").
type Handle struct {
	index uint32
	gen   uint32
}

// Index returns the dense slot index of the handle.
// Only meaningful for a handle that is currently valid in its table.
func (h Handle) Index() uint32 { return h.index }

// Generation returns the generation counter of the handle.
func (h Handle) Generation() uint32 { return h.gen }

// IsZero reports whether h is the zero (always-invalid) handle.
func (h Handle) IsZero() bool { return h.gen == 0 }

// slot is one entry of the dense table.
type slot[T any] struct {
	value T
	gen   uint32
	live  bool
}

// Table maps handles to values of type T with O(1) add, get and
// remove. Freed slots are recycled through a free list; each reuse
// bumps the slot's generation so outstanding handles to the old value
// go stale instead of aliasing the new one.
type Table[T any] struct {
	slots []slot[T]
	free  []uint32

	// onRelease, if set, is invoked with the removed value just after
	// it leaves the table. Backends use it to tear down the underlying
	// GPU resource deterministically.
	onRelease func(T)
}

// NewTable creates an empty table.
func NewTable[T any]() *Table[T] {
	return &Table[T]{}
}

// NewTableWithRelease creates an empty table with a release hook that
// is called for every value removed via Remove or Clear.
func NewTableWithRelease[T any](release func(T)) *Table[T] {
	return &Table[T]{onRelease: release}
}

// Add inserts v and returns its handle. A free slot is reused if one
// is available (incrementing its generation); otherwise the table
// grows by one slot. O(1) amortized.
func (t *Table[T]) Add(v T) Handle {
	if n := len(t.free); n > 0 {
		idx := t.free[n-1]
		t.free = t.free[:n-1]
		s := &t.slots[idx]
		s.gen++
		s.value = v
		s.live = true
		return Handle{index: idx, gen: s.gen}
	}
	idx := uint32(len(t.slots))
	t.slots = append(t.slots, slot[T]{value: v, gen: 1, live: true})
	return Handle{index: idx, gen: 1}
}

// Get returns the value for h. The second result is false if h is out
// of range, refers to a freed slot, or carries a stale generation.
func (t *Table[T]) Get(h Handle) (T, bool) {
	if int(h.index) >= len(t.slots) {
		var zero T
		return zero, false
	}
	s := &t.slots[h.index]
	if !s.live || s.gen != h.gen {
		var zero T
		return zero, false
	}
	return s.value, true
}

// Contains reports whether h refers to a live value.
func (t *Table[T]) Contains(h Handle) bool {
	_, ok := t.Get(h)
	return ok
}

// Remove frees the slot referenced by h and returns true, invoking the
// release hook if one is set. A stale or out-of-range handle returns
// false and leaves the table untouched: misuse fails closed, it never
// frees someone else's resource.
func (t *Table[T]) Remove(h Handle) bool {
	if int(h.index) >= len(t.slots) {
		return false
	}
	s := &t.slots[h.index]
	if !s.live || s.gen != h.gen {
		return false
	}
	v := s.value
	var zero T
	s.value = zero
	s.live = false
	t.free = append(t.free, h.index)
	if t.onRelease != nil {
		t.onRelease(v)
	}
	return true
}

// Len returns the number of live values.
func (t *Table[T]) Len() int {
	return len(t.slots) - len(t.free)
}

// Cap returns the total number of slots, live and free.
func (t *Table[T]) Cap() int {
	return len(t.slots)
}

// Clear removes all live values, calling the release hook for each.
// Slot storage is retained; generations survive so handles from before
// the clear stay invalid after slots are reused.
func (t *Table[T]) Clear() {
	for i := range t.slots {
		s := &t.slots[i]
		if !s.live {
			continue
		}
		v := s.value
		var zero T
		s.value = zero
		s.live = false
		t.free = append(t.free, uint32(i))
		if t.onRelease != nil {
			t.onRelease(v)
		}
	}
}

// Range calls fn for every live (handle, value) pair in index order.
// fn must not add to or remove from the table.
func (t *Table[T]) Range(fn func(Handle, T)) {
	for i := range t.slots {
		s := &t.slots[i]
		if s.live {
			fn(Handle{index: uint32(i), gen: s.gen}, s.value)
		}
	}
}
