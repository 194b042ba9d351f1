package huffman

import (
	"bytes"
	"io"

	"github.com/chronos-tachyon/assert"
)

// LessFunc reports whether a belongs strictly above b in a Heap.  A function
// implementing '<' produces a min-heap; '>' produces a max-heap.
type LessFunc[T any] func(a, b T) bool

// PrintFunc writes a programmer-readable form of one item.  It is used only
// for debugging dumps.
type PrintFunc[T any] func(w io.Writer, item T)

// Heap is an array-backed binary heap.  The heap holds items but never
// inspects them except through its LessFunc; whatever the items refer to
// remains the caller's responsibility.
//
// The zero Heap is not usable; construct one with NewHeap.
type Heap[T any] struct {
	contents []T
	less     LessFunc[T]
	printer  PrintFunc[T]
}

// NewHeap constructs an empty Heap.  The capacity is only a starting point:
// the backing array doubles whenever it fills up, and never shrinks.
func NewHeap[T any](capacity int, less LessFunc[T], printer PrintFunc[T]) *Heap[T] {
	assert.Assertf(less != nil, "LessFunc must not be nil")
	if capacity < 1 {
		capacity = 1
	}
	return &Heap[T]{
		contents: make([]T, 0, capacity),
		less:     less,
		printer:  printer,
	}
}

// Len returns the current number of items in the Heap.
func (h *Heap[T]) Len() int {
	return len(h.contents)
}

// Cap returns the current capacity of the backing array.
func (h *Heap[T]) Cap() int {
	return cap(h.contents)
}

// Insert adds an item to the Heap.
func (h *Heap[T]) Insert(item T) {
	if len(h.contents) == cap(h.contents) {
		h.grow()
	}
	h.contents = append(h.contents, item)
	h.siftUp(len(h.contents) - 1)
}

// Top returns the topmost item without removing it.
func (h *Heap[T]) Top() (T, error) {
	if len(h.contents) == 0 {
		var zero T
		return zero, ErrEmptyQueue
	}
	return h.contents[0], nil
}

// RemoveTop removes and returns the topmost item.
func (h *Heap[T]) RemoveTop() (T, error) {
	var zero T
	n := len(h.contents)
	if n == 0 {
		return zero, ErrEmptyQueue
	}

	top := h.contents[0]
	last := n - 1
	h.contents[0] = h.contents[last]
	h.contents[last] = zero
	h.contents = h.contents[:last]
	h.siftDown(0)
	return top, nil
}

// Dump writes every item, in backing-array order, using the Heap's PrintFunc.
func (h *Heap[T]) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	if h.printer != nil {
		for _, item := range h.contents {
			h.printer(&buf, item)
		}
	}
	return buf.WriteTo(w)
}

func (h *Heap[T]) grow() {
	grown := make([]T, len(h.contents), 2*cap(h.contents))
	copy(grown, h.contents)
	h.contents = grown
}

func (h *Heap[T]) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(h.contents[i], h.contents[parent]) {
			break
		}
		h.contents[i], h.contents[parent] = h.contents[parent], h.contents[i]
		i = parent
	}
}

func (h *Heap[T]) siftDown(i int) {
	for {
		next := h.firstOfThree(i)
		if next == i {
			return
		}
		h.contents[i], h.contents[next] = h.contents[next], h.contents[i]
		i = next
	}
}

// firstOfThree picks which of a parent and its (up to two) children belongs
// on top.  If either child beats the parent, the right child is chosen only
// when it strictly beats the left one; ties go left.
func (h *Heap[T]) firstOfThree(i int) int {
	n := len(h.contents)
	left, right := 2*i+1, 2*i+2
	switch {
	case right < n:
		l, r, p := h.contents[left], h.contents[right], h.contents[i]
		if !h.less(l, p) && !h.less(r, p) {
			return i
		}
		if h.less(r, l) {
			return right
		}
		return left
	case left < n:
		if h.less(h.contents[left], h.contents[i]) {
			return left
		}
		return i
	default:
		return i
	}
}
