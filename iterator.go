package bucketgo

import (
	"cmp"
	"math"
)

// Iterator references a (block, slot) position inside a BucketStorage.
//
// Iterators have value semantics: Next and Prev return new iterators and
// never mutate the receiver. Positional equality is tested with Equal;
// End compares greater than every live position. The raw == operator is
// stricter than Equal: it additionally compares the container pointer the
// iterator was stamped with, which diverges from positional equality
// after Swap has moved the element to another instance.
//
// The zero Iterator is not meaningful; obtain iterators from the
// container. An iterator stays valid until the element it references is
// erased or the container is cleared.
type Iterator[T any] struct {
	bs   *BucketStorage[T]
	blk  *block[T] // nil for End
	slot uint32
}

// key is the O(1) total-order key: block creation sequence, then slot
// index. End sorts after every live position.
func (it Iterator[T]) key() uint64 {
	if it.blk == nil {
		return math.MaxUint64
	}
	return uint64(it.blk.seq)<<32 | uint64(it.slot)
}

// Next returns an iterator to the next live element in position order,
// or End if none remains. It panics when called on End.
func (it Iterator[T]) Next() Iterator[T] {
	if it.blk == nil {
		panic("bucketgo: Next called on End iterator")
	}
	if idx, ok := it.blk.nextLive(it.slot); ok {
		it.slot = idx
		return it
	}
	return it.bs.firstLiveFrom(it.blk.next)
}

// Prev returns an iterator to the previous live element in position
// order. Stepping back from End yields the last live element. It panics
// when no earlier live element exists.
func (it Iterator[T]) Prev() Iterator[T] {
	if it.blk == nil {
		prev := it.bs.lastLiveUpTo(it.bs.tail)
		if prev.blk == nil {
			panic("bucketgo: Prev called on End of an empty container")
		}
		return prev
	}
	if idx, ok := it.blk.prevLive(it.slot); ok {
		it.slot = idx
		return it
	}
	prev := it.bs.lastLiveUpTo(it.blk.prev)
	if prev.blk == nil {
		panic("bucketgo: Prev called on Begin iterator")
	}
	return prev
}

// Equal reports whether both iterators reference the same position: the
// same block identity and the same slot index. All End iterators are
// positionally equal, so an iterator advanced past the last element
// equals the owning container's End even after a Swap.
func (it Iterator[T]) Equal(other Iterator[T]) bool {
	if it.blk == nil || other.blk == nil {
		return it.blk == other.blk
	}
	return it.blk == other.blk && it.slot == other.slot
}

// Compare orders two iterators by position: block creation order, then
// ascending slot index. It returns -1, 0 or +1. The order is meaningful
// only for iterators of the same container.
func (it Iterator[T]) Compare(other Iterator[T]) int {
	return cmp.Compare(it.key(), other.key())
}

// Less reports whether it references an earlier position than other.
func (it Iterator[T]) Less(other Iterator[T]) bool {
	return it.Compare(other) < 0
}

// Ref returns a pointer to the referenced element. The pointer stays
// valid until the element is erased, even across inserts and erases of
// other elements. It panics when the iterator does not reference a live
// element.
func (it Iterator[T]) Ref() *T {
	it.mustLive("Ref")
	return &it.blk.elems[it.slot]
}

// Value returns a copy of the referenced element.
func (it Iterator[T]) Value() T {
	it.mustLive("Value")
	return it.blk.elems[it.slot]
}

// Set replaces the referenced element in place.
func (it Iterator[T]) Set(value T) {
	it.mustLive("Set")
	it.blk.elems[it.slot] = value
}

// Const converts the iterator to its read-only counterpart. There is no
// conversion back.
func (it Iterator[T]) Const() ConstIterator[T] {
	return ConstIterator[T]{it: it}
}

func (it Iterator[T]) mustLive(op string) {
	if it.blk == nil || !it.blk.isLive(it.slot) {
		panic("bucketgo: " + op + " on an iterator that does not reference a live element")
	}
}

// ConstIterator is a read-only view of a container position. It supports
// traversal and comparison but no mutation of the element.
type ConstIterator[T any] struct {
	it Iterator[T]
}

// Next returns a read-only iterator to the next live element.
func (c ConstIterator[T]) Next() ConstIterator[T] {
	return ConstIterator[T]{it: c.it.Next()}
}

// Prev returns a read-only iterator to the previous live element.
func (c ConstIterator[T]) Prev() ConstIterator[T] {
	return ConstIterator[T]{it: c.it.Prev()}
}

// Equal reports whether both iterators reference the same position.
func (c ConstIterator[T]) Equal(other ConstIterator[T]) bool {
	return c.it.Equal(other.it)
}

// Compare orders two read-only iterators of the same container.
func (c ConstIterator[T]) Compare(other ConstIterator[T]) int {
	return c.it.Compare(other.it)
}

// Less reports whether c references an earlier position than other.
func (c ConstIterator[T]) Less(other ConstIterator[T]) bool {
	return c.it.Less(other.it)
}

// Value returns a copy of the referenced element.
func (c ConstIterator[T]) Value() T {
	return c.it.Value()
}
