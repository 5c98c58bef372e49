// Package bucketgo provides an order-preserving, pointer-stable bucket
// container for Go.
//
// BucketStorage stores elements in fixed-size blocks ("buckets"). Elements
// never move after insertion, so pointers obtained via Iterator.Ref stay
// valid until the element itself is erased. Insertion and erasure are O(1)
// amortized; erased slots are recycled through a per-block free list
// without releasing block memory, and iteration skips holes.
//
// # Quick Start
//
//	bs, _ := bucketgo.New[string]()
//	it, _ := bs.Insert("a")
//	bs.Insert("b")
//
//	for v := range bs.Values() {
//	    fmt.Println(v)
//	}
//
//	bs.Erase(it) // "b" is untouched, its address unchanged
//
// # Iterators
//
// Iterators are lightweight (block, slot) cursors with value semantics:
// Next and Prev return new iterators instead of mutating the receiver.
// Two iterators of the same container are totally ordered by position
// (block creation order, then slot index) and can be compared in O(1)
// with Less or Compare. GetToDistance advances an iterator n positions,
// jumping whole fully-packed blocks instead of stepping slot by slot.
//
// # Memory Model
//
// Blocks are created lazily, one block capacity at a time, and retained
// for slot reuse after erasure. Clear releases every block (capacity drops
// to zero); ShrinkToFit releases only blocks that hold no live elements
// and never disturbs surviving elements or their iterators.
//
// BucketStorage is not safe for concurrent use; callers must serialize
// access externally.
package bucketgo
