package bucketgo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIterator_Traversal(t *testing.T) {
	t.Run("forward and backward round trip", func(t *testing.T) {
		bs, err := New[int](WithBlockCapacity(2))
		require.NoError(t, err)
		insertAll(t, bs, 1, 2, 3, 4, 5)

		it := bs.Begin()
		for want := 1; want <= 5; want++ {
			assert.Equal(t, want, it.Value())
			it = it.Next()
		}
		assert.Equal(t, bs.End(), it)

		for want := 5; want >= 1; want-- {
			it = it.Prev()
			assert.Equal(t, want, it.Value())
		}
		assert.Equal(t, bs.Begin(), it)
	})

	t.Run("prev from end yields last element", func(t *testing.T) {
		bs, err := New[int](WithBlockCapacity(3))
		require.NoError(t, err)
		insertAll(t, bs, 1, 2, 3, 4)

		assert.Equal(t, 4, bs.End().Prev().Value())
	})

	t.Run("skips holes in both directions", func(t *testing.T) {
		bs, err := New[int](WithBlockCapacity(3))
		require.NoError(t, err)
		insertAll(t, bs, 1, 2, 3, 4, 5, 6)

		for it := bs.Begin(); it != bs.End(); {
			if v := it.Value(); v == 2 || v == 4 || v == 5 {
				it = bs.Erase(it)
				continue
			}
			it = it.Next()
		}

		assert.Equal(t, []int{1, 3, 6}, collect(bs))

		it := bs.End()
		for _, want := range []int{6, 3, 1} {
			it = it.Prev()
			assert.Equal(t, want, it.Value())
		}
	})

	t.Run("panics", func(t *testing.T) {
		bs, err := New[int](WithBlockCapacity(2))
		require.NoError(t, err)

		assert.Panics(t, func() { bs.End().Next() }, "Next on End")
		assert.Panics(t, func() { bs.End().Prev() }, "Prev on End of empty container")

		insertAll(t, bs, 1)
		assert.Panics(t, func() { bs.Begin().Prev() }, "Prev on Begin")
		assert.Panics(t, func() { bs.End().Value() }, "deref End")
		assert.Panics(t, func() { bs.End().Ref() }, "deref End")
	})
}

func TestIterator_Ordering(t *testing.T) {
	t.Run("basic relational operators", func(t *testing.T) {
		bs, err := New[int](WithBlockCapacity(2))
		require.NoError(t, err)
		for i := 1; i <= 5; i++ {
			insertAll(t, bs, i)
		}

		it := bs.Begin().Next()
		assert.True(t, bs.Begin().Less(it))
		assert.False(t, it.Less(bs.Begin()))
		assert.Equal(t, 1, it.Compare(bs.Begin()))
		assert.Equal(t, -1, bs.Begin().Compare(it))
		assert.Equal(t, 0, it.Compare(bs.Begin().Next()))
		assert.True(t, it.Equal(bs.Begin().Next()))

		assert.True(t, it.Less(bs.End()))
		assert.Equal(t, 1, bs.End().Compare(it))
	})

	t.Run("total order across blocks with holes", func(t *testing.T) {
		bs, err := New[int](WithBlockCapacity(2))
		require.NoError(t, err)
		for i := 0; i < 25; i++ {
			insertAll(t, bs, i)
		}

		i := 0
		for it := bs.Begin(); it != bs.End(); i++ {
			if i == 2 || i == 6 || i == 13 || i == 18 {
				it = bs.Erase(it)
			} else {
				it = it.Next()
			}
		}

		it := bs.Begin()
		for n := 0; n < 15; n++ {
			prev := it
			it = it.Next()
			next := it.Next()

			assert.True(t, prev.Less(it))
			assert.True(t, it.Less(next))
			assert.True(t, prev.Less(next))

			assert.True(t, bs.Begin().Less(it))
			assert.True(t, it.Less(bs.End()))
			assert.True(t, it.Less(bs.End().Prev()))
		}
	})
}

func TestIterator_Mutation(t *testing.T) {
	bs, err := New[string](WithBlockCapacity(2))
	require.NoError(t, err)

	it, err := bs.Insert("a")
	require.NoError(t, err)

	it.Set("b")
	assert.Equal(t, "b", it.Value())

	*it.Ref() = "c"
	assert.Equal(t, "c", bs.Begin().Value())
}

func TestIterator_Const(t *testing.T) {
	bs, err := New[int](WithBlockCapacity(2))
	require.NoError(t, err)
	insertAll(t, bs, 1, 2, 3)

	c := bs.ConstBegin()
	assert.Equal(t, 1, c.Value())

	c = c.Next()
	assert.Equal(t, 2, c.Value())
	assert.True(t, bs.ConstBegin().Less(c))
	assert.Equal(t, -1, c.Compare(bs.ConstEnd()))

	c = c.Prev()
	assert.True(t, c.Equal(bs.ConstBegin()))

	// Mutable converts to read-only, and the views agree on position.
	it := bs.Begin().Next().Next()
	assert.Equal(t, 3, it.Const().Value())
	assert.Equal(t, 0, it.Const().Compare(bs.ConstEnd().Prev()))
}

func TestIterator_OrderKey(t *testing.T) {
	bs, err := New[int](WithBlockCapacity(2))
	require.NoError(t, err)
	insertAll(t, bs, 1, 2, 3)

	first := bs.Begin()
	third := bs.Begin().Next().Next()

	// Same block: keys differ in the slot bits.
	assert.Equal(t, first.key()+1, bs.Begin().Next().key())
	// New block: the creation sequence forms the high bits.
	assert.Equal(t, uint64(1)<<32, third.key())
	assert.Less(t, first.key(), third.key())
}
