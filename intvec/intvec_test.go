package intvec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/succinct/bitops"
)

func TestNew(t *testing.T) {
	t.Run("default value", func(t *testing.T) {
		v := New(100, 5, 7)
		require.Equal(t, uint64(100), v.Size())
		require.Equal(t, uint8(7), v.Width())
		for i := uint64(0); i < v.Size(); i++ {
			require.Equal(t, uint64(5), v.Get(i))
		}
	})

	t.Run("invalid width", func(t *testing.T) {
		require.Panics(t, func() { New(1, 0, 0) })
		require.Panics(t, func() { New(1, 0, 65) })
	})
}

func TestGetSet(t *testing.T) {
	// the byte-aligned widths take the typed fast path, the rest the
	// generic sub-word path
	for _, width := range []uint8{1, 3, 8, 13, 16, 31, 32, 33, 63, 64} {
		v := New(257, 0, width)
		mask := bitops.LoSet[width]
		for i := uint64(0); i < v.Size(); i++ {
			v.Set(i, i*0x9E3779B97F4A7C15)
		}
		for i := uint64(0); i < v.Size(); i++ {
			require.Equal(t, i*0x9E3779B97F4A7C15&mask, v.Get(i), "width %d index %d", width, i)
		}
	}
}

func TestSetTruncates(t *testing.T) {
	v := New(4, 0, 4)
	v.Set(1, 0x1F)
	require.Equal(t, uint64(0xF), v.Get(1))
	require.Equal(t, uint64(0), v.Get(0))
	require.Equal(t, uint64(0), v.Get(2))
}

func TestSubWordAccess(t *testing.T) {
	v := New(3, 0, 4)
	v.Set(0, 5)
	v.Set(1, 9)
	v.Set(2, 15)
	// adjacent packed elements read back as one integer
	require.Equal(t, uint64(5|9<<4|15<<8), v.GetInt(0, 12))

	v.SetInt(4, 0xA, 4)
	require.Equal(t, uint64(0xA), v.Get(1))
}

func TestPushBack(t *testing.T) {
	v := New(0, 0, 11)
	for i := uint64(0); i < 1000; i++ {
		v.PushBack(i)
		require.Equal(t, i, v.Back())
	}
	require.Equal(t, uint64(1000), v.Size())
	require.GreaterOrEqual(t, v.Capacity(), v.Size())
	for i := uint64(0); i < 1000; i++ {
		require.Equal(t, i, v.Get(i))
	}
	v.PopBack()
	require.Equal(t, uint64(999), v.Size())
	require.Equal(t, uint64(998), v.Back())
}

func TestResizeZeroesVacatedBits(t *testing.T) {
	v := New(100, 0, 5)
	for i := uint64(0); i < 100; i++ {
		v.Set(i, 31)
	}
	v.Resize(10)
	v.Resize(100)
	for i := uint64(0); i < 10; i++ {
		require.Equal(t, uint64(31), v.Get(i))
	}
	for i := uint64(10); i < 100; i++ {
		require.Equal(t, uint64(0), v.Get(i), "index %d must be zero after regrow", i)
	}
}

func TestResizeFill(t *testing.T) {
	v := New(3, 7, 3)
	v.ResizeFill(6, 2)
	require.Equal(t, []uint64{7, 7, 7, 2, 2, 2}, collect(v))
}

func TestInsertErase(t *testing.T) {
	v := New(0, 0, 8)
	for i := uint64(0); i < 5; i++ {
		v.PushBack(i + 1) // 1 2 3 4 5
	}
	v.Insert(2, 99) // 1 2 99 3 4 5
	require.Equal(t, []uint64{1, 2, 99, 3, 4, 5}, collect(v))

	v.InsertN(0, 2, 7) // 7 7 1 2 99 3 4 5
	require.Equal(t, []uint64{7, 7, 1, 2, 99, 3, 4, 5}, collect(v))

	v.Erase(4) // 7 7 1 2 3 4 5
	require.Equal(t, []uint64{7, 7, 1, 2, 3, 4, 5}, collect(v))

	v.EraseRange(0, 2) // 1 2 3 4 5
	require.Equal(t, []uint64{1, 2, 3, 4, 5}, collect(v))

	require.Panics(t, func() { v.Insert(6, 0) })
	require.Panics(t, func() { v.EraseRange(3, 2) })
}

func TestBitwiseOps(t *testing.T) {
	a := New(130, 0, 1)
	b := New(130, 0, 1)
	for i := uint64(0); i < 130; i += 2 {
		a.Set(i, 1)
	}
	for i := uint64(0); i < 130; i += 3 {
		b.Set(i, 1)
	}
	and := New(130, 0, 1)
	for i := uint64(0); i < 130; i++ {
		and.Set(i, a.Get(i)&b.Get(i))
	}
	a2 := New(130, 0, 1)
	for i := uint64(0); i < 130; i++ {
		a2.Set(i, a.Get(i))
	}
	a2.And(b)
	require.True(t, a2.Equal(and))

	require.Panics(t, func() { a.Xor(New(2, 0, 1)) })
}

func TestFlip(t *testing.T) {
	v := New(70, 0, 1)
	v.Set(3, 1)
	v.Flip()
	require.Equal(t, uint64(0), v.Get(3))
	require.Equal(t, uint64(1), v.Get(0))
	// bits past the logical size stay zero
	require.Equal(t, v.Data()[1]&bitops.LoUnset[6], uint64(0))

	require.Panics(t, func() { New(2, 0, 2).Flip() })
}

func TestEqual(t *testing.T) {
	t.Run("same width", func(t *testing.T) {
		a := New(100, 3, 5)
		b := New(100, 3, 5)
		require.True(t, a.Equal(b))
		b.Set(99, 4)
		require.False(t, a.Equal(b))
		require.False(t, a.Equal(New(99, 3, 5)))
	})

	t.Run("cross width compares elements", func(t *testing.T) {
		a := New(10, 3, 4)
		b := New(10, 3, 9)
		require.True(t, a.Equal(b))
		b.Set(0, 16) // representable in 9 bits only
		require.False(t, a.Equal(b))
	})
}

func TestCmp(t *testing.T) {
	a := New(3, 0, 8)
	b := New(3, 0, 8)
	require.Equal(t, 0, a.Cmp(b))
	require.True(t, a.LessEq(b))
	require.True(t, a.GreaterEq(b))

	b.Set(2, 1)
	require.Equal(t, -1, a.Cmp(b))
	require.True(t, a.Less(b))
	require.True(t, b.Greater(a))

	// a proper prefix is smaller
	c := New(2, 0, 8)
	require.Equal(t, -1, c.Cmp(a))
}

func TestSetWidthReinterprets(t *testing.T) {
	v := New(4, 0, 16)
	v.Set(0, 0xABCD)
	v.SetWidth(8)
	require.Equal(t, uint64(8), v.Size())
	require.Equal(t, uint64(0xCD), v.Get(0))
	require.Equal(t, uint64(0xAB), v.Get(1))
}

func TestGuardWord(t *testing.T) {
	v := New(1, 0, 64)
	// one-past-end sub-word read touches the guard word without panicking
	require.Equal(t, uint64(0), v.GetInt(v.BitSize(), 1))
	require.Equal(t, v.BitCapacity()>>6+1, uint64(len(v.Data())))
}

func collect(v *IntVector) []uint64 {
	var out []uint64
	for x := range v.Values() {
		out = append(out, x)
	}
	return out
}
