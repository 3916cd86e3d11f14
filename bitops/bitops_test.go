package bitops

import (
	"math/bits"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelect(t *testing.T) {
	t.Run("single bit", func(t *testing.T) {
		for pos := uint64(0); pos < 64; pos++ {
			require.Equal(t, pos, Select(1<<pos, 1))
		}
	})

	t.Run("against naive scan", func(t *testing.T) {
		rng := rand.New(rand.NewSource(42))
		for range 1000 {
			w := rng.Uint64()
			rank := uint64(0)
			for pos := uint64(0); pos < 64; pos++ {
				if w&(1<<pos) != 0 {
					rank++
					require.Equal(t, pos, Select(w, rank))
				}
			}
		}
	})
}

func TestHighLow(t *testing.T) {
	require.Equal(t, uint64(0), High(0))
	require.Equal(t, uint64(0), Low(0))
	require.Equal(t, uint64(63), High(1<<63))
	require.Equal(t, uint64(63), Low(1<<63))
	require.Equal(t, uint64(5), High(0b101010))
	require.Equal(t, uint64(1), Low(0b101010))
}

func TestLoTables(t *testing.T) {
	require.Equal(t, uint64(0), LoSet[0])
	require.Equal(t, ^uint64(0), LoSet[64])
	require.Equal(t, ^uint64(0), LoUnset[0])
	require.Equal(t, uint64(0), LoUnset[64])
	for i := 0; i <= 64; i++ {
		require.Equal(t, ^LoSet[i], LoUnset[i])
		require.Equal(t, i, bits.OnesCount64(LoSet[i]))
	}
}

func TestReadWriteInt(t *testing.T) {
	t.Run("word straddling write", func(t *testing.T) {
		data := make([]uint64, 3)
		WriteInt(data, 60, 0b10110, 5) // spans words 0 and 1
		require.Equal(t, uint64(0b10110), ReadInt(data, 60, 5))
		require.Equal(t, uint64(0b0110)<<60, data[0])
		require.Equal(t, uint64(1), data[1])
	})

	t.Run("write preserves neighbours", func(t *testing.T) {
		data := []uint64{^uint64(0), ^uint64(0), 0}
		WriteInt(data, 62, 0, 4)
		require.Equal(t, uint64(0), ReadInt(data, 62, 4))
		require.Equal(t, LoSet[62], data[0])
		require.Equal(t, LoUnset[2], data[1])
	})

	t.Run("random roundtrip", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		data := make([]uint64, 17)
		type write struct {
			idx    uint64
			length uint8
			val    uint64
		}
		var writes []write
		for range 200 {
			length := uint8(rng.Intn(64) + 1)
			idx := uint64(rng.Intn(16 * 64))
			val := rng.Uint64() & LoSet[length]
			WriteInt(data, idx, val, length)
			writes = append(writes, write{idx, length, val})
		}
		// overlapping writes win in order; re-apply and verify the final state
		expect := make([]uint64, 17)
		for _, w := range writes {
			WriteInt(expect, w.idx, w.val, w.length)
		}
		require.Equal(t, expect, data)
		last := writes[len(writes)-1]
		require.Equal(t, last.val, ReadInt(data, last.idx, last.length))
	})
}

func TestPatternCounts(t *testing.T) {
	// 01110011 00000001 spelled LSB first per word below
	w := uint64(0b0111001100000001)

	c10, carry := Count10(w, 0)
	require.Equal(t, uint64(3), c10) // transitions after bits 0, 9, 14
	require.Equal(t, uint64(0), carry)

	c01, _ := Count01(w, 1)
	require.Equal(t, uint64(2), c01) // starts at bits 8 and 12

	c11, _ := Count11(w, 0)
	require.Equal(t, uint64(3), c11) // inside 011100 and 0011

	c00, _ := Count00(w, 1)
	require.Equal(t, uint64(55), c00)
}

func TestPatternCountsCarryAcrossWords(t *testing.T) {
	// high bit of the first word set, low bit of the second word set
	w0 := uint64(1) << 63
	w1 := uint64(1)

	c, carry := Count11(w0, 0)
	require.Equal(t, uint64(0), c)
	require.Equal(t, uint64(1), carry)
	c, _ = Count11(w1, carry)
	require.Equal(t, uint64(1), c)

	c, carry = Count10(w0, 0)
	require.Equal(t, uint64(0), c)
	c, _ = Count10(0, carry)
	require.Equal(t, uint64(1), c) // the 1 at the end of w0 meets the 0 at the start of the next word

	// an initial carry of 1 suppresses the 01 at position 0
	c, _ = Count01(w1, 1)
	require.Equal(t, uint64(0), c)
	c, _ = Count01(w1, 0)
	require.Equal(t, uint64(1), c)
}

func naiveCountPattern(bits []bool, a, b bool) uint64 {
	var cnt uint64
	for i := 1; i < len(bits); i++ {
		if bits[i-1] == a && bits[i] == b {
			cnt++
		}
	}
	return cnt
}

func TestPatternCountsAgainstNaive(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	words := make([]uint64, 8)
	for i := range words {
		words[i] = rng.Uint64()
	}
	bools := make([]bool, len(words)*64)
	for i := range bools {
		bools[i] = words[i/64]>>(i%64)&1 == 1
	}

	count := func(f func(w, carry uint64) (uint64, uint64), init uint64) uint64 {
		var total uint64
		carry := init
		for _, w := range words {
			c, nc := f(w, carry)
			total += c
			carry = nc
		}
		return total
	}

	require.Equal(t, naiveCountPattern(bools, true, false), count(Count10, 0))
	require.Equal(t, naiveCountPattern(bools, false, true), count(Count01, 1))
	require.Equal(t, naiveCountPattern(bools, true, true), count(Count11, 0))
	require.Equal(t, naiveCountPattern(bools, false, false), count(Count00, 1))
}
