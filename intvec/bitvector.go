package intvec

import (
	"io"
	"iter"
	"math/bits"

	"github.com/hupe1980/succinct/bitops"
)

// BitVector is the width-1 specialization of IntVector. It is the domain
// object of every rank/select structure in this module.
type BitVector struct {
	IntVector
}

// NewBit creates a BitVector with n bits, all set to def.
func NewBit(n uint64, def bool) *BitVector {
	var fill uint64
	if def {
		fill = 1
	}
	v := &BitVector{}
	v.width = 1
	v.Assign(n, fill)
	return v
}

// GetBit reports whether bit i is set.
func (v *BitVector) GetBit(i uint64) bool {
	return (v.data[i>>6]>>(i&0x3F))&1 != 0
}

// SetBit sets or clears bit i.
func (v *BitVector) SetBit(i uint64, b bool) {
	if b {
		v.data[i>>6] |= 1 << (i & 0x3F)
	} else {
		v.data[i>>6] &^= 1 << (i & 0x3F)
	}
}

// CountOnes returns the number of set bits. The trailing-bits-zero invariant
// makes a plain word scan correct.
func (v *BitVector) CountOnes() uint64 {
	var c uint64
	for i := uint64(0); i < v.words(); i++ {
		c += uint64(bits.OnesCount64(v.data[i]))
	}
	return c
}

// Ones iterates over the positions of all set bits in increasing order.
func (v *BitVector) Ones() iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		for i := uint64(0); i < v.words(); i++ {
			w := v.data[i]
			for w != 0 {
				pos := i<<6 + uint64(bits.TrailingZeros64(w))
				if !yield(pos) {
					return
				}
				w &= w - 1
			}
		}
	}
}

// Load restores the bit vector from a stream. Streams written with a width
// other than 1 trigger a diagnostic but are loaded anyway, trusting the
// declared bit length.
func (v *BitVector) Load(r io.Reader) error {
	return v.loadExpect(r, 1)
}

// Equal reports whether v and o contain the same bits.
func (v *BitVector) Equal(o *BitVector) bool {
	return v.IntVector.Equal(&o.IntVector)
}

// Count10 returns the number of "10" transitions (a set bit followed by a
// clear bit) over the whole vector.
func (v *BitVector) Count10() uint64 { return v.countPattern(bitops.Map10, 0) }

// Count01 returns the number of "01" transitions over the whole vector.
func (v *BitVector) Count01() uint64 { return v.countPattern(bitops.Map01, 1) }

// Count11 returns the number of adjacent "11" pairs over the whole vector.
func (v *BitVector) Count11() uint64 {
	return v.countPattern(func(w, c uint64) uint64 { return ((w << 1) | c) & w }, 0)
}

// Count00 returns the number of adjacent "00" pairs over the whole vector.
// The initial carry is 1 so that position 0 never completes a pair.
func (v *BitVector) Count00() uint64 {
	return v.countPattern(func(w, c uint64) uint64 { return ^(((w << 1) | c) | w) }, 1)
}

// countPattern counts pattern occurrences over the whole vector, threading
// the high bit of each word as the carry into the next. The mapped word of
// the final partial word is masked so the zero tail cannot complete a
// pattern at or past the logical size.
func (v *BitVector) countPattern(mapf func(w, carry uint64) uint64, carry uint64) uint64 {
	var total uint64
	last := v.words()
	for i := uint64(0); i < last; i++ {
		w := v.data[i]
		m := mapf(w, carry)
		if i == last-1 {
			if tail := v.size & 0x3F; tail != 0 {
				m &= bitops.LoSet[tail]
			}
		}
		total += uint64(bits.OnesCount64(m))
		carry = w >> 63
	}
	return total
}
