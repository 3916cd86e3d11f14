// Package intvec implements a packed array of fixed-width unsigned integers
// and its width-1 specialization, the bit vector.
//
// An IntVector stores n integers of a uniform width w (1..64) contiguously
// in 64-bit words. The backing buffer is always a whole number of words plus
// one zeroed guard word, so sub-word reads at the one-past-end position never
// need a bounds branch. All bits beyond the logical size are kept zero.
//
// # Ownership
//
// An IntVector exclusively owns its backing buffer. Support structures (rank,
// select, nearest-neighbour dictionaries) hold a non-owning pointer to the
// vector they were built over and must be re-pointed via their SetVector
// method if the vector is copied or reloaded.
package intvec

import (
	"github.com/hupe1980/succinct/bitops"
)

// MaxSize is the maximum number of elements an IntVector can hold
// (the bit length must fit in 56 bits of the serialization header).
const MaxSize = uint64(1) << 58

const growthNum, growthDen = 3, 2 // 1.5x amortized growth

// IntVector is a resizable array of width-bit unsigned integers packed into
// 64-bit words.
//
// Element accessors do not validate indices beyond the bounds checks inherent
// to slice access; callers are responsible for i < Size(). Structural
// operations (Insert, Erase, Resize) validate their arguments.
type IntVector struct {
	data  []uint64 // backing words; always one guard word past the capacity
	size  uint64   // logical size in bits
	width uint8
}

// New creates an IntVector with n elements of the given width, all set to
// def. Width must be in [1,64]; New panics otherwise.
func New(n uint64, def uint64, width uint8) *IntVector {
	if width == 0 || width > 64 {
		panic("intvec: width must be in [1,64]")
	}
	v := &IntVector{width: width}
	v.Assign(n, def)
	return v
}

// Size returns the number of elements.
func (v *IntVector) Size() uint64 { return v.size / uint64(v.width) }

// BitSize returns the size in bits.
func (v *IntVector) BitSize() uint64 { return v.size }

// Capacity returns the number of elements the vector can hold without
// reallocating.
func (v *IntVector) Capacity() uint64 { return v.bitCapacity() / uint64(v.width) }

// BitCapacity returns the reserved capacity in bits.
func (v *IntVector) BitCapacity() uint64 { return v.bitCapacity() }

func (v *IntVector) bitCapacity() uint64 {
	if v.data == nil {
		return 0
	}
	return uint64(len(v.data)-1) << 6
}

// Width returns the width in bits of the stored integers.
func (v *IntVector) Width() uint8 { return v.width }

// SetWidth changes the width used by the element accessors. The underlying
// bits are reinterpreted, not converted; the logical size in bits is
// unchanged. Width must be in [1,64].
func (v *IntVector) SetWidth(width uint8) {
	if width == 0 || width > 64 {
		panic("intvec: width must be in [1,64]")
	}
	v.width = width
}

// Data returns the backing word slice, including the guard word. The slice
// is owned by the vector; it is invalidated by any resizing operation.
func (v *IntVector) Data() []uint64 { return v.data }

// Empty reports whether the vector has no elements.
func (v *IntVector) Empty() bool { return v.size == 0 }

// words returns the number of backing words covering the logical size.
func (v *IntVector) words() uint64 { return (v.size + 63) >> 6 }

// reallocate grows or shrinks the backing buffer to capBits (rounded up to a
// whole word) plus the guard word, preserving content.
func (v *IntVector) reallocate(capBits uint64) {
	words := (capBits + 63) >> 6
	data := make([]uint64, words+1)
	copy(data, v.data)
	v.data = data
}

// amortizedGrow sets the size to n elements, growing the capacity along the
// geometric series 64, 96, 144, ... so that repeated unit growth is
// amortized O(1).
func (v *IntVector) amortizedGrow(n uint64) {
	bitSize := n * uint64(v.width)
	if bitSize > v.bitCapacity() {
		capBits := v.bitCapacity()
		if capBits == 0 {
			capBits = 64
		}
		for capBits < bitSize {
			capBits = capBits * growthNum / growthDen
		}
		v.reallocate(capBits)
	}
	v.size = bitSize
}

// bitResize sets the size in bits, allocating exactly as much as necessary.
// Shrinking never reallocates; the vacated bits are zeroed to keep the
// trailing-bits-zero invariant.
func (v *IntVector) bitResize(bitSize uint64) {
	if bitSize > v.bitCapacity() {
		v.reallocate(bitSize)
	} else if bitSize < v.size {
		v.zeroBits(bitSize, v.size)
	}
	v.size = bitSize
}

// zeroBits clears the bit range [from, to).
func (v *IntVector) zeroBits(from, to uint64) {
	for from < to {
		if from&0x3F == 0 && to-from >= 64 {
			v.data[from>>6] = 0
			from += 64
			continue
		}
		n := 64 - (from & 0x3F)
		if n > to-from {
			n = to - from
		}
		v.data[from>>6] &^= bitops.LoSet[n] << (from & 0x3F)
		from += n
	}
}

// Resize sets the number of elements to n. New elements are zero.
func (v *IntVector) Resize(n uint64) { v.ResizeFill(n, 0) }

// ResizeFill sets the number of elements to n, filling new slots with val.
func (v *IntVector) ResizeFill(n, val uint64) {
	old := v.Size()
	v.bitResize(n * uint64(v.width))
	if n > old && val != 0 {
		for i := old; i < n; i++ {
			v.Set(i, val)
		}
	}
}

// Assign resizes the vector to n elements and sets every element to val.
func (v *IntVector) Assign(n, val uint64) {
	v.bitResize(n * uint64(v.width))
	if val == 0 {
		v.zeroBits(0, v.size)
		return
	}
	for i := uint64(0); i < n; i++ {
		v.Set(i, val)
	}
}

// Clear removes all elements. Allocated memory is not released.
func (v *IntVector) Clear() { v.bitResize(0) }

// Reserve grows the capacity to at least n elements. It never shrinks.
func (v *IntVector) Reserve(n uint64) {
	if bits := n * uint64(v.width); bits > v.bitCapacity() {
		v.reallocate(bits)
	}
}

// ShrinkToFit releases unused capacity.
func (v *IntVector) ShrinkToFit() {
	if v.words()<<6 < v.bitCapacity() {
		v.reallocate(v.size)
	}
}

// GetInt reads length bits starting at absolute bit position idx.
// Callers must have validated idx+length <= BitSize() and length <= 64.
func (v *IntVector) GetInt(idx uint64, length uint8) uint64 {
	return bitops.ReadInt(v.data, idx, length)
}

// SetInt writes the length lowest bits of x at absolute bit position idx.
// The bit at idx becomes the least significant bit of x.
func (v *IntVector) SetInt(idx uint64, x uint64, length uint8) {
	bitops.WriteInt(v.data, idx, x, length)
}

// Get returns the i-th element.
func (v *IntVector) Get(i uint64) uint64 {
	switch v.width {
	case 64:
		return v.data[i]
	case 32:
		return uint64(v.uint32s()[i])
	case 16:
		return uint64(v.uint16s()[i])
	case 8:
		return uint64(v.uint8s()[i])
	default:
		return bitops.ReadInt(v.data, i*uint64(v.width), v.width)
	}
}

// Set assigns x (truncated to the element width) to the i-th element.
func (v *IntVector) Set(i, x uint64) {
	switch v.width {
	case 64:
		v.data[i] = x
	case 32:
		v.uint32s()[i] = uint32(x)
	case 16:
		v.uint16s()[i] = uint16(x)
	case 8:
		v.uint8s()[i] = uint8(x)
	default:
		bitops.WriteInt(v.data, i*uint64(v.width), x, v.width)
	}
}

// Front returns the first element.
func (v *IntVector) Front() uint64 { return v.Get(0) }

// Back returns the last element.
func (v *IntVector) Back() uint64 { return v.Get(v.Size() - 1) }

// PushBack appends x in amortized O(1).
func (v *IntVector) PushBack(x uint64) {
	n := v.Size()
	v.amortizedGrow(n + 1)
	v.Set(n, x)
}

// PopBack removes the last element. The vacated bits are zeroed.
func (v *IntVector) PopBack() { v.Resize(v.Size() - 1) }

// Insert inserts x before position pos, shifting later elements right.
func (v *IntVector) Insert(pos uint64, x uint64) { v.InsertN(pos, 1, x) }

// InsertN inserts n copies of x before position pos.
func (v *IntVector) InsertN(pos, n, x uint64) {
	old := v.Size()
	if pos > old {
		panic("intvec: insert position out of range")
	}
	v.amortizedGrow(old + n)
	for i := old; i > pos; i-- {
		v.Set(i+n-1, v.Get(i-1))
	}
	for i := uint64(0); i < n; i++ {
		v.Set(pos+i, x)
	}
}

// Erase removes the element at position pos, shifting later elements left.
func (v *IntVector) Erase(pos uint64) { v.EraseRange(pos, pos+1) }

// EraseRange removes the elements in [from, to).
func (v *IntVector) EraseRange(from, to uint64) {
	n := v.Size()
	if from > to || to > n {
		panic("intvec: erase range out of range")
	}
	for i := to; i < n; i++ {
		v.Set(from+(i-to), v.Get(i))
	}
	v.Resize(n - (to - from))
}

// And applies a bitwise AND with o. Both vectors must have the same bit size.
func (v *IntVector) And(o *IntVector) { v.wordOp(o, func(a, b uint64) uint64 { return a & b }) }

// Or applies a bitwise OR with o. Both vectors must have the same bit size.
func (v *IntVector) Or(o *IntVector) { v.wordOp(o, func(a, b uint64) uint64 { return a | b }) }

// Xor applies a bitwise XOR with o. Both vectors must have the same bit size.
func (v *IntVector) Xor(o *IntVector) { v.wordOp(o, func(a, b uint64) uint64 { return a ^ b }) }

func (v *IntVector) wordOp(o *IntVector, f func(a, b uint64) uint64) {
	if v.size != o.size {
		panic("intvec: bitwise operation on vectors of different bit size")
	}
	for i := uint64(0); i < v.words(); i++ {
		v.data[i] = f(v.data[i], o.data[i])
	}
}

// Flip inverts all bits. Only valid for width-1 vectors; the bits beyond the
// logical size stay zero.
func (v *IntVector) Flip() {
	if v.width != 1 {
		panic("intvec: Flip is only available for bit vectors")
	}
	for i := uint64(0); i < v.words(); i++ {
		v.data[i] = ^v.data[i]
	}
	if tail := v.size & 0x3F; tail != 0 {
		v.data[v.words()-1] &= bitops.LoSet[tail]
	}
}

// Equal reports whether v and o have identical width-relative content.
// Same-width vectors are compared word-wise; vectors of different widths are
// compared element-wise.
func (v *IntVector) Equal(o *IntVector) bool {
	if v.width == o.width {
		if v.size != o.size {
			return false
		}
		if v.size == 0 {
			return true
		}
		w := v.words()
		for i := uint64(0); i < w-1; i++ {
			if v.data[i] != o.data[i] {
				return false
			}
		}
		l := 64 - (w<<6 - v.size)
		return v.data[w-1]&bitops.LoSet[l] == o.data[w-1]&bitops.LoSet[l]
	}
	if v.Size() != o.Size() {
		return false
	}
	for i := uint64(0); i < v.Size(); i++ {
		if v.Get(i) != o.Get(i) {
			return false
		}
	}
	return true
}

// Cmp compares v and o lexicographically element-wise and returns -1, 0 or
// +1. A proper prefix is smaller than the longer vector.
func (v *IntVector) Cmp(o *IntVector) int {
	n := v.Size()
	if m := o.Size(); m < n {
		n = m
	}
	for i := uint64(0); i < n; i++ {
		a, b := v.Get(i), o.Get(i)
		if a != b {
			if a < b {
				return -1
			}
			return 1
		}
	}
	switch {
	case v.Size() < o.Size():
		return -1
	case v.Size() > o.Size():
		return 1
	default:
		return 0
	}
}

// Less reports v < o in lexicographic element order.
func (v *IntVector) Less(o *IntVector) bool { return v.Cmp(o) < 0 }

// LessEq reports v <= o in lexicographic element order.
func (v *IntVector) LessEq(o *IntVector) bool { return v.Cmp(o) <= 0 }

// Greater reports v > o in lexicographic element order.
func (v *IntVector) Greater(o *IntVector) bool { return v.Cmp(o) > 0 }

// GreaterEq reports v >= o in lexicographic element order.
func (v *IntVector) GreaterEq(o *IntVector) bool { return v.Cmp(o) >= 0 }
