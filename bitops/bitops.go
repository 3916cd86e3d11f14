// Package bitops provides the word-level primitives the packed containers
// and support structures are built on: population counts, in-word select,
// masked sub-word reads/writes, and counting of two-bit patterns that may
// straddle word boundaries.
//
// All functions are pure; the only package state is a set of immutable
// lookup tables built once at initialization.
package bitops

import "math/bits"

// LoSet[i] has the i lowest bits set; LoSet[64] is all ones.
var LoSet = buildLoSet()

// LoUnset[i] has all bits except the i lowest set; LoUnset[0] is all ones.
var LoUnset = buildLoUnset()

// selInByte[j][b] is the position (0..7) of the (j+1)-th set bit in byte b.
var selInByte = buildSelInByte()

func buildLoSet() [65]uint64 {
	var t [65]uint64
	for i := 1; i <= 64; i++ {
		t[i] = t[i-1]<<1 | 1
	}
	return t
}

func buildLoUnset() [65]uint64 {
	var t [65]uint64
	for i := 0; i <= 64; i++ {
		t[i] = ^LoSet[i]
	}
	return t
}

func buildSelInByte() [8][256]uint8 {
	var t [8][256]uint8
	for b := 0; b < 256; b++ {
		rank := 0
		for pos := 0; pos < 8; pos++ {
			if b&(1<<pos) != 0 {
				t[rank][b] = uint8(pos)
				rank++
			}
		}
	}
	return t
}

// Count returns the number of set bits in w.
func Count(w uint64) uint64 {
	return uint64(bits.OnesCount64(w))
}

// Select returns the position of the i-th set bit in w, i in [1, Count(w)].
// The result is unspecified if i exceeds the number of set bits.
func Select(w uint64, i uint64) uint64 {
	for byteIdx := uint64(0); byteIdx < 8; byteIdx++ {
		b := (w >> (byteIdx * 8)) & 0xFF
		c := uint64(bits.OnesCount8(uint8(b)))
		if i <= c {
			return byteIdx*8 + uint64(selInByte[i-1][b])
		}
		i -= c
	}
	return 64
}

// High returns the position of the most significant set bit of w.
// High(0) is 0, matching the convention the stack encodings rely on.
func High(w uint64) uint64 {
	if w == 0 {
		return 0
	}
	return uint64(63 - bits.LeadingZeros64(w))
}

// Low returns the position of the least significant set bit of w.
// Low(0) is 0.
func Low(w uint64) uint64 {
	if w == 0 {
		return 0
	}
	return uint64(bits.TrailingZeros64(w))
}

// ReadInt reads length bits starting at absolute bit position idx from data.
// length must be in [1,64]. If the read spans a word boundary the following
// word is consulted; callers guarantee idx+length does not exceed the
// allocated bit capacity (the containers keep a guard word for this).
func ReadInt(data []uint64, idx uint64, length uint8) uint64 {
	off := idx & 0x3F
	w := data[idx>>6] >> off
	if off+uint64(length) > 64 {
		w |= data[(idx>>6)+1] << (64 - off)
	}
	return w & LoSet[length]
}

// WriteInt writes the length lowest bits of x at absolute bit position idx.
// The same boundary rules as ReadInt apply.
func WriteInt(data []uint64, idx uint64, x uint64, length uint8) {
	x &= LoSet[length]
	off := idx & 0x3F
	wi := idx >> 6
	if off+uint64(length) <= 64 {
		data[wi] = (data[wi] &^ (LoSet[length] << off)) | (x << off)
		return
	}
	data[wi] = (data[wi] & LoSet[off]) | (x << off)
	rest := off + uint64(length) - 64
	data[wi+1] = (data[wi+1] &^ LoSet[rest]) | (x >> (64 - off))
}

// Map10 marks every position i of w where bit i-1 is set and bit i is clear.
// carry is bit 63 of the previous word (0 before the first word).
func Map10(w, carry uint64) uint64 {
	return ((w << 1) | carry) &^ w
}

// Map01 marks every position i of w where bit i-1 is clear and bit i is set.
// carry is bit 63 of the previous word (1 before the first word, so that
// position 0 never starts a pattern).
func Map01(w, carry uint64) uint64 {
	return ^((w << 1) | carry) & w
}

// Count10 counts "10" pattern occurrences in w given the previous word's
// high bit and returns the count together with the carry for the next word.
func Count10(w, carry uint64) (uint64, uint64) {
	return Count(Map10(w, carry)), w >> 63
}

// Count01 counts "01" pattern occurrences in w, analogous to Count10.
func Count01(w, carry uint64) (uint64, uint64) {
	return Count(Map01(w, carry)), w >> 63
}

// Count11 counts "11" pattern occurrences in w, analogous to Count10.
func Count11(w, carry uint64) (uint64, uint64) {
	return Count(((w<<1)|carry)&w), w >> 63
}

// Count00 counts "00" pattern occurrences in w, analogous to Count10.
// The initial carry is 1 so that position 0 never completes a pattern.
func Count00(w, carry uint64) (uint64, uint64) {
	return Count(^(((w << 1) | carry) | w)), w >> 63
}
