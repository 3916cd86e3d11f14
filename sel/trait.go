// Package sel provides a constant-time select support structure over a
// frozen bit vector.
//
// Support answers "position of the i-th occurrence" queries for a fixed bit
// pattern: a plain 0 or 1, or one of the two-bit patterns "10", "01", "00",
// "11" spanning adjacent positions. The auxiliary index is built once at
// construction; the supported vector must not change afterwards.
package sel

import (
	"math/bits"

	"github.com/hupe1980/succinct/bitops"
	"github.com/hupe1980/succinct/intvec"
)

// Pattern selects the bit pattern a support structure locates.
type Pattern uint8

const (
	// Zero locates clear bits.
	Zero Pattern = iota
	// One locates set bits.
	One
	// OneZero locates "10" transitions: positions i with v[i-1]=1, v[i]=0.
	OneZero
	// ZeroOne locates "01" transitions: positions i with v[i-1]=0, v[i]=1.
	ZeroOne
	// ZeroZero locates "00" pairs: positions i with v[i-1]=0, v[i]=0.
	ZeroZero
	// OneOne locates "11" pairs: positions i with v[i-1]=1, v[i]=1.
	OneOne
)

// String implements fmt.Stringer.
func (p Pattern) String() string {
	switch p {
	case Zero:
		return "0"
	case One:
		return "1"
	case OneZero:
		return "10"
	case ZeroOne:
		return "01"
	case ZeroZero:
		return "00"
	case OneOne:
		return "11"
	default:
		return "invalid"
	}
}

// initialCarry is the carry fed into the first word: 1 for the patterns
// starting with a 0, so that position 0 never completes a pattern.
func (p Pattern) initialCarry() uint64 {
	if p == ZeroOne || p == ZeroZero {
		return 1
	}
	return 0
}

// mapWord marks every position of w where the pattern ends. carry is bit 63
// of the previous word (or the pattern's initial carry for the first word).
func (p Pattern) mapWord(w, carry uint64) uint64 {
	switch p {
	case Zero:
		return ^w
	case One:
		return w
	case OneZero:
		return bitops.Map10(w, carry)
	case ZeroOne:
		return bitops.Map01(w, carry)
	case ZeroZero:
		return ^(((w << 1) | carry) | w)
	default:
		return ((w << 1) | carry) & w
	}
}

// argCount returns the total number of pattern occurrences in v. The final
// partial word is masked so the zero tail contributes nothing.
func (p Pattern) argCount(v *intvec.BitVector) uint64 {
	if v.Empty() {
		return 0
	}
	data := v.Data()
	words := (v.BitSize() + 63) >> 6
	carry := p.initialCarry()
	var total uint64
	for i := uint64(0); i < words; i++ {
		m := p.mapWord(data[i], carry)
		if i == words-1 {
			if tail := v.BitSize() & 0x3F; tail != 0 {
				m &= bitops.LoSet[tail]
			}
		}
		total += uint64(bits.OnesCount64(m))
		carry = data[i] >> 63
	}
	return total
}

// argsInWord counts pattern occurrences in a full word and returns the carry
// handed to the next word.
func (p Pattern) argsInWord(w, carry uint64) (uint64, uint64) {
	return uint64(bits.OnesCount64(p.mapWord(w, carry))), w >> 63
}

// argsInFirstWord counts pattern occurrences at positions >= offset within w.
func (p Pattern) argsInFirstWord(w uint64, offset uint8, carry uint64) uint64 {
	return uint64(bits.OnesCount64(p.mapWord(w, carry) & bitops.LoUnset[offset]))
}

// ithArgPosInFirstWord returns the in-word position of the i-th occurrence at
// or after offset, i one-based.
func (p Pattern) ithArgPosInFirstWord(w uint64, i uint64, offset uint8, carry uint64) uint64 {
	return bitops.Select(p.mapWord(w, carry)&bitops.LoUnset[offset], i)
}

// ithArgPosInWord returns the in-word position of the i-th occurrence in a
// full word, i one-based.
func (p Pattern) ithArgPosInWord(w uint64, i, carry uint64) uint64 {
	return bitops.Select(p.mapWord(w, carry), i)
}

// initCarry is the carry preceding word wordPos: the previous word's high
// bit, or the pattern's initial carry for the first word.
func (p Pattern) initCarry(data []uint64, wordPos uint64) uint64 {
	if wordPos > 0 {
		return data[wordPos-1] >> 63
	}
	return p.initialCarry()
}
