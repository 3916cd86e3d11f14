// Package rank provides constant-time rank support structures over a frozen
// bit vector: SupportV with 25% space overhead and SupportV5 with 6.25%.
//
// A support counts occurrences of a fixed bit pattern - a plain 0 or 1, or
// one of the two-bit transitions "10"/"01" spanning adjacent positions - in
// any prefix of the vector. The auxiliary index is built once at
// construction; the supported vector must not change afterwards.
package rank

import "github.com/hupe1980/succinct/bitops"

// Pattern selects the bit pattern a support structure counts.
type Pattern uint8

const (
	// Zero counts clear bits.
	Zero Pattern = iota
	// One counts set bits.
	One
	// OneZero counts "10" transitions: positions i with v[i-1]=1, v[i]=0.
	OneZero
	// ZeroOne counts "01" transitions: positions i with v[i-1]=0, v[i]=1.
	ZeroOne
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
	default:
		return "invalid"
	}
}

// initCarry is the carry fed into the first word. For "01" it is 1 so that
// position 0 never completes a pattern.
func (p Pattern) initCarry() uint64 {
	if p == ZeroOne {
		return 1
	}
	return 0
}

// argsInWord counts pattern occurrences in a full word, threading the carry
// bit needed by the straddling two-bit patterns.
func (p Pattern) argsInWord(w, carry uint64) (uint64, uint64) {
	switch p {
	case Zero:
		return bitops.Count(^w), carry
	case One:
		return bitops.Count(w), carry
	case OneZero:
		return bitops.Count10(w, carry)
	default:
		return bitops.Count01(w, carry)
	}
}

// wordRank counts pattern occurrences in the partial prefix [0, idx&63) of
// the word containing bit idx. It is zero when idx is word aligned.
func (p Pattern) wordRank(data []uint64, idx uint64) uint64 {
	off := idx & 0x3F
	if off == 0 {
		return 0
	}
	w := data[idx>>6]
	switch p {
	case Zero:
		return bitops.Count(^w & bitops.LoSet[off])
	case One:
		return bitops.Count(w & bitops.LoSet[off])
	case OneZero:
		return bitops.Count(bitops.Map10(w, p.carryBefore(data, idx)) & bitops.LoSet[off])
	default:
		return bitops.Count(bitops.Map01(w, p.carryBefore(data, idx)) & bitops.LoSet[off])
	}
}

// fullWordRank counts pattern occurrences in the whole word containing bit
// idx, including the carry from the previous word.
func (p Pattern) fullWordRank(data []uint64, idx uint64) uint64 {
	w := data[idx>>6]
	switch p {
	case Zero:
		return bitops.Count(^w)
	case One:
		return bitops.Count(w)
	case OneZero:
		return bitops.Count(bitops.Map10(w, p.carryBefore(data, idx)))
	default:
		return bitops.Count(bitops.Map01(w, p.carryBefore(data, idx)))
	}
}

// carryBefore is the bit preceding the word containing idx: the previous
// word's high bit, or the pattern's initial carry for the first word.
func (p Pattern) carryBefore(data []uint64, idx uint64) uint64 {
	if idx > 63 {
		return data[(idx>>6)-1] >> 63
	}
	return p.initCarry()
}
