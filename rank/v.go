package rank

import (
	"io"

	"github.com/hupe1980/succinct/intvec"
)

// SupportV answers rank queries in O(1) with 25% space overhead.
//
// The bit vector is divided into superblocks of 512 bits, each split into 8
// blocks of 64 bits. Per superblock one word holds the absolute cumulative
// count and a second word packs the 7 non-trivial intra-superblock relative
// counts (9 bits each; the first block's relative count is always 0). Both
// words are stored interleaved in a single basic-block array.
type SupportV struct {
	pat Pattern
	bb  intvec.IntVector // interleaved superblock/block counts, width 64
	v   *intvec.BitVector
}

// NewSupportV builds a rank support for pattern pat over v. Passing nil
// yields an unbound support that must be populated via Load and SetVector.
func NewSupportV(pat Pattern, v *intvec.BitVector) *SupportV {
	s := &SupportV{pat: pat, v: v}
	if v == nil {
		return s
	}
	if v.Empty() {
		s.bb = *intvec.New(2, 0, 64)
		return s
	}
	s.bb = *intvec.New((((v.BitSize()+63)>>9)+1)<<1, 0, 64)
	data := v.Data()
	words := (v.BitSize() + 63) >> 6
	bb := s.bb.Data()

	carry := pat.initCarry()
	sum, carry := pat.argsInWord(data[0], carry)
	var secondLevel, j, i uint64
	for i = 1; i < words; i++ {
		if i&0x7 == 0 {
			j += 2
			bb[j-1] = secondLevel
			bb[j] = bb[j-2] + sum
			secondLevel, sum = 0, 0
		} else {
			secondLevel |= sum << (63 - 9*(i&0x7)) // shifts 54,45,36,27,18,9,0
		}
		c, nc := pat.argsInWord(data[i], carry)
		sum += c
		carry = nc
	}
	if i&0x7 != 0 {
		secondLevel |= sum << (63 - 9*(i&0x7))
		bb[j+1] = secondLevel
	} else {
		j += 2
		bb[j-1] = secondLevel
		bb[j] = bb[j-2] + sum
		bb[j+1] = 0
	}
	return s
}

// Rank returns the number of pattern occurrences in the prefix [0, idx),
// idx in [0, Size()].
func (s *SupportV) Rank(idx uint64) uint64 {
	bb := s.bb.Data()
	p := (idx >> 8) &^ 1 // (idx/512)*2
	r := bb[p] + ((bb[p+1] >> (63 - 9*((idx&0x1FF)>>6))) & 0x1FF)
	if idx&0x3F != 0 {
		r += s.pat.wordRank(s.v.Data(), idx)
	}
	return r
}

// Pattern returns the pattern this support counts.
func (s *SupportV) Pattern() Pattern { return s.pat }

// Size returns the size of the supported bit vector.
func (s *SupportV) Size() uint64 { return s.v.Size() }

// SetVector rebinds the support to v. Required after the supported vector
// was moved, copied or reloaded; the auxiliary index is not rebuilt.
func (s *SupportV) SetVector(v *intvec.BitVector) { s.v = v }

// Serialize writes the auxiliary index. The supported vector is not part of
// the stream and must be re-supplied on load.
func (s *SupportV) Serialize(w io.Writer) error { return s.bb.Serialize(w) }

// Load reads the auxiliary index and rebinds the support to v.
func (s *SupportV) Load(r io.Reader, v *intvec.BitVector) error {
	s.SetVector(v)
	return s.bb.Load(r)
}

// Equal reports whether both supports count the same pattern with identical
// auxiliary indexes.
func (s *SupportV) Equal(o *SupportV) bool {
	return s.pat == o.pat && s.bb.Equal(&o.bb)
}
