package rank

import (
	"io"

	"github.com/hupe1980/succinct/intvec"
)

// SupportV5 answers rank queries in O(1) with 6.25% space overhead.
//
// Superblocks span 2048 bits (32 words), subdivided into groups of 6 words.
// The 5 non-trivial relative group counts (11 bits each) share one word with
// the absolute superblock count stored in the word before it. Queries pay
// for the smaller index with a linear scan over at most 5 whole words
// between the group boundary and the queried position.
type SupportV5 struct {
	pat Pattern
	bb  intvec.IntVector // interleaved superblock/group counts, width 64
	v   *intvec.BitVector
}

// NewSupportV5 builds a rank support for pattern pat over v. Passing nil
// yields an unbound support that must be populated via Load and SetVector.
func NewSupportV5(pat Pattern, v *intvec.BitVector) *SupportV5 {
	s := &SupportV5{pat: pat, v: v}
	if v == nil {
		return s
	}
	if v.Empty() {
		s.bb = *intvec.New(2, 0, 64)
		return s
	}
	s.bb = *intvec.New((((v.BitSize()+63)>>11)+1)<<1, 0, 64)
	data := v.Data()
	words := (v.BitSize() + 63) >> 6
	bb := s.bb.Data()

	carry := pat.initCarry()
	sum, carry := pat.argsInWord(data[0], carry)
	var secondLevel, j uint64
	cntWords := uint64(1)
	for i := uint64(1); i < words; i, cntWords = i+1, cntWords+1 {
		if cntWords == 32 {
			j += 2
			bb[j-1] = secondLevel
			bb[j] = bb[j-2] + sum
			secondLevel, sum, cntWords = 0, 0, 0
		} else if cntWords%6 == 0 {
			// prefix sum of each 6-word group, packed at shifts 48,36,24,12,0
			secondLevel |= sum << (60 - 12*(cntWords/6))
		}
		c, nc := pat.argsInWord(data[i], carry)
		sum += c
		carry = nc
	}
	if cntWords%6 == 0 {
		secondLevel |= sum << (60 - 12*(cntWords/6))
	}
	if cntWords == 32 {
		j += 2
		bb[j-1] = secondLevel
		bb[j] = bb[j-2] + sum
		bb[j+1] = 0
	} else {
		bb[j+1] = secondLevel
	}
	return s
}

// Rank returns the number of pattern occurrences in the prefix [0, idx),
// idx in [0, Size()].
func (s *SupportV5) Rank(idx uint64) uint64 {
	bb := s.bb.Data()
	data := s.v.Data()
	p := (idx >> 10) &^ 1 // (idx/2048)*2
	r := bb[p] + ((bb[p+1] >> (60 - 12*((idx&0x7FF)/(64*6)))) & 0x7FF)
	if idx&0x3F != 0 {
		r += s.pat.wordRank(data, idx)
	}
	idx -= idx & 0x3F
	toDo := ((idx >> 6) & 0x1F) % 6
	idx--
	for toDo > 0 {
		r += s.pat.fullWordRank(data, idx)
		toDo--
		idx -= 64
	}
	return r
}

// Pattern returns the pattern this support counts.
func (s *SupportV5) Pattern() Pattern { return s.pat }

// Size returns the size of the supported bit vector.
func (s *SupportV5) Size() uint64 { return s.v.Size() }

// SetVector rebinds the support to v. Required after the supported vector
// was moved, copied or reloaded; the auxiliary index is not rebuilt.
func (s *SupportV5) SetVector(v *intvec.BitVector) { s.v = v }

// Serialize writes the auxiliary index. The supported vector is not part of
// the stream and must be re-supplied on load.
func (s *SupportV5) Serialize(w io.Writer) error { return s.bb.Serialize(w) }

// Load reads the auxiliary index and rebinds the support to v.
func (s *SupportV5) Load(r io.Reader, v *intvec.BitVector) error {
	s.SetVector(v)
	return s.bb.Load(r)
}

// Equal reports whether both supports count the same pattern with identical
// auxiliary indexes.
func (s *SupportV5) Equal(o *SupportV5) bool {
	return s.pat == o.pat && s.bb.Equal(&o.bb)
}
