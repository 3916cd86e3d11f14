package sel

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hupe1980/succinct/bitops"
	"github.com/hupe1980/succinct/intvec"
)

// superBlockSpan is the number of pattern occurrences per superblock.
const superBlockSpan = 4096

// Support answers select queries in constant time using the classic
// Clark/Munro three-level scheme.
//
// Occurrence positions are grouped 4096 to a superblock. A superblock whose
// positions spread over more than log^4(n) bits stores all of them
// explicitly; a dense superblock stores only the relative position of every
// 64th occurrence and locates the rest with an in-word scan bounded by the
// miniblock spacing.
type Support struct {
	pat      Pattern
	v        *intvec.BitVector
	args  uint64           // total number of pattern occurrences
	sbPos intvec.IntVector // position of every 4096th occurrence
	// exactly one of longSB[i], miniSB[i] is populated per superblock; the
	// other stays the zero value, recognizable by BitSize() == 0
	longSB []intvec.IntVector // explicit positions of sparse superblocks
	miniSB []intvec.IntVector // relative 64th-occurrence offsets otherwise
}

// NewSupport builds a select support for pattern pat over v. Passing nil
// yields an unbound support that must be populated via Load and SetVector.
func NewSupport(pat Pattern, v *intvec.BitVector) *Support {
	s := &Support{pat: pat, v: v}
	if v == nil {
		return s
	}
	s.build()
	return s
}

func (s *Support) build() {
	logn := uint8(bitops.High(s.v.BitSize()) + 1)
	s.args = s.pat.argCount(s.v)
	s.sbPos = *intvec.New(0, 0, logn)
	s.longSB, s.miniSB = nil, nil
	if s.args == 0 {
		return
	}
	logn4 := uint64(logn) * uint64(logn)
	logn4 *= logn4

	sb := (s.args + superBlockSpan - 1) / superBlockSpan
	s.sbPos.Resize(sb)
	s.longSB = make([]intvec.IntVector, sb)
	s.miniSB = make([]intvec.IntVector, sb)

	argPos := make([]uint64, superBlockSpan)
	var cnt, sbCnt uint64

	flush := func() {
		n := (cnt-1)%superBlockSpan + 1
		s.sbPos.Set(sbCnt, argPos[0])
		if argPos[n-1]-argPos[0] > logn4 {
			long := intvec.New(n, 0, logn)
			for j := uint64(0); j < n; j++ {
				long.Set(j, argPos[j])
			}
			s.longSB[sbCnt] = *long
		} else {
			mini := intvec.New(64, 0, logn)
			for j := uint64(0); j < n; j += 64 {
				mini.Set(j/64, argPos[j]-argPos[0])
			}
			s.miniSB[sbCnt] = *mini
		}
		sbCnt++
	}

	data := s.v.Data()
	words := (s.v.BitSize() + 63) >> 6
	carry := s.pat.initialCarry()
	for wi := uint64(0); wi < words; wi++ {
		m := s.pat.mapWord(data[wi], carry)
		if wi == words-1 {
			if tail := s.v.BitSize() & 0x3F; tail != 0 {
				m &= bitops.LoSet[tail]
			}
		}
		for m != 0 {
			argPos[cnt%superBlockSpan] = wi<<6 + bitops.Low(m)
			cnt++
			if cnt%superBlockSpan == 0 || cnt == s.args {
				flush()
			}
			m &= m - 1
		}
		carry = data[wi] >> 63
	}
}

// Select returns the position of the i-th pattern occurrence, i in
// [1, ArgCount()]. The result is unspecified outside this range.
func (s *Support) Select(i uint64) uint64 {
	sbIdx := (i - 1) / superBlockSpan
	offset := (i - 1) % superBlockSpan
	if s.longSB[sbIdx].BitSize() > 0 {
		return s.longSB[sbIdx].Get(offset)
	}
	pos := s.sbPos.Get(sbIdx) + s.miniSB[sbIdx].Get(offset>>6)
	if offset&0x3F == 0 {
		return pos
	}
	// pos holds occurrence number sbIdx*4096 + (offset>>6)*64 + 1; scan for
	// the remaining ones from there, the guard word bounding the last read.
	i -= sbIdx*superBlockSpan + (offset>>6)<<6

	data := s.v.Data()
	wi := pos >> 6
	w := data[wi]
	carry := s.pat.initCarry(data, wi)
	args := s.pat.argsInFirstWord(w, uint8(pos&0x3F), carry)
	if args >= i {
		return pos&^0x3F + s.pat.ithArgPosInFirstWord(w, i, uint8(pos&0x3F), carry)
	}
	sum := args
	carry = w >> 63
	for {
		wi++
		w = data[wi]
		n, nc := s.pat.argsInWord(w, carry)
		if sum+n >= i {
			return wi<<6 + s.pat.ithArgPosInWord(w, i-sum, carry)
		}
		sum += n
		carry = nc
	}
}

// ArgCount returns the total number of pattern occurrences in the supported
// vector.
func (s *Support) ArgCount() uint64 { return s.args }

// Pattern returns the pattern this support locates.
func (s *Support) Pattern() Pattern { return s.pat }

// Size returns the size of the supported bit vector.
func (s *Support) Size() uint64 { return s.v.Size() }

// SetVector rebinds the support to v. Required after the supported vector
// was moved, copied or reloaded; the auxiliary index is not rebuilt.
func (s *Support) SetVector(v *intvec.BitVector) { s.v = v }

// Serialize writes the auxiliary index: the occurrence count, the superblock
// positions and, per superblock, a long/short flag followed by the long
// position vector or the miniblock vector.
func (s *Support) Serialize(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, s.args); err != nil {
		return fmt.Errorf("write arg count: %w", err)
	}
	if err := s.sbPos.Serialize(w); err != nil {
		return err
	}
	for i := range s.longSB {
		long := s.longSB[i].BitSize() > 0
		flag := uint8(0)
		if long {
			flag = 1
		}
		if err := binary.Write(w, binary.LittleEndian, flag); err != nil {
			return fmt.Errorf("write superblock flag: %w", err)
		}
		var err error
		if long {
			err = s.longSB[i].Serialize(w)
		} else {
			err = s.miniSB[i].Serialize(w)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Load reads the auxiliary index and rebinds the support to v.
func (s *Support) Load(r io.Reader, v *intvec.BitVector) error {
	s.SetVector(v)
	if err := binary.Read(r, binary.LittleEndian, &s.args); err != nil {
		return fmt.Errorf("read arg count: %w", err)
	}
	if err := s.sbPos.Load(r); err != nil {
		return err
	}
	s.longSB, s.miniSB = nil, nil
	if s.args == 0 {
		return nil
	}
	sb := (s.args + superBlockSpan - 1) / superBlockSpan
	s.longSB = make([]intvec.IntVector, sb)
	s.miniSB = make([]intvec.IntVector, sb)
	for i := uint64(0); i < sb; i++ {
		var flag uint8
		if err := binary.Read(r, binary.LittleEndian, &flag); err != nil {
			return fmt.Errorf("read superblock flag: %w", err)
		}
		var err error
		if flag != 0 {
			err = s.longSB[i].Load(r)
		} else {
			err = s.miniSB[i].Load(r)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Equal reports whether both supports locate the same pattern with identical
// auxiliary indexes.
func (s *Support) Equal(o *Support) bool {
	if s.pat != o.pat || s.args != o.args || !s.sbPos.Equal(&o.sbPos) {
		return false
	}
	if len(s.longSB) != len(o.longSB) {
		return false
	}
	for i := range s.longSB {
		if (s.longSB[i].BitSize() > 0) != (o.longSB[i].BitSize() > 0) {
			return false
		}
		if !s.longSB[i].Equal(&o.longSB[i]) || !s.miniSB[i].Equal(&o.miniSB[i]) {
			return false
		}
	}
	return true
}
