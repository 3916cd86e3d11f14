package stack

import (
	"io"

	"github.com/hupe1980/succinct/intvec"
)

// MultiStack is a stack of non-decreasing values in [0, n]. The value bitmap
// occupies n bits plus a constant; every push additionally costs one bit on a
// duplication log that grows with the number of pushes.
type MultiStack struct {
	n     uint64
	cnt   uint64
	top   uint64 // encoded as value+1; 0 means empty
	stack intvec.IntVector
	dup   intvec.IntVector // one bit per push: 1 if it duplicated the top
}

// NewMultiStack creates a stack accepting values up to n.
func NewMultiStack(n uint64) *MultiStack {
	s := &MultiStack{n: n}
	s.stack = *intvec.New(blockNr(n+1)+1, 0, 64)
	s.stack.Set(0, 1) // sentinel for the encoded zero
	s.dup = *intvec.New((n>>6)+1, 0, 64)
	return s
}

// Empty reports whether the stack holds no values.
func (s *MultiStack) Empty() bool { return s.cnt == 0 }

// Size returns the number of values on the stack.
func (s *MultiStack) Size() uint64 { return s.cnt }

// Top returns the topmost value. Requires Empty() == false.
func (s *MultiStack) Top() uint64 { return s.top - 1 }

// Push puts x on the stack and reports whether it is strictly greater than
// the previous top; false means x duplicated it. Requires Top() <= x (or an
// empty stack) and x <= n.
func (s *MultiStack) Push(x uint64) bool {
	if s.cnt >= s.dup.Size()<<6 {
		s.dup.Resize(s.dup.Size() + s.dup.Size()>>1 + 1)
	}
	x++
	data := s.stack.Data()
	bn := blockNr(x)
	if (data[bn]>>blockPos(x))&1 == 0 {
		data[bn] ^= 1 << blockPos(x)
		if bn > 0 && data[bn-1] == 0 {
			data[bn-1] = ptrFlag | s.top
		}
		s.top = x
		// the duplication log bit for this push stays 0
		s.cnt++
		return true
	}
	s.dup.Data()[s.cnt>>6] ^= 1 << (s.cnt & 0x3F)
	s.cnt++
	return false
}

// Pop removes the topmost value and reports whether the top value changed;
// false means a duplicate was removed. Popping an empty stack returns false.
func (s *MultiStack) Pop() bool {
	if s.Empty() {
		return false
	}
	s.cnt--
	dup := s.dup.Data()
	if (dup[s.cnt>>6]>>(s.cnt&0x3F))&1 != 0 {
		dup[s.cnt>>6] ^= 1 << (s.cnt & 0x3F)
		return false
	}
	s.top = removeTop(s.stack.Data(), s.top)
	return true
}

// Serialize writes the stack.
func (s *MultiStack) Serialize(w io.Writer) error {
	if err := writeMembers(w, s.n, s.top, s.cnt); err != nil {
		return err
	}
	if err := s.stack.Serialize(w); err != nil {
		return err
	}
	return s.dup.Serialize(w)
}

// Load restores the stack from a stream written by Serialize.
func (s *MultiStack) Load(r io.Reader) error {
	if err := readMembers(r, &s.n, &s.top, &s.cnt); err != nil {
		return err
	}
	if err := s.stack.Load(r); err != nil {
		return err
	}
	return s.dup.Load(r)
}

// Equal reports whether both stacks hold the same values with the same
// bound.
func (s *MultiStack) Equal(o *MultiStack) bool {
	return s.n == o.n && s.cnt == o.cnt && s.top == o.top &&
		s.stack.Equal(&o.stack) && s.dup.Equal(&o.dup)
}
