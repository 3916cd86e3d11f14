package stack

import (
	"encoding/binary"
	"fmt"
	"io"
	"slices"

	"github.com/hupe1980/succinct/intvec"
)

// IntStack is a stack of strictly increasing values without an upper bound.
// Values in [0, n] live in the n-bit bitmap encoding; larger values spill
// into an overflow list at 64 bits apiece.
type IntStack struct {
	n        uint64
	cnt      uint64
	top      uint64 // encoded as value+63; 0 means empty
	stack    intvec.IntVector
	overflow []uint64
}

// NewIntStack creates a stack whose bitmap covers values up to n.
func NewIntStack(n uint64) *IntStack {
	s := &IntStack{n: n}
	s.stack = *intvec.New(blockNr(n)+2, 0, 64)
	s.stack.Set(0, 1) // sentinel for the encoded zero
	return s
}

// Empty reports whether the stack holds no values.
func (s *IntStack) Empty() bool { return s.cnt == 0 }

// Size returns the number of values on the stack.
func (s *IntStack) Size() uint64 { return s.cnt }

// Top returns the topmost value. Requires Empty() == false.
func (s *IntStack) Top() uint64 { return s.top - 63 }

// Push puts x on the stack. Requires Top() < x or an empty stack.
func (s *IntStack) Push(x uint64) {
	x += 63
	s.cnt++
	if x > s.n+63 {
		if len(s.overflow) == 0 {
			// remember the last in-bitmap top below the spilled values
			s.overflow = append(s.overflow, s.top)
		}
		s.overflow = append(s.overflow, x)
		s.top = x
		return
	}
	data := s.stack.Data()
	bn := blockNr(x)
	data[bn] ^= 1 << blockPos(x)
	if data[bn-1] == 0 {
		data[bn-1] = ptrFlag | s.top
	}
	s.top = x
}

// Pop removes the topmost value. Popping an empty stack is a no-op.
func (s *IntStack) Pop() {
	if s.Empty() {
		return
	}
	s.cnt--
	if s.top > s.n+63 {
		s.overflow = s.overflow[:len(s.overflow)-1]
		s.top = s.overflow[len(s.overflow)-1]
		if len(s.overflow) == 1 {
			s.overflow = s.overflow[:0]
		}
		return
	}
	s.top = removeTop(s.stack.Data(), s.top)
}

// Serialize writes the stack.
func (s *IntStack) Serialize(w io.Writer) error {
	if err := writeMembers(w, s.n, s.top, s.cnt); err != nil {
		return err
	}
	if err := s.stack.Serialize(w); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(len(s.overflow))); err != nil {
		return fmt.Errorf("write overflow length: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, s.overflow); err != nil {
		return fmt.Errorf("write overflow values: %w", err)
	}
	return nil
}

// Load restores the stack from a stream written by Serialize.
func (s *IntStack) Load(r io.Reader) error {
	if err := readMembers(r, &s.n, &s.top, &s.cnt); err != nil {
		return err
	}
	if err := s.stack.Load(r); err != nil {
		return err
	}
	var n uint64
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return fmt.Errorf("read overflow length: %w", err)
	}
	s.overflow = make([]uint64, n)
	if err := binary.Read(r, binary.LittleEndian, s.overflow); err != nil {
		return fmt.Errorf("read overflow values: %w", err)
	}
	return nil
}

// Equal reports whether both stacks hold the same values with the same
// bitmap bound.
func (s *IntStack) Equal(o *IntStack) bool {
	return s.n == o.n && s.cnt == o.cnt && s.top == o.top &&
		s.stack.Equal(&o.stack) && slices.Equal(s.overflow, o.overflow)
}
