// Package stack provides succinct stacks for monotone sequences, after
// Fischer, "Optimal Succinctness for Range Minimum Queries" (LATIN 2010).
//
// All three variants encode the stack content as a bitmap of the present
// values, chunked into 63-bit blocks. The 64th bit of a block tags a
// back-pointer: when a push lands in a fresh block, the previous top is
// stashed in the preceding (then empty) block so that pop can restore it
// without scanning. Support holds strictly increasing values in [0, n],
// MultiStack additionally allows duplicates, and IntStack accepts values
// beyond n at 64 bits apiece.
package stack

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hupe1980/succinct/bitops"
	"github.com/hupe1980/succinct/intvec"
)

// ptrFlag tags a stack block holding a back-pointer instead of value bits.
const ptrFlag = uint64(1) << 63

func blockNr(x uint64) uint64  { return x / 63 }
func blockPos(x uint64) uint64 { return x % 63 }

// removeTop clears top's bit and returns the new topmost encoded value,
// following a back-pointer if top was the only value in its block. Callers
// guarantee at least one more value is on the stack when the block empties.
func removeTop(stack []uint64, top uint64) uint64 {
	bn := blockNr(top)
	w := stack[bn] ^ (1 << blockPos(top))
	stack[bn] = w
	if w > 0 {
		return bn*63 + bitops.High(w)
	}
	w = stack[bn-1]
	if w>>63 == 0 {
		return (bn-1)*63 + bitops.High(w)
	}
	stack[bn-1] = 0
	return w &^ ptrFlag
}

// Support is a stack of strictly increasing values in [0, n], occupying n
// bits plus a constant.
type Support struct {
	n     uint64
	cnt   uint64
	top   uint64 // encoded as value+1; 0 means empty
	stack intvec.IntVector
}

// NewSupport creates a stack accepting values up to n.
func NewSupport(n uint64) *Support {
	s := &Support{n: n}
	s.stack = *intvec.New(blockNr(n+1)+1, 0, 64)
	s.stack.Set(0, 1) // sentinel for the encoded zero
	return s
}

// Empty reports whether the stack holds no values.
func (s *Support) Empty() bool { return s.cnt == 0 }

// Size returns the number of values on the stack.
func (s *Support) Size() uint64 { return s.cnt }

// Top returns the topmost value. Requires Empty() == false.
func (s *Support) Top() uint64 { return s.top - 1 }

// Push puts x on the stack. Requires Top() < x (or an empty stack) and
// x <= n.
func (s *Support) Push(x uint64) {
	x++
	s.cnt++
	data := s.stack.Data()
	bn := blockNr(x)
	data[bn] ^= 1 << blockPos(x)
	if bn > 0 && data[bn-1] == 0 {
		data[bn-1] = ptrFlag | s.top
	}
	s.top = x
}

// Pop removes the topmost value. Popping an empty stack is a no-op.
func (s *Support) Pop() {
	if s.Empty() {
		return
	}
	s.cnt--
	s.top = removeTop(s.stack.Data(), s.top)
}

// Serialize writes the stack.
func (s *Support) Serialize(w io.Writer) error {
	if err := writeMembers(w, s.n, s.top, s.cnt); err != nil {
		return err
	}
	return s.stack.Serialize(w)
}

// Load restores the stack from a stream written by Serialize.
func (s *Support) Load(r io.Reader) error {
	if err := readMembers(r, &s.n, &s.top, &s.cnt); err != nil {
		return err
	}
	return s.stack.Load(r)
}

// Equal reports whether both stacks hold the same values with the same
// bound.
func (s *Support) Equal(o *Support) bool {
	return s.n == o.n && s.cnt == o.cnt && s.top == o.top && s.stack.Equal(&o.stack)
}

func writeMembers(w io.Writer, ms ...uint64) error {
	for _, m := range ms {
		if err := binary.Write(w, binary.LittleEndian, m); err != nil {
			return fmt.Errorf("write stack member: %w", err)
		}
	}
	return nil
}

func readMembers(r io.Reader, ms ...*uint64) error {
	for _, m := range ms {
		if err := binary.Read(r, binary.LittleEndian, m); err != nil {
			return fmt.Errorf("read stack member: %w", err)
		}
	}
	return nil
}
