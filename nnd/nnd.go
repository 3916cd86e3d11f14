// Package nnd implements a nearest-neighbour dictionary for sparsely
// populated bit vectors, after Geary et al., "A Simple Optimal Representation
// for Balanced Parentheses" (CPM 2004).
//
// The dictionary stores the positions of the set bits of a bit vector as
// absolute samples of every t-th one plus the gaps between consecutive ones
// in between. It answers rank, select, prev and next queries without keeping
// the original vector around.
package nnd

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/hupe1980/succinct/bitops"
	"github.com/hupe1980/succinct/intvec"
	"github.com/hupe1980/succinct/rank"
)

// Dictionary is a rank/select dictionary for the set bits of a sparse bit
// vector. It is built once and is immutable afterwards; unlike the supports
// in the rank and sel packages it holds no pointer to the source vector.
type Dictionary struct {
	sampleDens  uint64
	absSamples  intvec.IntVector // position of every sampleDens-th one
	differences intvec.IntVector // gaps between the unsampled ones
	ones        uint64
	size        uint64
	containsAbs intvec.BitVector // blocks of the source holding an absolute sample
	rankAbs     *rank.SupportV
}

// New builds a dictionary over v with the given sample density t: every t-th
// set bit is stored as an absolute position, the ones in between as gaps.
// A density of zero is invalid.
func New(v *intvec.BitVector, sampleDens uint64) (*Dictionary, error) {
	if sampleDens == 0 {
		return nil, errors.New("nnd: sample density must be positive")
	}
	d := &Dictionary{sampleDens: sampleDens, size: v.BitSize()}

	var maxGap, ones, lastPlus1 uint64
	for i := range v.Ones() {
		if i+1-lastPlus1 > maxGap {
			maxGap = i + 1 - lastPlus1
		}
		lastPlus1 = i + 1
		ones++
	}
	d.ones = ones

	t := sampleDens
	d.absSamples = *intvec.New(ones/t+1, 0, uint8(bitops.High(v.BitSize())+1))
	d.differences = *intvec.New(ones-ones/t, 0, uint8(bitops.High(maxGap)+1))
	d.containsAbs = *intvec.NewBit((v.BitSize()+t-1)/t, false)

	var cnt, lastOne uint64
	for i := range v.Ones() {
		cnt++
		if cnt%t == 0 {
			d.absSamples.Set(cnt/t, i)
			d.containsAbs.SetBit(i/t, true)
		} else {
			d.differences.Set(cnt-cnt/t-1, i-lastOne)
		}
		lastOne = i
	}
	d.rankAbs = rank.NewSupportV(rank.One, &d.containsAbs)
	return d, nil
}

// Rank returns the number of set bits in the prefix [0, idx) of the source
// vector, idx in [0, Size()].
func (d *Dictionary) Rank(idx uint64) uint64 {
	t := d.sampleDens
	r := d.rankAbs.Rank(idx / t)
	result := r * t
	i := d.absSamples.Get(r)
	for result++; result <= d.ones; result++ {
		if result%t == 0 {
			i = d.absSamples.Get(result / t)
		} else {
			i += d.differences.Get(result - result/t - 1)
		}
		if i >= idx {
			return result - 1
		}
	}
	return result - 1
}

// Select returns the position of the i-th set bit, i in [1, Ones()].
func (d *Dictionary) Select(i uint64) uint64 {
	t := d.sampleDens
	j := i / t
	result := d.absSamples.Get(j)
	j = j*t - j
	for end := j + i%t; j < end; j++ {
		result += d.differences.Get(j)
	}
	return result
}

// Prev returns the maximal position j <= i holding a set bit.
// Requires Rank(i+1) > 0.
func (d *Dictionary) Prev(i uint64) uint64 { return d.Select(d.Rank(i + 1)) }

// Next returns the minimal position j >= i holding a set bit.
// Requires Rank(i) < Ones().
func (d *Dictionary) Next(i uint64) uint64 { return d.Select(d.Rank(i) + 1) }

// Size returns the size of the source bit vector.
func (d *Dictionary) Size() uint64 { return d.size }

// Ones returns the number of set bits in the source bit vector.
func (d *Dictionary) Ones() uint64 { return d.ones }

// SampleDens returns the sample density the dictionary was built with.
func (d *Dictionary) SampleDens() uint64 { return d.sampleDens }

// Positions iterates over the positions of all set bits in increasing order.
func (d *Dictionary) Positions() iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		for i := uint64(1); i <= d.ones; i++ {
			if !yield(d.Select(i)) {
				return
			}
		}
	}
}

// Serialize writes the dictionary. The source vector is not required to
// restore it.
func (d *Dictionary) Serialize(w io.Writer) error {
	if err := d.absSamples.Serialize(w); err != nil {
		return err
	}
	if err := d.differences.Serialize(w); err != nil {
		return err
	}
	for _, m := range []uint64{d.sampleDens, d.ones, d.size} {
		if err := binary.Write(w, binary.LittleEndian, m); err != nil {
			return fmt.Errorf("write dictionary member: %w", err)
		}
	}
	if err := d.containsAbs.Serialize(w); err != nil {
		return err
	}
	return d.rankAbs.Serialize(w)
}

// Load restores the dictionary from a stream written by Serialize.
func (d *Dictionary) Load(r io.Reader) error {
	if err := d.absSamples.Load(r); err != nil {
		return err
	}
	if err := d.differences.Load(r); err != nil {
		return err
	}
	for _, m := range []*uint64{&d.sampleDens, &d.ones, &d.size} {
		if err := binary.Read(r, binary.LittleEndian, m); err != nil {
			return fmt.Errorf("read dictionary member: %w", err)
		}
	}
	if err := d.containsAbs.Load(r); err != nil {
		return err
	}
	d.rankAbs = rank.NewSupportV(rank.One, nil)
	return d.rankAbs.Load(r, &d.containsAbs)
}

// Equal reports whether both dictionaries represent the same set of
// positions with the same sample density.
func (d *Dictionary) Equal(o *Dictionary) bool {
	return d.sampleDens == o.sampleDens &&
		d.ones == o.ones &&
		d.size == o.size &&
		d.absSamples.Equal(&o.absSamples) &&
		d.differences.Equal(&o.differences) &&
		d.containsAbs.Equal(&o.containsAbs) &&
		d.rankAbs.Equal(o.rankAbs)
}
