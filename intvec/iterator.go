package intvec

import "iter"

// Values iterates over all elements in index order.
func (v *IntVector) Values() iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		for i := uint64(0); i < v.Size(); i++ {
			if !yield(v.Get(i)) {
				return
			}
		}
	}
}

// All iterates over (index, value) pairs in index order.
func (v *IntVector) All() iter.Seq2[uint64, uint64] {
	return func(yield func(uint64, uint64) bool) {
		for i := uint64(0); i < v.Size(); i++ {
			if !yield(i, v.Get(i)) {
				return
			}
		}
	}
}
