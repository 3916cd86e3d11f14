// Package succinct provides bit-compact data structures with constant-time
// structural queries.
//
// The core building blocks are a packed integer array (intvec.IntVector),
// its width-1 specialization (intvec.BitVector), and a family of auxiliary
// support structures built on top of it:
//
//   - rank.SupportV / rank.SupportV5: "how many pattern occurrences in [0,i)"
//   - sel.Support: "position of the i-th pattern occurrence"
//   - nnd.Dictionary: rank/select/prev/next for very sparse bit vectors
//   - stack.Support / stack.MultiStack / stack.IntStack: monotone stacks
//     encoded inside a bit array
//
// # Construction-then-freeze
//
// Support structures hold a non-owning reference to the bit vector they
// describe and precompute an index from its contents at construction time.
// The referenced vector must not be mutated afterwards; concurrent read-only
// queries from multiple goroutines are safe. After deserialization the
// reference must be re-supplied explicitly (SetVector or the Load variant
// taking the vector), since only the auxiliary index is serialized.
//
// # Serialization
//
// Structures serialize to a compact binary format: packed arrays write an
// 8-byte header (width<<56 | bit length) followed by the raw little-endian
// word dump. The format is word-size and endianness dependent; it is not a
// portable interchange format.
package succinct
