package intvec

import "unsafe"

// Byte-aligned widths bypass the generic bit-shifting path entirely and use
// typed views of the word buffer. The reinterpretation is only valid for the
// machine's native byte order, which matches the serialization contract
// (the on-disk format is endianness dependent).

func (v *IntVector) uint8s() []uint8 {
	return unsafe.Slice((*uint8)(unsafe.Pointer(&v.data[0])), len(v.data)*8)
}

func (v *IntVector) uint16s() []uint16 {
	return unsafe.Slice((*uint16)(unsafe.Pointer(&v.data[0])), len(v.data)*4)
}

func (v *IntVector) uint32s() []uint32 {
	return unsafe.Slice((*uint32)(unsafe.Pointer(&v.data[0])), len(v.data)*2)
}

// Bytes returns the raw little-endian byte view of the words covering the
// logical size. The slice aliases the vector's buffer.
func (v *IntVector) Bytes() []byte {
	if v.size == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&v.data[0])), v.words()*8)
}
