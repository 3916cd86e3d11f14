package intvec

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hupe1980/succinct"
	"github.com/hupe1980/succinct/bitops"
)

// Serialization format:
// [Header:8] = (width:8 bits)<<56 | (bit length:56 bits), little endian,
// followed by ceil(bitLength/64) raw little-endian 64-bit words.

// logger receives the package's load-time diagnostics.
var logger = succinct.NewLogger(nil)

// SetLogger redirects the package's load-time diagnostics, for example to a
// NoopLogger. Passing nil restores the default stderr logger.
func SetLogger(l *succinct.Logger) {
	if l == nil {
		l = succinct.NewLogger(nil)
	}
	logger = l
}

// writeHeader encodes width and bit length into the 8-byte header.
func writeHeader(w io.Writer, width uint8, bitSize uint64) error {
	return binary.Write(w, binary.LittleEndian, uint64(width)<<56|bitSize)
}

// readHeader decodes the 8-byte header.
func readHeader(r io.Reader) (width uint8, bitSize uint64, err error) {
	var h uint64
	if err = binary.Read(r, binary.LittleEndian, &h); err != nil {
		return 0, 0, err
	}
	return uint8(h >> 56), h & bitops.LoSet[56], nil
}

// Serialize writes the header followed by the raw word dump.
func (v *IntVector) Serialize(w io.Writer) error {
	if err := writeHeader(w, v.width, v.size); err != nil {
		return fmt.Errorf("intvec: write header: %w", err)
	}
	return v.WriteData(w)
}

// WriteData writes the header-less raw word dump. Structures that prefer
// custom framing use this together with their own length bookkeeping.
func (v *IntVector) WriteData(w io.Writer) error {
	if v.size == 0 {
		return nil
	}
	if _, err := w.Write(v.Bytes()); err != nil {
		return fmt.Errorf("intvec: write data: %w", err)
	}
	return nil
}

// Load restores the vector from a stream written by Serialize. The width is
// taken from the stream header.
func (v *IntVector) Load(r io.Reader) error {
	width, bitSize, err := readHeader(r)
	if err != nil {
		return fmt.Errorf("intvec: read header: %w", err)
	}
	if width == 0 || width > 64 {
		return fmt.Errorf("intvec: invalid width %d in header", width)
	}
	v.width = width
	return v.readData(r, bitSize)
}

// loadExpect restores the vector and warns if the stream's width differs
// from the expected fixed width. The stream's declared bit length is trusted
// and the expected width is imposed, mirroring the behavior of loading a
// fixed-width vector from a foreign stream.
func (v *IntVector) loadExpect(r io.Reader, width uint8) error {
	got, bitSize, err := readHeader(r)
	if err != nil {
		return fmt.Errorf("intvec: read header: %w", err)
	}
	if got != width {
		logger.Warn("intvec: width mismatch on load",
			"expected", width, "got", got, "bits", bitSize)
	}
	v.width = width
	return v.readData(r, bitSize)
}

func (v *IntVector) readData(r io.Reader, bitSize uint64) error {
	v.bitResize(0) // zero previously used bits so the tail invariant survives
	v.bitResize(bitSize)
	if bitSize == 0 {
		return nil
	}
	if _, err := io.ReadFull(r, v.Bytes()); err != nil {
		return fmt.Errorf("intvec: read data: %w", err)
	}
	// The dump covers whole words; any bits past the logical size in the
	// final word were zero when written, so the tail invariant holds.
	return nil
}
