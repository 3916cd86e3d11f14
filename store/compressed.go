package store

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec compresses and decompresses whole blobs.
// Implementations must be safe for concurrent use.
type Codec interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
	Name() string
}

// ByName returns a built-in codec by its stable name. Persisted formats that
// record the codec in a header use this to pick the matching decompressor.
func ByName(name string) (Codec, bool) {
	switch name {
	case "zstd":
		return Zstd{}, true
	case "lz4":
		return LZ4{}, true
	default:
		return nil, false
	}
}

// Compressed wraps a Store, compressing blobs on Put and decompressing them
// on Open. List and Delete pass through.
type Compressed struct {
	Store
	codec Codec
}

// NewCompressed wraps st with the given codec.
func NewCompressed(st Store, codec Codec) *Compressed {
	return &Compressed{Store: st, codec: codec}
}

// Put compresses data and writes it to the underlying store.
func (s *Compressed) Put(ctx context.Context, name string, data []byte) error {
	compressed, err := s.codec.Compress(data)
	if err != nil {
		return fmt.Errorf("compress blob %q: %w", name, err)
	}
	return s.Store.Put(ctx, name, compressed)
}

// Open reads a blob from the underlying store and decompresses it.
func (s *Compressed) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	rc, err := s.Store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read blob %q: %w", name, err)
	}
	plain, err := s.codec.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("decompress blob %q: %w", name, err)
	}
	return io.NopCloser(bytes.NewReader(plain)), nil
}

// Encoder/decoder pools amortize the zstd setup cost across blobs.
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// Zstd compresses blobs with zstandard. Better ratio than LZ4, good for
// blobs read rarely.
type Zstd struct{}

// Name implements Codec.
func (Zstd) Name() string { return "zstd" }

// Compress implements Codec.
func (Zstd) Compress(data []byte) ([]byte, error) {
	enc := getZstdEncoder()
	defer zstdEncoderPool.Put(enc)
	return enc.EncodeAll(data, nil), nil
}

// Decompress implements Codec.
func (Zstd) Decompress(data []byte) ([]byte, error) {
	dec := getZstdDecoder()
	defer zstdDecoderPool.Put(dec)
	return dec.DecodeAll(data, nil)
}

const lz4HeaderSize = 8

// LZ4 compresses blobs with LZ4 block compression. Fast, good for blobs on
// the hot path.
//
// Block format: [UncompressedSize uint32][CompressedSize uint32][Data...].
// A CompressedSize of 0 marks an incompressible blob stored raw.
type LZ4 struct{}

// Name implements Codec.
func (LZ4) Name() string { return "lz4" }

// Compress implements Codec.
func (LZ4) Compress(data []byte) ([]byte, error) {
	bound := lz4.CompressBlockBound(len(data))
	buf := make([]byte, lz4HeaderSize+bound)
	binary.LittleEndian.PutUint32(buf[0:], uint32(len(data)))

	n, err := lz4.CompressBlock(data, buf[lz4HeaderSize:], nil)
	if err != nil {
		return nil, err
	}
	if n == 0 || n >= len(data) {
		// incompressible, store raw
		binary.LittleEndian.PutUint32(buf[4:], 0)
		return append(buf[:lz4HeaderSize], data...), nil
	}
	binary.LittleEndian.PutUint32(buf[4:], uint32(n))
	return buf[:lz4HeaderSize+n], nil
}

// Decompress implements Codec.
func (LZ4) Decompress(data []byte) ([]byte, error) {
	if len(data) < lz4HeaderSize {
		return nil, errors.New("lz4 blob too small for header")
	}
	uncompressedSize := binary.LittleEndian.Uint32(data[0:])
	compressedSize := binary.LittleEndian.Uint32(data[4:])
	body := data[lz4HeaderSize:]

	if compressedSize == 0 {
		plain := make([]byte, len(body))
		copy(plain, body)
		return plain, nil
	}
	if uint32(len(body)) < compressedSize {
		return nil, errors.New("lz4 blob truncated")
	}
	plain := make([]byte, uncompressedSize)
	n, err := lz4.UncompressBlock(body[:compressedSize], plain)
	if err != nil {
		return nil, err
	}
	return plain[:n], nil
}
