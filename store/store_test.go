package store

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/succinct"
	"github.com/hupe1980/succinct/intvec"
)

func testLifecycle(t *testing.T, st Store) {
	t.Helper()
	ctx := context.Background()

	data := []byte("hello succinct blobs")
	require.NoError(t, st.Put(ctx, "data-001.bin", data))
	require.NoError(t, st.Put(ctx, "data-002.bin", []byte("x")))
	require.NoError(t, st.Put(ctx, "other.bin", []byte("y")))

	rc, err := st.Open(ctx, "data-001.bin")
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	require.Equal(t, data, got)

	names, err := st.List(ctx, "data-")
	require.NoError(t, err)
	require.Equal(t, []string{"data-001.bin", "data-002.bin"}, names)

	require.NoError(t, st.Delete(ctx, "data-002.bin"))
	_, err = st.Open(ctx, "data-002.bin")
	require.ErrorIs(t, err, ErrNotFound)

	// Put replaces atomically
	require.NoError(t, st.Put(ctx, "data-001.bin", []byte("v2")))
	rc, err = st.Open(ctx, "data-001.bin")
	require.NoError(t, err)
	got, err = io.ReadAll(rc)
	require.NoError(t, err)
	rc.Close()
	require.Equal(t, []byte("v2"), got)
}

func TestMemory_Lifecycle(t *testing.T) {
	testLifecycle(t, NewMemory())
}

func TestLocal_Lifecycle(t *testing.T) {
	st, err := NewLocal(t.TempDir())
	require.NoError(t, err)
	testLifecycle(t, st)
}

func TestLocal_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := succinct.NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	st, err := NewLocal(t.TempDir(), WithLogger(logger))
	require.NoError(t, err)

	require.NoError(t, st.Put(context.Background(), "a.bin", []byte("abc")))
	require.Contains(t, buf.String(), "blob written")
}

func TestLocal_PutLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	st, err := NewLocal(dir)
	require.NoError(t, err)
	require.NoError(t, st.Put(context.Background(), "a.bin", []byte("abc")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "a.bin", entries[0].Name())

	b, err := os.ReadFile(filepath.Join(dir, "a.bin"))
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), b)
}

func TestCompressed_Lifecycle(t *testing.T) {
	for _, name := range []string{"zstd", "lz4"} {
		t.Run(name, func(t *testing.T) {
			codec, ok := ByName(name)
			require.True(t, ok)
			testLifecycle(t, NewCompressed(NewMemory(), codec))
		})
	}
}

func TestCompressed_ActuallyCompresses(t *testing.T) {
	ctx := context.Background()
	inner := NewMemory()
	st := NewCompressed(inner, Zstd{})

	data := bytes.Repeat([]byte("succinct "), 1024)
	require.NoError(t, st.Put(ctx, "big.bin", data))

	rc, err := inner.Open(ctx, "big.bin")
	require.NoError(t, err)
	raw, err := io.ReadAll(rc)
	require.NoError(t, err)
	rc.Close()
	require.Less(t, len(raw), len(data))

	rc, err = st.Open(ctx, "big.bin")
	require.NoError(t, err)
	plain, err := io.ReadAll(rc)
	require.NoError(t, err)
	rc.Close()
	require.Equal(t, data, plain)
}

func TestCodec_Roundtrip(t *testing.T) {
	payloads := [][]byte{
		nil,
		[]byte{0x42},
		bytes.Repeat([]byte{0xAB}, 10000),       // highly compressible
		[]byte("short incompressible \x01\x02"), // stored raw by lz4
	}
	for _, name := range []string{"zstd", "lz4"} {
		codec, ok := ByName(name)
		require.True(t, ok)
		require.Equal(t, name, codec.Name())
		for _, p := range payloads {
			c, err := codec.Compress(p)
			require.NoError(t, err)
			got, err := codec.Decompress(c)
			require.NoError(t, err)
			require.True(t, bytes.Equal(p, got))
		}
	}
}

func TestByName_Unknown(t *testing.T) {
	_, ok := ByName("snappy")
	require.False(t, ok)
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	st := NewMemory()

	v := intvec.New(1000, 0, 9)
	for i := uint64(0); i < v.Size(); i++ {
		v.Set(i, i)
	}
	require.NoError(t, Save(ctx, st, "vec.sd", v))

	var got intvec.IntVector
	require.NoError(t, Load(ctx, st, "vec.sd", &got))
	require.True(t, v.Equal(&got))

	require.ErrorIs(t, Load(ctx, st, "missing.sd", &got), ErrNotFound)
}

func TestSaveAllLoadAll(t *testing.T) {
	ctx := context.Background()
	st := NewMemory()

	a := intvec.New(100, 7, 3)
	b := intvec.NewBit(500, false)
	b.SetBit(123, true)

	require.NoError(t, SaveAll(ctx, st, map[string]succinct.Serializer{
		"a.sd": a,
		"b.sd": b,
	}))

	var gotA intvec.IntVector
	var gotB intvec.BitVector
	require.NoError(t, LoadAll(ctx, st, map[string]succinct.Loader{
		"a.sd": &gotA,
		"b.sd": &gotB,
	}))
	require.True(t, a.Equal(&gotA))
	require.True(t, b.Equal(&gotB))
}

func TestLoadAll_MissingBlobFails(t *testing.T) {
	ctx := context.Background()
	st := NewMemory()
	var v intvec.IntVector
	err := LoadAll(ctx, st, map[string]succinct.Loader{"nope.sd": &v})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNotFound))
}
