package store

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nicholasgalante1997/bcp/format"
)

func TestMemoryStore_PutGetRoundtrip(t *testing.T) {
	s, err := NewMemoryStore()
	require.NoError(t, err)

	data := []byte(`func main() { println("hello") }`)
	h := s.Put(data)

	retrieved, ok := s.Get(h)
	require.True(t, ok)
	require.Equal(t, data, retrieved)
}

func TestMemoryStore_PutIsDeterministic(t *testing.T) {
	s, err := NewMemoryStore()
	require.NoError(t, err)

	data := []byte("deterministic content")
	require.Equal(t, s.Put(data), s.Put(data))
	require.Equal(t, Sum(data), s.Put(data))
}

func TestMemoryStore_DedupStoresOnce(t *testing.T) {
	s, err := NewMemoryStore()
	require.NoError(t, err)

	data := []byte("duplicate content")
	s.Put(data)
	s.Put(data)
	require.Equal(t, 1, s.Len())
	require.False(t, s.IsEmpty())
}

func TestMemoryStore_Contains(t *testing.T) {
	s, err := NewMemoryStore()
	require.NoError(t, err)

	h := s.Put([]byte("some content"))
	require.True(t, s.Contains(h))
	require.False(t, s.Contains(Hash{}))
}

func TestMemoryStore_GetUnknownHash(t *testing.T) {
	s, err := NewMemoryStore()
	require.NoError(t, err)

	_, ok := s.Get(Hash{0x01})
	require.False(t, ok)
}

func TestMemoryStore_ReturnedSliceIsOwned(t *testing.T) {
	s, err := NewMemoryStore()
	require.NoError(t, err)

	data := []byte("owned content")
	h := s.Put(data)

	first, ok := s.Get(h)
	require.True(t, ok)
	first[0] = 'X'

	second, ok := s.Get(h)
	require.True(t, ok)
	require.Equal(t, data, second, "mutating a returned slice must not corrupt the store")
}

func TestMemoryStore_AtRestCompression(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionZstd, format.CompressionS2, format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			s, err := NewMemoryStore(WithCompression(ct))
			require.NoError(t, err)

			data := []byte(strings.Repeat("compress me please ", 200))
			h := s.Put(data)

			retrieved, ok := s.Get(h)
			require.True(t, ok)
			require.Equal(t, data, retrieved)

			require.Less(t, s.TotalBytes(), len(data), "at-rest compression should shrink storage")
		})
	}
}

func TestMemoryStore_AtRestCompressionIncompressible(t *testing.T) {
	s, err := NewMemoryStore(WithCompression(format.CompressionS2))
	require.NoError(t, err)

	// Too small and too random to compress; must be stored raw and
	// still round-trip.
	data := []byte{0x01, 0xA7, 0x3C, 0xF2, 0x58}
	h := s.Put(data)

	retrieved, ok := s.Get(h)
	require.True(t, ok)
	require.Equal(t, data, retrieved)
}

func TestMemoryStore_InvalidCompressionOption(t *testing.T) {
	_, err := NewMemoryStore(WithCompression(format.CompressionType(0x7F)))
	require.Error(t, err)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	s, err := NewMemoryStore()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(seed int) {
			defer wg.Done()
			data := []byte(strings.Repeat("x", seed+1))
			h := s.Put(data)
			for range 100 {
				got, ok := s.Get(h)
				if !ok || len(got) != seed+1 {
					t.Errorf("lost entry for seed %d", seed)
					return
				}
				if !s.Contains(h) {
					t.Errorf("Contains false for stored hash")
					return
				}
			}
		}(i)
	}
	wg.Wait()

	require.Equal(t, 8, s.Len())
}
