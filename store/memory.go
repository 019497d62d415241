package store

import (
	"sync"

	"github.com/nicholasgalante1997/bcp/compress"
	"github.com/nicholasgalante1997/bcp/format"
	"github.com/nicholasgalante1997/bcp/internal/hash"
	"github.com/nicholasgalante1997/bcp/internal/options"
)

// MemoryStore is the in-memory ContentStore implementation.
//
// Concurrency follows a read/write lock discipline: Get and Contains
// take the shared lock, Put takes the exclusive lock briefly. No lock
// is held while the returned byte slice is materialized for the caller.
//
// Stored bodies can optionally be compressed at rest with any codec
// from the compress registry (WithCompression). Hashes are always
// computed over the uncompressed content, so at-rest compression is
// invisible to callers and to the wire format.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[Hash]storeEntry
	codec   compress.Codec
}

// storeEntry records whether the bytes went through the at-rest codec;
// incompressible content is kept raw.
type storeEntry struct {
	data       []byte
	compressed bool
}

var _ ContentStore = (*MemoryStore)(nil)

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption = options.Option[*MemoryStore]

// WithCompression stores content compressed with the given algorithm.
// Useful when a store holds many large bodies and memory matters more
// than lookup latency; S2 or LZ4 keep the overhead small.
func WithCompression(compressionType format.CompressionType) MemoryStoreOption {
	return options.New(func(s *MemoryStore) error {
		codec, err := compress.CreateCodec(compressionType, "content store")
		if err != nil {
			return err
		}
		s.codec = codec

		return nil
	})
}

// NewMemoryStore creates an empty in-memory content store.
func NewMemoryStore(opts ...MemoryStoreOption) (*MemoryStore, error) {
	s := &MemoryStore{
		entries: make(map[Hash]storeEntry),
		codec:   nil,
	}

	if err := options.Apply(s, opts...); err != nil {
		return nil, err
	}

	return s, nil
}

// Get returns the content for h, or ok=false if absent.
func (s *MemoryStore) Get(h Hash) ([]byte, bool) {
	s.mu.RLock()
	entry, ok := s.entries[h]
	s.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if entry.compressed {
		content, err := s.codec.Decompress(entry.data)
		if err != nil {
			return nil, false
		}

		return content, true
	}

	out := make([]byte, len(entry.data))
	copy(out, entry.data)

	return out, true
}

// Put stores content and returns its BLAKE3 hash. Identical content is
// stored once.
func (s *MemoryStore) Put(content []byte) Hash {
	h := hash.Sum(content)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[h]; exists {
		return h
	}

	entry := storeEntry{}
	if s.codec != nil {
		if compressed, err := s.codec.Compress(content); err == nil && len(compressed) > 0 && len(compressed) < len(content) {
			entry.data = compressed
			entry.compressed = true
		}
	}
	if !entry.compressed {
		entry.data = make([]byte, len(content))
		copy(entry.data, content)
	}
	s.entries[h] = entry

	return h
}

// Contains reports whether the store holds content for h.
func (s *MemoryStore) Contains(h Hash) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.entries[h]

	return ok
}

// Len returns the number of distinct entries stored.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// IsEmpty reports whether the store has no entries.
func (s *MemoryStore) IsEmpty() bool {
	return s.Len() == 0
}

// TotalBytes returns the total stored size across all entries, after
// any at-rest compression.
func (s *MemoryStore) TotalBytes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, entry := range s.entries {
		total += len(entry.data)
	}

	return total
}
