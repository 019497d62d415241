// Package store defines the BLAKE3-addressed content store shared
// between the encoder and decoder of a payload, plus an in-memory
// implementation.
//
// Content addressing lets an encoder replace a block body with its
// 32-byte hash on the wire; the consumer resolves the hash through a
// store shared out of band. The store's lifecycle is independent of any
// payload.
package store

import "github.com/nicholasgalante1997/bcp/internal/hash"

// HashSize is the content hash size in bytes.
const HashSize = hash.Size

// Hash is a 32-byte BLAKE3 content hash.
type Hash = [HashSize]byte

// ContentStore is a byte store keyed by BLAKE3 hashes.
//
// Implementations must be safe for concurrent use: many readers may
// call Get and Contains while a single writer calls Put.
//
// Put is idempotent: storing identical content twice yields the same
// hash and does not duplicate the entry.
type ContentStore interface {
	// Get returns the content for hash, or ok=false if absent.
	Get(h Hash) ([]byte, bool)

	// Put stores content and returns its hash.
	Put(content []byte) Hash

	// Contains reports whether the store holds content for hash.
	Contains(h Hash) bool
}

// Sum computes the BLAKE3 hash of content without storing it.
func Sum(content []byte) Hash {
	return hash.Sum(content)
}
