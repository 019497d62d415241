// Package hash provides BLAKE3 content addressing for block bodies.
package hash

import "lukechampine.com/blake3"

// Size is the content hash size in bytes.
const Size = 32

// Sum computes the 32-byte BLAKE3 hash of data.
func Sum(data []byte) [Size]byte {
	return blake3.Sum256(data)
}
