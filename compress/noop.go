package compress

// NoOpCodec bypasses data without compression.
//
// Useful for stores holding already-compressed or incompressible
// content, and as a baseline in benchmarks.
//
// Note: Both methods return the input slice as-is, without copying.
// Callers must not modify the input after passing it in if they plan to
// use the returned slice.
type NoOpCodec struct{}

var _ Codec = (*NoOpCodec)(nil)

// NewNoOpCodec creates a new no-operation codec that bypasses data.
func NewNoOpCodec() NoOpCodec {
	return NoOpCodec{}
}

// Compress bypasses compression and returns the input data directly.
func (c NoOpCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress bypasses decompression and returns the input data directly.
func (c NoOpCodec) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
