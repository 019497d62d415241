package compress

// ZstdCodec provides Zstandard compression for BCP block bodies and
// whole payloads.
//
// This is the only codec that ever appears on the BCP wire. Level 3 is
// the format's fixed compression level: a good ratio for the source
// code and prose that dominate context payloads without the latency of
// the higher levels.
//
// Two implementations exist behind a build tag. The default is the pure
// Go klauspost/compress encoder with pooled state; building with the
// gozstd tag swaps in the cgo libzstd binding for environments where
// the native library's throughput matters.
type ZstdCodec struct{}

var _ Codec = (*ZstdCodec)(nil)

// NewZstdCodec creates a new Zstd codec with the format's default settings.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}
