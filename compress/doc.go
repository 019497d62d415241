// Package compress provides compression and decompression codecs for
// BCP payloads and block bodies.
//
// The BCP wire format uses exactly one algorithm: Zstandard at level 3.
// Two helpers implement the wire-level contract:
//
//   - Opportunistic: compresses a body and keeps the result only if it
//     is strictly smaller than the input, so compression is never
//     pessimizing.
//   - DecompressBounded: streams decompressed output and aborts once a
//     caller-supplied cap is exceeded, the guard against decompression
//     bombs.
//
// The package additionally exposes a general codec registry (None,
// Zstd, S2, LZ4) behind three interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// The extra codecs never appear on the wire; they serve out-of-band
// concerns such as the in-memory content store's optional at-rest
// compression, where a faster algorithm (S2, LZ4) can be preferable to
// Zstd for hot stores.
//
// All codecs are safe for concurrent use. The Zstd implementation pools
// its encoders and decoders so steady-state operation is allocation
// free.
package compress
