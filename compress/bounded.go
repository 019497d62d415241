package compress

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/nicholasgalante1997/bcp/errs"
)

const (
	// Threshold is the minimum body size, in bytes, at which the encoder
	// attempts per-block compression. Bodies below it gain nothing from
	// zstd's frame overhead.
	Threshold = 256

	// defaultCompressionLevel is the BCP wire format's fixed zstd level.
	defaultCompressionLevel = 3
)

// Opportunistic compresses data with zstd at the format's default level
// and reports whether the result was kept.
//
// The compressed form is returned only if it is strictly smaller than
// the input; otherwise ok is false and the caller keeps the original
// bytes. This guarantees compression is never pessimizing.
func Opportunistic(data []byte) ([]byte, bool) {
	compressed, err := NewZstdCodec().Compress(data)
	if err != nil || len(compressed) >= len(data) {
		return nil, false
	}

	return compressed, true
}

// boundedReaderPool pools streaming zstd readers for DecompressBounded.
// Streaming (rather than DecodeAll) is what lets the bomb guard abort
// before a hostile payload's full expansion is allocated.
var boundedReaderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd decoder for pool: %v", err))
		}
		return decoder
	},
}

// DecompressBounded decompresses zstd data, aborting with
// errs.ErrDecompressionBomb once the output exceeds limit bytes.
//
// Output is streamed: a payload claiming to expand past the limit fails
// after at most limit+1 bytes have been produced, not after the full
// expansion has been allocated.
func DecompressBounded(data []byte, limit int) ([]byte, error) {
	decoder := boundedReaderPool.Get().(*zstd.Decoder)
	defer boundedReaderPool.Put(decoder)

	if err := decoder.Reset(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDecompressFailed, err)
	}

	var out bytes.Buffer
	n, err := io.Copy(&out, io.LimitReader(decoder.IOReadCloser(), int64(limit)+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDecompressFailed, err)
	}

	if n > int64(limit) {
		return nil, fmt.Errorf("%w: decompressed past %d-byte limit", errs.ErrDecompressionBomb, limit)
	}

	return out.Bytes(), nil
}
