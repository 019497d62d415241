package block

import (
	"fmt"

	"github.com/nicholasgalante1997/bcp/errs"
	"github.com/nicholasgalante1997/bcp/wire"
)

// The summary sub-block is a compact UTF-8 description prefixed to the
// body when the block's HAS_SUMMARY flag is set:
//
//	┌────────────────────────────────────────────────────┐
//	│ summary_len  (varint)        byte length of text   │
//	│ summary_text [summary_len]   UTF-8 bytes           │
//	│ ... TLV fields of the typed body ...               │
//	└────────────────────────────────────────────────────┘
//
// It exists for token-budget-aware rendering: when a block is too large
// to include in full, the renderer can substitute the summary.

// AppendSummary appends the length-prefixed summary text to dst. Call
// before appending the block's TLV fields.
func AppendSummary(dst []byte, text string) []byte {
	dst = wire.AppendUvarint(dst, uint64(len(text)))

	return append(dst, text...)
}

// ParseSummary reads a summary from the front of buf, returning the
// text and the bytes consumed. Invalid UTF-8 is replaced lossily rather
// than rejected, matching the encoder's lossy policy for metadata text.
func ParseSummary(buf []byte) (string, int, error) {
	length, n, err := wire.Uvarint(buf)
	if err != nil {
		return "", 0, err
	}

	end := uint64(n) + length
	if end > uint64(len(buf)) {
		return "", 0, fmt.Errorf("%w: summary of %d bytes exceeds remaining input", errs.ErrUnexpectedEof, length)
	}

	return lossyString(buf[n:end]), int(end), nil
}
