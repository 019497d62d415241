package wire

import (
	"fmt"

	"github.com/nicholasgalante1997/bcp/errs"
)

// MaxVarintLen is the maximum number of bytes a uint64 varint can
// occupy: ceil(64 / 7) = 10.
const MaxVarintLen = 10

// AppendUvarint encodes value as an unsigned LEB128 varint and appends
// it to dst, returning the extended slice.
//
// Each byte carries seven payload bits; the high bit is the
// continuation marker and is clear on the final byte. Encoded lengths
// range from 1 byte (values < 128) to 10 bytes (values ≥ 2^63).
func AppendUvarint(dst []byte, value uint64) []byte {
	for value >= 0x80 {
		dst = append(dst, byte(value)|0x80)
		value >>= 7
	}

	return append(dst, byte(value))
}

// Uvarint decodes an unsigned LEB128 varint from the front of buf.
//
// Returns the decoded value and the number of bytes consumed so callers
// can advance their own cursor.
//
// Fails with errs.ErrVarintTooLong if an eleventh continuation byte
// would be required, and with errs.ErrUnexpectedEof if buf ends while
// the continuation bit is still set.
func Uvarint(buf []byte) (uint64, int, error) {
	var result uint64
	var shift uint

	for i, b := range buf {
		if i >= MaxVarintLen {
			return 0, 0, errs.ErrVarintTooLong
		}

		result |= uint64(b&0x7F) << shift
		shift += 7

		if b&0x80 == 0 {
			return result, i + 1, nil
		}
	}

	return 0, 0, fmt.Errorf("%w: truncated varint at offset %d", errs.ErrUnexpectedEof, len(buf))
}

// UvarintLen returns the encoded size of value in bytes without
// allocating.
func UvarintLen(value uint64) int {
	n := 1
	for value >= 0x80 {
		value >>= 7
		n++
	}

	return n
}
