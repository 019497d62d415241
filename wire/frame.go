package wire

import (
	"fmt"

	"github.com/nicholasgalante1997/bcp/errs"
	"github.com/nicholasgalante1997/bcp/format"
)

const (
	// Block flag bits.
	FlagHasSummary  = 0x01 // a length-prefixed UTF-8 summary precedes the typed body
	FlagCompressed  = 0x02 // the body is zstd-compressed
	FlagIsReference = 0x04 // the body is a 32-byte BLAKE3 hash, not inline data
)

// BlockFlags is the per-block flags byte. Bits 3-7 are reserved.
type BlockFlags uint8

// HasSummary reports whether a summary sub-block precedes the body.
func (f BlockFlags) HasSummary() bool {
	return f&FlagHasSummary != 0
}

// Compressed reports whether the body is zstd-compressed.
func (f BlockFlags) Compressed() bool {
	return f&FlagCompressed != 0
}

// IsReference reports whether the body is a content-store hash.
func (f BlockFlags) IsReference() bool {
	return f&FlagIsReference != 0
}

// Frame is the wire envelope around a block body:
//
//	┌───────────────┬────────┬──────────────┬──────────┐
//	│ block_type    │ flags  │ content_len  │ body     │
//	│ (varint)      │ (byte) │ (varint)     │ (bytes)  │
//	└───────────────┴────────┴──────────────┴──────────┘
type Frame struct {
	Type  format.BlockType
	Flags BlockFlags
	Body  []byte
}

// AppendFrame appends the frame's wire encoding to dst.
func AppendFrame(dst []byte, f Frame) []byte {
	dst = AppendUvarint(dst, uint64(f.Type))
	dst = append(dst, uint8(f.Flags))
	dst = AppendUvarint(dst, uint64(len(f.Body)))

	return append(dst, f.Body...)
}

// AppendEndFrame appends the END sentinel frame to dst. On the wire the
// sentinel is exactly four bytes: the type varint FF 01, a zero flags
// byte, and a zero length varint.
func AppendEndFrame(dst []byte) []byte {
	dst = AppendUvarint(dst, uint64(format.BlockEnd))

	return append(dst, 0x00, 0x00)
}

// ReadFrame reads one block frame from the front of buf.
//
// For a normal block it returns the frame and the bytes consumed. For
// the END sentinel it returns a nil frame; the sentinel's trailing
// flags byte and length varint are consumed so the returned count
// covers the whole four-byte END frame, and the caller treats the nil
// frame as loop termination.
//
// The returned body aliases buf; copy it if it must outlive the input.
func ReadFrame(buf []byte) (*Frame, int, error) {
	typeRaw, n, err := Uvarint(buf)
	if err != nil {
		return nil, 0, err
	}
	cursor := n

	blockType := format.BlockType(typeRaw)
	if blockType == format.BlockEnd {
		n, err := consumeEndTail(buf[cursor:])
		if err != nil {
			return nil, 0, err
		}

		return nil, cursor + n, nil
	}

	if cursor >= len(buf) {
		return nil, 0, fmt.Errorf("%w: frame truncated before flags byte", errs.ErrUnexpectedEof)
	}
	flags := BlockFlags(buf[cursor])
	cursor++

	contentLen, n, err := Uvarint(buf[cursor:])
	if err != nil {
		return nil, 0, err
	}
	cursor += n

	end := uint64(cursor) + contentLen
	if end > uint64(len(buf)) {
		return nil, 0, fmt.Errorf("%w: frame body of %d bytes exceeds remaining input", errs.ErrUnexpectedEof, contentLen)
	}

	return &Frame{
		Type:  blockType,
		Flags: flags,
		Body:  buf[cursor:end],
	}, int(end), nil
}

// consumeEndTail consumes the END frame's flags byte and length varint.
func consumeEndTail(buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, fmt.Errorf("%w: END frame truncated before flags byte", errs.ErrUnexpectedEof)
	}
	cursor := 1

	_, n, err := Uvarint(buf[cursor:])
	if err != nil {
		return 0, err
	}

	return cursor + n, nil
}
