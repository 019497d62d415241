package payload

import (
	"fmt"

	"github.com/nicholasgalante1997/bcp/block"
	"github.com/nicholasgalante1997/bcp/compress"
	"github.com/nicholasgalante1997/bcp/errs"
	"github.com/nicholasgalante1997/bcp/store"
	"github.com/nicholasgalante1997/bcp/wire"
)

// MaxPayloadDecompressedSize caps the decompressed size of a
// whole-payload zstd stream.
const MaxPayloadDecompressedSize = 256 * 1024 * 1024

// DecodedPayload is the buffered decoder's result: the parsed header
// and the ordered block list. Block order equals wire order.
type DecodedPayload struct {
	Header wire.Header
	Blocks []block.Block
}

// Decode parses a complete payload. Payloads containing reference
// blocks need DecodeWithStore instead.
func Decode(data []byte) (*DecodedPayload, error) {
	return decode(data, nil)
}

// DecodeWithStore parses a complete payload, resolving reference
// blocks through the given content store.
func DecodeWithStore(data []byte, cs store.ContentStore) (*DecodedPayload, error) {
	return decode(data, cs)
}

func decode(data []byte, cs store.ContentStore) (*DecodedPayload, error) {
	header, err := wire.ParseHeader(data)
	if err != nil {
		return nil, err
	}

	blockData := data[wire.HeaderSize:]
	if header.Flags.Compressed() {
		blockData, err = compress.DecompressBounded(blockData, MaxPayloadDecompressedSize)
		if err != nil {
			return nil, err
		}
	}

	var blocks []block.Block
	cursor := 0
	foundEnd := false

	for cursor < len(blockData) {
		frame, consumed, err := wire.ReadFrame(blockData[cursor:])
		if err != nil {
			return nil, err
		}
		cursor += consumed

		if frame == nil {
			foundEnd = true
			break
		}

		decoded, err := decodeFrame(frame, cs)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, *decoded)
	}

	if !foundEnd {
		return nil, errs.ErrMissingEndSentinel
	}

	if cursor < len(blockData) {
		return nil, fmt.Errorf("%w: %d extra bytes", errs.ErrTrailingData, len(blockData)-cursor)
	}

	return &DecodedPayload{Header: header, Blocks: blocks}, nil
}

// decodeFrame turns a wire frame into a typed block: resolve the
// reference, decompress, split off the summary, then dispatch the typed
// decode.
func decodeFrame(frame *wire.Frame, cs store.ContentStore) (*block.Block, error) {
	body := frame.Body

	if frame.Flags.IsReference() {
		if cs == nil {
			return nil, errs.ErrMissingContentStore
		}
		if len(body) != store.HashSize {
			return nil, fmt.Errorf("%w: got %d bytes", errs.ErrInvalidReference, len(body))
		}

		var h store.Hash
		copy(h[:], body)
		resolved, ok := cs.Get(h)
		if !ok {
			return nil, fmt.Errorf("%w: %x", errs.ErrUnresolvedReference, h)
		}
		body = resolved
	}

	if frame.Flags.Compressed() {
		decompressed, err := compress.DecompressBounded(body, MaxBlockBodySize)
		if err != nil {
			return nil, err
		}
		body = decompressed
	}

	var summary string
	if frame.Flags.HasSummary() {
		text, consumed, err := block.ParseSummary(body)
		if err != nil {
			return nil, err
		}
		summary = text
		body = body[consumed:]
	}

	typed, err := block.DecodeBody(frame.Type, body)
	if err != nil {
		return nil, err
	}

	return &block.Block{
		Type:    frame.Type,
		Flags:   frame.Flags,
		Summary: summary,
		Body:    typed,
	}, nil
}
