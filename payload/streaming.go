package payload

import (
	"context"
	"fmt"
	"io"
	"iter"

	"github.com/nicholasgalante1997/bcp/block"
	"github.com/nicholasgalante1997/bcp/compress"
	"github.com/nicholasgalante1997/bcp/errs"
	"github.com/nicholasgalante1997/bcp/format"
	"github.com/nicholasgalante1997/bcp/internal/options"
	"github.com/nicholasgalante1997/bcp/store"
	"github.com/nicholasgalante1997/bcp/wire"
)

// EventKind discriminates stream decoder events.
type EventKind uint8

const (
	// EventHeader is the first event of every stream: the parsed header.
	EventHeader EventKind = iota + 1

	// EventBlock is one decoded block, in wire order.
	EventBlock
)

// Event is one unit of stream decoder output.
type Event struct {
	Kind   EventKind
	Header wire.Header
	Block  *block.Block
}

type streamState uint8

const (
	stateReadHeader streamState = iota
	stateReadBlocks
	stateDone
)

// StreamDecoder incrementally parses a payload from an io.Reader.
//
// Next reads exactly as many bytes as the next event needs; the decoder
// never reads ahead and buffers nothing beyond the block currently
// being assembled. The caller drives progress, so backpressure falls
// out of the read pattern for free.
//
// One exception: when the header signals whole-payload compression,
// streaming the frame sequence is impossible. The decoder then buffers
// the entire remainder, decompresses it under the payload bomb cap, and
// parses the decompressed bytes synchronously. This is the only path
// where the decoder allocates proportionally to the payload.
//
// The decoder is single-owner: one goroutine calls Next at a time.
// Cancellation is cancel = drop: a Next aborted by its context leaves
// the decoder in an unspecified intermediate state, and it must not be
// reused afterwards.
type StreamDecoder struct {
	reader       io.Reader
	state        streamState
	contentStore store.ContentStore

	// Set when the payload is whole-payload compressed: the
	// decompressed frame bytes and the parse cursor into them.
	buffered []byte
	cursor   int
}

// StreamDecoderOption configures a StreamDecoder.
type StreamDecoderOption = options.Option[*StreamDecoder]

// WithContentStore attaches the store used to resolve reference blocks.
func WithContentStore(cs store.ContentStore) StreamDecoderOption {
	return options.NoError(func(d *StreamDecoder) {
		d.contentStore = cs
	})
}

// NewStreamDecoder creates a streaming decoder over r.
func NewStreamDecoder(r io.Reader, opts ...StreamDecoderOption) (*StreamDecoder, error) {
	d := &StreamDecoder{reader: r, state: stateReadHeader}
	if err := options.Apply(d, opts...); err != nil {
		return nil, err
	}

	return d, nil
}

// Next returns the next event: the header first, then one event per
// block. After the END sentinel has been consumed, Next returns io.EOF.
//
// ctx is checked before every read from the byte source; see the type
// docs for cancellation semantics.
func (d *StreamDecoder) Next(ctx context.Context) (Event, error) {
	switch d.state {
	case stateReadHeader:
		return d.readHeader(ctx)
	case stateReadBlocks:
		return d.readNextBlock(ctx)
	default:
		return Event{}, io.EOF
	}
}

// All returns an iterator over the remaining events. Iteration stops
// after the final block; a non-nil error terminates it early.
func (d *StreamDecoder) All(ctx context.Context) iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		for {
			event, err := d.Next(ctx)
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(Event{}, err)
				return
			}
			if !yield(event, nil) {
				return
			}
		}
	}
}

func (d *StreamDecoder) readHeader(ctx context.Context) (Event, error) {
	var headerBuf [wire.HeaderSize]byte
	if err := d.readFull(ctx, headerBuf[:]); err != nil {
		return Event{}, err
	}

	header, err := wire.ParseHeader(headerBuf[:])
	if err != nil {
		return Event{}, err
	}

	if header.Flags.Compressed() {
		// Streaming is impossible past this point: buffer, decompress
		// under the payload cap, and parse from memory.
		compressed, err := io.ReadAll(d.reader)
		if err != nil {
			return Event{}, fmt.Errorf("%w: %v", errs.ErrUnexpectedEof, err)
		}
		d.buffered, err = compress.DecompressBounded(compressed, MaxPayloadDecompressedSize)
		if err != nil {
			return Event{}, err
		}
		d.cursor = 0
	}

	d.state = stateReadBlocks

	return Event{Kind: EventHeader, Header: header}, nil
}

func (d *StreamDecoder) readNextBlock(ctx context.Context) (Event, error) {
	frame, err := d.nextFrame(ctx)
	if err != nil {
		return Event{}, err
	}
	if frame == nil {
		d.state = stateDone

		return Event{}, io.EOF
	}

	decoded, err := decodeFrame(frame, d.contentStore)
	if err != nil {
		return Event{}, err
	}

	return Event{Kind: EventBlock, Block: decoded}, nil
}

// nextFrame reads one frame from the decompressed buffer or straight
// from the reader. A nil frame means the END sentinel was consumed.
func (d *StreamDecoder) nextFrame(ctx context.Context) (*wire.Frame, error) {
	if d.buffered != nil {
		if d.cursor >= len(d.buffered) {
			return nil, errs.ErrMissingEndSentinel
		}

		frame, consumed, err := wire.ReadFrame(d.buffered[d.cursor:])
		if err != nil {
			return nil, err
		}
		d.cursor += consumed

		return frame, nil
	}

	typeRaw, err := d.readUvarint(ctx)
	if err != nil {
		return nil, err
	}
	blockType := format.BlockType(typeRaw)

	if blockType == format.BlockEnd {
		// Consume the END frame's flags byte and length varint.
		var flagsByte [1]byte
		if err := d.readFull(ctx, flagsByte[:]); err != nil {
			return nil, err
		}
		if _, err := d.readUvarint(ctx); err != nil {
			return nil, err
		}

		return nil, nil
	}

	var flagsByte [1]byte
	if err := d.readFull(ctx, flagsByte[:]); err != nil {
		return nil, err
	}

	contentLen, err := d.readUvarint(ctx)
	if err != nil {
		return nil, err
	}

	body := make([]byte, contentLen)
	if err := d.readFull(ctx, body); err != nil {
		return nil, err
	}

	return &wire.Frame{
		Type:  blockType,
		Flags: wire.BlockFlags(flagsByte[0]),
		Body:  body,
	}, nil
}

// readUvarint reads a varint from the reader one byte at a time, so it
// never consumes past the varint's final byte.
func (d *StreamDecoder) readUvarint(ctx context.Context) (uint64, error) {
	var result uint64
	var shift uint

	for i := 0; ; i++ {
		if i >= wire.MaxVarintLen {
			return 0, errs.ErrVarintTooLong
		}

		var b [1]byte
		if err := d.readFull(ctx, b[:]); err != nil {
			return 0, err
		}

		result |= uint64(b[0]&0x7F) << shift
		shift += 7

		if b[0]&0x80 == 0 {
			return result, nil
		}
	}
}

// readFull fills buf from the reader, honoring ctx between reads.
func (d *StreamDecoder) readFull(ctx context.Context, buf []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := io.ReadFull(d.reader, buf); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrUnexpectedEof, err)
	}

	return nil
}
