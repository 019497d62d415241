package payload

import (
	"fmt"

	"github.com/nicholasgalante1997/bcp/block"
	"github.com/nicholasgalante1997/bcp/compress"
	"github.com/nicholasgalante1997/bcp/errs"
	"github.com/nicholasgalante1997/bcp/format"
	"github.com/nicholasgalante1997/bcp/internal/hash"
	"github.com/nicholasgalante1997/bcp/internal/pool"
	"github.com/nicholasgalante1997/bcp/store"
	"github.com/nicholasgalante1997/bcp/wire"
)

// MaxBlockBodySize is the hard cap on a single block body (summary
// included, before compression).
const MaxBlockBodySize = 16 * 1024 * 1024

// Encoder builds a BCP payload from a sequence of typed blocks.
//
// Add* methods push a pending block and return the encoder for
// chaining. With* modifiers apply to the most recently added block;
// calling one on an empty encoder is misuse and panics. Global
// modifiers (CompressBlocks, CompressPayload, SetContentStore,
// AutoDedup) affect the eventual Encode call.
//
// The Encoder is not safe for concurrent use. Encode leaves the pending
// blocks in place, so a second call re-encodes the same blocks; under
// AutoDedup the first call registers bodies in the content store, so a
// second call can emit references where the first kept bodies inline.
type Encoder struct {
	pending           []pendingBlock
	compressAllBlocks bool
	compressPayload   bool
	contentStore      store.ContentStore
	autoDedup         bool
}

type pendingBlock struct {
	body           block.Body
	summary        string
	hasSummary     bool
	compress       bool
	contentAddress bool
}

// NewEncoder creates an empty payload encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// AddCode pushes a Code block for a whole file.
func (e *Encoder) AddCode(lang format.Lang, path string, content []byte) *Encoder {
	return e.pushBlock(&block.CodeBody{Lang: lang, Path: path, Content: content})
}

// AddCodeRange pushes a Code block narrowed to a 1-indexed, inclusive
// line range.
func (e *Encoder) AddCodeRange(lang format.Lang, path string, content []byte, lineStart, lineEnd uint32) *Encoder {
	return e.pushBlock(&block.CodeBody{
		Lang:      lang,
		Path:      path,
		Content:   content,
		LineRange: &block.LineRange{Start: lineStart, End: lineEnd},
	})
}

// AddConversation pushes a Conversation block.
func (e *Encoder) AddConversation(role format.Role, content []byte) *Encoder {
	return e.pushBlock(&block.ConversationBody{Role: role, Content: content})
}

// AddConversationTool pushes a Conversation block carrying the id of
// the tool call this turn answers.
func (e *Encoder) AddConversationTool(role format.Role, content []byte, toolCallID string) *Encoder {
	return e.pushBlock(&block.ConversationBody{Role: role, Content: content, ToolCallID: toolCallID})
}

// AddFileTree pushes a FileTree block.
func (e *Encoder) AddFileTree(root string, entries []block.FileEntry) *Encoder {
	return e.pushBlock(&block.FileTreeBody{RootPath: root, Entries: entries})
}

// AddToolResult pushes a ToolResult block.
func (e *Encoder) AddToolResult(name string, status format.Status, content []byte) *Encoder {
	return e.pushBlock(&block.ToolResultBody{ToolName: name, Status: status, Content: content})
}

// AddToolResultSchema pushes a ToolResult block with a schema hint.
func (e *Encoder) AddToolResultSchema(name string, status format.Status, content []byte, schemaHint string) *Encoder {
	return e.pushBlock(&block.ToolResultBody{
		ToolName: name, Status: status, Content: content, SchemaHint: schemaHint,
	})
}

// AddDocument pushes a Document block.
func (e *Encoder) AddDocument(title string, content []byte, hint format.FormatHint) *Encoder {
	return e.pushBlock(&block.DocumentBody{Title: title, Content: content, FormatHint: hint})
}

// AddStructuredData pushes a StructuredData block.
func (e *Encoder) AddStructuredData(dataFormat format.DataFormat, content []byte) *Encoder {
	return e.pushBlock(&block.StructuredDataBody{Format: dataFormat, Content: content})
}

// AddStructuredDataSchema pushes a StructuredData block with a schema
// descriptor.
func (e *Encoder) AddStructuredDataSchema(dataFormat format.DataFormat, schema string, content []byte) *Encoder {
	return e.pushBlock(&block.StructuredDataBody{Format: dataFormat, Schema: schema, Content: content})
}

// AddDiff pushes a Diff block.
func (e *Encoder) AddDiff(path string, hunks []block.DiffHunk) *Encoder {
	return e.pushBlock(&block.DiffBody{Path: path, Hunks: hunks})
}

// AddAnnotation pushes an Annotation block targeting an earlier block
// by its zero-based index in the pending sequence.
func (e *Encoder) AddAnnotation(targetBlock uint32, kind format.AnnotationKind, value []byte) *Encoder {
	return e.pushBlock(&block.AnnotationBody{TargetBlock: targetBlock, Kind: kind, Value: value})
}

// AddEmbeddingRef pushes an EmbeddingRef block.
func (e *Encoder) AddEmbeddingRef(vectorID, sourceHash []byte, model string) *Encoder {
	return e.pushBlock(&block.EmbeddingRefBody{VectorID: vectorID, SourceHash: sourceHash, Model: model})
}

// AddImage pushes an Image block.
func (e *Encoder) AddImage(mediaType format.MediaType, altText string, data []byte) *Encoder {
	return e.pushBlock(&block.ImageBody{MediaType: mediaType, AltText: altText, Data: data})
}

// AddExtension pushes an Extension block.
func (e *Encoder) AddExtension(namespace, typeName string, content []byte) *Encoder {
	return e.pushBlock(&block.ExtensionBody{Namespace: namespace, TypeName: typeName, Content: content})
}

// AddBlocks pushes already-built blocks, typically the output of a
// decoder. Wire flags translate back into encode requests: a summary
// flag carries the summary, a compression flag requests per-block
// compression, and a reference flag requests content addressing. With
// an unchanged content store this makes decode→re-encode byte-exact,
// Unknown blocks included.
func (e *Encoder) AddBlocks(blocks ...block.Block) *Encoder {
	for i := range blocks {
		b := &blocks[i]
		if _, isEnd := b.Body.(block.EndBody); isEnd {
			continue // Encode writes its own END frame
		}

		e.pushBlock(b.Body)
		last := &e.pending[len(e.pending)-1]
		if b.Flags.HasSummary() {
			last.summary = b.Summary
			last.hasSummary = true
		}
		if b.Flags.Compressed() {
			last.compress = true
		}
		if b.Flags.IsReference() {
			last.contentAddress = true
		}
	}

	return e
}

// WithSummary attaches a summary to the most recently added block.
// Panics if no block has been added.
func (e *Encoder) WithSummary(text string) *Encoder {
	last := e.lastPending("WithSummary")
	last.summary = text
	last.hasSummary = true

	return e
}

// WithPriority pushes a priority Annotation targeting the most recently
// added block. Panics if no block has been added.
func (e *Encoder) WithPriority(priority format.Priority) *Encoder {
	if len(e.pending) == 0 {
		panic("bcp: WithPriority called but no blocks have been added")
	}

	target := uint32(len(e.pending) - 1)

	return e.pushBlock(&block.AnnotationBody{
		TargetBlock: target,
		Kind:        format.AnnotationPriority,
		Value:       []byte{uint8(priority)},
	})
}

// WithCompression requests per-block compression for the most recently
// added block. Panics if no block has been added.
func (e *Encoder) WithCompression() *Encoder {
	e.lastPending("WithCompression").compress = true

	return e
}

// WithContentAddressing replaces the most recently added block's body
// with its BLAKE3 hash at encode time, storing the body in the content
// store. Panics if no block has been added.
func (e *Encoder) WithContentAddressing() *Encoder {
	e.lastPending("WithContentAddressing").contentAddress = true

	return e
}

// CompressBlocks requests per-block compression for every block,
// already-added blocks included.
func (e *Encoder) CompressBlocks() *Encoder {
	e.compressAllBlocks = true
	for i := range e.pending {
		e.pending[i].compress = true
	}

	return e
}

// CompressPayload compresses everything after the header as a single
// zstd stream at encode time. Per-block compression attempts are
// skipped while this is set.
func (e *Encoder) CompressPayload() *Encoder {
	e.compressPayload = true

	return e
}

// SetContentStore attaches the content store used by content
// addressing and auto-dedup.
func (e *Encoder) SetContentStore(cs store.ContentStore) *Encoder {
	e.contentStore = cs

	return e
}

// AutoDedup replaces any block body already present in the content
// store with its hash reference, and registers first-seen bodies so
// later duplicates dedup against them.
func (e *Encoder) AutoDedup() *Encoder {
	e.autoDedup = true

	return e
}

// Encode assembles the payload: header, one frame per pending block in
// add order, and the END sentinel.
//
// Per block, in order: serialize the TLV body, prepend the summary,
// apply content addressing, then attempt opportunistic per-block
// compression (skipped for references and when whole-payload
// compression is on). After the END frame, whole-payload compression is
// applied if requested and strictly smaller. Output is byte-identical
// across runs for fixed inputs and store state.
func (e *Encoder) Encode() ([]byte, error) {
	if len(e.pending) == 0 {
		return nil, errs.ErrEmptyPayload
	}

	needsStore := e.autoDedup
	for i := range e.pending {
		if e.pending[i].contentAddress {
			needsStore = true
			break
		}
	}
	if needsStore && e.contentStore == nil {
		return nil, errs.ErrMissingContentStore
	}

	buf := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(buf)

	// Reserve the header; it is written last, once the flags are known.
	buf.B = append(buf.B, make([]byte, wire.HeaderSize)...)

	for i := range e.pending {
		pending := &e.pending[i]

		body, err := serializeBlockBody(pending)
		if err != nil {
			return nil, err
		}

		var flags wire.BlockFlags
		if pending.hasSummary {
			flags |= wire.FlagHasSummary
		}

		isReference, err := e.applyContentAddressing(pending, &body)
		if err != nil {
			return nil, err
		}
		if isReference {
			flags |= wire.FlagIsReference
		}

		if !isReference && !e.compressPayload {
			shouldCompress := pending.compress || e.compressAllBlocks
			if shouldCompress && len(body) >= compress.Threshold {
				if compressed, ok := compress.Opportunistic(body); ok {
					body = compressed
					flags |= wire.FlagCompressed
				}
			}
		}

		buf.B = wire.AppendFrame(buf.B, wire.Frame{
			Type:  pending.body.BlockType(),
			Flags: flags,
			Body:  body,
		})
	}

	buf.B = wire.AppendEndFrame(buf.B)

	var headerFlags wire.HeaderFlags
	if e.compressPayload {
		if compressed, ok := compress.Opportunistic(buf.B[wire.HeaderSize:]); ok {
			buf.B = append(buf.B[:wire.HeaderSize], compressed...)
			headerFlags |= wire.HeaderFlagCompressed
		}
	}

	if err := wire.NewHeader(headerFlags).WriteTo(buf.B[:wire.HeaderSize]); err != nil {
		return nil, err
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

func (e *Encoder) pushBlock(body block.Body) *Encoder {
	e.pending = append(e.pending, pendingBlock{
		body:     body,
		compress: e.compressAllBlocks,
	})

	return e
}

func (e *Encoder) lastPending(caller string) *pendingBlock {
	if len(e.pending) == 0 {
		panic("bcp: " + caller + " called but no blocks have been added")
	}

	return &e.pending[len(e.pending)-1]
}

// applyContentAddressing swaps the body for its 32-byte hash when the
// block requested addressing, or when auto-dedup is on and the store
// already holds the body. First-seen bodies are registered under
// auto-dedup so later duplicates hit.
func (e *Encoder) applyContentAddressing(pending *pendingBlock, body *[]byte) (bool, error) {
	if e.contentStore == nil {
		return false, nil
	}

	if pending.contentAddress {
		h := e.contentStore.Put(*body)
		*body = h[:]

		return true, nil
	}

	if e.autoDedup {
		h := hash.Sum(*body)
		if e.contentStore.Contains(h) {
			*body = h[:]

			return true, nil
		}
		e.contentStore.Put(*body)
	}

	return false, nil
}

func serializeBlockBody(pending *pendingBlock) ([]byte, error) {
	tlv := pending.body.EncodeBody()

	var body []byte
	if pending.hasSummary {
		body = block.AppendSummary(nil, pending.summary)
		body = append(body, tlv...)
	} else {
		body = tlv
	}

	if len(body) > MaxBlockBodySize {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", errs.ErrBlockTooLarge, len(body), MaxBlockBodySize)
	}

	return body, nil
}
