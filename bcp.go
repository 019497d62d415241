// Package bcp implements the Bit Context Protocol, a binary container
// format for LLM context payloads.
//
// BCP replaces ad-hoc markdown prompt assembly with a self-describing,
// length-prefixed block stream that a renderer turns into model-ready
// text. Structural chrome (fences, headers, path comments, separators)
// moves out of band into typed metadata, which is where the format's
// token savings come from.
//
// # Core Features
//
//   - TLV wire format with LEB128 varints and a fixed 8-byte header
//   - Eleven typed block kinds plus lossless unknown-type passthrough
//   - Per-block and whole-payload zstd compression with bomb guards
//   - BLAKE3 content addressing and automatic deduplication through a
//     pluggable content store
//   - Buffered and incremental streaming decoders over one state machine
//   - A priority-aware token budget engine driving three render modes
//     (XML, Markdown, Minimal)
//
// # Basic Usage
//
// Encoding a payload:
//
//	data, err := bcp.NewEncoder().
//	    AddCode(format.LangGo, "main.go", source).
//	    WithSummary("service entry point").
//	    WithPriority(format.PriorityHigh).
//	    AddConversation(format.RoleUser, []byte("why does startup hang?")).
//	    Encode()
//
// Decoding and rendering under a token budget:
//
//	decoded, _ := bcp.Decode(data)
//	tokenBudget := uint32(4096)
//	text, _ := bcp.Render(decoded.Blocks, render.Config{
//	    Mode:        render.ModeMinimal,
//	    TokenBudget: &tokenBudget,
//	})
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the
// payload and render packages, simplifying the most common use cases.
// For fine-grained control use the subpackages directly: wire (framing
// primitives), block (typed model), payload (encoder/decoders), store
// (content addressing), budget (estimation and allocation), render
// (output modes), compress (codecs).
package bcp

import (
	"io"

	"github.com/nicholasgalante1997/bcp/block"
	"github.com/nicholasgalante1997/bcp/payload"
	"github.com/nicholasgalante1997/bcp/render"
	"github.com/nicholasgalante1997/bcp/store"
)

// NewEncoder creates an empty payload encoder.
func NewEncoder() *payload.Encoder {
	return payload.NewEncoder()
}

// Decode parses a complete payload into a header and block list.
func Decode(data []byte) (*payload.DecodedPayload, error) {
	return payload.Decode(data)
}

// DecodeWithStore parses a complete payload, resolving content-store
// references through cs.
func DecodeWithStore(data []byte, cs store.ContentStore) (*payload.DecodedPayload, error) {
	return payload.DecodeWithStore(data, cs)
}

// NewStreamDecoder creates an incremental decoder over r.
func NewStreamDecoder(r io.Reader, opts ...payload.StreamDecoderOption) (*payload.StreamDecoder, error) {
	return payload.NewStreamDecoder(r, opts...)
}

// NewMemoryStore creates an in-memory BLAKE3 content store.
func NewMemoryStore(opts ...store.MemoryStoreOption) (*store.MemoryStore, error) {
	return store.NewMemoryStore(opts...)
}

// Render filters, budgets, and renders a decoded block list.
func Render(blocks []block.Block, cfg render.Config) (string, error) {
	return render.Render(blocks, cfg)
}
