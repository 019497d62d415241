package format

type (
	// BlockType is the single-byte wire tag of a block frame.
	//
	// Known values are listed below. Any other byte is an unknown block
	// type: decoders preserve the raw tag and body for lossless
	// re-encoding instead of rejecting it.
	BlockType uint8

	// CompressionType identifies a compression algorithm in the compress
	// package's codec registry. Only Zstd ever appears on the BCP wire;
	// the other codecs serve out-of-band concerns such as content-store
	// at-rest compression.
	CompressionType uint8

	// FieldWireType is the TLV wire type of a field inside a block body.
	FieldWireType uint8
)

const (
	BlockCode           BlockType = 0x01 // BlockCode is a source code file or fragment.
	BlockConversation   BlockType = 0x02 // BlockConversation is a chat turn with a role.
	BlockFileTree       BlockType = 0x03 // BlockFileTree is a recursive directory listing.
	BlockToolResult     BlockType = 0x04 // BlockToolResult is tool output with a status.
	BlockDocument       BlockType = 0x05 // BlockDocument is prose content with a format hint.
	BlockStructuredData BlockType = 0x06 // BlockStructuredData is JSON/YAML/TOML/CSV data.
	BlockDiff           BlockType = 0x07 // BlockDiff is a unified diff with hunks.
	BlockAnnotation     BlockType = 0x08 // BlockAnnotation is a metadata overlay on an earlier block.
	BlockEmbeddingRef   BlockType = 0x09 // BlockEmbeddingRef is a vector reference.
	BlockImage          BlockType = 0x0A // BlockImage is image data with alt text.
	BlockExtension      BlockType = 0xFE // BlockExtension is a namespaced user-defined block.
	BlockEnd            BlockType = 0xFF // BlockEnd is the end-of-stream sentinel.
)

// Known reports whether the block type is one of the defined semantic
// types or the END sentinel. Unknown types are still valid on the wire;
// they decode to an Unknown block preserving the raw tag.
func (t BlockType) Known() bool {
	switch t {
	case BlockCode, BlockConversation, BlockFileTree, BlockToolResult,
		BlockDocument, BlockStructuredData, BlockDiff, BlockAnnotation,
		BlockEmbeddingRef, BlockImage, BlockExtension, BlockEnd:
		return true
	default:
		return false
	}
}

// Label returns the lowercase type label used by renderer placeholders.
func (t BlockType) Label() string {
	switch t {
	case BlockCode:
		return "code"
	case BlockConversation:
		return "conversation"
	case BlockFileTree:
		return "file-tree"
	case BlockToolResult:
		return "tool-result"
	case BlockDocument:
		return "document"
	case BlockStructuredData:
		return "data"
	case BlockDiff:
		return "diff"
	case BlockImage:
		return "image"
	case BlockExtension:
		return "extension"
	default:
		return "block"
	}
}

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

const (
	WireVarint FieldWireType = 0 // WireVarint is a single varint payload.
	WireBytes  FieldWireType = 1 // WireBytes is a length-prefixed byte payload.
	WireNested FieldWireType = 2 // WireNested is a length-prefixed nested TLV payload.
)
